package polyjson

import (
	"context"
	"sort"

	"github.com/studykit/polyjson/i18n"
)

// DefaultDiscriminatorKey is the wire key carrying the discriminator unless a
// registry is configured with an alternate.
const DefaultDiscriminatorKey = "type"

// Discriminator is the string value of the reserved field that selects a
// concrete type during polymorphic decode. Values are unique within one
// registry; each interface ships a fixed enumerable set of standard values and
// stays open to externally registered ones.
type Discriminator string

func (d Discriminator) String() string { return string(d) }

// Serializable is the contract every concrete type registered with a Registry
// satisfies.
type Serializable interface {
	// TypeName returns the discriminator the type is registered under.
	TypeName() Discriminator
}

// DecodeFunc builds a concrete value from the raw object. The registry has
// already consumed the discriminator member; the full object, discriminator
// included, remains available so implementations read exactly the fields they
// declare. Nested polymorphic fields decode back through sc.
type DecodeFunc func(ctx context.Context, sc *SerializationContext, obj *Object) (Serializable, error)

// EncodeFunc writes the concrete value's declared fields under their declared
// wire keys into obj. The discriminator member and member ordering are the
// caller's concern.
type EncodeFunc func(ctx context.Context, sc *SerializationContext, v Serializable, obj *Object) error

// Entry binds a prototype instance to its decode and encode routines. The
// prototype doubles as the example the schema builder documents.
type Entry struct {
	Prototype Serializable
	Decode    DecodeFunc
	Encode    EncodeFunc
}

// Registry owns the open set of concrete types implementing one abstract
// interface, keyed by discriminator.
type Registry struct {
	iface   string
	key     string
	entries map[Discriminator]Entry
}

// RegistryOption configures a Registry at construction.
type RegistryOption func(*Registry)

// WithDiscriminatorKey overrides the wire key the registry reads the
// discriminator from.
func WithDiscriminatorKey(key string) RegistryOption {
	return func(r *Registry) {
		if key != "" {
			r.key = key
		}
	}
}

// NewRegistry returns an empty registry for the named interface.
func NewRegistry(iface string, opts ...RegistryOption) *Registry {
	r := &Registry{
		iface:   iface,
		key:     DefaultDiscriminatorKey,
		entries: map[Discriminator]Entry{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Interface returns the abstract interface name the registry serves.
func (r *Registry) Interface() string { return r.iface }

// Key returns the discriminator wire key.
func (r *Registry) Key() string { return r.key }

// Add registers an entry under its prototype's discriminator. Registration is
// an upsert: a later Add for the same discriminator replaces the earlier
// entry. This is intentional, so external modules can override a standard
// type; it is not a first-wins race.
func (r *Registry) Add(e Entry) {
	if e.Prototype == nil {
		panic("polyjson: Registry.Add requires a prototype")
	}
	d := e.Prototype.TypeName()
	if _, exists := r.entries[d]; exists {
		log.Debugf("registry %s: overwriting entry for %q", r.iface, d)
	}
	r.entries[d] = e
}

// AddAll registers every entry in order; later entries win on conflicts.
func (r *Registry) AddAll(es ...Entry) {
	for _, e := range es {
		r.Add(e)
	}
}

// Resolve returns the entry registered for d.
func (r *Registry) Resolve(d Discriminator) (Entry, bool) {
	e, ok := r.entries[d]
	return e, ok
}

// Discriminators returns every registered discriminator in sorted order.
func (r *Registry) Discriminators() []Discriminator {
	out := make([]Discriminator, 0, len(r.entries))
	for d := range r.entries {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of registered entries.
func (r *Registry) Len() int { return len(r.entries) }

// Decode reads the discriminator member from obj, resolves it and hands the
// same object to the matching entry's decode routine.
func (r *Registry) Decode(ctx context.Context, sc *SerializationContext, obj *Object) (Serializable, error) {
	raw, ok := obj.Get(r.key)
	if !ok {
		return nil, Issues{Issue{
			Path:    "/" + r.key,
			Code:    CodeDiscriminatorMissing,
			Message: i18n.T(CodeDiscriminatorMissing, nil),
			Hint:    "interface " + r.iface,
		}}
	}
	tag, ok := raw.AsString()
	if !ok {
		return nil, Issues{Issue{
			Path:    "/" + r.key,
			Code:    CodeInvalidType,
			Message: i18n.T(CodeInvalidType, nil),
			Hint:    "discriminator must be a string",
		}}
	}
	e, ok := r.Resolve(Discriminator(tag))
	if !ok {
		return nil, Issues{Issue{
			Path:    "/" + r.key,
			Code:    CodeDiscriminatorUnknown,
			Message: i18n.T(CodeDiscriminatorUnknown, map[string]string{"value": tag}),
			Hint:    "unknown variant: '" + tag + "'",
			Params:  map[string]any{"value": tag},
		}}
	}
	return e.Decode(ctx, sc, obj)
}

// Validate is the registry self-check: every entry must carry an
// introspectable prototype whose discriminator matches its registration key,
// plus working decode and encode routines. It checks registry wiring, not
// documents.
func (r *Registry) Validate() error {
	var iss Issues
	for _, d := range r.Discriminators() {
		e := r.entries[d]
		switch {
		case e.Prototype == nil || e.Prototype.TypeName() != d:
			iss = AppendIssues(iss, Issue{
				Path:    "/" + string(d),
				Code:    CodeRegistryInvalid,
				Message: i18n.T(CodeRegistryInvalid, nil),
				Hint:    "prototype discriminator mismatch",
			})
		case e.Decode == nil:
			iss = AppendIssues(iss, Issue{
				Path:    "/" + string(d),
				Code:    CodeRegistryInvalid,
				Message: i18n.T(CodeRegistryInvalid, nil),
				Hint:    "nil decode routine",
			})
		case e.Encode == nil:
			iss = AppendIssues(iss, Issue{
				Path:    "/" + string(d),
				Code:    CodeRegistryInvalid,
				Message: i18n.T(CodeRegistryInvalid, nil),
				Hint:    "nil encode routine",
			})
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

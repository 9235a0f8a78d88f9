package polyjson

import (
	"context"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/studykit/polyjson/i18n"
)

// SerializationContext is the single entry point client code uses to decode or
// encode against any registered interface. It owns one Registry per interface
// name and carries no global state: construct one per application or test,
// seeded with its full registry set.
type SerializationContext struct {
	registries map[string]*Registry
}

// NewSerializationContext builds a context over the given registries. A later
// registry for the same interface name replaces the earlier one.
func NewSerializationContext(regs ...*Registry) *SerializationContext {
	sc := &SerializationContext{registries: map[string]*Registry{}}
	for _, r := range regs {
		if r == nil {
			continue
		}
		sc.registries[r.Interface()] = r
	}
	return sc
}

// Registry returns the registry serving the named interface.
func (sc *SerializationContext) Registry(iface string) (*Registry, bool) {
	r, ok := sc.registries[iface]
	return r, ok
}

// Interfaces returns every registered interface name in sorted order.
func (sc *SerializationContext) Interfaces() []string {
	out := make([]string, 0, len(sc.registries))
	for name := range sc.registries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Validate runs every registry's self-check.
func (sc *SerializationContext) Validate() error {
	var iss Issues
	for _, name := range sc.Interfaces() {
		if err := sc.registries[name].Validate(); err != nil {
			more, _ := AsIssues(err)
			iss = AppendIssues(iss, more...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (sc *SerializationContext) registry(iface string) (*Registry, error) {
	r, ok := sc.registries[iface]
	if !ok {
		// configuration error, not a per-document condition
		return nil, Issues{Issue{
			Path:    "/",
			Code:    CodeUnregisteredInterface,
			Message: i18n.T(CodeUnregisteredInterface, map[string]string{"interface": iface}),
			Hint:    "interface " + iface + " has no registry",
			Params:  map[string]any{"interface": iface},
		}}
	}
	return r, nil
}

// Decode parses data as a JSON object and decodes it against the named
// interface. The discriminator is peeked from the raw bytes first, so a
// document missing it fails before the full parse.
func (sc *SerializationContext) Decode(ctx context.Context, iface string, data []byte) (Serializable, error) {
	r, err := sc.registry(iface)
	if err != nil {
		return nil, err
	}
	if isObjectText(data) && gjson.ValidBytes(data) {
		if res := gjson.GetBytes(data, r.Key()); !res.Exists() {
			return nil, Issues{Issue{
				Path:    "/" + r.Key(),
				Code:    CodeDiscriminatorMissing,
				Message: i18n.T(CodeDiscriminatorMissing, nil),
				Hint:    "interface " + iface,
			}}
		}
	}
	v, err := DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.AsObject()
	if !ok {
		return nil, Issues{Issue{
			Path:    "/",
			Code:    CodeInvalidType,
			Message: i18n.T(CodeInvalidType, nil),
			Hint:    "expected object, got " + v.Kind().String(),
		}}
	}
	return r.Decode(ctx, sc, obj)
}

// DecodeValue decodes an already-parsed object against the named interface.
// Nested decode routines use this form.
func (sc *SerializationContext) DecodeValue(ctx context.Context, iface string, obj *Object) (Serializable, error) {
	r, err := sc.registry(iface)
	if err != nil {
		return nil, err
	}
	return r.Decode(ctx, sc, obj)
}

// DecodeArray parses data as a JSON array and decodes every element against
// the named interface. Decoding is all-or-nothing: the first failing element
// fails the whole array, wrapped with its index.
func (sc *SerializationContext) DecodeArray(ctx context.Context, iface string, data []byte) ([]Serializable, error) {
	if _, err := sc.registry(iface); err != nil {
		return nil, err
	}
	v, err := DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	arr, ok := v.AsArray()
	if !ok {
		return nil, Issues{Issue{
			Path:    "/",
			Code:    CodeInvalidType,
			Message: i18n.T(CodeInvalidType, nil),
			Hint:    "expected array, got " + v.Kind().String(),
		}}
	}
	return sc.DecodeValueArray(ctx, iface, arr)
}

// DecodeValueArray decodes each parsed element independently, failing fast on
// the first element error.
func (sc *SerializationContext) DecodeValueArray(ctx context.Context, iface string, elems []Value) ([]Serializable, error) {
	r, err := sc.registry(iface)
	if err != nil {
		return nil, err
	}
	out := make([]Serializable, 0, len(elems))
	for i, e := range elems {
		obj, ok := e.AsObject()
		if !ok {
			return nil, arrayElementIssue(i, Issues{Issue{
				Path:    "/",
				Code:    CodeInvalidType,
				Message: i18n.T(CodeInvalidType, nil),
				Hint:    "expected object, got " + e.Kind().String(),
			}})
		}
		v, err := r.Decode(ctx, sc, obj)
		if err != nil {
			return nil, arrayElementIssue(i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// isObjectText reports whether the text's first significant byte opens an
// object, without parsing.
func isObjectText(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '{'
		}
	}
	return false
}

func arrayElementIssue(index int, cause error) Issues {
	return Issues{Issue{
		Path:    "/" + strconv.Itoa(index),
		Code:    CodeArrayElement,
		Message: i18n.T(CodeArrayElement, map[string]string{"index": strconv.Itoa(index)}),
		Cause:   cause,
		Params:  map[string]any{"index": index},
	}}
}

// EncodeValue encodes v against the named interface into an object Value with
// the discriminator member set and members arranged in ordinal order. Nested
// encode routines use this form.
func (sc *SerializationContext) EncodeValue(ctx context.Context, iface string, v Serializable) (Value, error) {
	r, err := sc.registry(iface)
	if err != nil {
		return Value{}, err
	}
	d := v.TypeName()
	e, ok := r.Resolve(d)
	if !ok {
		return Value{}, Issues{Issue{
			Path:    "/" + r.Key(),
			Code:    CodeDiscriminatorUnknown,
			Message: i18n.T(CodeDiscriminatorUnknown, map[string]string{"value": string(d)}),
			Hint:    "unknown variant: '" + string(d) + "'",
			Params:  map[string]any{"value": string(d)},
		}}
	}
	obj := NewObject()
	obj.Set(r.Key(), String(string(d)))
	if err := e.Encode(ctx, sc, v, obj); err != nil {
		return Value{}, err
	}
	enc := OrderedEncoder{DiscriminatorKey: r.Key()}
	enc.Reorder(v, obj)
	return ObjectValue(obj), nil
}

// Encode encodes v against the named interface and renders the JSON text in
// one pass over the pre-ordered members.
func (sc *SerializationContext) Encode(ctx context.Context, iface string, v Serializable) ([]byte, error) {
	val, err := sc.EncodeValue(ctx, iface, v)
	if err != nil {
		return nil, err
	}
	return val.AppendJSON(nil), nil
}

// EncodeArray encodes every element against the named interface into one JSON
// array, failing fast with the element index on error.
func (sc *SerializationContext) EncodeArray(ctx context.Context, iface string, vs []Serializable) ([]byte, error) {
	elems := make([]Value, 0, len(vs))
	for i, v := range vs {
		ev, err := sc.EncodeValue(ctx, iface, v)
		if err != nil {
			return nil, arrayElementIssue(i, err)
		}
		elems = append(elems, ev)
	}
	return Array(elems...).AppendJSON(nil), nil
}

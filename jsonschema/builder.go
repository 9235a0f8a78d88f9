package jsonschema

import (
	"context"
	"reflect"
	"sort"

	gojson "github.com/goccy/go-json"

	polyjson "github.com/studykit/polyjson"
)

// Named lets a type override the class name derived via reflection.
type Named interface {
	SchemaName() string
}

// Builder derives schema documents from a SerializationContext's registries.
// It walks the same prototypes the codec decodes with, so documents and wire
// behavior cannot drift apart.
type Builder struct {
	sc      *polyjson.SerializationContext
	local   Module
	modules map[string]Module // namespace -> module
	ifaces  map[string]string // interface name -> owning namespace
}

// Option configures a Builder.
type Option func(*Builder)

// WithModule registers an external module so types under its namespace render
// as fully qualified references.
func WithModule(m Module) Option {
	return func(b *Builder) { b.modules[m.Namespace] = m }
}

// WithInterfaceModule pins an interface to the module that owns its abstract
// document. Interfaces default to the local module.
func WithInterfaceModule(iface, namespace string) Option {
	return func(b *Builder) { b.ifaces[iface] = namespace }
}

// NewBuilder returns a Builder emitting documents for the local module.
func NewBuilder(sc *polyjson.SerializationContext, local Module, opts ...Option) *Builder {
	b := &Builder{
		sc:      sc,
		local:   local,
		modules: map[string]Module{local.Namespace: local},
		ifaces:  map[string]string{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build emits the interface document followed by one document per registered
// concrete type, ordered alphabetically by class name.
func (b *Builder) Build(iface string) ([]*Document, error) {
	r, err := b.registry(iface)
	if err != nil {
		return nil, err
	}
	docs := []*Document{}
	for _, d := range r.Discriminators() {
		doc, err := b.BuildType(iface, d)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ClassName < docs[j].ClassName })
	head, err := b.BuildInterface(iface)
	if err != nil {
		return nil, err
	}
	return append([]*Document{head}, docs...), nil
}

// BuildInterface emits the abstract document for iface: the discriminator
// property enumerates every registered value as a const node, and the root
// one-of lists every concrete type's own document.
func (b *Builder) BuildInterface(iface string) (*Document, error) {
	r, err := b.registry(iface)
	if err != nil {
		return nil, err
	}
	owner := b.interfaceModule(iface)
	root := &Schema{
		SchemaURI: SchemaDraft,
		ID:        owner.DocumentID(iface),
		Title:     iface,
		Type:      "object",
	}
	discriminator := &Schema{}
	var variants []*Schema
	for _, d := range b.sortedByClass(r) {
		e, _ := r.Resolve(d)
		cls := b.className(e.Prototype)
		discriminator.OneOf = append(discriminator.OneOf, &Schema{
			Const:       string(d),
			Description: cls,
		})
		variants = append(variants, b.documentRef(e.Prototype))
	}
	root.Properties = map[string]*Schema{r.Key(): discriminator}
	root.Required = []string{r.Key()}
	root.OneOf = variants
	return &Document{
		Namespace:   owner.Namespace,
		ClassName:   iface,
		Root:        root,
		Definitions: map[string]*Schema{},
	}, nil
}

// BuildType emits the document for one registered concrete type. The root
// composes the interface document via allOf, declares its own fields in
// ordinal order and pins the discriminator with a const node; nested type
// shapes hoist into definitions exactly once.
func (b *Builder) BuildType(iface string, d polyjson.Discriminator) (*Document, error) {
	r, err := b.registry(iface)
	if err != nil {
		return nil, err
	}
	e, ok := r.Resolve(d)
	if !ok {
		return nil, polyjson.Issues{polyjson.Issue{
			Path:   "/" + r.Key(),
			Code:   polyjson.CodeDiscriminatorUnknown,
			Params: map[string]any{"value": string(d)},
		}}
	}
	proto := e.Prototype
	cls := b.className(proto)
	st := &buildState{
		b:        b,
		defs:     map[string]*Schema{},
		building: map[string]bool{},
	}
	root := &Schema{
		SchemaURI: SchemaDraft,
		ID:        b.local.DocumentID(cls),
		Title:     cls,
		Type:      "object",
	}
	if desc, ok := proto.(polyjson.Described); ok {
		root.Description = desc.DocDescription()
	}
	owner := b.interfaceModule(iface)
	root.AllOf = []*Schema{RefNode(Ref{
		ClassName: iface,
		BaseURL:   owner.BaseURL,
		External:  owner.Namespace != b.local.Namespace,
	})}
	if meta, ok := proto.(polyjson.Documentable); ok {
		root.Properties, root.Required = st.members(meta.FieldDescriptors())
	} else {
		root.Properties = map[string]*Schema{}
	}
	root.Properties[r.Key()] = &Schema{Const: string(d)}
	root.Required = appendUnique(root.Required, r.Key())
	if err := b.attachExamples(root, iface, proto); err != nil {
		return nil, err
	}
	return &Document{
		Namespace:   b.local.Namespace,
		ClassName:   cls,
		Root:        root,
		Definitions: st.defs,
	}, nil
}

func (b *Builder) attachExamples(root *Schema, iface string, proto polyjson.Serializable) error {
	exampled, ok := proto.(polyjson.Exampled)
	if !ok {
		return nil
	}
	for _, ex := range exampled.Examples() {
		data, err := b.sc.Encode(context.Background(), iface, ex)
		if err != nil {
			return err
		}
		var decoded any
		if err := gojson.Unmarshal(data, &decoded); err != nil {
			return err
		}
		root.Examples = append(root.Examples, decoded)
	}
	return nil
}

// ---- helpers ----

func (b *Builder) registry(iface string) (*polyjson.Registry, error) {
	r, ok := b.sc.Registry(iface)
	if !ok {
		return nil, polyjson.Issues{polyjson.Issue{
			Path:   "/",
			Code:   polyjson.CodeUnregisteredInterface,
			Params: map[string]any{"interface": iface},
		}}
	}
	return r, nil
}

func (b *Builder) interfaceModule(iface string) Module {
	ns, ok := b.ifaces[iface]
	if !ok {
		return b.local
	}
	if m, ok := b.modules[ns]; ok {
		return m
	}
	return Module{Namespace: ns, BaseURL: ns}
}

func (b *Builder) moduleFor(namespace string) Module {
	if m, ok := b.modules[namespace]; ok {
		return m
	}
	return Module{Namespace: namespace, BaseURL: namespace}
}

func (b *Builder) className(v any) string {
	if n, ok := v.(Named); ok {
		return n.SchemaName()
	}
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

func (b *Builder) namespaceOf(v any) string {
	if n, ok := v.(polyjson.Namespaced); ok {
		return n.SchemaNamespace()
	}
	return b.local.Namespace
}

// documentRef points at the concrete type's own document, external when the
// type lives in another module.
func (b *Builder) documentRef(proto polyjson.Serializable) *Schema {
	ns := b.namespaceOf(proto)
	return RefNode(Ref{
		ClassName: b.className(proto),
		BaseURL:   b.moduleFor(ns).BaseURL,
		External:  ns != b.local.Namespace,
	})
}

// sortedByClass orders a registry's discriminators alphabetically by class
// name with the discriminator string as tie-break, keeping repeated builds
// identical.
func (b *Builder) sortedByClass(r *polyjson.Registry) []polyjson.Discriminator {
	ds := r.Discriminators()
	sort.SliceStable(ds, func(i, j int) bool {
		ei, _ := r.Resolve(ds[i])
		ej, _ := r.Resolve(ds[j])
		ci, cj := b.className(ei.Prototype), b.className(ej.Prototype)
		if ci != cj {
			return ci < cj
		}
		return ds[i] < ds[j]
	})
	return ds
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}

// buildState tracks one document build: definitions collected so far plus the
// set of class names currently on the expansion stack. A class already in
// either set renders as a reference node instead of re-expanding, which is
// what breaks self- and mutually-referential shapes.
type buildState struct {
	b        *Builder
	defs     map[string]*Schema
	building map[string]bool
}

// members renders a descriptor list into properties plus the required key
// list, both in ordinal order.
func (st *buildState) members(fds []polyjson.FieldDescriptor) (map[string]*Schema, []string) {
	sorted := append([]polyjson.FieldDescriptor(nil), fds...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Ordinal() < sorted[j].Ordinal() })
	props := make(map[string]*Schema, len(sorted))
	var required []string
	for _, fd := range sorted {
		node := st.shapeSchema(fd.Shape)
		if fd.Description != "" && node.Ref == "" {
			node.Description = fd.Description
		}
		props[fd.WireKey] = node
		if fd.Required {
			required = appendUnique(required, fd.WireKey)
		}
	}
	return props, required
}

func (st *buildState) shapeSchema(s polyjson.Shape) *Schema {
	switch s.Kind {
	case polyjson.ShapeAny:
		return &Schema{}
	case polyjson.ShapeString:
		return &Schema{Type: "string"}
	case polyjson.ShapeBool:
		return &Schema{Type: "boolean"}
	case polyjson.ShapeInteger:
		return &Schema{Type: "integer"}
	case polyjson.ShapeNumber:
		return &Schema{Type: "number"}
	case polyjson.ShapeFormat:
		return &Schema{Type: "string", Format: s.Format}
	case polyjson.ShapeArray:
		elem := polyjson.AnyShape()
		if s.Elem != nil {
			elem = *s.Elem
		}
		return &Schema{Type: "array", Items: st.shapeSchema(elem)}
	case polyjson.ShapeObject:
		return &Schema{Type: "object", AdditionalProperties: true}
	case polyjson.ShapeRef:
		return st.refOrExpand(s.Class, s.Namespace, s.Meta, "", "")
	case polyjson.ShapeInterface:
		return st.interfaceSchema(s.Interface)
	default:
		return &Schema{}
	}
}

// interfaceSchema renders a polymorphic slot as a one-of over every concrete
// type currently registered for the interface.
func (st *buildState) interfaceSchema(iface string) *Schema {
	r, ok := st.b.sc.Registry(iface)
	if !ok {
		// undocumentable without a registry; leave the slot open
		return &Schema{Type: "object"}
	}
	out := &Schema{}
	for _, d := range st.b.sortedByClass(r) {
		e, _ := r.Resolve(d)
		proto := e.Prototype
		meta, _ := proto.(polyjson.Documentable)
		node := st.refOrExpand(st.b.className(proto), st.b.namespaceOf(proto), meta, r.Key(), string(d))
		out.OneOf = append(out.OneOf, node)
	}
	return out
}

// refOrExpand returns a reference node for the class, expanding its shape into
// definitions first when it is local, documentable and not yet present.
// discriminatorKey/value pin the const member for registry-backed types.
func (st *buildState) refOrExpand(class, namespace string, meta polyjson.Documentable, discriminatorKey, discriminatorValue string) *Schema {
	if namespace != "" && namespace != st.b.local.Namespace {
		return RefNode(Ref{
			ClassName: class,
			BaseURL:   st.b.moduleFor(namespace).BaseURL,
			External:  true,
		})
	}
	ref := RefNode(Ref{ClassName: class, Definition: true})
	if st.building[class] {
		return ref
	}
	if _, done := st.defs[class]; done {
		return ref
	}
	if meta == nil {
		return ref
	}
	st.building[class] = true
	node := &Schema{Type: "object"}
	node.Properties, node.Required = st.members(meta.FieldDescriptors())
	if desc, ok := meta.(polyjson.Described); ok {
		node.Description = desc.DocDescription()
	}
	if discriminatorKey != "" {
		node.Properties[discriminatorKey] = &Schema{Const: discriminatorValue}
		node.Required = appendUnique(node.Required, discriminatorKey)
	}
	st.defs[class] = node
	delete(st.building, class)
	return ref
}

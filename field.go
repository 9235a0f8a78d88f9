package polyjson

import "sort"

// ShapeKind enumerates the declared wire shapes a field can take.
type ShapeKind int

const (
	ShapeAny ShapeKind = iota // any JSON value
	ShapeString
	ShapeBool
	ShapeInteger
	ShapeNumber
	ShapeFormat    // string with a named format, e.g. date-time
	ShapeArray     // homogeneous array of Elem
	ShapeObject    // free-form object
	ShapeRef       // another documentable concrete type
	ShapeInterface // polymorphic slot resolved through a registry
)

// Shape describes a field's declared wire type for schema building.
type Shape struct {
	Kind      ShapeKind
	Elem      *Shape       // ShapeArray element shape
	Class     string       // ShapeRef: referenced class name
	Namespace string       // ShapeRef: owning module namespace; empty means local
	Meta      Documentable // ShapeRef: metadata for inline expansion; nil for external types
	Interface string       // ShapeInterface: registry name
	Format    string       // ShapeFormat: format name
}

// AnyShape matches any JSON value.
func AnyShape() Shape { return Shape{Kind: ShapeAny} }

// StringShape matches a JSON string.
func StringShape() Shape { return Shape{Kind: ShapeString} }

// BoolShape matches a JSON boolean.
func BoolShape() Shape { return Shape{Kind: ShapeBool} }

// IntegerShape matches an integral JSON number.
func IntegerShape() Shape { return Shape{Kind: ShapeInteger} }

// NumberShape matches any JSON number.
func NumberShape() Shape { return Shape{Kind: ShapeNumber} }

// FormatShape matches a string with a named format.
func FormatShape(format string) Shape { return Shape{Kind: ShapeFormat, Format: format} }

// DateTimeShape matches an ISO-8601 timestamp string.
func DateTimeShape() Shape { return FormatShape("date-time") }

// ArrayOf matches a homogeneous array.
func ArrayOf(elem Shape) Shape { return Shape{Kind: ShapeArray, Elem: &elem} }

// ObjectShape matches a free-form object.
func ObjectShape() Shape { return Shape{Kind: ShapeObject} }

// RefShape references another documentable concrete type. Namespace is empty
// for types owned by the module being documented; meta may be nil only for
// external types, which are never inlined.
func RefShape(class, namespace string, meta Documentable) Shape {
	return Shape{Kind: ShapeRef, Class: class, Namespace: namespace, Meta: meta}
}

// InterfaceShape marks a polymorphic field decoded through the named registry.
func InterfaceShape(iface string) Shape { return Shape{Kind: ShapeInterface, Interface: iface} }

// ordinalShift packs (relative index, declared position) into one total
// ordinal. Positions per inheritance level are capped at 1<<ordinalShift.
const ordinalShift = 16

// FieldDescriptor carries the per-field metadata the ordered encoder and the
// schema builder consume. Relative is the inheritance-level base offset (the
// superclass level is 0, each subclass level adds 1); Position is the declared
// order within that level. The pair packs into a stable, total Ordinal with no
// ties for one concrete type.
type FieldDescriptor struct {
	Name        string // declaration name
	WireKey     string // JSON member key
	Relative    int
	Position    int
	Shape       Shape
	Required    bool
	Description string
}

// Ordinal returns the absolute encode position across the inheritance chain.
func (f FieldDescriptor) Ordinal() int {
	return f.Relative<<ordinalShift | f.Position
}

// Polymorphic reports whether the field decodes through a registry.
func (f FieldDescriptor) Polymorphic() bool {
	return f.Shape.Kind == ShapeInterface
}

// Documentable exposes field metadata. Concrete types implement it to opt into
// ordinal-ordered encoding and schema building; types without it still encode,
// in degraded sorted-key order.
type Documentable interface {
	FieldDescriptors() []FieldDescriptor
}

// Described optionally supplies a human description for schema documents.
type Described interface {
	DocDescription() string
}

// Exampled optionally supplies fully-populated instances embedded into schema
// documents as examples.
type Exampled interface {
	Examples() []Serializable
}

// Namespaced optionally pins a type to a schema module other than the one
// being documented; the builder renders such types as external references.
type Namespaced interface {
	SchemaNamespace() string
}

// sortDescriptors orders a descriptor list by ordinal, in place, and returns
// it. Ordinals are unique per type by construction, so the sort is total.
func sortDescriptors(fds []FieldDescriptor) []FieldDescriptor {
	sort.SliceStable(fds, func(i, j int) bool {
		return fds[i].Ordinal() < fds[j].Ordinal()
	})
	return fds
}

// Package jsonschema builds JSON-Schema documents from the same registry
// metadata the codec decodes with. It emits documents; it does not validate
// instances against them.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/iancoleman/strcase"
)

// SchemaDraft is the dialect every emitted document declares.
const SchemaDraft = "http://json-schema.org/draft-07/schema#"

// Schema is the node model for emitted documents. Keep this struct small and
// extend incrementally.
type Schema struct {
	// Core
	SchemaURI   string `json:"$schema,omitempty"`
	ID          string `json:"$id,omitempty"`
	Ref         string `json:"$ref,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Const       any    `json:"const,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Composition
	OneOf []*Schema `json:"oneOf,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty"`

	// Documents
	Definitions map[string]*Schema `json:"definitions,omitempty"`
	Examples    []any              `json:"examples,omitempty"`

	// RefInfo records where Ref points without requiring the target document
	// at build time. Not serialized.
	RefInfo *Ref `json:"-"`
}

// Ref identifies a schema target: a definition inside the emitting document,
// another document in the same module, or a document owned by another module.
// Anything outside the emitting document renders as BaseURL plus file name so
// the pointer resolves; only Definition targets use the local fragment form.
// External targets are additionally never inlined.
type Ref struct {
	ClassName  string
	BaseURL    string // module schema base; required unless Definition
	Definition bool   // target lives in the emitting document's definitions
	External   bool   // target document belongs to another module
}

// Pointer renders the $ref string for the target.
func (r Ref) Pointer() string {
	if r.Definition {
		return "#/definitions/" + r.ClassName
	}
	return strings.TrimSuffix(r.BaseURL, "/") + "/" + DocumentFileName(r.ClassName)
}

// RefNode returns a reference node for the target.
func RefNode(r Ref) *Schema {
	rr := r
	return &Schema{Ref: r.Pointer(), RefInfo: &rr}
}

// DocumentFileName maps a class name to its document file name.
func DocumentFileName(className string) string {
	return strcase.ToSnake(className) + ".json"
}

// Module names one schema-publishing unit: a namespace plus the base URL its
// documents are hosted under.
type Module struct {
	Namespace string
	BaseURL   string
}

// DocumentID renders the fully qualified document URL for a class within the
// module.
func (m Module) DocumentID(className string) string {
	return strings.TrimSuffix(m.BaseURL, "/") + "/" + DocumentFileName(className)
}

// Document is one emitted schema artifact: a root node plus the nested type
// shapes hoisted into definitions, identified by (namespace, class name).
type Document struct {
	Namespace   string
	ClassName   string
	Root        *Schema
	Definitions map[string]*Schema
}

// FileName returns the document's file name under its module base.
func (d *Document) FileName() string { return DocumentFileName(d.ClassName) }

// JSON renders the indented document text. Definitions travel inside the root
// node; repeated renders of the same registry contents are byte-identical.
// Marshal compact, then indent: goccy's indenting marshal path degenerates on
// deeply recursive self-referential struct types.
func (d *Document) JSON() ([]byte, error) {
	root := *d.Root
	if len(d.Definitions) > 0 {
		root.Definitions = d.Definitions
	}
	compact, err := gojson.Marshal(&root)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package results

import (
	"context"

	polyjson "github.com/studykit/polyjson"
)

// Standard answer-type discriminators. The set mirrors the JSON kinds an
// answer value can take, plus the date-time string form.
const (
	AnswerString   polyjson.Discriminator = "string"
	AnswerInteger  polyjson.Discriminator = "integer"
	AnswerNumber   polyjson.Discriminator = "number"
	AnswerBoolean  polyjson.Discriminator = "boolean"
	AnswerArray    polyjson.Discriminator = "array"
	AnswerObject   polyjson.Discriminator = "object"
	AnswerDateTime polyjson.Discriminator = "date-time"
)

// StandardAnswerTypes enumerates the built-in answer-type discriminators.
var StandardAnswerTypes = []polyjson.Discriminator{
	AnswerString, AnswerInteger, AnswerNumber, AnswerBoolean,
	AnswerArray, AnswerObject, AnswerDateTime,
}

// AnswerType describes how an AnswerResult value is typed on the wire.
type AnswerType interface {
	polyjson.Serializable
	// ValueKind returns the JSON tag an answer value of this type carries.
	ValueKind() polyjson.Kind
}

// StringAnswerType types free-text answers.
type StringAnswerType struct{}

func (StringAnswerType) TypeName() polyjson.Discriminator { return AnswerString }
func (StringAnswerType) ValueKind() polyjson.Kind         { return polyjson.KindString }

func (StringAnswerType) FieldDescriptors() []polyjson.FieldDescriptor { return nil }

// IntegerAnswerType types whole-number answers.
type IntegerAnswerType struct{}

func (IntegerAnswerType) TypeName() polyjson.Discriminator { return AnswerInteger }
func (IntegerAnswerType) ValueKind() polyjson.Kind         { return polyjson.KindInteger }

func (IntegerAnswerType) FieldDescriptors() []polyjson.FieldDescriptor { return nil }

// NumberAnswerType types decimal answers.
type NumberAnswerType struct{}

func (NumberAnswerType) TypeName() polyjson.Discriminator { return AnswerNumber }
func (NumberAnswerType) ValueKind() polyjson.Kind         { return polyjson.KindNumber }

func (NumberAnswerType) FieldDescriptors() []polyjson.FieldDescriptor { return nil }

// BooleanAnswerType types yes/no answers.
type BooleanAnswerType struct{}

func (BooleanAnswerType) TypeName() polyjson.Discriminator { return AnswerBoolean }
func (BooleanAnswerType) ValueKind() polyjson.Kind         { return polyjson.KindBool }

func (BooleanAnswerType) FieldDescriptors() []polyjson.FieldDescriptor { return nil }

// ObjectAnswerType types structured answers kept as-is.
type ObjectAnswerType struct{}

func (ObjectAnswerType) TypeName() polyjson.Discriminator { return AnswerObject }
func (ObjectAnswerType) ValueKind() polyjson.Kind         { return polyjson.KindObject }

func (ObjectAnswerType) FieldDescriptors() []polyjson.FieldDescriptor { return nil }

// DateTimeAnswerType types answers carried as ISO-8601 strings.
type DateTimeAnswerType struct{}

func (DateTimeAnswerType) TypeName() polyjson.Discriminator { return AnswerDateTime }
func (DateTimeAnswerType) ValueKind() polyjson.Kind         { return polyjson.KindString }

func (DateTimeAnswerType) FieldDescriptors() []polyjson.FieldDescriptor {
	return nil
}

// ArrayAnswerType types multi-select answers; BaseType names the element
// discriminator.
type ArrayAnswerType struct {
	BaseType polyjson.Discriminator
}

func (ArrayAnswerType) TypeName() polyjson.Discriminator { return AnswerArray }
func (ArrayAnswerType) ValueKind() polyjson.Kind         { return polyjson.KindArray }

func (ArrayAnswerType) FieldDescriptors() []polyjson.FieldDescriptor {
	return []polyjson.FieldDescriptor{
		{Name: "BaseType", WireKey: "baseType", Relative: 0, Position: 0, Shape: polyjson.StringShape()},
	}
}

// decodeFlatAnswerType serves every answer type without fields of its own.
func decodeFlatAnswerType(at AnswerType) polyjson.DecodeFunc {
	return func(ctx context.Context, sc *polyjson.SerializationContext, obj *polyjson.Object) (polyjson.Serializable, error) {
		return at, nil
	}
}

func encodeFlatAnswerType(ctx context.Context, sc *polyjson.SerializationContext, v polyjson.Serializable, obj *polyjson.Object) error {
	return nil
}

func decodeArrayAnswerType(ctx context.Context, sc *polyjson.SerializationContext, obj *polyjson.Object) (polyjson.Serializable, error) {
	at := ArrayAnswerType{}
	if base, ok := obj.GetString("baseType"); ok {
		at.BaseType = polyjson.Discriminator(base)
	}
	return at, nil
}

func encodeArrayAnswerType(ctx context.Context, sc *polyjson.SerializationContext, v polyjson.Serializable, obj *polyjson.Object) error {
	at, ok := v.(ArrayAnswerType)
	if !ok {
		return encodeTypeMismatch(v, AnswerArray)
	}
	if at.BaseType != "" {
		obj.Set("baseType", polyjson.String(string(at.BaseType)))
	}
	return nil
}

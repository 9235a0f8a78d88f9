package results

import (
	polyjson "github.com/studykit/polyjson"
)

// StandardResultRegistry returns a fresh registry seeded with every standard
// result type. Each call builds an independent registry so tests and
// applications never share registration state.
func StandardResultRegistry() *polyjson.Registry {
	r := polyjson.NewRegistry(ResultInterface)
	r.AddAll(
		polyjson.Entry{Prototype: AnswerResult{}, Decode: decodeAnswerResult, Encode: encodeAnswerResult},
		polyjson.Entry{Prototype: AssessmentResult{}, Decode: decodeAssessmentResult, Encode: encodeAssessmentResult},
		polyjson.Entry{Prototype: BaseResult{}, Decode: decodeBaseResult, Encode: encodeBaseResult},
		polyjson.Entry{Prototype: CollectionResult{}, Decode: decodeCollectionResult, Encode: encodeCollectionResult},
		polyjson.Entry{Prototype: FileResult{}, Decode: decodeFileResult, Encode: encodeFileResult},
	)
	return r
}

// StandardAnswerTypeRegistry returns a fresh registry seeded with every
// standard answer type.
func StandardAnswerTypeRegistry() *polyjson.Registry {
	r := polyjson.NewRegistry(AnswerTypeInterface)
	r.AddAll(
		polyjson.Entry{Prototype: StringAnswerType{}, Decode: decodeFlatAnswerType(StringAnswerType{}), Encode: encodeFlatAnswerType},
		polyjson.Entry{Prototype: IntegerAnswerType{}, Decode: decodeFlatAnswerType(IntegerAnswerType{}), Encode: encodeFlatAnswerType},
		polyjson.Entry{Prototype: NumberAnswerType{}, Decode: decodeFlatAnswerType(NumberAnswerType{}), Encode: encodeFlatAnswerType},
		polyjson.Entry{Prototype: BooleanAnswerType{}, Decode: decodeFlatAnswerType(BooleanAnswerType{}), Encode: encodeFlatAnswerType},
		polyjson.Entry{Prototype: ObjectAnswerType{}, Decode: decodeFlatAnswerType(ObjectAnswerType{}), Encode: encodeFlatAnswerType},
		polyjson.Entry{Prototype: DateTimeAnswerType{}, Decode: decodeFlatAnswerType(DateTimeAnswerType{}), Encode: encodeFlatAnswerType},
		polyjson.Entry{Prototype: ArrayAnswerType{}, Decode: decodeArrayAnswerType, Encode: encodeArrayAnswerType},
	)
	return r
}

// StandardRegistries returns fresh copies of both standard registries.
func StandardRegistries() []*polyjson.Registry {
	return []*polyjson.Registry{
		StandardResultRegistry(),
		StandardAnswerTypeRegistry(),
	}
}

// NewContext builds a SerializationContext over the standard registries.
func NewContext() *polyjson.SerializationContext {
	return polyjson.NewSerializationContext(StandardRegistries()...)
}

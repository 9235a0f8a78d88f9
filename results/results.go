// Package results ships the standard research-study result records and the
// registries that make them decodable. Plugins register additional concrete
// types into the same registries; nothing here is closed.
package results

import (
	"context"
	"time"

	polyjson "github.com/studykit/polyjson"
	"github.com/studykit/polyjson/codec"
	"github.com/studykit/polyjson/i18n"
)

// Interface names served by the standard registries.
const (
	ResultInterface     = "Result"
	AnswerTypeInterface = "AnswerType"
)

// Standard result discriminators.
const (
	TypeAnswer     polyjson.Discriminator = "answer"
	TypeAssessment polyjson.Discriminator = "assessment"
	TypeBase       polyjson.Discriminator = "base"
	TypeCollection polyjson.Discriminator = "collection"
	TypeFile       polyjson.Discriminator = "file"
)

// StandardResultTypes enumerates the built-in result discriminators. External
// modules extend the registry, not this list.
var StandardResultTypes = []polyjson.Discriminator{
	TypeAnswer, TypeAssessment, TypeBase, TypeCollection, TypeFile,
}

// Result is the abstract record contract the "Result" registry serves.
type Result interface {
	polyjson.Serializable
	Base() ResultData
}

// ResultData is the common trunk every result record carries: a stable
// identifier plus the run window. It is inheritance level 0 for field
// ordering, so these members always encode ahead of subclass fields.
type ResultData struct {
	Identifier string
	StartDate  time.Time
	EndDate    time.Time
}

// Base implements Result.
func (r ResultData) Base() ResultData { return r }

func baseFieldDescriptors() []polyjson.FieldDescriptor {
	return []polyjson.FieldDescriptor{
		{Name: "Identifier", WireKey: "identifier", Relative: 0, Position: 0, Shape: polyjson.StringShape(), Required: true},
		{Name: "StartDate", WireKey: "startDate", Relative: 0, Position: 1, Shape: polyjson.DateTimeShape()},
		{Name: "EndDate", WireKey: "endDate", Relative: 0, Position: 2, Shape: polyjson.DateTimeShape()},
	}
}

func decodeResultData(obj *polyjson.Object) (ResultData, error) {
	var r ResultData
	id, ok := obj.GetString("identifier")
	if !ok {
		return r, polyjson.Issues{polyjson.Issue{
			Path:    "/identifier",
			Code:    polyjson.CodeRequired,
			Message: i18n.T(polyjson.CodeRequired, nil),
		}}
	}
	r.Identifier = id
	var err error
	if r.StartDate, err = decodeDate(obj, "startDate"); err != nil {
		return r, err
	}
	if r.EndDate, err = decodeDate(obj, "endDate"); err != nil {
		return r, err
	}
	return r, nil
}

func decodeDate(obj *polyjson.Object, key string) (time.Time, error) {
	v, ok := obj.Get(key)
	if !ok {
		return time.Time{}, nil
	}
	s, ok := v.AsString()
	if !ok {
		return time.Time{}, polyjson.Issues{polyjson.Issue{
			Path:    "/" + key,
			Code:    polyjson.CodeInvalidType,
			Message: i18n.T(polyjson.CodeInvalidType, nil),
			Hint:    "expected a string, got " + v.Kind().String(),
		}}
	}
	t, err := codec.ParseISO8601(s)
	if err != nil {
		return time.Time{}, polyjson.Issues{polyjson.Issue{
			Path:    "/" + key,
			Code:    polyjson.CodeInvalidFormat,
			Message: i18n.T(polyjson.CodeInvalidFormat, nil),
			Hint:    "expected ISO-8601 timestamp",
			Cause:   err,
		}}
	}
	return t, nil
}

func (r ResultData) encodeInto(obj *polyjson.Object) {
	obj.Set("identifier", polyjson.String(r.Identifier))
	if !r.StartDate.IsZero() {
		obj.Set("startDate", polyjson.String(codec.FormatISO8601(r.StartDate)))
	}
	if !r.EndDate.IsZero() {
		obj.Set("endDate", polyjson.String(codec.FormatISO8601(r.EndDate)))
	}
}

var exampleWindow = ResultData{
	Identifier: "example",
	StartDate:  time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC),
	EndDate:    time.Date(2025, 2, 1, 8, 34, 15, 0, time.UTC),
}

// ---- base ----

// BaseResult is the minimal record: identifier and run window only.
type BaseResult struct {
	ResultData
}

func (BaseResult) TypeName() polyjson.Discriminator { return TypeBase }

func (BaseResult) FieldDescriptors() []polyjson.FieldDescriptor {
	return baseFieldDescriptors()
}

func (BaseResult) Examples() []polyjson.Serializable {
	return []polyjson.Serializable{BaseResult{ResultData: exampleWindow}}
}

func decodeBaseResult(ctx context.Context, sc *polyjson.SerializationContext, obj *polyjson.Object) (polyjson.Serializable, error) {
	base, err := decodeResultData(obj)
	if err != nil {
		return nil, err
	}
	return BaseResult{ResultData: base}, nil
}

func encodeBaseResult(ctx context.Context, sc *polyjson.SerializationContext, v polyjson.Serializable, obj *polyjson.Object) error {
	r, ok := v.(BaseResult)
	if !ok {
		return encodeTypeMismatch(v, TypeBase)
	}
	r.ResultData.encodeInto(obj)
	return nil
}

// ---- answer ----

// AnswerResult records a single question response: the typed answer kind plus
// the raw value.
type AnswerResult struct {
	ResultData
	AnswerType AnswerType
	Value      polyjson.Value
}

func (AnswerResult) TypeName() polyjson.Discriminator { return TypeAnswer }

func (AnswerResult) DocDescription() string {
	return "A result record carrying one question response and its answer type."
}

func (AnswerResult) FieldDescriptors() []polyjson.FieldDescriptor {
	return append(baseFieldDescriptors(),
		polyjson.FieldDescriptor{Name: "AnswerType", WireKey: "answerType", Relative: 1, Position: 0, Shape: polyjson.InterfaceShape(AnswerTypeInterface)},
		polyjson.FieldDescriptor{Name: "Value", WireKey: "value", Relative: 1, Position: 1, Shape: polyjson.AnyShape()},
	)
}

func (AnswerResult) Examples() []polyjson.Serializable {
	return []polyjson.Serializable{AnswerResult{
		ResultData: exampleWindow,
		AnswerType: StringAnswerType{},
		Value:      polyjson.String("blue"),
	}}
}

func decodeAnswerResult(ctx context.Context, sc *polyjson.SerializationContext, obj *polyjson.Object) (polyjson.Serializable, error) {
	base, err := decodeResultData(obj)
	if err != nil {
		return nil, err
	}
	r := AnswerResult{ResultData: base}
	if v, ok := obj.Get("answerType"); ok {
		atObj, ok := v.AsObject()
		if !ok {
			return nil, polyjson.Issues{polyjson.Issue{
				Path:    "/answerType",
				Code:    polyjson.CodeInvalidType,
				Message: i18n.T(polyjson.CodeInvalidType, nil),
				Hint:    "expected an object, got " + v.Kind().String(),
			}}
		}
		decoded, err := sc.DecodeValue(ctx, AnswerTypeInterface, atObj)
		if err != nil {
			return nil, err
		}
		r.AnswerType = decoded.(AnswerType)
	}
	if v, ok := obj.Get("value"); ok {
		r.Value = v
	}
	return r, nil
}

func encodeAnswerResult(ctx context.Context, sc *polyjson.SerializationContext, v polyjson.Serializable, obj *polyjson.Object) error {
	r, ok := v.(AnswerResult)
	if !ok {
		return encodeTypeMismatch(v, TypeAnswer)
	}
	r.ResultData.encodeInto(obj)
	if r.AnswerType != nil {
		at, err := sc.EncodeValue(ctx, AnswerTypeInterface, r.AnswerType)
		if err != nil {
			return err
		}
		obj.Set("answerType", at)
	}
	if !r.Value.IsNull() {
		obj.Set("value", r.Value)
	}
	return nil
}

// ---- file ----

// FileResult points at an uploaded artifact produced during the run.
type FileResult struct {
	ResultData
	FileName     string
	ContentType  string
	RelativePath string
}

func (FileResult) TypeName() polyjson.Discriminator { return TypeFile }

func (FileResult) FieldDescriptors() []polyjson.FieldDescriptor {
	return append(baseFieldDescriptors(),
		polyjson.FieldDescriptor{Name: "FileName", WireKey: "filename", Relative: 1, Position: 0, Shape: polyjson.StringShape(), Required: true},
		polyjson.FieldDescriptor{Name: "ContentType", WireKey: "contentType", Relative: 1, Position: 1, Shape: polyjson.StringShape()},
		polyjson.FieldDescriptor{Name: "RelativePath", WireKey: "relativePath", Relative: 1, Position: 2, Shape: polyjson.StringShape()},
	)
}

func (FileResult) Examples() []polyjson.Serializable {
	return []polyjson.Serializable{FileResult{
		ResultData:   exampleWindow,
		FileName:     "motion.json",
		ContentType:  "application/json",
		RelativePath: "data/motion.json",
	}}
}

func decodeFileResult(ctx context.Context, sc *polyjson.SerializationContext, obj *polyjson.Object) (polyjson.Serializable, error) {
	base, err := decodeResultData(obj)
	if err != nil {
		return nil, err
	}
	r := FileResult{ResultData: base}
	name, ok := obj.GetString("filename")
	if !ok {
		return nil, polyjson.Issues{polyjson.Issue{
			Path:    "/filename",
			Code:    polyjson.CodeRequired,
			Message: i18n.T(polyjson.CodeRequired, nil),
		}}
	}
	r.FileName = name
	r.ContentType, _ = obj.GetString("contentType")
	r.RelativePath, _ = obj.GetString("relativePath")
	return r, nil
}

func encodeFileResult(ctx context.Context, sc *polyjson.SerializationContext, v polyjson.Serializable, obj *polyjson.Object) error {
	r, ok := v.(FileResult)
	if !ok {
		return encodeTypeMismatch(v, TypeFile)
	}
	r.ResultData.encodeInto(obj)
	obj.Set("filename", polyjson.String(r.FileName))
	if r.ContentType != "" {
		obj.Set("contentType", polyjson.String(r.ContentType))
	}
	if r.RelativePath != "" {
		obj.Set("relativePath", polyjson.String(r.RelativePath))
	}
	return nil
}

// ---- collection ----

// CollectionResult groups child records of any registered result type.
type CollectionResult struct {
	ResultData
	Children []Result
}

func (CollectionResult) TypeName() polyjson.Discriminator { return TypeCollection }

func (CollectionResult) FieldDescriptors() []polyjson.FieldDescriptor {
	return append(baseFieldDescriptors(),
		polyjson.FieldDescriptor{Name: "Children", WireKey: "children", Relative: 1, Position: 0, Shape: polyjson.ArrayOf(polyjson.InterfaceShape(ResultInterface))},
	)
}

func (CollectionResult) Examples() []polyjson.Serializable {
	return []polyjson.Serializable{CollectionResult{
		ResultData: exampleWindow,
		Children: []Result{
			AnswerResult{
				ResultData: ResultData{Identifier: "color", StartDate: exampleWindow.StartDate, EndDate: exampleWindow.EndDate},
				AnswerType: StringAnswerType{},
				Value:      polyjson.String("blue"),
			},
		},
	}}
}

func decodeCollectionResult(ctx context.Context, sc *polyjson.SerializationContext, obj *polyjson.Object) (polyjson.Serializable, error) {
	base, err := decodeResultData(obj)
	if err != nil {
		return nil, err
	}
	r := CollectionResult{ResultData: base}
	if elems, ok := obj.GetArray("children"); ok {
		decoded, err := sc.DecodeValueArray(ctx, ResultInterface, elems)
		if err != nil {
			return nil, err
		}
		r.Children = make([]Result, len(decoded))
		for i, c := range decoded {
			r.Children[i] = c.(Result)
		}
	}
	return r, nil
}

func encodeCollectionResult(ctx context.Context, sc *polyjson.SerializationContext, v polyjson.Serializable, obj *polyjson.Object) error {
	r, ok := v.(CollectionResult)
	if !ok {
		return encodeTypeMismatch(v, TypeCollection)
	}
	r.ResultData.encodeInto(obj)
	if r.Children != nil {
		elems := make([]polyjson.Value, len(r.Children))
		for i, c := range r.Children {
			ev, err := sc.EncodeValue(ctx, ResultInterface, c)
			if err != nil {
				return err
			}
			elems[i] = ev
		}
		obj.Set("children", polyjson.Array(elems...))
	}
	return nil
}

// ---- assessment ----

// AssessmentResult is the top-level record one assessment run produces. Its
// own fields sit on inheritance level 1 and therefore encode after the
// ResultData trunk.
type AssessmentResult struct {
	ResultData
	AssessmentIdentifier string
	VersionString        string
}

func (AssessmentResult) TypeName() polyjson.Discriminator { return TypeAssessment }

func (AssessmentResult) DocDescription() string {
	return "The top-level record for one assessment run."
}

func (AssessmentResult) FieldDescriptors() []polyjson.FieldDescriptor {
	return append(baseFieldDescriptors(),
		polyjson.FieldDescriptor{Name: "AssessmentIdentifier", WireKey: "assessmentIdentifier", Relative: 1, Position: 0, Shape: polyjson.StringShape()},
		polyjson.FieldDescriptor{Name: "VersionString", WireKey: "versionString", Relative: 1, Position: 1, Shape: polyjson.StringShape()},
	)
}

func (AssessmentResult) Examples() []polyjson.Serializable {
	return []polyjson.Serializable{AssessmentResult{
		ResultData:           exampleWindow,
		AssessmentIdentifier: "tapping",
		VersionString:        "1.0.2",
	}}
}

func decodeAssessmentResult(ctx context.Context, sc *polyjson.SerializationContext, obj *polyjson.Object) (polyjson.Serializable, error) {
	base, err := decodeResultData(obj)
	if err != nil {
		return nil, err
	}
	r := AssessmentResult{ResultData: base}
	r.AssessmentIdentifier, _ = obj.GetString("assessmentIdentifier")
	r.VersionString, _ = obj.GetString("versionString")
	return r, nil
}

func encodeAssessmentResult(ctx context.Context, sc *polyjson.SerializationContext, v polyjson.Serializable, obj *polyjson.Object) error {
	r, ok := v.(AssessmentResult)
	if !ok {
		return encodeTypeMismatch(v, TypeAssessment)
	}
	r.ResultData.encodeInto(obj)
	if r.AssessmentIdentifier != "" {
		obj.Set("assessmentIdentifier", polyjson.String(r.AssessmentIdentifier))
	}
	if r.VersionString != "" {
		obj.Set("versionString", polyjson.String(r.VersionString))
	}
	return nil
}

func encodeTypeMismatch(v polyjson.Serializable, want polyjson.Discriminator) error {
	return polyjson.Issues{polyjson.Issue{
		Path:    "/",
		Code:    polyjson.CodeInvalidType,
		Message: i18n.T(polyjson.CodeInvalidType, nil),
		Hint:    "value is not the concrete type registered for '" + string(want) + "'",
	}}
}

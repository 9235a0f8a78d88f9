package polyjson_test

import (
	"context"
	"testing"

	polyjson "github.com/studykit/polyjson"
)

// pingEvent is a minimal concrete type for the "Event" interface.
type pingEvent struct {
	Seq int64
}

func (pingEvent) TypeName() polyjson.Discriminator { return "ping" }

func (pingEvent) FieldDescriptors() []polyjson.FieldDescriptor {
	return []polyjson.FieldDescriptor{
		{Name: "Seq", WireKey: "seq", Relative: 0, Position: 0, Shape: polyjson.IntegerShape(), Required: true},
	}
}

func decodePing(ctx context.Context, sc *polyjson.SerializationContext, obj *polyjson.Object) (polyjson.Serializable, error) {
	seq, ok := obj.GetInt("seq")
	if !ok {
		return nil, polyjson.Issues{polyjson.Issue{Path: "/seq", Code: polyjson.CodeRequired}}
	}
	return pingEvent{Seq: seq}, nil
}

func encodePing(ctx context.Context, sc *polyjson.SerializationContext, v polyjson.Serializable, obj *polyjson.Object) error {
	obj.Set("seq", polyjson.Integer(v.(pingEvent).Seq))
	return nil
}

// alertEvent carries no field metadata, so it encodes in degraded key order.
type alertEvent struct {
	Level string
}

func (alertEvent) TypeName() polyjson.Discriminator { return "alert" }

func decodeAlert(ctx context.Context, sc *polyjson.SerializationContext, obj *polyjson.Object) (polyjson.Serializable, error) {
	level, _ := obj.GetString("level")
	return alertEvent{Level: level}, nil
}

func encodeAlert(ctx context.Context, sc *polyjson.SerializationContext, v polyjson.Serializable, obj *polyjson.Object) error {
	obj.Set("level", polyjson.String(v.(alertEvent).Level))
	return nil
}

func eventRegistry() *polyjson.Registry {
	r := polyjson.NewRegistry("Event")
	r.AddAll(
		polyjson.Entry{Prototype: pingEvent{}, Decode: decodePing, Encode: encodePing},
		polyjson.Entry{Prototype: alertEvent{}, Decode: decodeAlert, Encode: encodeAlert},
	)
	return r
}

func newEventContext() *polyjson.SerializationContext {
	return polyjson.NewSerializationContext(eventRegistry())
}

func TestContext_DecodeBytesRoundTrip(t *testing.T) {
	ctx := context.Background()
	sc := newEventContext()

	in := pingEvent{Seq: 41}
	data, err := sc.Encode(ctx, "Event", in)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	out, err := sc.Decode(ctx, "Event", data)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if out != in {
		t.Fatalf("round-trip mismatch: %#v != %#v", out, in)
	}
}

func TestContext_UnregisteredInterface(t *testing.T) {
	sc := newEventContext()
	_, err := sc.Decode(context.Background(), "Nope", []byte(`{"type":"ping","seq":1}`))
	if !polyjson.HasCode(err, polyjson.CodeUnregisteredInterface) {
		t.Fatalf("expected %s, got %v", polyjson.CodeUnregisteredInterface, err)
	}
}

func TestContext_DecodeMissingDiscriminatorFromBytes(t *testing.T) {
	sc := newEventContext()
	_, err := sc.Decode(context.Background(), "Event", []byte(`{"seq":1}`))
	if !polyjson.HasCode(err, polyjson.CodeDiscriminatorMissing) {
		t.Fatalf("expected %s, got %v", polyjson.CodeDiscriminatorMissing, err)
	}
}

func TestContext_DecodeRejectsNonObject(t *testing.T) {
	sc := newEventContext()
	_, err := sc.Decode(context.Background(), "Event", []byte(`[1,2,3]`))
	if !polyjson.HasCode(err, polyjson.CodeInvalidType) {
		t.Fatalf("expected %s, got %v", polyjson.CodeInvalidType, err)
	}
}

func TestContext_DecodeArrayAllOrNothing(t *testing.T) {
	sc := newEventContext()
	data := []byte(`[
		{"type":"ping","seq":1},
		{"type":"not_registered"},
		{"type":"ping","seq":3}
	]`)
	out, err := sc.DecodeArray(context.Background(), "Event", data)
	if out != nil {
		t.Fatalf("failed array decode must not return partial results")
	}
	if !polyjson.HasCode(err, polyjson.CodeArrayElement) {
		t.Fatalf("expected %s, got %v", polyjson.CodeArrayElement, err)
	}
	iss, _ := polyjson.AsIssues(err)
	if iss[0].Params["index"] != 1 {
		t.Fatalf("wrapped issue must carry the failing index, got %#v", iss[0].Params)
	}
	if !polyjson.HasCode(iss[0].Cause, polyjson.CodeDiscriminatorUnknown) {
		t.Fatalf("wrapped cause should be the element failure, got %v", iss[0].Cause)
	}
}

func TestContext_DecodeArrayHappyPath(t *testing.T) {
	sc := newEventContext()
	data := []byte(`[{"type":"ping","seq":1},{"type":"alert","level":"red"}]`)
	out, err := sc.DecodeArray(context.Background(), "Event", data)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(out))
	}
	if out[1].(alertEvent).Level != "red" {
		t.Fatalf("unexpected element: %#v", out[1])
	}
}

func TestContext_EncodeUnregisteredType(t *testing.T) {
	sc := polyjson.NewSerializationContext(polyjson.NewRegistry("Event"))
	_, err := sc.Encode(context.Background(), "Event", pingEvent{Seq: 1})
	if !polyjson.HasCode(err, polyjson.CodeDiscriminatorUnknown) {
		t.Fatalf("expected %s, got %v", polyjson.CodeDiscriminatorUnknown, err)
	}
}

func TestContext_EncodeArray(t *testing.T) {
	sc := newEventContext()
	data, err := sc.EncodeArray(context.Background(), "Event", []polyjson.Serializable{
		pingEvent{Seq: 1},
		alertEvent{Level: "red"},
	})
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	want := `[{"seq":1,"type":"ping"},{"level":"red","type":"alert"}]`
	if string(data) != want {
		t.Fatalf("unexpected encoding:\n got %s\nwant %s", data, want)
	}
}

func TestContext_ValidateCoversEveryRegistry(t *testing.T) {
	sc := newEventContext()
	if err := sc.Validate(); err != nil {
		t.Fatalf("validate err: %v", err)
	}
}

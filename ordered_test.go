package polyjson_test

import (
	"context"
	"testing"

	polyjson "github.com/studykit/polyjson"
)

// sessionRecord declares fields across two inheritance levels: the trunk at
// relative index 0, its own fields at relative index 1.
type sessionRecord struct {
	Identifier string
	RunID      string
	Attempt    int64
}

func (sessionRecord) TypeName() polyjson.Discriminator { return "session" }

func (sessionRecord) FieldDescriptors() []polyjson.FieldDescriptor {
	return []polyjson.FieldDescriptor{
		{Name: "Identifier", WireKey: "identifier", Relative: 0, Position: 0, Shape: polyjson.StringShape(), Required: true},
		{Name: "RunID", WireKey: "runId", Relative: 1, Position: 0, Shape: polyjson.StringShape()},
		{Name: "Attempt", WireKey: "attempt", Relative: 1, Position: 1, Shape: polyjson.IntegerShape()},
	}
}

func decodeSession(ctx context.Context, sc *polyjson.SerializationContext, obj *polyjson.Object) (polyjson.Serializable, error) {
	var r sessionRecord
	r.Identifier, _ = obj.GetString("identifier")
	r.RunID, _ = obj.GetString("runId")
	r.Attempt, _ = obj.GetInt("attempt")
	return r, nil
}

func encodeSession(ctx context.Context, sc *polyjson.SerializationContext, v polyjson.Serializable, obj *polyjson.Object) error {
	r := v.(sessionRecord)
	// deliberately set members in reverse declaration order; the ordered
	// encoder must not care
	obj.Set("attempt", polyjson.Integer(r.Attempt))
	obj.Set("runId", polyjson.String(r.RunID))
	obj.Set("identifier", polyjson.String(r.Identifier))
	return nil
}

func sessionContext() *polyjson.SerializationContext {
	r := polyjson.NewRegistry("Session")
	r.Add(polyjson.Entry{Prototype: sessionRecord{}, Decode: decodeSession, Encode: encodeSession})
	return polyjson.NewSerializationContext(r)
}

func TestOrderedEncode_InheritedFieldsFirstDiscriminatorLast(t *testing.T) {
	sc := sessionContext()
	data, err := sc.Encode(context.Background(), "Session", sessionRecord{
		Identifier: "foo",
		RunID:      "run-1",
		Attempt:    2,
	})
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	want := `{"identifier":"foo","runId":"run-1","attempt":2,"type":"session"}`
	if string(data) != want {
		t.Fatalf("member order mismatch:\n got %s\nwant %s", data, want)
	}
}

func TestOrderedEncode_SetOrderIrrelevant(t *testing.T) {
	// two encodes of the same value are byte-identical regardless of the
	// order members were staged in
	sc := sessionContext()
	v := sessionRecord{Identifier: "a", RunID: "b", Attempt: 1}
	first, err := sc.Encode(context.Background(), "Session", v)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	second, err := sc.Encode(context.Background(), "Session", v)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("encoding is not deterministic: %s vs %s", first, second)
	}
}

func TestOrderedEncode_FallbackWithoutMetadata(t *testing.T) {
	// alertEvent carries no descriptors: members sort alphabetically with the
	// discriminator still last, and encoding succeeds
	sc := newEventContext()
	data, err := sc.Encode(context.Background(), "Event", alertEvent{Level: "amber"})
	if err != nil {
		t.Fatalf("fallback ordering must not fail: %v", err)
	}
	want := `{"level":"amber","type":"alert"}`
	if string(data) != want {
		t.Fatalf("unexpected fallback encoding:\n got %s\nwant %s", data, want)
	}
}

// shadowRecord redeclares the same wire key on two levels; the more-derived
// level's ordinal must win.
type shadowRecord struct{}

func (shadowRecord) TypeName() polyjson.Discriminator { return "shadow" }

func (shadowRecord) FieldDescriptors() []polyjson.FieldDescriptor {
	return []polyjson.FieldDescriptor{
		{Name: "Label", WireKey: "label", Relative: 0, Position: 0, Shape: polyjson.StringShape()},
		{Name: "Other", WireKey: "other", Relative: 0, Position: 1, Shape: polyjson.StringShape()},
		{Name: "Label", WireKey: "label", Relative: 1, Position: 1, Shape: polyjson.StringShape()},
	}
}

func TestOrderedEncode_DerivedLevelWinsOnDuplicateKey(t *testing.T) {
	var enc polyjson.OrderedEncoder
	enc.DiscriminatorKey = "type"
	obj := polyjson.NewObject().
		Set("label", polyjson.String("x")).
		Set("other", polyjson.String("y"))
	enc.Reorder(shadowRecord{}, obj)
	keys := obj.Keys()
	// label takes the derived ordinal (1,1), which sorts after other (0,1)
	if keys[0] != "other" || keys[1] != "label" {
		t.Fatalf("derived-level ordinal must win, got %v", keys)
	}
}

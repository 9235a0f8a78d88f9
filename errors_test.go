package polyjson_test

import (
	"fmt"
	"testing"

	polyjson "github.com/studykit/polyjson"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := polyjson.Issues{
		{Path: "/type", Code: polyjson.CodeDiscriminatorMissing},
		{Path: "/0", Code: polyjson.CodeArrayElement},
		{Path: "/startDate", Code: polyjson.CodeInvalidFormat},
		{Path: "/x", Code: polyjson.CodeInvalidType},
	}
	s := iss.Error()
	if s == "" {
		t.Fatalf("expected non-empty error summary")
	}
	// only the first few issues render; the rest fold into a count
	if want := "discriminator_missing at /type"; len(s) < len(want) || s[:len(want)] != want {
		t.Fatalf("summary should lead with the first issue, got %q", s)
	}
}

func TestAsIssues_ThroughWrapping(t *testing.T) {
	inner := polyjson.Issues{{Path: "/", Code: polyjson.CodeParseError}}
	wrapped := fmt.Errorf("while loading record: %w", inner)
	iss, ok := polyjson.AsIssues(wrapped)
	if !ok || len(iss) != 1 || iss[0].Code != polyjson.CodeParseError {
		t.Fatalf("expected issues through wrapping, got %v %v", iss, ok)
	}
}

func TestHasCode(t *testing.T) {
	err := error(polyjson.Issues{{Path: "/type", Code: polyjson.CodeDiscriminatorUnknown}})
	if !polyjson.HasCode(err, polyjson.CodeDiscriminatorUnknown) {
		t.Fatalf("expected matching code")
	}
	if polyjson.HasCode(err, polyjson.CodeParseError) {
		t.Fatalf("unexpected code match")
	}
	if polyjson.HasCode(nil, polyjson.CodeParseError) {
		t.Fatalf("nil error has no codes")
	}
}

func TestCodingShapeError_Message(t *testing.T) {
	e := &polyjson.CodingShapeError{Value: make(chan int)}
	if e.Error() == "" {
		t.Fatalf("expected a message")
	}
}

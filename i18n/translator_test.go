package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("discriminator_missing", nil); msg == "discriminator_missing" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("discriminator_missing", nil); msg == "discriminator field missing" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_ParamsEmbed(t *testing.T) {
	msg := T("discriminator_unknown", map[string]string{"value": "motion"})
	if msg != "unregistered discriminator: motion" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes fall back to the code itself, got %q", msg)
	}
}

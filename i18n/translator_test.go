package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	data := map[string]string{"missingProperty": "id"}
	// default is en
	if msg := T("required", data); msg != "should have required property 'id'" {
		t.Fatalf("unexpected english message %q", msg)
	}

	SetLanguage("ja")
	if msg := T("required", data); msg == "should have required property 'id'" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_DataErrorAndUnknownCode(t *testing.T) {
	if msg := T("data_error", map[string]string{"keyword": "required"}); msg != `"required" keyword value must be array` {
		t.Fatalf("unexpected data_error message %q", msg)
	}
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes should echo the code, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X-" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("required", nil); msg != "X-required" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("required", map[string]string{"missingProperty": "a"}); msg != "should have required property 'a'" {
		t.Fatalf("nil should restore the english dictionary, got %q", msg)
	}
}

package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides metadata to embed in the message (for example,
// "missingProperty" or "keyword").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "required":
			tmpl = "必須プロパティ '{missingProperty}' がありません"
		case "data_error":
			tmpl = "\"{keyword}\" キーワードの値は配列でなければなりません"
		}
	default: // "en"
		switch code {
		case "required":
			tmpl = "should have required property '{missingProperty}'"
		case "data_error":
			tmpl = "\"{keyword}\" keyword value must be array"
		}
	}
	if tmpl == "" {
		return code
	}
	return expand(tmpl, data)
}

// expand replaces {name} placeholders with data values.
func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }

package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "value" or "interface").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "parse_error":
			return "解析エラー"
		case "invalid_type":
			return "型が不正です"
		case "invalid_format":
			return "書式が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "discriminator_missing":
			return "判別子フィールドがありません"
		case "discriminator_unknown":
			return "未登録の判別子です"
		case "unregistered_interface":
			return "インターフェースが未登録です"
		case "array_element":
			return "配列要素のデコードに失敗しました"
		case "registry_invalid":
			return "レジストリ構成が不正です"
		}
	default: // "en"
		switch code {
		case "parse_error":
			return "parse error"
		case "invalid_type":
			return "invalid type"
		case "invalid_format":
			return "invalid format"
		case "required":
			return "required property missing"
		case "discriminator_missing":
			return "discriminator field missing"
		case "discriminator_unknown":
			if v, ok := data["value"]; ok {
				return "unregistered discriminator: " + v
			}
			return "unregistered discriminator"
		case "unregistered_interface":
			if v, ok := data["interface"]; ok {
				return "no registry for interface: " + v
			}
			return "no registry for interface"
		case "array_element":
			if v, ok := data["index"]; ok {
				return "array element " + v + " failed to decode"
			}
			return "array element failed to decode"
		case "registry_invalid":
			return "invalid registry configuration"
		}
	}
	return code
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

// T is shorthand for the current Translator's Message.
func T(code string, data map[string]string) string {
	return currentTranslator.Message(code, data)
}

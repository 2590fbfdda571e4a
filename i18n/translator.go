package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.lookup(code)
	if detail := data["detail"]; detail != "" {
		return msg + ": " + detail
	}
	return msg
}

func (t dictTranslator) lookup(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "duplicate_key":
			return "キーが重複しています"
		case "too_short":
			return "短すぎます"
		case "invalid_enum":
			return "許可されていない値です"
		case "invalid_format":
			return "形式が不正です"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		case "not_found":
			return "ファイルが見つかりません"
		case "uniqueness":
			return "値が重複しています"
		case "dangling_reference":
			return "参照先が存在しません"
		case "nonstandard_conformance":
			return "conformsTo が標準のバージョンではありません"
		case "missing_checksum":
			return "FileObject に sha256/md5 チェックサムがありません"
		case "deep_validation_failed":
			return "スキーマ検証に失敗しました"
		case "deep_validation_skipped":
			return "スキーマ検証をスキップしました"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required property missing"
		case "unknown_key":
			return "unknown key"
		case "duplicate_key":
			return "duplicate key"
		case "too_short":
			return "too short"
		case "invalid_enum":
			return "value not allowed"
		case "invalid_format":
			return "invalid format"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		case "not_found":
			return "file not found"
		case "uniqueness":
			return "duplicate value"
		case "dangling_reference":
			return "reference does not resolve"
		case "nonstandard_conformance":
			return "conformsTo is not the standard version"
		case "missing_checksum":
			return "FileObject missing sha256/md5 checksum"
		case "deep_validation_failed":
			return "schema validation failed"
		case "deep_validation_skipped":
			return "schema validation skipped"
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

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }

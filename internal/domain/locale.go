package domain

import "strings"

// Locale selects the label set used by the terminal front-end.
type Locale string

const (
	LocaleChinese  Locale = "zh"
	LocaleEnglish  Locale = "en"
	LocaleJapanese Locale = "ja"
	LocaleKorean   Locale = "ko"
)

func (l Locale) String() string {
	return string(l)
}

func (l Locale) IsValid() bool {
	switch l {
	case LocaleChinese, LocaleEnglish, LocaleJapanese, LocaleKorean:
		return true
	default:
		return false
	}
}

// SupportedLocales lists the label sets in display order.
var SupportedLocales = []Locale{LocaleChinese, LocaleEnglish, LocaleJapanese, LocaleKorean}

// ParseLocale accepts locale codes and the native language names shown in the
// language picker. Unknown values fall back to Chinese.
func ParseLocale(value string) Locale {
	locale, ok := LookupLocale(value)
	if !ok {
		return LocaleChinese
	}
	return locale
}

// LookupLocale is ParseLocale without the fallback.
func LookupLocale(value string) (Locale, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "zh", "cn", "chinese", "中文":
		return LocaleChinese, true
	case "en", "english":
		return LocaleEnglish, true
	case "ja", "jp", "日本語":
		return LocaleJapanese, true
	case "ko", "kr", "한국어":
		return LocaleKorean, true
	default:
		return "", false
	}
}

package locale

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Locale is a canonical locale code in the product's own locale space,
// independent of any store's code space (e.g. "en-US", "zh-Hant").
type Locale string

// All lists every locale the product understands, in canonical order.
// This order is the tie-break everywhere ordering matters: planner
// output, group membership, CLI listings.
var All = []Locale{
	"en-US", "en-GB", "en-AU", "en-CA",
	"zh-Hans", "zh-Hant", "zh-HK",
	"ja-JP", "ko-KR",
	"fr-FR", "fr-CA",
	"de-DE",
	"es-ES", "es-MX", "es-419",
	"pt-BR", "pt-PT",
	"it-IT", "nl-NL",
	"sv-SE", "da-DK", "fi-FI", "nb-NO",
	"ru-RU", "pl-PL", "uk-UA",
	"tr-TR", "ar-SA", "he-IL", "el-GR",
	"th-TH", "vi-VN", "id-ID", "ms-MY",
	"hi-IN",
	"cs-CZ", "sk-SK", "hu-HU", "ro-RO", "hr-HR",
	"ca-ES",
}

// valid is built as a var initializer, not in init(), so it is ready
// before the init funcs of sibling files that look locales up.
var valid = func() map[Locale]bool {
	ret := make(map[Locale]bool, len(All))
	for _, l := range All {
		if _, err := language.Parse(string(l)); err != nil {
			panic(fmt.Sprintf("invalid locale %q: %v", l, err))
		}
		ret[l] = true
	}
	return ret
}()

// IsValid reports whether l is one of the known locales.
func IsValid(l Locale) bool {
	return valid[l]
}

// Parse validates a raw string as a known locale.
func Parse(s string) (Locale, error) {
	l := Locale(s)
	if !IsValid(l) {
		return "", fmt.Errorf("unknown locale %q", s)
	}
	return l, nil
}

// DisplayName returns the English display name for l
// (e.g. "es-419" → "Latin American Spanish").
func DisplayName(l Locale) string {
	tag, err := language.Parse(string(l))
	if err != nil {
		return string(l)
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return string(l)
}

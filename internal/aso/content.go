package aso

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"

	"github.com/appglot/shotloc/internal/locale"
)

// langAliases bridges naming gaps between whatlanggo's ISO 639-3 codes
// and the macrolanguage codes x/text resolves locale tags to.
var langAliases = map[string]string{
	"cmn": "zho", // Mandarin vs Chinese macrolanguage
	"arb": "ara",
	"zsm": "msa",
}

// minCheckLength guards the detector against short strings it cannot
// classify reliably.
const minCheckLength = 20

// CheckContent reports whether text plausibly reads as the locale's
// language. ok is true when the text matches, is too short, or the
// detection is not reliable; on a confident mismatch ok is false and
// detected carries the ISO 639-3 code of the language found.
func CheckContent(l locale.Locale, text string) (ok bool, detected string) {
	text = strings.TrimSpace(text)
	if len(text) < minCheckLength {
		return true, ""
	}

	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return true, ""
	}

	got := whatlanggo.LangToString(info.Lang)
	if alias, has := langAliases[got]; has {
		got = alias
	}
	if got == expectedISO3(l) {
		return true, ""
	}
	return false, got
}

func expectedISO3(l locale.Locale) string {
	tag, err := language.Parse(string(l))
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.ISO3()
}

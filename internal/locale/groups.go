package locale

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Group is a translation-backend target language bucket. One backend
// call produces one image that every member locale receives verbatim.
type Group string

// groupOrder fixes the iteration order of groups; member slices are in
// fan-out order, first member being the display-primary.
//
// Mutually intelligible dialect families share one group: a single
// translated screenshot is copied to every member. Script-different
// members (zh-Hans vs zh-Hant) share one image too; known approximation.
var groupOrder = []Group{
	"en-US", "zh-CN", "ja-JP", "ko-KR",
	"fr-FR", "de-DE", "es-MX",
	"pt-BR", "it-IT", "nl-NL",
	"sv-SE", "da-DK", "fi-FI", "nb-NO",
	"ru-RU", "pl-PL", "uk-UA",
	"tr-TR", "ar", "he-IL", "el-GR",
	"th-TH", "vi-VN", "id-ID",
	"hi-IN", "cs-CZ", "hu-HU", "ro-RO",
}

var groupMembers = map[Group][]Locale{
	"en-US": {"en-US", "en-GB", "en-AU", "en-CA"},
	"zh-CN": {"zh-Hans", "zh-Hant", "zh-HK"},
	"ja-JP": {"ja-JP"},
	"ko-KR": {"ko-KR"},
	"fr-FR": {"fr-FR", "fr-CA"},
	"de-DE": {"de-DE"},
	"es-MX": {"es-MX", "es-419", "es-ES"},
	"pt-BR": {"pt-BR", "pt-PT"},
	"it-IT": {"it-IT"},
	"nl-NL": {"nl-NL"},
	"sv-SE": {"sv-SE"},
	"da-DK": {"da-DK"},
	"fi-FI": {"fi-FI"},
	"nb-NO": {"nb-NO"},
	"ru-RU": {"ru-RU"},
	"pl-PL": {"pl-PL"},
	"uk-UA": {"uk-UA"},
	"tr-TR": {"tr-TR"},
	"ar":    {"ar-SA"},
	"he-IL": {"he-IL"},
	"el-GR": {"el-GR"},
	"th-TH": {"th-TH"},
	"vi-VN": {"vi-VN"},
	"id-ID": {"id-ID"},
	"hi-IN": {"hi-IN"},
	"cs-CZ": {"cs-CZ"},
	"hu-HU": {"hu-HU"},
	"ro-RO": {"ro-RO"},
	// ms-MY, sk-SK, hr-HR, ca-ES: no backend support, in no group.
}

var groupOf map[Locale]Group

func init() {
	if len(groupOrder) != len(groupMembers) {
		panic("group order and member table out of sync")
	}
	groupOf = make(map[Locale]Group)
	for _, g := range groupOrder {
		members, ok := groupMembers[g]
		if !ok || len(members) == 0 {
			panic(fmt.Sprintf("group %q has no members", g))
		}
		if _, err := language.Parse(string(g)); err != nil {
			panic(fmt.Sprintf("invalid group key %q: %v", g, err))
		}
		for _, m := range members {
			if !IsValid(m) {
				panic(fmt.Sprintf("group %q references unknown locale %q", g, m))
			}
			if prev, dup := groupOf[m]; dup {
				panic(fmt.Sprintf("locale %q in both groups %q and %q", m, prev, g))
			}
			groupOf[m] = g
		}
	}
}

// GroupFor returns the translation group serving l. ok is false when
// the backend cannot translate into that language family at all; the
// caller must skip the locale, not fail the batch.
func GroupFor(l Locale) (Group, bool) {
	g, ok := groupOf[l]
	return g, ok
}

// Members returns the ordered member locales of g. The first member is
// the display-primary; it gets no special data treatment.
func Members(g Group) []Locale {
	members, ok := groupMembers[g]
	if !ok {
		return nil
	}
	return append([]Locale(nil), members...)
}

// Groups returns every group key in declaration order.
func Groups() []Group {
	return append([]Group(nil), groupOrder...)
}

// GroupDisplayName returns the English language name to put in the
// translation instruction (e.g. "es-MX" → "Mexican Spanish").
func GroupDisplayName(g Group) string {
	tag, err := language.Parse(string(g))
	if err != nil {
		return string(g)
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return string(g)
}

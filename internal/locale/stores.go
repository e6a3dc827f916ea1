package locale

import "fmt"

// Store identifies a distribution store with its own locale code space.
type Store int

const (
	AppStore Store = iota
	GooglePlay
)

func (s Store) String() string {
	switch s {
	case AppStore:
		return "appstore"
	case GooglePlay:
		return "googleplay"
	default:
		return fmt.Sprintf("store(%d)", int(s))
	}
}

// ParseStore resolves a store name used on the CLI and in configs.
func ParseStore(s string) (Store, error) {
	switch s {
	case "appstore", "app-store", "ios":
		return AppStore, nil
	case "googleplay", "google-play", "android":
		return GooglePlay, nil
	default:
		return 0, fmt.Errorf("unknown store %q", s)
	}
}

// appStoreCodes maps canonical locales to App Store Connect locale codes.
// Locales absent from the map have no App Store equivalent.
var appStoreCodes = map[Locale]string{
	"en-US":   "en-US",
	"en-GB":   "en-GB",
	"en-AU":   "en-AU",
	"en-CA":   "en-CA",
	"zh-Hans": "zh-Hans",
	"zh-Hant": "zh-Hant",
	// zh-HK: App Store folds Hong Kong into zh-Hant; no own code.
	"ja-JP": "ja",
	"ko-KR": "ko",
	"fr-FR": "fr-FR",
	"fr-CA": "fr-CA",
	"de-DE": "de-DE",
	"es-ES": "es-ES",
	"es-MX": "es-MX",
	// es-419: no App Store equivalent; es-MX covers the region there.
	"pt-BR": "pt-BR",
	"pt-PT": "pt-PT",
	"it-IT": "it",
	"nl-NL": "nl-NL",
	"sv-SE": "sv",
	"da-DK": "da",
	"fi-FI": "fi",
	"nb-NO": "no",
	"ru-RU": "ru",
	"pl-PL": "pl",
	"uk-UA": "uk",
	"tr-TR": "tr",
	"ar-SA": "ar-SA",
	"he-IL": "he",
	"el-GR": "el",
	"th-TH": "th",
	"vi-VN": "vi",
	"id-ID": "id",
	"ms-MY": "ms",
	"hi-IN": "hi",
	"cs-CZ": "cs",
	"sk-SK": "sk",
	"hu-HU": "hu",
	"ro-RO": "ro",
	"hr-HR": "hr",
	"ca-ES": "ca",
}

// googlePlayCodes maps canonical locales to Google Play listing codes.
var googlePlayCodes = map[Locale]string{
	"en-US":   "en-US",
	"en-GB":   "en-GB",
	"en-AU":   "en-AU",
	"en-CA":   "en-CA",
	"zh-Hans": "zh-CN",
	"zh-Hant": "zh-TW",
	"zh-HK":   "zh-HK",
	"ja-JP":   "ja-JP",
	"ko-KR":   "ko-KR",
	"fr-FR":   "fr-FR",
	"fr-CA":   "fr-CA",
	"de-DE":   "de-DE",
	"es-ES":   "es-ES",
	// es-MX: Play has no es-MX listing; es-419 covers the region.
	"es-419": "es-419",
	"pt-BR":  "pt-BR",
	"pt-PT":  "pt-PT",
	"it-IT":  "it-IT",
	"nl-NL":  "nl-NL",
	"sv-SE":  "sv-SE",
	"da-DK":  "da-DK",
	"fi-FI":  "fi-FI",
	"nb-NO":  "no-NO",
	"ru-RU":  "ru-RU",
	"pl-PL":  "pl-PL",
	"uk-UA":  "uk",
	"tr-TR":  "tr-TR",
	"ar-SA":  "ar",
	"he-IL":  "iw-IL",
	"el-GR":  "el-GR",
	"th-TH":  "th",
	"vi-VN":  "vi",
	"id-ID":  "id",
	"ms-MY":  "ms",
	"hi-IN":  "hi-IN",
	"cs-CZ":  "cs-CZ",
	"sk-SK":  "sk",
	"hu-HU":  "hu-HU",
	"ro-RO":  "ro",
	"hr-HR":  "hr",
	"ca-ES":  "ca",
}

var (
	appStoreReverse   map[string]Locale
	googlePlayReverse map[string]Locale
)

func init() {
	appStoreReverse = reverse(appStoreCodes)
	googlePlayReverse = reverse(googlePlayCodes)
}

func reverse(m map[Locale]string) map[string]Locale {
	ret := make(map[string]Locale, len(m))
	for l, code := range m {
		if !IsValid(l) {
			panic(fmt.Sprintf("store table references unknown locale %q", l))
		}
		if prev, dup := ret[code]; dup {
			panic(fmt.Sprintf("store code %q mapped from both %q and %q", code, prev, l))
		}
		ret[code] = l
	}
	return ret
}

func codesFor(store Store) (map[Locale]string, map[string]Locale) {
	switch store {
	case AppStore:
		return appStoreCodes, appStoreReverse
	case GooglePlay:
		return googlePlayCodes, googlePlayReverse
	default:
		return nil, nil
	}
}

// ToStore converts a canonical locale to the store's own code.
// ok is false when the store has no equivalent listing locale.
func ToStore(store Store, l Locale) (code string, ok bool) {
	forward, _ := codesFor(store)
	code, ok = forward[l]
	return code, ok
}

// FromStore converts a store locale code back to the canonical locale.
// Total over the store's known codes.
func FromStore(store Store, code string) (Locale, bool) {
	_, rev := codesFor(store)
	l, ok := rev[code]
	return l, ok
}

// StoreLocales returns every canonical locale the store supports,
// in canonical order.
func StoreLocales(store Store) []Locale {
	forward, _ := codesFor(store)
	ret := make([]Locale, 0, len(forward))
	for _, l := range All {
		if _, ok := forward[l]; ok {
			ret = append(ret, l)
		}
	}
	return ret
}

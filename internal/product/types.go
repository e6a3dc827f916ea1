package product

import (
	"github.com/appglot/shotloc/internal/locale"
)

// Config is the per-product configuration stored at
// {productsDir}/{slug}/config.json. Every field is optional.
type Config struct {
	// DefaultLocale is the product's source locale. Empty means en-US.
	DefaultLocale locale.Locale `json:"default_locale,omitempty"`
	// BackgroundColor is a "#RRGGBB" override for resize padding.
	BackgroundColor string `json:"background_color,omitempty"`
	// PreserveWords are brand terms the translation backend must keep.
	PreserveWords []string `json:"preserve_words,omitempty"`
}

// LocaleEntry is the public metadata of one locale file under
// {productsDir}/{slug}/locales/{locale}.json.
type LocaleEntry struct {
	Locale      locale.Locale `json:"-"`
	Path        string        `json:"-"`
	Title       string        `json:"title,omitempty"`
	Subtitle    string        `json:"subtitle,omitempty"`
	Description string        `json:"description,omitempty"`
}

// Product is one app directory under the products dir.
type Product struct {
	Slug   string
	Dir    string
	Config Config
	// Locales are the registry-known locales with a locale file,
	// in canonical registry order.
	Locales []locale.Locale
	// Entries holds the loaded locale files, keyed by locale.
	Entries map[locale.Locale]LocaleEntry
	// Unknown lists locale file basenames that are not registry
	// locales. Reported, never fatal.
	Unknown []string
}

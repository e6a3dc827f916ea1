// Package aso converts store-shaped listing records between a store's
// locale code space and the canonical locale space used everywhere else.
package aso

import (
	"encoding/json"
	"sort"

	"github.com/appglot/shotloc/internal/locale"
)

// PublicRecords is the unified web representation: one record per
// canonical locale.
type PublicRecords map[locale.Locale]json.RawMessage

// StoreRecords is a store-shaped payload keyed by that store's own
// locale codes.
type StoreRecords map[string]json.RawMessage

// PullResult is the outcome of converting a store pull to public form.
type PullResult struct {
	Records PublicRecords
	// Unknown lists store codes with no canonical mapping, sorted.
	Unknown []string
}

// PushResult is the outcome of converting public records to store form.
type PushResult struct {
	Records StoreRecords
	// Unsupported lists canonical locales the store cannot represent,
	// in canonical order.
	Unsupported []locale.Locale
}

// ToPublic re-keys store records into the canonical locale space.
// Unknown store codes are reported and dropped, never fatal.
func ToPublic(store locale.Store, records StoreRecords) PullResult {
	ret := PullResult{Records: make(PublicRecords, len(records))}
	for code, rec := range records {
		l, ok := locale.FromStore(store, code)
		if !ok {
			ret.Unknown = append(ret.Unknown, code)
			continue
		}
		ret.Records[l] = rec
	}
	sort.Strings(ret.Unknown)
	return ret
}

// ToStore re-keys public records into the store's code space. Locales
// without a listing locale in that store are reported and dropped.
func ToStore(store locale.Store, records PublicRecords) PushResult {
	ret := PushResult{Records: make(StoreRecords, len(records))}
	for _, l := range locale.All {
		rec, ok := records[l]
		if !ok {
			continue
		}
		code, ok := locale.ToStore(store, l)
		if !ok {
			ret.Unsupported = append(ret.Unsupported, l)
			continue
		}
		ret.Records[code] = rec
	}
	return ret
}

package plan

import (
	"github.com/appglot/shotloc/internal/locale"
)

// Plan is the outcome of deciding which locales need translated
// screenshots and how they bundle into backend calls.
type Plan struct {
	// Targets lists the translation groups that need a backend call,
	// deduplicated, in canonical locale order of first appearance.
	Targets []locale.Group
	// LocaleMapping lists, per target group, the product locales that
	// receive that group's translated image, in registry member order.
	LocaleMapping map[locale.Group][]locale.Locale
	// Skipped are product locales the backend cannot translate into.
	Skipped []locale.Locale
	// Grouped are locales that receive a copy of another member's
	// translation instead of a bespoke backend call.
	Grouped []locale.Locale
	// Invalid are requested locales that are not in the product's
	// locale set; reported, never fatal.
	Invalid []locale.Locale
}

// Build computes the translation plan for a product.
//
// all is the product's full locale set, primary the source locale
// (never a target). requested, when non-empty, narrows the candidates;
// requested locales absent from all are reported under Invalid and
// dropped. The result is idempotent and order-insensitive for the same
// inputs: candidates are walked in canonical registry order and group
// member order follows the registry's declaration, not input order.
func Build(all []locale.Locale, primary locale.Locale, requested []locale.Locale) Plan {
	inProduct := make(map[locale.Locale]bool, len(all))
	for _, l := range all {
		inProduct[l] = true
	}

	ret := Plan{
		LocaleMapping: make(map[locale.Group][]locale.Locale),
		Skipped:       make([]locale.Locale, 0),
		Grouped:       make([]locale.Locale, 0),
		Invalid:       make([]locale.Locale, 0),
	}

	candidates := make(map[locale.Locale]bool, len(all))
	if len(requested) > 0 {
		seen := make(map[locale.Locale]bool, len(requested))
		for _, l := range requested {
			if seen[l] {
				continue
			}
			seen[l] = true
			if !inProduct[l] {
				ret.Invalid = append(ret.Invalid, l)
				continue
			}
			candidates[l] = true
		}
	} else {
		for l := range inProduct {
			candidates[l] = true
		}
	}
	delete(candidates, primary)

	// Walk in canonical order so identical inputs always produce the
	// same target and skip order.
	members := make(map[locale.Group][]locale.Locale)
	for _, l := range locale.All {
		if !candidates[l] {
			continue
		}
		g, ok := locale.GroupFor(l)
		if !ok {
			ret.Skipped = append(ret.Skipped, l)
			continue
		}
		if _, exists := members[g]; !exists {
			ret.Targets = append(ret.Targets, g)
		}
		members[g] = append(members[g], l)
	}

	// Re-order each group's members to the registry's declared order
	// and collect the all-but-first as copy receivers.
	for _, g := range ret.Targets {
		present := make(map[locale.Locale]bool, len(members[g]))
		for _, l := range members[g] {
			present[l] = true
		}
		ordered := make([]locale.Locale, 0, len(members[g]))
		for _, l := range locale.Members(g) {
			if present[l] {
				ordered = append(ordered, l)
			}
		}
		ret.LocaleMapping[g] = ordered
		ret.Grouped = append(ret.Grouped, ordered[1:]...)
	}

	return ret
}

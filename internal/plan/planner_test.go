package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appglot/shotloc/internal/locale"
)

func TestBuild_SharedGroupCollapses(t *testing.T) {
	all := []locale.Locale{"en-US", "es-ES", "es-MX", "fr-FR"}

	p := Build(all, "en-US", nil)

	// es-ES and es-MX share one group; one backend call serves both.
	assert.Equal(t, []locale.Group{"fr-FR", "es-MX"}, p.Targets)
	assert.Equal(t, []locale.Locale{"es-MX", "es-ES"}, p.LocaleMapping["es-MX"])
	assert.Equal(t, []locale.Locale{"fr-FR"}, p.LocaleMapping["fr-FR"])
	assert.Equal(t, []locale.Locale{"es-ES"}, p.Grouped)
	assert.Empty(t, p.Skipped)
	assert.Empty(t, p.Invalid)
}

func TestBuild_RequestedLocaleNotInProduct(t *testing.T) {
	all := []locale.Locale{"en-US", "fr-FR", "de-DE"}

	p := Build(all, "en-US", []locale.Locale{"fr-FR", "xx-YY"})

	assert.Equal(t, []locale.Locale{"xx-YY"}, p.Invalid)
	assert.Equal(t, []locale.Group{"fr-FR"}, p.Targets)
	// de-DE was not requested, so it is not planned.
	assert.NotContains(t, p.Targets, locale.Group("de-DE"))
}

func TestBuild_PrimaryNeverTargeted(t *testing.T) {
	all := []locale.Locale{"en-US", "en-GB", "ko-KR"}

	p := Build(all, "en-US", nil)

	// en-GB still needs the English group even though the primary is
	// an English variant; the primary itself is excluded.
	require.Contains(t, p.Targets, locale.Group("en-US"))
	assert.Equal(t, []locale.Locale{"en-GB"}, p.LocaleMapping["en-US"])
	assert.Contains(t, p.Targets, locale.Group("ko-KR"))
}

func TestBuild_UnsupportedLocalesSkipped(t *testing.T) {
	all := []locale.Locale{"en-US", "ms-MY", "ca-ES", "ja-JP"}

	p := Build(all, "en-US", nil)

	assert.Equal(t, []locale.Locale{"ms-MY", "ca-ES"}, p.Skipped)
	assert.Equal(t, []locale.Group{"ja-JP"}, p.Targets)
}

func TestBuild_Idempotent(t *testing.T) {
	all := []locale.Locale{"en-US", "zh-Hant", "zh-Hans", "es-419", "es-ES", "ms-MY", "fr-CA"}

	first := Build(all, "en-US", nil)
	second := Build(all, "en-US", nil)

	assert.Equal(t, first, second)
}

func TestBuild_OrderInsensitive(t *testing.T) {
	a := []locale.Locale{"en-US", "zh-Hant", "es-ES", "fr-FR", "zh-Hans"}
	b := []locale.Locale{"fr-FR", "zh-Hans", "en-US", "es-ES", "zh-Hant"}

	assert.Equal(t, Build(a, "en-US", nil), Build(b, "en-US", nil))
}

func TestBuild_MemberOrderFollowsRegistry(t *testing.T) {
	// Input order reversed relative to the registry declaration.
	all := []locale.Locale{"en-US", "zh-HK", "zh-Hant", "zh-Hans"}

	p := Build(all, "en-US", nil)

	require.Equal(t, []locale.Group{"zh-CN"}, p.Targets)
	assert.Equal(t, []locale.Locale{"zh-Hans", "zh-Hant", "zh-HK"}, p.LocaleMapping["zh-CN"])
	assert.Equal(t, []locale.Locale{"zh-Hant", "zh-HK"}, p.Grouped)
}

func TestBuild_RequestedDuplicatesCollapse(t *testing.T) {
	all := []locale.Locale{"en-US", "fr-FR"}

	p := Build(all, "en-US", []locale.Locale{"fr-FR", "fr-FR"})

	assert.Equal(t, []locale.Group{"fr-FR"}, p.Targets)
}

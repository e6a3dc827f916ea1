package product

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appglot/shotloc/internal/locale"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestList(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "beta"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "alpha"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, ".git"), 0o755))
	writeFile(t, filepath.Join(tmp, "README.md"), "not a product")

	slugs, err := List(tmp)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, slugs)
}

func TestLoad_FullProduct(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "demo", "config.json"),
		`{"default_locale":"de-DE","background_color":"#112233","preserve_words":["Shotloc"]}`)
	writeFile(t, filepath.Join(tmp, "demo", "locales", "de-DE.json"),
		`{"title":"Notizen","subtitle":"Schnell und einfach"}`)
	writeFile(t, filepath.Join(tmp, "demo", "locales", "ja-JP.json"),
		`{"title":"メモ"}`)
	writeFile(t, filepath.Join(tmp, "demo", "locales", "en-US.json"),
		`{"title":"Notes"}`)

	p, err := Load(tmp, "demo")
	require.NoError(t, err)
	assert.Equal(t, locale.Locale("de-DE"), p.Config.DefaultLocale)
	assert.Equal(t, "#112233", p.Config.BackgroundColor)
	assert.Equal(t, []string{"Shotloc"}, p.Config.PreserveWords)

	// Registry order, not directory order.
	assert.Equal(t, []locale.Locale{"en-US", "ja-JP", "de-DE"}, p.Locales)
	assert.Equal(t, "Notizen", p.Entries["de-DE"].Title)
	assert.Equal(t, "Schnell und einfach", p.Entries["de-DE"].Subtitle)
	assert.Empty(t, p.Unknown)
}

func TestLoad_DefaultsWithoutConfig(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "demo", "locales", "en-US.json"), `{}`)

	p, err := Load(tmp, "demo")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, p.Config.DefaultLocale)
	assert.Empty(t, p.Config.BackgroundColor)
}

func TestLoad_UnknownLocaleFilesReported(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "demo", "locales", "en-US.json"), `{}`)
	writeFile(t, filepath.Join(tmp, "demo", "locales", "xx-YY.json"), `{}`)
	writeFile(t, filepath.Join(tmp, "demo", "locales", "notes.txt"), "skip")

	p, err := Load(tmp, "demo")
	require.NoError(t, err)
	assert.Equal(t, []locale.Locale{"en-US"}, p.Locales)
	assert.Equal(t, []string{"xx-YY.json"}, p.Unknown)
}

func TestLoad_MissingProduct(t *testing.T) {
	_, err := Load(t.TempDir(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_BadConfigRejected(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "demo", "config.json"), `{"default_locale":"klingon"}`)

	_, err := Load(tmp, "demo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown default locale")
}

func TestLoad_BadLocaleJSON(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "demo", "locales", "en-US.json"), `{broken`)

	_, err := Load(tmp, "demo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "en-US.json")
}

package product

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/appglot/shotloc/internal/locale"
)

const (
	configFileName = "config.json"
	localesDirName = "locales"

	// loadConcurrency bounds parallel locale file reads per product.
	loadConcurrency = 8
)

// ErrNotFound marks a slug with no directory under the products dir.
var ErrNotFound = errors.New("product not found")

// DefaultLocale is assumed when config.json does not set one.
const DefaultLocale = locale.Locale("en-US")

// List returns the product slugs under productsDir, sorted. Non-directory
// entries are ignored.
func List(productsDir string) ([]string, error) {
	entries, err := os.ReadDir(productsDir)
	if err != nil {
		return nil, fmt.Errorf("read products dir: %w", err)
	}

	ret := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			ret = append(ret, entry.Name())
		}
	}
	sort.Strings(ret)
	return ret, nil
}

// Load reads one product: its config.json and every locale file under
// locales/. A missing config.json yields defaults; a missing product
// directory is ErrNotFound.
func Load(productsDir, slug string) (*Product, error) {
	dir := filepath.Join(productsDir, slug)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}

	ret := &Product{
		Slug:    slug,
		Dir:     dir,
		Config:  Config{DefaultLocale: DefaultLocale},
		Entries: make(map[locale.Locale]LocaleEntry),
	}

	if err := readConfig(filepath.Join(dir, configFileName), &ret.Config); err != nil {
		return nil, err
	}
	if ret.Config.DefaultLocale == "" {
		ret.Config.DefaultLocale = DefaultLocale
	}
	if !locale.IsValid(ret.Config.DefaultLocale) {
		return nil, fmt.Errorf("product %s: unknown default locale %q", slug, ret.Config.DefaultLocale)
	}

	if err := loadLocales(ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func readConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadLocales enumerates locales/*.json and reads the files with a
// bounded worker group. Unknown basenames are recorded, not loaded.
func loadLocales(p *Product) error {
	dir := filepath.Join(p.Dir, localesDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", dir, err)
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(loadConcurrency)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		code := strings.TrimSuffix(name, ".json")
		l, err := locale.Parse(code)
		if err != nil {
			p.Unknown = append(p.Unknown, name)
			continue
		}

		path := filepath.Join(dir, name)
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			le := LocaleEntry{Locale: l, Path: path}
			if err := json.Unmarshal(data, &le); err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
			mu.Lock()
			p.Entries[l] = le
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Canonical registry order, independent of directory listing order.
	for _, l := range locale.All {
		if _, ok := p.Entries[l]; ok {
			p.Locales = append(p.Locales, l)
		}
	}
	sort.Strings(p.Unknown)
	return nil
}

package screenshot

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/appglot/shotloc/internal/locale"
)

// Screenshot layout under a product directory:
//
//	{productsDir}/{slug}/screenshots/{locale}/{phone|tablet}/{N}.{ext}
//	{productsDir}/{slug}/screenshots/{locale}/{phone|tablet}/raw/{N}.{ext}
//
// raw/ holds translated images before dimension normalization.

const (
	screenshotsDirName = "screenshots"
	rawDirName         = "raw"
)

// filenamePattern: positive integer index, then an allowed raster
// extension. Anything else in the directory is ignored.
var filenamePattern = regexp.MustCompile(`^([0-9]+)\.(png|jpg|jpeg|webp)$`)

// Dir returns the directory holding final screenshots for one
// (product, locale, device) bucket.
func Dir(productsDir, slug string, l locale.Locale, d DeviceType) string {
	return filepath.Join(productsDir, slug, screenshotsDirName, string(l), d.String())
}

// RawDir returns the staging directory for pre-resize translated output.
func RawDir(productsDir, slug string, l locale.Locale, d DeviceType) string {
	return filepath.Join(Dir(productsDir, slug, l, d), rawDirName)
}

// RawPath rewrites a final screenshot path to its raw/ staging
// counterpart in the same device directory.
func RawPath(finalPath string) string {
	return filepath.Join(filepath.Dir(finalPath), rawDirName, filepath.Base(finalPath))
}

// ParseIndex extracts the numeric screenshot index from a filename.
// ok is false for names outside the index-dot-extension pattern.
func ParseIndex(name string) (int, bool) {
	m := filenamePattern.FindStringSubmatch(strings.ToLower(name))
	if m == nil {
		return 0, false
	}
	index, err := strconv.Atoi(m[1])
	if err != nil || index <= 0 {
		return 0, false
	}
	return index, true
}

// NumberFilter selects screenshots by their numeric index. All applies
// to every device type; a device with its own ByDevice entry uses that
// list instead. An empty filter allows everything.
type NumberFilter struct {
	All      []int
	ByDevice map[DeviceType][]int
}

// Empty reports whether the filter allows every screenshot.
func (f NumberFilter) Empty() bool {
	return len(f.All) == 0 && len(f.ByDevice) == 0
}

// Allows reports whether the screenshot with the given device and
// index passes the filter.
func (f NumberFilter) Allows(d DeviceType, index int) bool {
	numbers, ok := f.ByDevice[d]
	if !ok {
		numbers = f.All
	}
	if len(numbers) == 0 {
		return true
	}
	for _, n := range numbers {
		if n == index {
			return true
		}
	}
	return false
}

// Apply keeps the screenshots passing the filter, preserving order.
func (f NumberFilter) Apply(shots []Info) []Info {
	if f.Empty() {
		return shots
	}
	ret := make([]Info, 0, len(shots))
	for _, shot := range shots {
		if f.Allows(shot.Device, shot.Index) {
			ret = append(ret, shot)
		}
	}
	return ret
}

// Scan enumerates the screenshots of one locale, ordered by device
// (per devices, defaulting to phone then tablet) and ascending numeric
// index. A missing locale or device directory yields no entries and no
// error; files not matching the index-dot-extension pattern are
// silently excluded.
func Scan(productsDir, slug string, l locale.Locale, devices []DeviceType) ([]Info, error) {
	if len(devices) == 0 {
		devices = DeviceOrder
	}

	ret := make([]Info, 0)
	for _, d := range devices {
		dir := Dir(productsDir, slug, l, d)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		found := make([]Info, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			index, ok := ParseIndex(name)
			if !ok {
				continue
			}
			found = append(found, Info{
				Device:   d,
				Index:    index,
				Filename: name,
				Path:     filepath.Join(dir, name),
			})
		}
		sort.Slice(found, func(i, j int) bool { return found[i].Index < found[j].Index })
		ret = append(ret, found...)
	}
	return ret, nil
}

// ListLocales returns the locale directory names present on disk under
// the product's screenshots dir. Used to detect already-translated
// locales independent of the registry; unknown directory names are
// returned as-is.
func ListLocales(productsDir, slug string) ([]string, error) {
	dir := filepath.Join(productsDir, slug, screenshotsDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	ret := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			ret = append(ret, entry.Name())
		}
	}
	sort.Strings(ret)
	return ret, nil
}

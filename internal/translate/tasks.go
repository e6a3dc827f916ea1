package translate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/appglot/shotloc/internal/locale"
	"github.com/appglot/shotloc/internal/plan"
	"github.com/appglot/shotloc/internal/screenshot"
	"github.com/appglot/shotloc/pkg/file"
)

// BuildTasks creates the worklist for one product run: one task per
// (target group × source screenshot). With skipExisting, output paths
// whose file is already present are dropped; a task whose path list
// empties out is dropped entirely, which makes reruns a fixed point.
func BuildTasks(
	productsDir string,
	slug string,
	shots []screenshot.Info,
	primary locale.Locale,
	p plan.Plan,
	skipExisting bool,
) []Task {
	ret := make([]Task, 0, len(p.Targets)*len(shots))
	for _, target := range p.Targets {
		members := p.LocaleMapping[target]
		for _, shot := range shots {
			outName := outputFilename(shot.Filename)

			outputs := make([]string, 0, len(members))
			for _, member := range members {
				out := filepath.Join(
					screenshot.Dir(productsDir, slug, member, shot.Device), outName)
				if skipExisting {
					if _, err := os.Stat(out); err == nil {
						continue
					}
				}
				outputs = append(outputs, out)
			}
			if len(outputs) == 0 {
				continue
			}

			ret = append(ret, Task{
				SourcePath:   shot.Path,
				SourceLocale: primary,
				Target:       target,
				Device:       shot.Device,
				Filename:     outName,
				OutputPaths:  outputs,
			})
		}
	}
	return ret
}

// outputFilename keeps the source filename except for webp sources:
// the backend answers with PNG data and there is no webp encoder, so
// those outputs are written as .png.
func outputFilename(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".webp") {
		return filepath.Base(file.ReplaceExt(name, ".png"))
	}
	return name
}

// mimeType maps a screenshot extension to the request MIME type.
func mimeType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}

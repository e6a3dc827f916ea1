package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/appglot/shotloc/internal/locale"
)

func newLocalesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locales",
		Short: "Show the locale registry and store code mappings",
		Long: `List every locale the pipeline understands with its English display
name, its translation group, and the App Store / Google Play codes it
maps to. A dash means the store has no equivalent listing locale, or
the translation backend cannot produce the locale.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := pterm.TableData{
				{"locale", "name", "group", "appstore", "googleplay"},
			}
			for _, l := range locale.All {
				group := "-"
				if g, ok := locale.GroupFor(l); ok {
					group = string(g)
				}
				appStore := "-"
				if code, ok := locale.ToStore(locale.AppStore, l); ok {
					appStore = code
				}
				googlePlay := "-"
				if code, ok := locale.ToStore(locale.GooglePlay, l); ok {
					googlePlay = code
				}
				rows = append(rows, []string{
					string(l), locale.DisplayName(l), group, appStore, googlePlay,
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}

	return cmd
}

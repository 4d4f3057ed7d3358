package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sdex/configviewer/internal/configs"
	"github.com/sdex/configviewer/internal/settings"
	"github.com/sdex/configviewer/internal/ui"
	"github.com/sdex/configviewer/internal/utils"
	"github.com/sdex/configviewer/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	watchPackage string
	watchName    string
)

func init() {
	watchCmd.Flags().StringVarP(&watchPackage, "package", "p", "", "only show packages matching this glob")
	watchCmd.Flags().StringVarP(&watchName, "name", "n", "", "only show settings whose name matches this glob")

	SettingsCmd.AddCommand(watchCmd)
}

// resetWatchCommandState resets the watch command's global state for testing.
func resetWatchCommandState() {
	watchPackage = ""
	watchName = ""
}

var watchCmd = &cobra.Command{
	Use:   "watch [kind]",
	Short: "Show a store and reload it whenever it changes",
	Long: `Lists a settings store and prints it again every time the file changes,
until interrupted. Only the files and dir sources can be watched.

Examples:
  configviewer settings watch global --source files
  configviewer settings watch secure --dir ./mounted --name 'location_*'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting watch command")

		kindArg := ""
		if len(args) > 0 {
			kindArg = args[0]
		}
		kind, err := workflows.ResolveKind(kindArg, preferences)
		if err != nil {
			fmt.Println(formatSettingsError(err))
			return reported(err)
		}

		src, err := newSource()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to set up the settings source: %w", err)
		}

		err = workflows.Watch(cmd.Context(), workflows.WatchOptions{
			Source:      src,
			Kind:        kind,
			Filter:      settings.Filter{Package: watchPackage, Name: watchName},
			HistoryPath: configs.HistoryPath(),
			OnEvent:     printWatchEvent,
		})
		if err != nil {
			fmt.Println(formatSettingsError(err))
			if isUnexpectedError(err) {
				return err
			}
			return reported(err)
		}
		return nil
	},
}

func printWatchEvent(ev workflows.LoadEvent) {
	stamp := ui.Muted.Sprint(time.Now().Format("15:04:05"))
	if ev.Err != nil {
		fmt.Printf("%s %s\n", stamp, formatSettingsError(ev.Err))
		return
	}

	fmt.Printf("%s %s %s\n\n", stamp, ui.Info.Sprint("→"), ui.Path.Sprint(ev.Result.Path))
	width := 0
	if w, ok := utils.TerminalWidth(); ok {
		width = w
	}
	ui.RenderGroups(os.Stdout, ev.Result.Groups, ui.ListOptions{Width: width})
	fmt.Printf("\n%s %s\n\n", ui.Success.Sprint("✓"), utils.Plural(settings.Count(ev.Result.Groups), "setting"))
}

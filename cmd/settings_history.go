package cmd

import (
	"fmt"

	"github.com/sdex/configviewer/internal/configs"
	"github.com/sdex/configviewer/internal/history"
	"github.com/sdex/configviewer/internal/ui"
	"github.com/sdex/configviewer/internal/utils"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "number", "n", 20, "limit number of entries shown (0 shows all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON array")

	SettingsCmd.AddCommand(historyCmd)
}

// resetHistoryCommandState resets the history command's global state for testing.
func resetHistoryCommandState() {
	historyLimit = 20
	historyJSON = false
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent loads",
	Long: `Shows the most recent settings loads, newest first, with the number of
settings read or the error that stopped the load.

Examples:
  configviewer settings history
  configviewer settings history -n 5
  configviewer settings history --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting history command")

		path := configs.HistoryPath()
		Logger.Debugf("Reading history from %s", path)

		entries, err := history.ReadEntries(path)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read history: %w", err)
		}
		entries = history.Last(entries, historyLimit)

		if historyJSON {
			return printJSON(entries)
		}

		if len(entries) == 0 {
			fmt.Println(ui.Info.Sprint("ℹ") + " No loads recorded yet.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%-19s  %-6s  %-5s  %s\n", formatHistoryTime(e), e.Kind, e.Source, formatHistoryOutcome(e))
		}
		return nil
	},
}

func formatHistoryTime(e history.Entry) string {
	t, err := e.Time()
	if err != nil {
		return e.Timestamp
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatHistoryOutcome(e history.Entry) string {
	if e.Error != "" {
		return ui.Error.Sprint("✗") + " " + e.Error
	}
	return ui.Success.Sprint("✓") + " " + utils.Plural(e.Settings, "setting") + " in " + utils.Plural(e.Groups, "package")
}

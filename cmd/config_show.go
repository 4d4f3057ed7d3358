package cmd

import (
	"fmt"

	"github.com/sdex/configviewer/internal/configs"
	"github.com/sdex/configviewer/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the stored preferences",
	Long: `Displays every preference key and its stored value.

Examples:
  configviewer config show
  configviewer config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")

		prefs, err := loadPreferencesForEdit()
		if err != nil {
			return err
		}

		values := make(map[string]string, len(configs.Keys()))
		for _, key := range configs.Keys() {
			// Keys come from the same table Get reads, so lookups cannot fail.
			values[key], _ = prefs.Get(key)
		}

		if configShowJSON {
			return printJSON(values)
		}

		fmt.Println(color.CyanString("Preferences") + " " + ui.Muted.Sprint(configs.PreferencesPath()))
		fmt.Println()
		for _, key := range configs.Keys() {
			value := values[key]
			if value == "" {
				value = ui.Muted.Sprint("unset")
			}
			fmt.Printf("  %-13s %s\n", key+":", value)
		}
		return nil
	},
}

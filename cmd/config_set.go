package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sdex/configviewer/internal/configs"
	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	ConfigCmd.AddCommand(configSetCmd)
	ConfigCmd.AddCommand(configUnsetCmd)
	ConfigCmd.AddCommand(configResetCmd)
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a preference",
	Long: `Stores a preference. Kinds and sources are validated.

Examples:
  configviewer config set source adb
  configviewer config set serial emulator-5554
  configviewer config set current_file secure`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config set command")

		prefs, err := loadPreferencesForEdit()
		if err != nil {
			return err
		}

		if err := prefs.Set(args[0], args[1]); err != nil {
			fmt.Println(formatConfigError(err))
			return nil
		}
		if err := configs.SavePreferences(prefs); err != nil {
			return ConfigLogger.ErrorfAndReturn("%w", err)
		}

		value, _ := prefs.Get(args[0])
		fmt.Printf("%s Set %s to %s\n", ui.Success.Sprint("✓"), strings.ToLower(args[0]), ui.Highlight.Sprint(value))
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a stored preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config unset command")

		prefs, err := loadPreferencesForEdit()
		if err != nil {
			return err
		}

		if err := prefs.Unset(args[0]); err != nil {
			fmt.Println(formatConfigError(err))
			return nil
		}
		if err := configs.SavePreferences(prefs); err != nil {
			return ConfigLogger.ErrorfAndReturn("%w", err)
		}

		fmt.Printf("%s Unset %s\n", ui.Success.Sprint("✓"), strings.ToLower(args[0]))
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every stored preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config reset command")

		if err := configs.ClearPreferences(); err != nil {
			return ConfigLogger.ErrorfAndReturn("%w", err)
		}
		fmt.Printf("%s Preferences reset\n", ui.Success.Sprint("✓"))
		return nil
	},
}

// formatConfigError formats a preference error for display to the user.
func formatConfigError(err error) string {
	if errors.Is(err, kerrors.ErrInvalidConfigKey) {
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Valid keys: " + strings.Join(configs.Keys(), ", ")
	}
	return ui.Error.Sprint("✗") + " " + err.Error()
}

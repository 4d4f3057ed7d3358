package cmd

import (
	"github.com/sdex/configviewer/internal/configs"
	logger "github.com/sdex/configviewer/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configVerbose bool
	configDebug   bool
	ConfigLogger  logger.Logger

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage configviewer preferences",
		Long: `Provides commands for managing the stored preferences.

Preferences supply defaults for the settings commands; flags given on the
command line win for that invocation. The file is kept at
<user config dir>/configviewer/config.toml.

Keys:
  current_file  last successfully loaded kind (config, global, secure, system)
  source        default settings source (adb, shell, files, dir)
  serial        adb device serial
  adb_path      adb binary
  su_path       su binary used by the shell source
  root          filesystem root for the files source
  dir           directory for the dir source
  log_file      also write logs to this rotating file

Examples:
  configviewer config show
  configviewer config set source dir
  configviewer config set dir ~/pulled-settings
  configviewer config unset serial
  configviewer config reset`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ConfigLogger = logger.Logger{
				Verbose: configVerbose,
				Debug:   configDebug,
			}
			ConfigLogger.Debugf("Initializing config command with verbose=%t, debug=%t", configVerbose, configDebug)
		},
	}
)

func init() {
	ConfigCmd.PersistentFlags().BoolVarP(&configVerbose, "verbose", "v", false, "enable verbose output")
	ConfigCmd.PersistentFlags().BoolVarP(&configDebug, "debug", "d", false, "enable debug output")
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// ResetConfigState resets all config command global variables to their default values for testing.
func ResetConfigState() {
	configVerbose = false
	configDebug = false
	resetConfigShowState()
	resetCobraFlagState(ConfigCmd)
}

// loadPreferencesForEdit loads the preferences file, reporting a parse error to the user.
func loadPreferencesForEdit() (*configs.Preferences, error) {
	ConfigLogger.Debugf("Loading preferences from %s", configs.PreferencesPath())
	prefs, err := configs.LoadPreferences()
	if err != nil {
		return nil, ConfigLogger.ErrorfAndReturn("%w (run 'configviewer config reset' to start over)", err)
	}
	return prefs, nil
}

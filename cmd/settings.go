package cmd

import (
	"io"

	"github.com/sdex/configviewer/internal/configs"
	logger "github.com/sdex/configviewer/internal/logging"
	"github.com/sdex/configviewer/internal/source"
	"github.com/sdex/configviewer/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	sourceName string
	serial     string
	rootPath   string
	dirPath    string
	Logger     logger.Logger

	// preferences are loaded before every settings command.
	preferences = &configs.Preferences{}
	logSink     io.Closer

	SettingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "View the Android system settings stores",
		Long: `Reads the config, global, secure and system settings stores of an Android
device and shows them grouped by the package that owns each setting.

The stores live under /data/system/users/0/ and need root to read. They are
fetched through a settings source:

  adb     adb exec-out su -c cat <path> on an attached device (default)
  shell   su -c cat <path>, when running on the device itself
  files   reads the paths directly, optionally below --root
  dir     reads settings_<kind>.xml files from --dir

The adb and shell sources check that su grants root before reading.
Binary (ABX) stores are converted to XML automatically.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}

			prefs, err := configs.LoadPreferences()
			if err != nil {
				Logger.Warnf("Ignoring preferences: %v", err)
				prefs = &configs.Preferences{}
			}
			preferences = prefs

			if prefs.LogFile != "" {
				path, err := utils.ExpandPath(prefs.LogFile)
				if err != nil {
					Logger.Warnf("Ignoring log_file: %v", err)
				} else {
					sink := logger.NewFileSink(path)
					logSink = sink
					Logger.File = sink
				}
			}

			Logger.Debugf("Initializing settings command with verbose=%t, debug=%t", verbose, debug)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLogSink()
		},
	}
)

func init() {
	SettingsCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	SettingsCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	SettingsCmd.PersistentFlags().StringVar(&sourceName, "source", "", "settings source: adb, shell, files or dir")
	SettingsCmd.PersistentFlags().StringVar(&serial, "serial", "", "adb device serial")
	SettingsCmd.PersistentFlags().StringVar(&rootPath, "root", "", "filesystem root for the files source")
	SettingsCmd.PersistentFlags().StringVar(&dirPath, "dir", "", "directory of settings_<kind>.xml files for the dir source")
}

func closeLogSink() {
	if logSink != nil {
		_ = logSink.Close()
		logSink = nil
	}
	Logger.File = nil
}

// newSource builds the settings source from flags, falling back to the
// stored preferences.
func newSource() (source.Source, error) {
	opts := source.Options{
		Name:    firstNonEmpty(sourceName, preferences.Source),
		Serial:  firstNonEmpty(serial, preferences.Serial),
		Root:    firstNonEmpty(rootPath, preferences.Root),
		Dir:     firstNonEmpty(dirPath, preferences.Dir),
		SuPath:  preferences.SuPath,
		ADBPath: preferences.ADBPath,
	}
	// --dir on its own selects the dir source.
	if sourceName == "" && dirPath != "" {
		opts.Name = source.NameDir
	}

	var err error
	if opts.Root, err = utils.ExpandPath(opts.Root); err != nil {
		return nil, err
	}
	if opts.Dir, err = utils.ExpandPath(opts.Dir); err != nil {
		return nil, err
	}

	Logger.Debugf("Using source %q (serial=%q root=%q dir=%q)", opts.Name, opts.Serial, opts.Root, opts.Dir)
	return source.New(opts)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Helper functions for testing

// GetSettingsCmd returns the SettingsCmd for testing.
func GetSettingsCmd() *cobra.Command {
	return SettingsCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	sourceName = ""
	serial = ""
	rootPath = ""
	dirPath = ""
	preferences = &configs.Preferences{}
	closeLogSink()
	resetListCommandState()
	resetGetCommandState()
	resetExportCommandState()
	resetWatchCommandState()
	resetHistoryCommandState()
	resetDoctorCommandState()
	resetCobraFlagState(SettingsCmd)
}

// resetCobraFlagState clears the Changed mark of every flag below cmd to prevent test pollution.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetCobraFlagState(child)
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}

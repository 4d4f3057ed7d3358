package configs

import (
	"log"
	"os"
	"path/filepath"
)

const appName = "configviewer"

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
}

var UserViewerSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		// Android shells often have neither $XDG_CONFIG_HOME nor a usable $HOME/.config.
		configDir = filepath.Join(homeDir, ".config")
	}

	dataDir := os.Getenv("XDG_DATA_HOME")

	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	UserViewerSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, appName),
		UserDataPath:    filepath.Join(dataDir, appName),
	}
}

// PreferencesPath returns the path of config.toml.
func PreferencesPath() string {
	return filepath.Join(UserViewerSettings.UserConfigsPath, "config.toml")
}

// HistoryPath returns the path of the load history log.
func HistoryPath() string {
	return filepath.Join(UserViewerSettings.UserDataPath, "history.jsonl")
}

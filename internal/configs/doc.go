// Package configs manages configviewer's user preferences.
//
// Preferences are stored in TOML format at:
//
//	<user config dir>/configviewer/config.toml
//
// # Preferences
//
// The preferences file stores:
//   - current_file: the settings kind that was last loaded successfully
//   - source, serial, adb_path, su_path, root, dir: how the stores are reached
//   - log_file: optional path of a rotating debug log
//
// A missing file yields default preferences. Writes are atomic so an
// interrupted save never leaves a truncated file behind.
//
// # Settings
//
// UserSettings holds the directories used by the tool and is initialized at
// startup:
//   - UserConfigsPath: where config.toml lives
//   - UserDataPath: where the load history is kept
package configs

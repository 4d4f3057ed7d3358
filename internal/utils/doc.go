// Package utils provides shared helpers for the CLI layer.
//
// # Terminal Utilities
//
//   - StdoutIsTerminal: reports whether output goes to a terminal
//   - TerminalWidth: returns the column count used to truncate list values
//
// # Clipboard Utilities
//
//   - CopyText: places a setting's name or value on the system clipboard
//
// # Path and String Utilities
//
//   - ExpandPath: expands a leading ~ in user-supplied paths
//   - Plural: formats counts such as "1 setting" or "3 packages"
package utils

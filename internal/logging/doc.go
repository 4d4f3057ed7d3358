// Package logger provides leveled logging for configviewer commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is prefixed with a colored level tag.
//
// # Verbosity Levels
//
//   - --verbose: Shows info messages
//   - --debug: Shows debug messages as well
//
// Warnings and errors are always shown on stderr.
//
// # Log File
//
// When a log file is configured every message, whatever the verbosity, is
// also appended to it with a timestamp and without colors. The file is
// rotated by size:
//
//	log := Logger{Verbose: verbose, Debug: debug, File: logger.NewFileSink(path)}
//
// # Usage
//
//	log.Infof("Loading %s", kind)
//	return log.ErrorfAndReturn("failed to load %s: %w", kind, err)
package logger

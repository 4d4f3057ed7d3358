// Package history records every load of a settings store in a JSON Lines
// file, one entry per line.
//
// # Entry Format
//
//	{"ts":"2026-10-15T09:12:44.123456Z","id":"...","kind":"global","source":"adb","groups":12,"settings":431}
//
// Failed loads carry an "error" field instead of counts.
//
// Recording never fails the load it describes: write errors are swallowed.
// Malformed lines are skipped when reading.
package history

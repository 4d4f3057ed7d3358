// Package ui provides semantic text formatting and rendering for CLI output.
//
// Formatters render content according to what it is rather than how it
// looks. When colors are available, content is colorized. When NO_COLOR is
// set or the terminal doesn't support colors, text decorations are used
// instead so the output stays readable when piped.
//
// # Semantic Formatters
//
//	ui.Header.Sprint("android")            // Package group headers
//	ui.Name.Sprint("adb_enabled")          // Setting names
//	ui.Null.Sprint("null")                 // Absent values
//	ui.Code.Sprint("configviewer settings list")
//	ui.Path.Sprint("/data/system/users/0/settings_global.xml")
//	ui.Success.Sprint("✓")
//	ui.Error.Sprint("✗")
//	ui.Info.Sprint("→")
//
// # Rendering
//
// RenderGroups prints a parse result as a grouped list, one header per
// package and two lines per setting (name, then value), truncated to the
// terminal width. RenderDetail prints one setting in full.
package ui

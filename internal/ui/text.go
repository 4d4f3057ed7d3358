package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.decorate(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.decorate(fmt.Sprintf(format, a...))
}

func (f Formatter) decorate(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	// Check NO_COLOR environment variable (https://no-color.org/).
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Header formats package group headers.
	// Bold cyan with color, [brackets] without.
	Header = Formatter{color.New(color.FgCyan, color.Bold), "[", "]"}

	// Name formats setting names.
	// Bold with color, unchanged without.
	Name = Formatter{color.New(color.Bold), "", ""}

	// Null formats the placeholder for an absent value.
	// Gray italic with color, unchanged without (the word null is explicit).
	Null = Formatter{color.New(color.FgHiBlack, color.Italic), "", ""}

	// Code formats runnable commands.
	// Yellow with color, `backticks` without.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file or device paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag formats CLI flags like --source.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}

	Error = Formatter{color.New(color.FgRed), "", ""}

	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info formats hints and directional indicators.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats user values such as kinds and serials.
	// Cyan with color, 'single quotes' without.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats secondary text.
	// Gray with color, (parentheses) without.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)

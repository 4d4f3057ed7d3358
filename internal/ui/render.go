package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sdex/configviewer/internal/settings"
)

const ellipsis = "…"

// NoPackageLabel is shown for settings without an owning package.
const NoPackageLabel = "<no package>"

// ListOptions controls RenderGroups.
type ListOptions struct {
	// Width truncates lines to this many columns; 0 disables truncation.
	Width int
}

// PackageLabel returns the header text of a group.
func PackageLabel(pkg string) string {
	if pkg == "" {
		return NoPackageLabel
	}
	return pkg
}

// RenderGroups writes groups as a list: a header per package followed by
// each setting's name and value on separate lines.
func RenderGroups(w io.Writer, groups []settings.Group, opts ListOptions) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, Header.Sprint(Truncate(PackageLabel(g.Package), opts.Width-2)))
		for _, s := range g.Items {
			fmt.Fprintln(w, "  "+Name.Sprint(Truncate(s.Name, opts.Width-2)))
			fmt.Fprintln(w, "    "+formatValue(s, opts.Width-4))
		}
	}
}

// RenderDetail writes a single setting with its full, untruncated value.
func RenderDetail(w io.Writer, pkg string, s settings.Setting) {
	fmt.Fprintln(w, Name.Sprint(s.Name))
	fmt.Fprintln(w, Muted.Sprint(PackageLabel(pkg)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, formatValue(s, 0))
}

func formatValue(s settings.Setting, width int) string {
	if !s.HasValue() {
		return Null.Sprint(settings.NullValue)
	}
	return Truncate(s.DisplayValue(), width)
}

// Truncate shortens s to at most width runes, ending with an ellipsis when
// anything was cut. Only the first line is kept. width <= 0 returns s as is.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	cut := false
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
		cut = true
	}
	if utf8.RuneCountInString(s) > width {
		runes := []rune(s)
		s = string(runes[:width-1])
		cut = true
	} else if cut && utf8.RuneCountInString(s) == width {
		runes := []rune(s)
		s = string(runes[:width-1])
	}
	if cut {
		return s + ellipsis
	}
	return s
}

package settings

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter narrows a parse result by glob patterns on package and setting
// name. An empty pattern matches everything.
type Filter struct {
	Package string
	Name    string
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Package == "" && f.Name == ""
}

// Validate checks both patterns are well-formed globs.
func (f Filter) Validate() error {
	if f.Package != "" && !doublestar.ValidatePattern(f.Package) {
		return fmt.Errorf("invalid package pattern %q", f.Package)
	}
	if f.Name != "" && !doublestar.ValidatePattern(f.Name) {
		return fmt.Errorf("invalid name pattern %q", f.Name)
	}
	return nil
}

// Apply returns the groups and settings matching the filter. Groups with no
// remaining settings are dropped. Ordering is preserved.
func (f Filter) Apply(groups []Group) ([]Group, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.IsZero() {
		return groups, nil
	}

	result := make([]Group, 0, len(groups))
	for _, g := range groups {
		if !match(f.Package, g.Package) {
			continue
		}
		var items []Setting
		for _, s := range g.Items {
			if match(f.Name, s.Name) {
				items = append(items, s)
			}
		}
		if len(items) > 0 {
			result = append(result, Group{Package: g.Package, Items: items})
		}
	}
	return result, nil
}

func match(pattern, value string) bool {
	if pattern == "" {
		return true
	}
	// Patterns are validated up front so the error can be ignored.
	ok, _ := doublestar.Match(pattern, value)
	return ok
}

// Match is a setting together with the package that owns it.
type Match struct {
	Package string  `json:"package"`
	Setting Setting `json:"setting"`
}

// Find returns every setting with exactly the given name. When pkg is
// non-nil only that package is searched; an empty package is a valid owner.
func Find(groups []Group, name string, pkg *string) []Match {
	var matches []Match
	for _, g := range groups {
		if pkg != nil && g.Package != *pkg {
			continue
		}
		for _, s := range g.Items {
			if s.Name == name {
				matches = append(matches, Match{Package: g.Package, Setting: s})
			}
		}
	}
	return matches
}

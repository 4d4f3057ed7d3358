package settings

import (
	"fmt"
	"strings"

	kerrors "github.com/sdex/configviewer/internal/errors"
)

// Kind identifies one of the four Android settings stores.
type Kind string

const (
	KindConfig Kind = "config"
	KindGlobal Kind = "global"
	KindSecure Kind = "secure"
	KindSystem Kind = "system"
)

// UsersDir is the directory holding the settings stores of the primary user.
const UsersDir = "/data/system/users/0/"

// NullValue is how an absent value is displayed.
const NullValue = "null"

// Kinds returns every settings file kind in menu order.
func Kinds() []Kind {
	return []Kind{KindConfig, KindGlobal, KindSecure, KindSystem}
}

// ParseKind converts a kind name to a Kind. Matching is case-insensitive so
// both "global" and "GLOBAL" are accepted.
func ParseKind(name string) (Kind, error) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, k := range Kinds() {
		if k == normalized {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of config, global, secure, system)", kerrors.ErrUnknownKind, name)
}

func (k Kind) String() string {
	return string(k)
}

// FileName returns the base name of the store, e.g. settings_global.xml.
func (k Kind) FileName() string {
	return "settings_" + string(k) + ".xml"
}

// Title returns the kind name with its first letter upper-cased.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// PathFor returns the absolute on-device path of the settings store.
func PathFor(k Kind) string {
	return UsersDir + k.FileName()
}

// Setting is a single name/value pair. A nil Value means the store holds no
// value for the name, which is different from an empty string.
type Setting struct {
	Name  string  `json:"name" yaml:"name" toml:"name"`
	Value *string `json:"value" yaml:"value" toml:"value,omitempty"`
}

// NewSetting creates a Setting that owns its own copy of value.
func NewSetting(name string, value *string) Setting {
	if value == nil {
		return Setting{Name: name}
	}
	v := *value
	return Setting{Name: name, Value: &v}
}

// HasValue reports whether the setting carries a value.
func (s Setting) HasValue() bool {
	return s.Value != nil
}

// DisplayValue returns the value, or "null" when it is absent.
func (s Setting) DisplayValue() string {
	if s.Value == nil {
		return NullValue
	}
	return *s.Value
}

// Group holds the settings owned by one package.
type Group struct {
	Package string    `json:"package" yaml:"package" toml:"package"`
	Items   []Setting `json:"items" yaml:"items" toml:"items"`
}

// Count returns the total number of settings across groups.
func Count(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Items)
	}
	return n
}

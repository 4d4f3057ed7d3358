package configs

import (
	"fmt"
	"os"
	"sort"
	"strings"

	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/settings"
	"github.com/sdex/configviewer/internal/source"
)

// Preferences are the persisted user choices.
type Preferences struct {
	CurrentFile string `toml:"current_file,omitempty"`
	Source      string `toml:"source,omitempty"`
	Serial      string `toml:"serial,omitempty"`
	ADBPath     string `toml:"adb_path,omitempty"`
	SuPath      string `toml:"su_path,omitempty"`
	Root        string `toml:"root,omitempty"`
	Dir         string `toml:"dir,omitempty"`
	LogFile     string `toml:"log_file,omitempty"`
}

// preferenceFields maps config keys to their fields and validators.
var preferenceFields = map[string]struct {
	field    func(p *Preferences) *string
	validate func(value string) error
}{
	"current_file": {func(p *Preferences) *string { return &p.CurrentFile }, validateKind},
	"source":       {func(p *Preferences) *string { return &p.Source }, validateSource},
	"serial":       {func(p *Preferences) *string { return &p.Serial }, nil},
	"adb_path":     {func(p *Preferences) *string { return &p.ADBPath }, nil},
	"su_path":      {func(p *Preferences) *string { return &p.SuPath }, nil},
	"root":         {func(p *Preferences) *string { return &p.Root }, nil},
	"dir":          {func(p *Preferences) *string { return &p.Dir }, nil},
	"log_file":     {func(p *Preferences) *string { return &p.LogFile }, nil},
}

// Keys returns every preference key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(preferenceFields))
	for k := range preferenceFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadPreferences loads the preferences file. A missing file yields defaults.
func LoadPreferences() (*Preferences, error) {
	prefs := &Preferences{}

	if _, err := os.Stat(PreferencesPath()); os.IsNotExist(err) {
		return prefs, nil
	}

	if err := LoadTOML(PreferencesPath(), prefs); err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	return prefs, nil
}

// SavePreferences writes the preferences file.
func SavePreferences(prefs *Preferences) error {
	if err := SaveTOML(PreferencesPath(), prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// ClearPreferences removes every stored preference.
func ClearPreferences() error {
	err := os.Remove(PreferencesPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (p *Preferences) Get(key string) (string, error) {
	f, ok := preferenceFields[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("%w: %q", kerrors.ErrInvalidConfigKey, key)
	}
	return *f.field(p), nil
}

// Set validates and stores value under key.
func (p *Preferences) Set(key, value string) error {
	key = strings.ToLower(key)
	f, ok := preferenceFields[key]
	if !ok {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidConfigKey, key)
	}
	if f.validate != nil {
		if err := f.validate(value); err != nil {
			return err
		}
	}
	if key == "current_file" {
		kind, _ := settings.ParseKind(value)
		value = kind.String()
	}
	*f.field(p) = value
	return nil
}

// Unset clears key.
func (p *Preferences) Unset(key string) error {
	f, ok := preferenceFields[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidConfigKey, key)
	}
	*f.field(p) = ""
	return nil
}

// CurrentKind returns the last loaded kind, or fallback when none is stored
// or the stored value is no longer valid.
func (p *Preferences) CurrentKind(fallback settings.Kind) settings.Kind {
	if p == nil || p.CurrentFile == "" {
		return fallback
	}
	kind, err := settings.ParseKind(p.CurrentFile)
	if err != nil {
		return fallback
	}
	return kind
}

func validateKind(value string) error {
	_, err := settings.ParseKind(value)
	return err
}

func validateSource(value string) error {
	for _, name := range source.Names() {
		if strings.EqualFold(name, value) {
			return nil
		}
	}
	return fmt.Errorf("unknown source %q (expected one of %s)", value, strings.Join(source.Names(), ", "))
}

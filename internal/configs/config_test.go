package configs

import (
	"errors"
	"os"
	"testing"

	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/settings"
)

func useTempConfigDir(t *testing.T) {
	t.Helper()
	original := UserViewerSettings
	UserViewerSettings = &UserSettings{
		UserConfigsPath: t.TempDir(),
		UserDataPath:    t.TempDir(),
	}
	t.Cleanup(func() {
		UserViewerSettings = original
	})
}

func TestLoadPreferencesMissingFile(t *testing.T) {
	useTempConfigDir(t)

	prefs, err := LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if *prefs != (Preferences{}) {
		t.Errorf("Expected default preferences, got %+v", prefs)
	}
}

func TestSaveAndLoadPreferences(t *testing.T) {
	useTempConfigDir(t)

	prefs := &Preferences{
		CurrentFile: "secure",
		Source:      "adb",
		Serial:      "emulator-5554",
		LogFile:     "/tmp/configviewer.log",
	}
	if err := SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	loaded, err := LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if *loaded != *prefs {
		t.Errorf("Expected %+v, got %+v", prefs, loaded)
	}
}

func TestLoadPreferencesInvalidFile(t *testing.T) {
	useTempConfigDir(t)

	if err := os.WriteFile(PreferencesPath(), []byte("current_file = [unterminated"), 0600); err != nil {
		t.Fatalf("Failed to write preferences: %v", err)
	}
	if _, err := LoadPreferences(); err == nil {
		t.Error("Expected error for invalid TOML, got nil")
	}
}

func TestClearPreferences(t *testing.T) {
	useTempConfigDir(t)

	if err := ClearPreferences(); err != nil {
		t.Errorf("ClearPreferences on missing file failed: %v", err)
	}

	if err := SavePreferences(&Preferences{Source: "dir"}); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}
	if err := ClearPreferences(); err != nil {
		t.Fatalf("ClearPreferences failed: %v", err)
	}
	if _, err := os.Stat(PreferencesPath()); !os.IsNotExist(err) {
		t.Error("Preferences file still exists after clear")
	}
}

func TestPreferencesSetGetUnset(t *testing.T) {
	prefs := &Preferences{}

	if err := prefs.Set("current_file", "GLOBAL"); err != nil {
		t.Fatalf("Set(current_file) failed: %v", err)
	}
	if got, _ := prefs.Get("current_file"); got != "global" {
		t.Errorf("Expected normalized kind %q, got %q", "global", got)
	}

	if err := prefs.Set("Source", "shell"); err != nil {
		t.Fatalf("Set(Source) failed: %v", err)
	}
	if prefs.Source != "shell" {
		t.Errorf("Expected source shell, got %q", prefs.Source)
	}

	if err := prefs.Set("current_file", "ssaid"); !errors.Is(err, kerrors.ErrUnknownKind) {
		t.Errorf("Expected ErrUnknownKind, got %v", err)
	}
	if err := prefs.Set("source", "ftp"); err == nil {
		t.Error("Expected error for unknown source")
	}
	if err := prefs.Set("colour", "red"); !errors.Is(err, kerrors.ErrInvalidConfigKey) {
		t.Errorf("Expected ErrInvalidConfigKey, got %v", err)
	}
	if _, err := prefs.Get("colour"); !errors.Is(err, kerrors.ErrInvalidConfigKey) {
		t.Errorf("Expected ErrInvalidConfigKey, got %v", err)
	}

	if err := prefs.Unset("source"); err != nil {
		t.Fatalf("Unset failed: %v", err)
	}
	if prefs.Source != "" {
		t.Errorf("Expected empty source after unset, got %q", prefs.Source)
	}
}

func TestCurrentKind(t *testing.T) {
	tests := []struct {
		name  string
		prefs *Preferences
		want  settings.Kind
	}{
		{"nil preferences", nil, settings.KindConfig},
		{"nothing stored", &Preferences{}, settings.KindConfig},
		{"lowercase", &Preferences{CurrentFile: "system"}, settings.KindSystem},
		{"enum name", &Preferences{CurrentFile: "SECURE"}, settings.KindSecure},
		{"invalid", &Preferences{CurrentFile: "bogus"}, settings.KindConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prefs.CurrentKind(settings.KindConfig); got != tt.want {
				t.Errorf("CurrentKind() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	if len(keys) != 8 {
		t.Fatalf("Expected 8 keys, got %d", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Errorf("Keys not sorted: %v", keys)
		}
	}
}

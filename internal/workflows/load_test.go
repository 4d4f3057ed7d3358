package workflows

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sdex/configviewer/internal/configs"
	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/history"
	"github.com/sdex/configviewer/internal/settings"
	"github.com/sdex/configviewer/internal/source"
)

func TestLoad(t *testing.T) {
	src := writeStores(t, map[settings.Kind]string{settings.KindGlobal: globalXML})

	result, err := Load(context.Background(), LoadOptions{Source: src, Kind: settings.KindGlobal})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := []settings.Group{
		{Package: "", Items: []settings.Setting{{Name: "orphan"}}},
		{Package: "android", Items: []settings.Setting{
			{Name: "adb_enabled", Value: strptr("1")},
			{Name: "wifi_on", Value: strptr("1")},
		}},
		{Package: "com.android.systemui", Items: []settings.Setting{{Name: "zen_mode", Value: strptr("0")}}},
	}
	if diff := cmp.Diff(want, result.Groups); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
	if result.Total != 4 {
		t.Errorf("Total = %d, want 4", result.Total)
	}
	if result.Path != filepath.Join(src.Path, "settings_global.xml") {
		t.Errorf("Path = %q, want the dir store path", result.Path)
	}
	if result.Source != "dir" {
		t.Errorf("Source = %q, want dir", result.Source)
	}
}

func TestLoadAcceptsUpperCaseKind(t *testing.T) {
	src := writeStores(t, map[settings.Kind]string{settings.KindSecure: secureXML})

	result, err := Load(context.Background(), LoadOptions{Source: src, Kind: "SECURE"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if result.Kind != settings.KindSecure {
		t.Errorf("Kind = %q, want secure", result.Kind)
	}
}

func TestLoadFilter(t *testing.T) {
	src := &memSource{stores: map[settings.Kind]string{settings.KindGlobal: globalXML}}

	result, err := Load(context.Background(), LoadOptions{
		Source: src,
		Kind:   settings.KindGlobal,
		Filter: settings.Filter{Package: "android", Name: "*_on"},
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := []settings.Group{
		{Package: "android", Items: []settings.Setting{{Name: "wifi_on", Value: strptr("1")}}},
	}
	if diff := cmp.Diff(want, result.Groups); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
	if result.Total != 4 {
		t.Errorf("Total = %d, want the unfiltered count 4", result.Total)
	}
}

func TestLoadInvalidFilter(t *testing.T) {
	src := &memSource{stores: map[settings.Kind]string{settings.KindGlobal: globalXML}}

	_, err := Load(context.Background(), LoadOptions{
		Source: src,
		Kind:   settings.KindGlobal,
		Filter: settings.Filter{Name: "[unclosed"},
	})
	if err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
}

func TestLoadErrors(t *testing.T) {
	src := &memSource{stores: map[settings.Kind]string{
		settings.KindGlobal: "<settings><setting name=\"a\"",
	}}

	tests := []struct {
		name string
		opts LoadOptions
		want error
	}{
		{"UnknownKind", LoadOptions{Source: src, Kind: "vendor"}, kerrors.ErrUnknownKind},
		{"MissingStore", LoadOptions{Source: src, Kind: settings.KindSystem}, kerrors.ErrSourceUnavailable},
		{"Malformed", LoadOptions{Source: src, Kind: settings.KindGlobal}, kerrors.ErrMalformedInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Load(context.Background(), tc.opts)
			if !errors.Is(err, tc.want) {
				t.Errorf("Load error = %v, want %v", err, tc.want)
			}
			if result != nil {
				t.Errorf("expected no result, got %+v", result)
			}
		})
	}
}

func TestLoadNoSource(t *testing.T) {
	if _, err := Load(context.Background(), LoadOptions{Kind: settings.KindGlobal}); err == nil {
		t.Fatal("expected an error without a source")
	}
}

func TestLoadCancelled(t *testing.T) {
	src := writeStores(t, map[settings.Kind]string{settings.KindGlobal: globalXML})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, LoadOptions{Source: src, Kind: settings.KindGlobal})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load error = %v, want context.Canceled", err)
	}
}

func TestLoadRemembersKindOnlyOnSuccess(t *testing.T) {
	useTempConfigDir(t)
	src := &memSource{stores: map[settings.Kind]string{settings.KindSecure: secureXML}}

	prefs := &configs.Preferences{CurrentFile: "global"}
	if _, err := Load(context.Background(), LoadOptions{Source: src, Kind: settings.KindSystem, Preferences: prefs}); err == nil {
		t.Fatal("expected the missing store to fail")
	}
	if prefs.CurrentFile != "global" {
		t.Errorf("CurrentFile = %q after a failed load, want global", prefs.CurrentFile)
	}

	result, err := Load(context.Background(), LoadOptions{Source: src, Kind: settings.KindSecure, Preferences: prefs})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if result.PreferencesErr != nil {
		t.Fatalf("PreferencesErr = %v", result.PreferencesErr)
	}

	saved, err := configs.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences returned error: %v", err)
	}
	if saved.CurrentFile != "secure" {
		t.Errorf("saved CurrentFile = %q, want secure", saved.CurrentFile)
	}
}

func TestLoadRequiresRoot(t *testing.T) {
	useTempConfigDir(t)
	logPath := filepath.Join(t.TempDir(), "history.jsonl")
	src := &rootSource{
		memSource: memSource{stores: map[settings.Kind]string{settings.KindGlobal: globalXML}},
		rootErr:   kerrors.ErrRootNotGranted,
	}
	prefs := &configs.Preferences{CurrentFile: "secure"}

	result, err := Load(context.Background(), LoadOptions{Source: src, Kind: settings.KindGlobal, Preferences: prefs, HistoryPath: logPath})
	if !errors.Is(err, kerrors.ErrRootNotGranted) {
		t.Fatalf("Load error = %v, want ErrRootNotGranted", err)
	}
	if result != nil {
		t.Errorf("Load returned a result alongside the error: %+v", result)
	}
	if prefs.CurrentFile != "secure" {
		t.Errorf("CurrentFile = %q after a denied load, want secure", prefs.CurrentFile)
	}

	entries, err := history.ReadEntries(logPath)
	if err != nil {
		t.Fatalf("ReadEntries returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Error == "" {
		t.Errorf("expected one failed history entry, got %+v", entries)
	}
}

func TestLoadADBFailuresPrintedAsOutput(t *testing.T) {
	const (
		idCmd  = "exec-out su -c 'id -u'"
		catCmd = "exec-out su -c 'cat /data/system/users/0/settings_global.xml && printf %s CONFIGVIEWER_FETCH_OK'"
	)
	tests := []struct {
		name    string
		output  map[string]string
		wantErr error
	}{
		{
			name:    "su missing",
			output:  map[string]string{idCmd: "/system/bin/sh: su: inaccessible or not found\n"},
			wantErr: kerrors.ErrRootNotGranted,
		},
		{
			name:    "store missing",
			output:  map[string]string{idCmd: "0\n", catCmd: "cat: /data/system/users/0/settings_global.xml: No such file or directory\n"},
			wantErr: kerrors.ErrSourceUnavailable,
		},
		{
			name:    "error text without exit marker",
			output:  map[string]string{idCmd: "0\n", catCmd: "Permission denied"},
			wantErr: kerrors.ErrSourceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTempConfigDir(t)
			src := &source.ADB{ADBPath: "adb", Runner: &scriptedRunner{output: tt.output}}
			prefs := &configs.Preferences{}

			result, err := Load(context.Background(), LoadOptions{Source: src, Kind: settings.KindGlobal, Preferences: prefs})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load error = %v, want %v", err, tt.wantErr)
			}
			if result != nil {
				t.Errorf("Load returned a result alongside the error: %+v", result)
			}
			if prefs.CurrentFile != "" {
				t.Errorf("CurrentFile = %q after a failed load, want it unset", prefs.CurrentFile)
			}
		})
	}
}

func TestLoadADBSuccess(t *testing.T) {
	src := &source.ADB{ADBPath: "adb", Runner: &scriptedRunner{output: map[string]string{
		"exec-out su -c 'id -u'": "0\n",
		"exec-out su -c 'cat /data/system/users/0/settings_global.xml && printf %s CONFIGVIEWER_FETCH_OK'": globalXML + "CONFIGVIEWER_FETCH_OK",
	}}}

	result, err := Load(context.Background(), LoadOptions{Source: src, Kind: settings.KindGlobal})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if result.Total != 4 || len(result.Groups) != 3 {
		t.Errorf("Load() total = %d, groups = %d, want 4 and 3", result.Total, len(result.Groups))
	}
}

func TestLoadRecordsHistory(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "history.jsonl")
	src := &memSource{stores: map[settings.Kind]string{settings.KindGlobal: globalXML}}

	if _, err := Load(context.Background(), LoadOptions{Source: src, Kind: settings.KindGlobal, HistoryPath: logPath}); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	_, _ = Load(context.Background(), LoadOptions{Source: src, Kind: settings.KindConfig, HistoryPath: logPath})

	entries, err := history.ReadEntries(logPath)
	if err != nil {
		t.Fatalf("ReadEntries returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	ok := entries[0]
	if ok.Kind != "global" || ok.Source != "memory" || ok.Groups != 3 || ok.Settings != 4 || ok.Error != "" {
		t.Errorf("unexpected success entry: %+v", ok)
	}
	failed := entries[1]
	if failed.Kind != "config" || failed.Error == "" {
		t.Errorf("unexpected failure entry: %+v", failed)
	}
}

func TestResolveKind(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		prefs   *configs.Preferences
		want    settings.Kind
		wantErr bool
	}{
		{"ExplicitArgument", "secure", &configs.Preferences{CurrentFile: "global"}, settings.KindSecure, false},
		{"Remembered", "", &configs.Preferences{CurrentFile: "global"}, settings.KindGlobal, false},
		{"RememberedEnumName", "", &configs.Preferences{CurrentFile: "SYSTEM"}, settings.KindSystem, false},
		{"DefaultsToConfig", "", &configs.Preferences{}, settings.KindConfig, false},
		{"NilPreferences", "", nil, settings.KindConfig, false},
		{"InvalidRemembered", "", &configs.Preferences{CurrentFile: "bogus"}, settings.KindConfig, false},
		{"InvalidArgument", "bogus", nil, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveKind(tc.arg, tc.prefs)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ResolveKind error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ResolveKind(%q) = %q, want %q", tc.arg, got, tc.want)
			}
		})
	}
}

package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/settings"
)

func TestWatchUnsupportedSource(t *testing.T) {
	err := Watch(context.Background(), WatchOptions{Source: &memSource{}, Kind: settings.KindGlobal})
	if !errors.Is(err, kerrors.ErrWatchUnsupported) {
		t.Errorf("Watch error = %v, want ErrWatchUnsupported", err)
	}
}

func TestWatchReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := writeStores(t, map[settings.Kind]string{settings.KindSecure: secureXML})
	path := src.Locate(settings.KindSecure)

	events := make(chan LoadEvent, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, WatchOptions{
			Source:   src,
			Kind:     settings.KindSecure,
			Debounce: 20 * time.Millisecond,
			OnEvent:  func(ev LoadEvent) { events <- ev },
		})
	}()

	next := func() LoadEvent {
		t.Helper()
		select {
		case ev := <-events:
			return ev
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a load event")
		}
		return LoadEvent{}
	}

	initial := next()
	if initial.Err != nil || settings.Count(initial.Result.Groups) != 1 {
		t.Fatalf("unexpected initial event: %+v", initial)
	}

	// Replace the store the way Android does: write a new file and rename it.
	updated := `<settings><setting name="android_id" value="abc123" package="android" />` +
		`<setting name="bluetooth_name" value="Pixel" package="android" /></settings>`
	tmp := filepath.Join(filepath.Dir(path), "settings_secure.xml.tmp")
	if err := os.WriteFile(tmp, []byte(updated), 0600); err != nil {
		t.Fatalf("failed to write update: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("failed to replace store: %v", err)
	}

	reloaded := next()
	if reloaded.Err != nil {
		t.Fatalf("reload failed: %v", reloaded.Err)
	}
	if got := settings.Count(reloaded.Result.Groups); got != 2 {
		t.Errorf("expected 2 settings after reload, got %d", got)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned error: %v", err)
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	src := writeStores(t, nil)
	src.Path = filepath.Join(src.Path, "missing")

	err := Watch(context.Background(), WatchOptions{Source: src, Kind: settings.KindGlobal})
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

package workflows

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdex/configviewer/internal/configs"
	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/settings"
	"github.com/sdex/configviewer/internal/source"
)

const globalXML = `<?xml version='1.0' encoding='utf-8' standalone='yes' ?>
<settings version="213">
  <setting id="1" name="wifi_on" value="1" package="android" defaultValue="1" defaultSysSet="true" />
  <setting id="2" name="adb_enabled" value="1" package="android" />
  <setting id="3" name="zen_mode" value="0" package="com.android.systemui" />
  <setting id="4" name="orphan" />
</settings>
`

const secureXML = `<settings version="213">
  <setting id="1" name="android_id" value="abc123" package="android" />
</settings>
`

func strptr(s string) *string { return &s }

// useTempConfigDir points preferences and history at temporary directories.
func useTempConfigDir(t *testing.T) {
	t.Helper()
	original := configs.UserViewerSettings
	configs.UserViewerSettings = &configs.UserSettings{
		UserConfigsPath: t.TempDir(),
		UserDataPath:    t.TempDir(),
	}
	t.Cleanup(func() {
		configs.UserViewerSettings = original
	})
}

// writeStores writes settings_<kind>.xml files and returns a dir source
// reading them.
func writeStores(t *testing.T, stores map[settings.Kind]string) *source.Dir {
	t.Helper()
	dir := t.TempDir()
	for kind, content := range stores {
		if err := os.WriteFile(filepath.Join(dir, kind.FileName()), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", kind, err)
		}
	}
	return &source.Dir{Path: dir}
}

// memSource serves stores from memory.
type memSource struct {
	stores map[settings.Kind]string
}

func (m *memSource) Name() string { return "memory" }

func (m *memSource) Fetch(ctx context.Context, kind settings.Kind) ([]byte, error) {
	content, ok := m.stores[kind]
	if !ok {
		return nil, kerrors.ErrSourceUnavailable
	}
	return []byte(content), nil
}

// rootSource is a memSource behind a privileged shell.
type rootSource struct {
	memSource
	rootErr error
}

func (r *rootSource) CheckRoot(ctx context.Context) error { return r.rootErr }

// gatedSource blocks fetches of gated kinds until released or cancelled.
type gatedSource struct {
	memSource
	gates map[settings.Kind]chan struct{}
}

func (g *gatedSource) Fetch(ctx context.Context, kind settings.Kind) ([]byte, error) {
	if gate, ok := g.gates[kind]; ok {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.memSource.Fetch(ctx, kind)
}

// scriptedRunner answers commands by their joined arguments. Unknown
// commands print nothing and succeed, like adb exec-out does.
type scriptedRunner struct {
	output map[string]string
}

func (r *scriptedRunner) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	return []byte(r.output[strings.Join(args, " ")]), nil
}

package source

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sdex/configviewer/internal/abx"
	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/settings"
)

// Source returns the raw content of one settings store.
type Source interface {
	Fetch(ctx context.Context, kind settings.Kind) ([]byte, error)
	Name() string
}

// RootChecker is implemented by sources that go through a privileged shell.
type RootChecker interface {
	CheckRoot(ctx context.Context) error
}

// Locator is implemented by sources that read from a single local path per
// kind, which makes them watchable.
type Locator interface {
	Locate(kind settings.Kind) string
}

const (
	NameFiles = "files"
	NameDir   = "dir"
	NameShell = "shell"
	NameADB   = "adb"
)

// Names lists the selectable source names.
func Names() []string {
	return []string{NameADB, NameShell, NameFiles, NameDir}
}

// Options selects and configures a source.
type Options struct {
	Name    string
	Root    string
	Dir     string
	SuPath  string
	ADBPath string
	Serial  string
	Runner  Runner
}

// New builds the source named by opts.Name.
func New(opts Options) (Source, error) {
	switch strings.ToLower(opts.Name) {
	case NameFiles:
		return &Files{Root: opts.Root}, nil
	case NameDir:
		if opts.Dir == "" {
			return nil, fmt.Errorf("the dir source requires a directory")
		}
		return &Dir{Path: opts.Dir}, nil
	case NameShell:
		return &Shell{SuPath: opts.SuPath, Runner: opts.Runner}, nil
	case NameADB, "":
		return &ADB{ADBPath: opts.ADBPath, Serial: opts.Serial, Runner: opts.Runner}, nil
	default:
		return nil, fmt.Errorf("unknown source %q (expected one of %s)", opts.Name, strings.Join(Names(), ", "))
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadText fetches a store and returns it as XML text, converting binary XML
// and dropping a UTF-8 byte order mark.
func ReadText(ctx context.Context, src Source, kind settings.Kind) (string, error) {
	data, err := src.Fetch(ctx, kind)
	if err != nil {
		return "", err
	}
	return Decode(data)
}

// Decode converts raw store content to XML text.
func Decode(data []byte) (string, error) {
	if abx.IsBinary(data) {
		text, err := abx.ToText(data)
		if err != nil {
			return "", fmt.Errorf("decoding binary XML: %w", err)
		}
		return text, nil
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

func unavailable(path string, err error) error {
	return fmt.Errorf("%w: reading %s: %v", kerrors.ErrSourceUnavailable, path, err)
}

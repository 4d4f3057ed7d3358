package source

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/settings"
)

const defaultSuPath = "su"

// Shell reads the stores through a local root shell. It is meant to run on
// the device itself, e.g. from a terminal app.
type Shell struct {
	SuPath string
	Runner Runner
}

func (s *Shell) Name() string {
	return NameShell
}

func (s *Shell) su() string {
	if s.SuPath == "" {
		return defaultSuPath
	}
	return s.SuPath
}

func (s *Shell) Fetch(ctx context.Context, kind settings.Kind) ([]byte, error) {
	path := settings.PathFor(kind)
	out, err := runnerOrDefault(s.Runner).Run(ctx, s.su(), "-c", "cat "+shellQuote(path))
	if err != nil {
		return nil, unavailable(path, err)
	}
	return out, nil
}

// CheckRoot verifies su grants uid 0.
func (s *Shell) CheckRoot(ctx context.Context) error {
	out, err := runnerOrDefault(s.Runner).Run(ctx, s.su(), "-c", "id -u")
	return rootResult(out, err)
}

func rootResult(out []byte, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrRootNotGranted, err)
	}
	if uid := strings.TrimSpace(string(out)); uid != "0" {
		return fmt.Errorf("%w: su runs as uid %q", kerrors.ErrRootNotGranted, uid)
	}
	return nil
}

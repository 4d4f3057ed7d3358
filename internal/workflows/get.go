package workflows

import (
	"context"
	"fmt"

	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/settings"
	"github.com/sdex/configviewer/internal/source"
)

// GetOptions configures the get workflow.
type GetOptions struct {
	Source source.Source
	Kind   settings.Kind

	// Name is the exact setting name.
	Name string

	// Package restricts the lookup to one package when set. A pointer to
	// the empty string selects settings without a package.
	Package *string

	HistoryPath string
}

// GetResult contains every setting matching the lookup.
type GetResult struct {
	Kind    settings.Kind
	Matches []settings.Match
}

// Get loads a store and looks up a setting by name.
//
// Returns ErrSettingNotFound when no setting matches.
func Get(ctx context.Context, opts GetOptions) (*GetResult, error) {
	loaded, err := Load(ctx, LoadOptions{
		Source:      opts.Source,
		Kind:        opts.Kind,
		HistoryPath: opts.HistoryPath,
	})
	if err != nil {
		return nil, err
	}

	matches := settings.Find(loaded.Groups, opts.Name, opts.Package)
	if len(matches) == 0 {
		if opts.Package != nil {
			return nil, fmt.Errorf("%w: %q in package %q of %s", kerrors.ErrSettingNotFound, opts.Name, *opts.Package, loaded.Kind)
		}
		return nil, fmt.Errorf("%w: %q in %s", kerrors.ErrSettingNotFound, opts.Name, loaded.Kind)
	}

	return &GetResult{Kind: loaded.Kind, Matches: matches}, nil
}

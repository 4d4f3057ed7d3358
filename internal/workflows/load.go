package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/sdex/configviewer/internal/configs"
	"github.com/sdex/configviewer/internal/history"
	"github.com/sdex/configviewer/internal/settings"
	"github.com/sdex/configviewer/internal/source"
)

// LoadOptions configures the load workflow.
type LoadOptions struct {
	// Source provides the raw store content.
	Source source.Source

	// Kind selects the store to load.
	Kind settings.Kind

	// Filter narrows the result. The zero value keeps everything.
	Filter settings.Filter

	// Preferences, when set, records Kind as the last loaded kind and is
	// saved after a successful load.
	Preferences *configs.Preferences

	// HistoryPath is the load history log. Empty disables history.
	HistoryPath string
}

// LoadResult contains the outcome of a load.
type LoadResult struct {
	Kind   settings.Kind
	Path   string
	Source string

	// Groups are the filtered settings, sorted by package then name.
	Groups []settings.Group

	// Total is the number of settings in the store before filtering.
	Total int

	Duration time.Duration

	// PreferencesErr is set when the last loaded kind could not be saved.
	// The load itself still succeeded.
	PreferencesErr error
}

// Load reads, decodes and parses one settings store.
//
// Returns ErrUnknownKind for an invalid kind, ErrRootNotGranted when a
// privileged source is denied root, the source's error when the store cannot
// be read, and ErrMalformedInput when it cannot be parsed.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("no settings source configured")
	}
	kind, err := settings.ParseKind(string(opts.Kind))
	if err != nil {
		return nil, err
	}
	if err := opts.Filter.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	entry := history.Entry{Kind: kind.String(), Source: opts.Source.Name()}

	groups, err := checkRootAndFetch(ctx, opts.Source, kind)
	if err != nil {
		entry.Error = err.Error()
		history.Log(opts.HistoryPath, entry)
		return nil, err
	}

	entry.Groups = len(groups)
	entry.Settings = settings.Count(groups)
	history.Log(opts.HistoryPath, entry)

	filtered, err := opts.Filter.Apply(groups)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{
		Kind:     kind,
		Path:     settings.PathFor(kind),
		Source:   opts.Source.Name(),
		Groups:   filtered,
		Total:    entry.Settings,
		Duration: time.Since(start),
	}
	if loc, ok := opts.Source.(source.Locator); ok {
		result.Path = loc.Locate(kind)
	}

	if opts.Preferences != nil {
		opts.Preferences.CurrentFile = kind.String()
		result.PreferencesErr = configs.SavePreferences(opts.Preferences)
	}

	return result, nil
}

// checkRootAndFetch refuses to read from a privileged source that does not
// grant root, since its error text would otherwise arrive as store content.
func checkRootAndFetch(ctx context.Context, src source.Source, kind settings.Kind) ([]settings.Group, error) {
	if rc, ok := src.(source.RootChecker); ok {
		if err := rc.CheckRoot(ctx); err != nil {
			return nil, fmt.Errorf("reading %s settings: %w", kind, err)
		}
	}
	return fetchAndParse(ctx, src, kind)
}

func fetchAndParse(ctx context.Context, src source.Source, kind settings.Kind) ([]settings.Group, error) {
	text, err := source.ReadText(ctx, src, kind)
	if err != nil {
		return nil, fmt.Errorf("reading %s settings: %w", kind, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	groups, err := settings.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing %s settings: %w", kind, err)
	}
	return groups, nil
}

// ResolveKind picks the kind to load: the explicit argument, else the last
// loaded kind from prefs, else config.
func ResolveKind(arg string, prefs *configs.Preferences) (settings.Kind, error) {
	if arg != "" {
		return settings.ParseKind(arg)
	}
	return prefs.CurrentKind(settings.KindConfig), nil
}

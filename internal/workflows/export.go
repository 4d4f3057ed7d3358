package workflows

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/sdex/configviewer/internal/configs"
	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/settings"
	"github.com/sdex/configviewer/internal/source"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported export formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat converts a format name, accepting "yml" for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q (expected json, yaml or toml)", kerrors.ErrUnsupportedFormat, name)
	}
}

// ExportOptions configures the export workflow.
type ExportOptions struct {
	Source source.Source

	// Kinds are the stores to export. Empty means all four.
	Kinds []settings.Kind

	Filter settings.Filter
	Format Format

	// OutputPath receives the encoded document when set. It is replaced
	// atomically.
	OutputPath string

	HistoryPath string
}

// StoreSettings is the parse result of one store.
type StoreSettings struct {
	Kind   settings.Kind
	Groups []settings.Group
}

// ExportResult contains the outcome of an export.
type ExportResult struct {
	// Stores are in the order the kinds were requested.
	Stores []StoreSettings

	// Data is the encoded document.
	Data []byte

	SettingCount int
	OutputPath   string
}

// Export loads the requested stores concurrently and encodes them into one
// document keyed by kind. The first failing store cancels the others and
// its error is returned.
//
// Returns ErrUnsupportedFormat for an unknown format.
func Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}

	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = settings.Kinds()
	}
	kinds = uniqueKinds(kinds)

	stores := make([]StoreSettings, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			loaded, err := Load(gctx, LoadOptions{
				Source:      opts.Source,
				Kind:        kind,
				Filter:      opts.Filter,
				HistoryPath: opts.HistoryPath,
			})
			if err != nil {
				return err
			}
			stores[i] = StoreSettings{Kind: loaded.Kind, Groups: loaded.Groups}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data, err := Encode(stores, format)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{Stores: stores, Data: data}
	for _, s := range stores {
		result.SettingCount += settings.Count(s.Groups)
	}

	if opts.OutputPath != "" {
		if dir := filepath.Dir(opts.OutputPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating output directory: %w", err)
			}
		}
		if err := configs.WriteFileAtomic(opts.OutputPath, data, 0644); err != nil {
			return nil, fmt.Errorf("writing export: %w", err)
		}
		result.OutputPath = opts.OutputPath
	}

	return result, nil
}

// Encode renders stores as a document whose top-level keys are the kind
// names. Absent values are null in JSON and YAML and omitted in TOML, which
// has no null.
func Encode(stores []StoreSettings, format Format) ([]byte, error) {
	doc := make(map[string][]settings.Group, len(stores))
	for _, s := range stores {
		groups := s.Groups
		if groups == nil {
			groups = []settings.Group{}
		}
		doc[s.Kind.String()] = groups
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("encoding TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", kerrors.ErrUnsupportedFormat, format)
	}
}

func uniqueKinds(kinds []settings.Kind) []settings.Kind {
	seen := make(map[settings.Kind]bool, len(kinds))
	result := make([]settings.Kind, 0, len(kinds))
	for _, k := range kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, k)
	}
	return result
}

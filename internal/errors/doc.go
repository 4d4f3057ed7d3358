// Package errors provides typed error values for configviewer.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Input errors: the settings document cannot be read (ErrMalformedInput, ErrInvalidABX)
//   - Source errors: the settings store cannot be reached (ErrSourceUnavailable, ErrRootNotGranted, ErrNoDevice)
//   - Lookup errors: the requested item does not exist (ErrUnknownKind, ErrSettingNotFound)
//   - Usage errors: invalid options (ErrUnsupportedFormat, ErrInvalidConfigKey, ErrWatchUnsupported)
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading %s: %w", path, errors.ErrSourceUnavailable)
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Load(ctx, opts)
//	if errors.Is(err, kerrors.ErrRootNotGranted) {
//	    // Show user-friendly message
//	}
package errors

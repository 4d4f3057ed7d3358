// Package workflows provides high-level orchestration for configviewer commands.
//
// Workflows coordinate the settings source, the parser, preferences and the
// load history to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns
// like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Builds the settings source
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Load: Reads one settings store, parses and filters it
//   - Get: Looks up a single setting by name
//   - Export: Loads several stores concurrently and encodes them
//   - Doctor: Checks root access and the readability of every store
//   - Watch: Reloads a store whenever its file changes
//
// Loader runs loads in the background where only the most recently
// requested load delivers a result.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Load(ctx, opts)
//	if errors.Is(err, kerrors.ErrRootNotGranted) {
//	    // Explain how to grant root to the shell
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Cancelling it stops the running shell or adb command.
package workflows

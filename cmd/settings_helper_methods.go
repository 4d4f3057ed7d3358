package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/ui"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a cleanup function. The cleanup function may be called early, before
// rendering output, and again from a defer; only the first call has an effect.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verboseFlag, debugFlag bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	quiet := !verboseFlag && !debugFlag
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			if quiet {
				log.SetOutput(os.Stderr)
			}

			finalMsg := ""
			if s.FinalMSG != "" {
				finalMsg = ui.EnsureNewline(s.FinalMSG)
				// Clear FinalMSG so s.Stop() doesn't print it.
				s.FinalMSG = ""
			}

			if quiet {
				s.Stop()
			}

			// Print final message to stdout (for tests to capture).
			if finalMsg != "" {
				fmt.Print(finalMsg)
			}
		})
	}

	return s, cleanup
}

// formatSettingsError formats a workflow error for display to the user.
func formatSettingsError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrRootNotGranted):
		return ui.Error.Sprint("✗") + " Root permission is not granted\n" +
			ui.Info.Sprint("→") + " Grant root to the shell in your root manager, then run " + ui.Code.Sprint("configviewer settings doctor")

	case errors.Is(err, kerrors.ErrNoDevice):
		return ui.Error.Sprint("✗") + " No device attached\n" +
			ui.Info.Sprint("→") + " Connect a device with USB debugging enabled, or read pulled files with " + ui.Flag.Sprint("--dir")

	case errors.Is(err, kerrors.ErrSourceUnavailable):
		return ui.Error.Sprint("✗") + " Could not read the settings store: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("configviewer settings doctor") + " to check the source"

	case errors.Is(err, kerrors.ErrMalformedInput), errors.Is(err, kerrors.ErrInvalidABX):
		return ui.Error.Sprint("✗") + " The settings store could not be parsed: " + err.Error()

	case errors.Is(err, kerrors.ErrUnknownKind):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("configviewer settings kinds") + " to see the available kinds"

	case errors.Is(err, kerrors.ErrWatchUnsupported):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Only the " + ui.Highlight.Sprint("files") + " and " + ui.Highlight.Sprint("dir") + " sources can be watched"

	case errors.Is(err, kerrors.ErrSettingNotFound),
		errors.Is(err, kerrors.ErrUnsupportedFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// reportedError marks a failure whose message has already been printed. The
// command still exits non-zero, but main does not print it again.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrRootNotGranted),
		errors.Is(err, kerrors.ErrNoDevice),
		errors.Is(err, kerrors.ErrSourceUnavailable),
		errors.Is(err, kerrors.ErrMalformedInput),
		errors.Is(err, kerrors.ErrInvalidABX),
		errors.Is(err, kerrors.ErrUnknownKind),
		errors.Is(err, kerrors.ErrWatchUnsupported),
		errors.Is(err, kerrors.ErrSettingNotFound),
		errors.Is(err, kerrors.ErrUnsupportedFormat):
		return false
	default:
		return true
	}
}

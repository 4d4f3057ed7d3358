package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sdex/configviewer/internal/configs"
	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/settings"
	"github.com/sdex/configviewer/internal/source"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Source      string        `json:"source"`
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	Source source.Source
}

// Doctor checks that every settings store can be read through the source.
//
// The doctor workflow checks:
//   - The preferences file parses
//   - An adb device is attached (adb source)
//   - The shell grants root (adb and shell sources)
//   - Each of the four stores can be read and parsed
func Doctor(ctx context.Context, opts DoctorOptions) (*DoctorResult, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("no settings source configured")
	}

	results := []CheckResult{checkPreferences()}

	if adb, ok := opts.Source.(*source.ADB); ok {
		results = append(results, checkDevice(ctx, adb))
	}
	if rc, ok := opts.Source.(source.RootChecker); ok {
		results = append(results, checkRoot(ctx, rc))
	}
	for _, kind := range settings.Kinds() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, checkStore(ctx, opts.Source, kind))
	}

	// Collect suggestions (deduplicated).
	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Source:      opts.Source.Name(),
		Checks:      results,
		Summary:     calculateDoctorSummary(results),
		Suggestions: suggestions,
	}, nil
}

func checkPreferences() CheckResult {
	if _, err := configs.LoadPreferences(); err != nil {
		return CheckResult{
			Name:       "Preferences",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Failed to parse %s: %v", configs.PreferencesPath(), err),
			Suggestion: "Run 'configviewer config reset' to restore the default preferences",
		}
	}
	return CheckResult{
		Name:    "Preferences",
		Status:  CheckPass,
		Message: "Preferences valid",
	}
}

func checkDevice(ctx context.Context, adb *source.ADB) CheckResult {
	devices, err := adb.Devices(ctx)
	if errors.Is(err, kerrors.ErrNoDevice) {
		return CheckResult{
			Name:       "Device",
			Status:     CheckError,
			Message:    "No device attached",
			Suggestion: "Connect a device with USB debugging enabled and accept the authorization prompt",
		}
	}
	if err != nil {
		return CheckResult{
			Name:       "Device",
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to run adb: %v", err),
			Suggestion: "Install the Android platform tools or set adb_path with 'configviewer config set adb_path <path>'",
		}
	}

	if adb.Serial == "" {
		if len(devices) > 1 {
			return CheckResult{
				Name:       "Device",
				Status:     CheckWarning,
				Message:    fmt.Sprintf("%d devices attached", len(devices)),
				Suggestion: "Select a device with --serial or 'configviewer config set serial <serial>'",
			}
		}
		return CheckResult{
			Name:    "Device",
			Status:  CheckPass,
			Message: fmt.Sprintf("Device %s attached", devices[0].Serial),
		}
	}

	for _, d := range devices {
		if d.Serial == adb.Serial {
			return CheckResult{
				Name:    "Device",
				Status:  CheckPass,
				Message: fmt.Sprintf("Device %s attached", d.Serial),
			}
		}
	}
	return CheckResult{
		Name:       "Device",
		Status:     CheckError,
		Message:    fmt.Sprintf("Device %s is not attached", adb.Serial),
		Suggestion: "Check 'adb devices' and the configured serial",
	}
}

func checkRoot(ctx context.Context, rc source.RootChecker) CheckResult {
	err := rc.CheckRoot(ctx)
	if errors.Is(err, kerrors.ErrRootNotGranted) {
		return CheckResult{
			Name:       "Root access",
			Status:     CheckError,
			Message:    "Root permission is not granted",
			Suggestion: "Grant root to the shell in your root manager",
		}
	}
	if err != nil {
		return CheckResult{
			Name:       "Root access",
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to check root: %v", err),
			Suggestion: "Make sure su is installed or set su_path with 'configviewer config set su_path <path>'",
		}
	}
	return CheckResult{
		Name:    "Root access",
		Status:  CheckPass,
		Message: "Root permission granted",
	}
}

func checkStore(ctx context.Context, src source.Source, kind settings.Kind) CheckResult {
	name := kind.Title() + " settings"

	groups, err := fetchAndParse(ctx, src, kind)
	switch {
	case err == nil:
		return CheckResult{
			Name:    name,
			Status:  CheckPass,
			Message: fmt.Sprintf("%d settings in %d packages", settings.Count(groups), len(groups)),
		}
	case errors.Is(err, kerrors.ErrMalformedInput), errors.Is(err, kerrors.ErrInvalidABX):
		return CheckResult{
			Name:    name,
			Status:  CheckError,
			Message: err.Error(),
		}
	default:
		path := settings.PathFor(kind)
		if loc, ok := src.(source.Locator); ok {
			path = loc.Locate(kind)
		}
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    err.Error(),
			Suggestion: "Check that " + path + " exists and is readable by the source",
		}
	}
}

func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, r := range results {
		switch r.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sdex/configviewer/internal/ui"
	"github.com/sdex/configviewer/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	doctorJSONOutput bool
	// doctorExitFunc is the function called to exit with a specific code.
	// Can be overridden for testing.
	doctorExitFunc = os.Exit
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")

	SettingsCmd.AddCommand(doctorCmd)
}

func resetDoctorCommandState() {
	doctorJSONOutput = false
	doctorExitFunc = os.Exit
}

// SetDoctorExitFunc sets the exit function for testing purposes.
func SetDoctorExitFunc(f func(int)) {
	doctorExitFunc = f
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the settings stores can be read",
	Long: `Runs a series of checks against the selected settings source and reports issues.

The doctor command checks:
  - The preferences file parses
  - An adb device is attached (adb source)
  - The shell grants root (adb and shell sources)
  - Each settings store can be read and parsed

Exit codes:
  0 - All checks passed
  1 - Warnings found (non-critical issues)
  2 - Errors found (critical issues)

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting doctor command")

	src, err := newSource()
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to set up the settings source: %w", err)
	}

	spinner, cleanup := startSpinner("Running health checks...", verbose, debug)
	defer cleanup()

	result, err := workflows.Doctor(cmd.Context(), workflows.DoctorOptions{Source: src})
	if err != nil {
		spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to run health checks: " + err.Error()
		return err
	}

	for _, check := range result.Checks {
		Logger.Debugf("Check %s: status=%s, message=%s", check.Name, check.Status.String(), check.Message)
	}
	cleanup()

	if doctorJSONOutput {
		if err := outputDoctorJSON(result); err != nil {
			return err
		}
	} else {
		printDoctorResults(result)
	}

	// Set exit code based on results.
	if result.Summary.Errors > 0 {
		doctorExitFunc(2)
	} else if result.Summary.Warnings > 0 {
		doctorExitFunc(1)
	}
	return nil
}

// outputDoctorJSON outputs the result as JSON.
func outputDoctorJSON(result *workflows.DoctorResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// printDoctorResults prints the doctor results in a human-readable format.
func printDoctorResults(result *workflows.DoctorResult) {
	fmt.Printf("Checking the %s source...\n", ui.Highlight.Sprint(result.Source))
	fmt.Println()

	for _, check := range result.Checks {
		var statusIcon string
		switch check.Status {
		case workflows.CheckPass:
			statusIcon = ui.Success.Sprint("✓")
		case workflows.CheckWarning:
			statusIcon = ui.Warning.Sprint("⚠")
		case workflows.CheckError:
			statusIcon = ui.Error.Sprint("✗")
		}
		fmt.Printf("%s %s: %s\n", statusIcon, check.Name, check.Message)
	}

	fmt.Println()
	fmt.Printf("Summary: %d passed", result.Summary.Passed)
	if result.Summary.Warnings > 0 {
		fmt.Printf(", %s", ui.Warning.Sprint(fmt.Sprintf("%d warning(s)", result.Summary.Warnings)))
	}
	if result.Summary.Errors > 0 {
		fmt.Printf(", %s", ui.Error.Sprint(fmt.Sprintf("%d error(s)", result.Summary.Errors)))
	}
	fmt.Println()

	if len(result.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("Suggestions:")
		for _, suggestion := range result.Suggestions {
			fmt.Printf("  %s %s\n", ui.Info.Sprint("→"), suggestion)
		}
	}
}

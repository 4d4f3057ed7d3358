package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sdex/configviewer/internal/configs"
	"github.com/sdex/configviewer/internal/settings"
	"github.com/sdex/configviewer/internal/ui"
	"github.com/sdex/configviewer/internal/utils"
	"github.com/sdex/configviewer/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	getPackage string
	getCopy    string
	getJSON    bool

	// copyText writes to the clipboard. Can be overridden for testing.
	copyText = utils.CopyText

	errInvalidCopyTarget = errors.New("--copy must be name or value")
)

func init() {
	getCmd.Flags().StringVarP(&getPackage, "package", "p", "", "only look in this package (use \"\" for settings without one)")
	getCmd.Flags().StringVar(&getCopy, "copy", "", "copy the setting's name or value to the clipboard")
	getCmd.Flags().BoolVar(&getJSON, "json", false, "output as JSON")

	SettingsCmd.AddCommand(getCmd)
}

// resetGetCommandState resets the get command's global state for testing.
func resetGetCommandState() {
	getPackage = ""
	getCopy = ""
	getJSON = false
	copyText = utils.CopyText
}

var getCmd = &cobra.Command{
	Use:   "get <kind> <name>",
	Short: "Show a single setting in full",
	Long: `Shows the full value of a setting and the package that owns it.

A name can appear in several packages, and occasionally more than once in
the same package; every match is shown unless --package narrows it.

Examples:
  configviewer settings get global adb_enabled
  configviewer settings get secure android_id --copy value
  configviewer settings get system volume_music --package android --json`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting get command")

	if getCopy != "" && getCopy != "name" && getCopy != "value" {
		fmt.Println(ui.Error.Sprint("✗") + " " + ui.Flag.Sprint("--copy") + " must be " + ui.Highlight.Sprint("name") + " or " + ui.Highlight.Sprint("value"))
		return reported(errInvalidCopyTarget)
	}

	kind, err := settings.ParseKind(args[0])
	if err != nil {
		fmt.Println(formatSettingsError(err))
		return reported(err)
	}

	src, err := newSource()
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to set up the settings source: %w", err)
	}

	var pkg *string
	if cmd.Flags().Changed("package") {
		pkg = &getPackage
	}

	spinner, cleanup := startSpinner(fmt.Sprintf("Loading %s settings...", kind), verbose, debug)
	defer cleanup()

	result, err := workflows.Get(cmd.Context(), workflows.GetOptions{
		Source:      src,
		Kind:        kind,
		Name:        args[1],
		Package:     pkg,
		HistoryPath: configs.HistoryPath(),
	})
	if err != nil {
		spinner.FinalMSG = formatSettingsError(err)
		if isUnexpectedError(err) {
			return err
		}
		return reported(err)
	}
	Logger.Debugf("Found %d matches for %s", len(result.Matches), args[1])
	cleanup()

	if getJSON {
		if err := printJSON(result.Matches); err != nil {
			return err
		}
	} else {
		for i, m := range result.Matches {
			if i > 0 {
				fmt.Println()
			}
			ui.RenderDetail(os.Stdout, m.Package, m.Setting)
		}
	}

	if getCopy != "" {
		return copyMatch(result.Matches)
	}
	return nil
}

func copyMatch(matches []settings.Match) error {
	if len(matches) > 1 {
		Logger.Warnf("%d settings match, copying the first", len(matches))
	}
	s := matches[0].Setting

	text := s.Name
	if getCopy == "value" {
		text = s.DisplayValue()
	}
	if err := copyText(text); err != nil {
		return Logger.ErrorfAndReturn("Failed to copy the setting's %s to the clipboard: %w", getCopy, err)
	}
	fmt.Printf("%s Copied %s to the clipboard\n", ui.Success.Sprint("✓"), getCopy)
	return nil
}

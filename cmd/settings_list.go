package cmd

import (
	"encoding/json"
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
	listPackage string
	listName    string
	listJSON    bool
	listFull    bool
)

func init() {
	listCmd.Flags().StringVarP(&listPackage, "package", "p", "", "only show packages matching this glob")
	listCmd.Flags().StringVarP(&listName, "name", "n", "", "only show settings whose name matches this glob")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	listCmd.Flags().BoolVar(&listFull, "full", false, "do not truncate values to the terminal width")

	SettingsCmd.AddCommand(listCmd)
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listPackage = ""
	listName = ""
	listJSON = false
	listFull = false
}

var listCmd = &cobra.Command{
	Use:   "list [kind]",
	Short: "List the settings of one store",
	Long: `Lists every setting of a settings store, grouped by owning package.

Packages and settings are sorted by name. Settings without a value show
null. Without a kind, the last successfully loaded kind is used, or config
the first time.

Examples:
  configviewer settings list global
  configviewer settings list secure --package android
  configviewer settings list system --name 'screen_*'
  configviewer settings list global --dir ./pulled --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

// listOutput is the JSON document printed by list --json.
type listOutput struct {
	Kind   settings.Kind    `json:"kind"`
	Source string           `json:"source"`
	Path   string           `json:"path"`
	Groups []settings.Group `json:"groups"`
}

func runList(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting list command")

	kindArg := ""
	if len(args) > 0 {
		kindArg = args[0]
	}
	kind, err := workflows.ResolveKind(kindArg, preferences)
	if err != nil {
		fmt.Println(formatSettingsError(err))
		return reported(err)
	}

	src, err := newSource()
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to set up the settings source: %w", err)
	}

	spinner, cleanup := startSpinner(fmt.Sprintf("Loading %s settings...", kind), verbose, debug)
	defer cleanup()

	result, err := workflows.Load(cmd.Context(), workflows.LoadOptions{
		Source:      src,
		Kind:        kind,
		Filter:      settings.Filter{Package: listPackage, Name: listName},
		Preferences: preferences,
		HistoryPath: configs.HistoryPath(),
	})
	if err != nil {
		spinner.FinalMSG = formatSettingsError(err)
		if isUnexpectedError(err) {
			return err
		}
		return reported(err)
	}
	if result.PreferencesErr != nil {
		Logger.Warnf("Failed to remember the selected kind: %v", result.PreferencesErr)
	}

	Logger.Debugf("Loaded %d settings from %s in %s", result.Total, result.Path, result.Duration)
	cleanup()

	if listJSON {
		return printJSON(listOutput{
			Kind:   result.Kind,
			Source: result.Source,
			Path:   result.Path,
			Groups: result.Groups,
		})
	}

	if len(result.Groups) == 0 {
		if result.Total == 0 {
			fmt.Printf("No settings found in %s.\n", ui.Path.Sprint(result.Path))
		} else {
			fmt.Println("No settings match the filters.")
		}
		return nil
	}

	width := 0
	if !listFull {
		if w, ok := utils.TerminalWidth(); ok {
			width = w
		}
	}
	ui.RenderGroups(os.Stdout, result.Groups, ui.ListOptions{Width: width})

	fmt.Println()
	fmt.Printf("%s %s in %s %s\n",
		ui.Success.Sprint("✓"),
		utils.Plural(settings.Count(result.Groups), "setting"),
		utils.Plural(len(result.Groups), "package"),
		ui.Muted.Sprint(result.Path))
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

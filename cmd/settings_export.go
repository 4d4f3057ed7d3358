package cmd

import (
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
	exportFormat  string
	exportOutput  string
	exportPackage string
	exportName    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(workflows.FormatJSON), "output format: json, yaml or toml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	exportCmd.Flags().StringVarP(&exportPackage, "package", "p", "", "only export packages matching this glob")
	exportCmd.Flags().StringVarP(&exportName, "name", "n", "", "only export settings whose name matches this glob")

	SettingsCmd.AddCommand(exportCmd)
}

// resetExportCommandState resets the export command's global state for testing.
func resetExportCommandState() {
	exportFormat = string(workflows.FormatJSON)
	exportOutput = ""
	exportPackage = ""
	exportName = ""
}

var exportCmd = &cobra.Command{
	Use:   "export [kind...]",
	Short: "Export settings stores as JSON, YAML or TOML",
	Long: `Loads one or more settings stores and writes them as a single document
keyed by kind. Without kinds, all four stores are exported.

Absent values are written as null in JSON and YAML. TOML has no null, so
those values are left out.

Examples:
  configviewer settings export > settings.json
  configviewer settings export global secure --format yaml -o snapshot.yaml
  configviewer settings export --dir ./pulled --format toml`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting export command")

	format, err := workflows.ParseFormat(exportFormat)
	if err != nil {
		fmt.Println(formatSettingsError(err))
		return reported(err)
	}

	kinds := make([]settings.Kind, 0, len(args))
	for _, arg := range args {
		kind, err := settings.ParseKind(arg)
		if err != nil {
			fmt.Println(formatSettingsError(err))
			return reported(err)
		}
		kinds = append(kinds, kind)
	}

	output, err := utils.ExpandPath(exportOutput)
	if err != nil {
		return Logger.ErrorfAndReturn("Invalid output path: %w", err)
	}

	src, err := newSource()
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to set up the settings source: %w", err)
	}

	spinner, cleanup := startSpinner("Exporting settings...", verbose, debug)
	defer cleanup()

	result, err := workflows.Export(cmd.Context(), workflows.ExportOptions{
		Source:      src,
		Kinds:       kinds,
		Filter:      settings.Filter{Package: exportPackage, Name: exportName},
		Format:      format,
		OutputPath:  output,
		HistoryPath: configs.HistoryPath(),
	})
	if err != nil {
		spinner.FinalMSG = formatSettingsError(err)
		if isUnexpectedError(err) {
			return err
		}
		return reported(err)
	}

	if result.OutputPath == "" {
		cleanup()
		_, err := os.Stdout.Write(result.Data)
		return err
	}

	spinner.FinalMSG = fmt.Sprintf("%s Exported %s from %s to %s",
		ui.Success.Sprint("✓"),
		utils.Plural(result.SettingCount, "setting"),
		utils.Plural(len(result.Stores), "store"),
		ui.Path.Sprint(result.OutputPath))
	return nil
}

package cmd

import (
	"fmt"

	"github.com/sdex/configviewer/internal/settings"
	"github.com/sdex/configviewer/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	SettingsCmd.AddCommand(kindsCmd)
	SettingsCmd.AddCommand(pathCmd)
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the settings stores",
	Long: `Lists the four settings stores and their paths on the device. The kind
that list uses when none is given is marked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting kinds command")

		current := preferences.CurrentKind(settings.KindConfig)
		for _, kind := range settings.Kinds() {
			marker := " "
			if kind == current {
				marker = ui.Success.Sprint("*")
			}
			fmt.Printf("%s %-7s %s\n", marker, kind, ui.Path.Sprint(settings.PathFor(kind)))
		}
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <kind>",
	Short: "Print the on-device path of a settings store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := settings.ParseKind(args[0])
		if err != nil {
			fmt.Println(formatSettingsError(err))
			return nil
		}
		fmt.Println(settings.PathFor(kind))
		return nil
	},
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/sdex/configviewer/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "configviewer",
	SilenceUsage:  true,
	SilenceErrors: true,
	Short:         "configviewer - view the system settings stores of an Android device.",
	Long: `configviewer reads the config, global, secure and system settings of an
Android device through a root shell, adb, or pulled files, and shows them
grouped by owning package.

Usage:
  configviewer <command> [flags]

Available Commands:
  settings   List, inspect, export and watch settings stores
  config     Manage stored preferences

Run 'configviewer help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("configviewer", "small", "green", true)
		banner.Print()
		fmt.Println()
		fmt.Printf("%s Run %s to see available commands.\n", color.CyanString("→"), color.YellowString("configviewer --help"))
	},
}

func init() {
	rootCmd.AddCommand(cmd.SettingsCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !cmd.IsReported(err) {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionShowFull bool

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "include commit and build date")
}

var versionColor = color.New(color.FgYellow, color.Bold)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show webedit version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "webedit %s\n", versionColor.Sprint(version))
		if versionShowFull {
			fmt.Fprintf(out, "commit: %s\nbuilt:  %s\n", commit, date)
		}
	},
}

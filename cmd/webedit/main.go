// Package main is the entry point for the webedit command, a batch host
// that runs WebEdit commands over files.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "webedit",
	Short: "Expand HTML tags and snippets in text files",
	Long: `webedit replaces short tags with the templates defined in WebEdit.ini,
wraps selections with [Commands] entries and suggests similar tags when a
tag is unknown.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(wrapCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	addGlobalFlags(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iconfit/iconfit/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the iconfit version",
	Run: func(cmd *cobra.Command, args []string) {
		if !isTerminal(os.Stdout) {
			color.NoColor = true
		}
		fmt.Fprintf(cmd.OutOrStdout(), "iconfit %s\n", version.Pretty())
		if version.Commit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", version.Commit)
		}
		if version.Date != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", version.Date)
		}
	},
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FlywheelStudio/ulink-ai-setup/cmd"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/install"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of ulink-setup, and the MCP server package it installs.`,
	Run: func(c *cobra.Command, _ []string) {
		w := c.OutOrStdout()
		fmt.Fprintln(w, cmd.VersionString())
		fmt.Fprintf(w, "  commit: %s\n", cmd.Commit)
		fmt.Fprintf(w, "  built:  %s\n", cmd.Date)
		fmt.Fprintf(w, "  server: %s\n", install.ServerPackage)
	},
}

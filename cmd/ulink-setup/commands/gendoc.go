package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown reference pages for the CLI",
	Hidden: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		outputDir, _ := cmd.Flags().GetString("dir")
		if outputDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "Pass --dir")
		}

		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "creating output directory"), "")
		}

		rootCmd.DisableAutoGenTag = true
		if err := doc.GenMarkdownTreeCustom(rootCmd, outputDir, filePrepender, linkHandler); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "generating markdown"), "")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", outputDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringP("dir", "d", "", "output directory for documentation")
	rootCmd.AddCommand(genDocCmd)
}

// filePrepender adds a front matter block naming the command,
// e.g. ulink-setup_status.md becomes "ulink-setup status".
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	title := strings.ReplaceAll(strings.TrimSuffix(name, filepath.Ext(name)), "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s"
---
`, title, title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/reference/" + strings.ToLower(base) + "/"
}

package commands

import (
	"encoding/json"
	"io"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/paths"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
)

// Status output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var statusFormats = []string{formatTable, formatJSON, formatYAML}

var statusFormat string

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", formatTable,
		"output format: "+strings.Join(statusFormats, ", "))
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which AI tools are detected and configured",
	Long: `Show every supported AI tool, whether it is installed on this machine,
and whether its config already has the ulink MCP server entry.

Nothing is modified. Claude Code manages its own config through its plugin
system, so its configured column shows "-".

Examples:
  # Table view
  ulink-setup status

  # Machine-readable output
  ulink-setup status --format json
  ulink-setup status --format yaml`,
	PreRunE: validateStatusFlags,
	RunE:    runStatus,
}

func validateStatusFlags(_ *cobra.Command, _ []string) error {
	if !slices.Contains(statusFormats, statusFormat) {
		err := errors.Newf("invalid format %q", statusFormat)
		return errors.NewUserError(err, "Valid formats: "+strings.Join(statusFormats, ", "))
	}
	return nil
}

// platformStatus is one row of status output.
type platformStatus struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Detected   bool   `json:"detected" yaml:"detected"`
	Configured *bool  `json:"configured,omitempty" yaml:"configured,omitempty"`
	ConfigPath string `json:"config_path,omitempty" yaml:"config_path,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	reg, deps, err := buildRegistry(cmd)
	if err != nil {
		return err
	}

	platforms := reg.All()
	if len(platformFlag) > 0 {
		platforms, err = reg.Select(platformFlag)
		if err != nil {
			return classifyError(cmd.Context(), err)
		}
	}

	rows := collectStatus(platforms, deps.Install.Redactor)
	if err := writeStatus(cmd.OutOrStdout(), statusFormat, rows); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing status"), "")
	}
	return nil
}

// collectStatus inspects each platform without modifying anything.
func collectStatus(platforms []platform.Platform, redactor paths.Redactor) []platformStatus {
	rows := make([]platformStatus, 0, len(platforms))
	for _, p := range platforms {
		d := p.Descriptor()
		row := platformStatus{
			ID:         d.ID,
			Name:       d.DisplayName,
			Detected:   p.Detect(),
			ConfigPath: redactor.Redact(d.ConfigPath),
		}

		if in, ok := p.(platform.Inspector); ok {
			configured, err := in.Configured()
			if err != nil {
				row.Error = err.Error()
			} else {
				row.Configured = &configured
			}
		}

		rows = append(rows, row)
	}
	return rows
}

func writeStatus(w io.Writer, format string, rows []platformStatus) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeStatusTable(w, rows)
	}
}

func writeStatusTable(w io.Writer, rows []platformStatus) error {
	headers := []string{"ID", "Name", "Detected", "Configured", "Config"}

	table := tablewriter.NewWriter(w)
	table.Options(
		tablewriter.WithHeader(headers),
		tablewriter.WithRendition(
			tw.Rendition{
				Borders: tw.Border{
					Left:   tw.State(1),
					Top:    tw.State(1),
					Right:  tw.State(1),
					Bottom: tw.State(1),
				},
			},
		),
		tablewriter.WithAlignment(tw.MakeAlign(len(headers), tw.AlignLeft)),
	)

	for _, r := range rows {
		if err := table.Append([]string{
			r.ID,
			r.Name,
			yesNo(r.Detected),
			configuredCell(r),
			dash(r.ConfigPath),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func configuredCell(r platformStatus) string {
	switch {
	case r.Error != "":
		return "error"
	case r.Configured == nil:
		return "-"
	default:
		return yesNo(*r.Configured)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

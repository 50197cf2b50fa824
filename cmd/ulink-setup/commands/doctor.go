package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/doctor"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

var (
	doctorJSON bool
	doctorAll  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false,
		"show passing checks too")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose problems that would stop ulink from working",
	Long: `Run read-only diagnostic checks: the Node.js runtime the MCP server needs,
the skill bundle setup copies, which AI tools are detected and configured,
and the permissions of their config files.

Exit codes:
  0 - All checks passed
  1 - Warnings present, no errors
  2 - Errors present`,
	RunE: runDoctor,
}

// errDoctorWarnings and errDoctorErrors carry the exit code after the
// report has been printed.
var (
	errDoctorWarnings = errors.Wrap(errAlreadyReported, "doctor found warnings")
	errDoctorErrors   = errors.Wrap(errAlreadyReported, "doctor found errors")
)

func runDoctor(cmd *cobra.Command, _ []string) error {
	reg, deps, err := buildRegistry(cmd)
	if err != nil {
		return err
	}
	platforms := reg.All()

	runner := doctor.NewRunner(
		doctor.NewRuntimeCheck(deps.Prober),
		doctor.NewSkillBundleCheck(deps.Fs(), deps.SkillSource, deps.Install.Redactor),
		doctor.NewPlatformCheck(platforms),
		doctor.NewPermissionCheck(deps.Fs(), platforms, deps.Install.Redactor),
	)
	report := runner.Run()

	w := cmd.OutOrStdout()
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "encoding JSON"), "")
		}
	} else {
		writeDoctorText(w, report, doctorAll)
	}

	switch {
	case report.HasErrors():
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	case report.HasWarnings():
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	default:
		return nil
	}
}

func writeDoctorText(w io.Writer, report *doctor.Report, showAll bool) {
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}

// Package commands implements the CLI commands for ulink-setup.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/FlywheelStudio/ulink-ai-setup/cmd"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/cli"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/cli/prompt"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/config"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/install"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/logging"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/paths"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/probe"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/proc"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/setup"
)

// debugEnv raises verbosity when no -v flag is given.
const debugEnv = "ULINK_SETUP_DEBUG"

// platformFlag holds the value of the --platform flag.
var platformFlag []string

// assumeYes holds the value of the --yes flag.
var assumeYes bool

// pickerFlag holds the value of the --picker flag.
var pickerFlag string

// skillSourceFlag holds the value of the --skill-source flag.
var skillSourceFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// logFileHandle is the open --log-file, closed by closeLogFile.
var logFileHandle *os.File

// loadedConfig and configLoadErr hold the result of config loading.
var (
	loadedConfig  *config.Config
	configLoadErr error
)

// newDeps builds the platform dependencies for a command run.
var newDeps = defaultDeps

// newSelector builds the interactive selector for a command run.
var newSelector = func(cmd *cobra.Command, picker prompt.Picker) prompt.MultiSelector {
	return prompt.ForTerminal(picker, os.Stdin, cmd.OutOrStdout())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringSliceVarP(&platformFlag, "platform", "p", nil,
		"platform(s) to set up without prompting: "+strings.Join(cli.PlatformIDs(), ", "))
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error log output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&skillSourceFlag, "skill-source", "",
		"directory holding the setup-ulink skill bundle")

	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false,
		"set up every detected platform without prompting")
	rootCmd.Flags().StringVar(&pickerFlag, "picker", "",
		"selection prompt: "+strings.Join(config.Pickers, ", ")+" (default from config)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("ulink-setup version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "ulink-setup",
	Short: "Set up the ULink MCP server and onboarding skill for AI coding assistants",
	Long: `ulink-setup configures the ULink MCP server and the setup-ulink
onboarding skill for the AI coding assistants installed on this machine:
Claude Code, Cursor, Antigravity, and Codex CLI.

Run it with no arguments to pick the tools interactively. Detected tools
are preselected. Existing MCP servers in each tool's config are kept.`,
	Example: `  # Pick tools interactively
  ulink-setup

  # Set up every detected tool without prompting
  ulink-setup --yes

  # Set up specific tools
  ulink-setup --platform cursor,codex

  # See what is detected and configured
  ulink-setup status`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return validateInputs(cmd, args)
	},
	RunE: runSetup,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	var redactor paths.Redactor
	if home, err := paths.ResolveHome(); err == nil {
		redactor = paths.NewRedactor(home)
	}

	primary := logging.NewHandlerFor(logging.Config{
		Level:    level,
		Format:   logging.Format(logFormat),
		Output:   cmd.ErrOrStderr(),
		Redactor: redactor,
	})

	closeLogFile()

	var fileHandler slog.Handler
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		logFileHandle = f
		// File output uses JSON format
		fileHandler = slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(logging.NewMultiHandler(primary, fileHandler))
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// validateInputs checks config loading and the platform and picker flags.
func validateInputs(cmd *cobra.Command, _ []string) error {
	// Skip validation for help and version commands
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	if errs := config.Validate(activeConfig(), cli.PlatformIDs()); len(errs) > 0 {
		logger := logging.FromContext(cmd.Context())
		for _, err := range errs[1:] {
			logger.Warn("invalid config", "error", err)
		}
		return errors.NewConfigError(errs[0])
	}

	var invalid []string
	for _, id := range platformFlag {
		if !slices.Contains(cli.PlatformIDs(), id) {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		err := errors.Wrapf(errors.ErrUnknownPlatform, "%s", strings.Join(invalid, ", "))
		return errors.NewUserError(err, "Valid platforms: "+strings.Join(cli.PlatformIDs(), ", "))
	}

	if pickerFlag != "" && !prompt.Picker(pickerFlag).Valid() {
		err := errors.Newf("invalid picker %q", pickerFlag)
		return errors.NewUserError(err, "Valid pickers: "+strings.Join(config.Pickers, ", "))
	}

	return nil
}

// activeConfig returns the loaded config, or defaults when none was loaded.
func activeConfig() *config.Config {
	if loadedConfig != nil {
		return loadedConfig
	}
	return &config.Config{
		Version:     1,
		SkillSource: paths.DefaultSkillSource(),
		Picker:      string(prompt.PickerCheckbox),
	}
}

// resolvePicker applies the flag over the config value.
func resolvePicker(cfg *config.Config) prompt.Picker {
	if pickerFlag != "" {
		return prompt.Picker(pickerFlag)
	}
	if cfg.Picker != "" {
		return prompt.Picker(cfg.Picker)
	}
	return prompt.PickerCheckbox
}

// resolveSkillSource applies the flag over the config value.
func resolveSkillSource(cfg *config.Config) string {
	if skillSourceFlag != "" {
		return skillSourceFlag
	}
	if cfg.SkillSource != "" {
		return cfg.SkillSource
	}
	return paths.DefaultSkillSource()
}

// defaultDeps wires the real filesystem, PATH prober, and subprocess runner.
func defaultDeps(cmd *cobra.Command, logger *slog.Logger, skillSource string) (platform.Deps, error) {
	home, err := paths.ResolveHome()
	if err != nil {
		return platform.Deps{}, errors.NewSystemError(err, "Set the HOME environment variable")
	}

	return platform.Deps{
		Home:        home,
		SkillSource: skillSource,
		Install: install.Env{
			Fs:       afero.NewOsFs(),
			Out:      cmd.OutOrStdout(),
			Logger:   logger,
			Redactor: paths.NewRedactor(home),
		},
		Prober: probe.New(),
		Runner: proc.NewExecRunner(),
	}, nil
}

// buildRegistry assembles the registry for the current flags and config.
func buildRegistry(cmd *cobra.Command) (*platform.Registry, platform.Deps, error) {
	cfg := activeConfig()
	logger := logging.FromContext(cmd.Context())

	deps, err := newDeps(cmd, logger, resolveSkillSource(cfg))
	if err != nil {
		return nil, platform.Deps{}, err
	}

	reg, err := cli.NewRegistry(deps, cfg.DisabledPlatforms...)
	if err != nil {
		return nil, platform.Deps{}, errors.Wrap(err, "building platform registry")
	}
	return reg, deps, nil
}

func runSetup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	reg, _, err := buildRegistry(cmd)
	if err != nil {
		return err
	}

	o := setup.New(setup.Options{
		Registry:  reg,
		Selector:  newSelector(cmd, resolvePicker(activeConfig())),
		Out:       cmd.OutOrStdout(),
		Logger:    logging.FromContext(ctx),
		Platforms: platformFlag,
		AssumeYes: assumeYes,
	})

	return classifyError(ctx, o.Run(ctx))
}

// classifyError maps a setup failure to an ExitError with the matching exit code.
func classifyError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	switch {
	case errors.Is(err, prompt.ErrInterrupted):
		return errors.NewExitError(err, errors.ExitInterrupted)
	case ctx != nil && ctx.Err() != nil && errors.Is(err, context.Canceled):
		return errors.NewExitError(err, errors.ExitInterrupted)
	case errors.Is(err, errors.ErrUnknownPlatform):
		return errors.NewUserError(err, "Valid platforms: "+strings.Join(cli.PlatformIDs(), ", "))
	case errors.Is(err, prompt.ErrSelectionCancelled):
		return errors.NewUserError(err, "Use --platform or --yes when input is not interactive")
	case errors.Is(err, prompt.ErrInvalidSelection):
		return errors.NewUserError(err, "Enter item numbers separated by commas")
	default:
		return errors.NewSystemError(err, "")
	}
}

// errAlreadyReported marks failures whose details were already printed.
var errAlreadyReported = errors.New("already reported")

// PrintError writes the top-level failure message and any suggestion to w.
// Failures a command has already reported are not repeated.
func PrintError(w io.Writer, err error) {
	if err == nil || errors.Is(err, errAlreadyReported) {
		return
	}
	red := color.New(color.FgRed, color.Bold)
	fmt.Fprintf(w, "%s %s\n", red.Sprint("Setup failed:"), err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}

// Execute runs the root command. Ctrl+C outside the selector cancels the
// command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer closeLogFile()
	return rootCmd.ExecuteContext(ctx)
}

// closeLogFile closes the --log-file opened by setupLogging, if any.
func closeLogFile() {
	if logFileHandle == nil {
		return
	}
	if err := logFileHandle.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing log file: %v\n", err)
	}
	logFileHandle = nil
}

package commands

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/cli/prompt"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/install"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/paths"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
)

const (
	testHome      = "/home/dev"
	testSkillSrc  = "/opt/ulink/skills/setup-ulink"
	claudeInstall = "claude plugin install ulink-onboarding@ulink"
)

type fakeProber map[string]bool

func (f fakeProber) Exists(name string) bool { return f[name] }

type recordingRunner struct {
	calls []string
	fail  map[string]error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	argv := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, argv)
	return r.fail[argv]
}

type fakeSelector struct {
	title   string
	items   []prompt.Item
	indices []int
	err     error
	calls   int
}

func (s *fakeSelector) Select(title string, items []prompt.Item) ([]int, error) {
	s.calls++
	s.title = title
	s.items = items
	return s.indices, s.err
}

// testEnv is the fake world a command runs against.
type testEnv struct {
	fs       afero.Fs
	prober   fakeProber
	runner   *recordingRunner
	selector *fakeSelector

	skillSource string
}

// newTestEnv isolates config, resets flag globals, and swaps the dependency
// constructors for fakes backed by an in-memory filesystem.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Cleanup(xdg.Reload) // runs after t.Setenv restores the variable
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(debugEnv, "")
	xdg.Reload()
	viper.Reset()

	resetFlags()
	t.Cleanup(resetFlags)

	env := &testEnv{
		fs:       afero.NewMemMapFs(),
		prober:   fakeProber{},
		runner:   &recordingRunner{},
		selector: &fakeSelector{},
	}

	require := func(err error) {
		if err != nil {
			t.Fatalf("seeding skill source: %v", err)
		}
	}
	require(env.fs.MkdirAll(filepath.Join(testSkillSrc, "references"), 0o755))
	require(afero.WriteFile(env.fs, filepath.Join(testSkillSrc, "SKILL.md"), []byte("# setup-ulink\n"), 0o644))
	require(afero.WriteFile(env.fs, filepath.Join(testSkillSrc, "references", "ios.md"), []byte("ios\n"), 0o644))

	origDeps, origSelector := newDeps, newSelector
	t.Cleanup(func() {
		newDeps, newSelector = origDeps, origSelector
	})

	newDeps = func(cmd *cobra.Command, logger *slog.Logger, skillSource string) (platform.Deps, error) {
		env.skillSource = skillSource
		return platform.Deps{
			Home:        testHome,
			SkillSource: skillSource,
			Install: install.Env{
				Fs:       env.fs,
				Out:      cmd.OutOrStdout(),
				Logger:   logger,
				Redactor: paths.NewRedactor(testHome),
			},
			Prober: env.prober,
			Runner: env.runner,
		}, nil
	}
	newSelector = func(*cobra.Command, prompt.Picker) prompt.MultiSelector {
		return env.selector
	}

	return env
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func resetFlags() {
	closeLogFile()
	platformFlag = nil
	assumeYes = false
	pickerFlag = ""
	skillSourceFlag = ""
	verbosity = 0
	quiet = false
	logFormat = "text"
	logFile = ""
	statusFormat = formatTable
	doctorJSON = false
	doctorAll = false
	loadedConfig = nil
	configLoadErr = nil
}

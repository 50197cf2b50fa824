package claude

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/install"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/logging"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
)

type fakeProber map[string]bool

func (f fakeProber) Exists(name string) bool { return f[name] }

// scriptedRunner records each invocation and fails those whose argv matches.
type scriptedRunner struct {
	calls []string
	fail  map[string]error
}

func (r *scriptedRunner) Run(_ context.Context, name string, args ...string) error {
	argv := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, argv)
	return r.fail[argv]
}

const (
	addCmd     = "claude plugin marketplace add FlywheelStudio/ulink-ai-setup"
	installCmd = "claude plugin install ulink-onboarding@ulink"
)

func newPlatform(t *testing.T, runner *scriptedRunner, prober fakeProber) (*Platform, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return New(platform.Deps{
		Install: install.Env{Out: out, Logger: logging.ForTest(t)},
		Prober:  prober,
		Runner:  runner,
	}), out
}

func TestDescriptor(t *testing.T) {
	p, _ := newPlatform(t, &scriptedRunner{}, nil)
	d := p.Descriptor()

	assert.Equal(t, "claude-code", d.ID)
	assert.Equal(t, "Claude Code", d.DisplayName)
	assert.Empty(t, d.ConfigPath)
	assert.Empty(t, d.SkillDir)
	assert.Equal(t, []string{"Restart Claude Code", "Run /setup-ulink in your project"}, d.NextSteps)
}

func TestDetect(t *testing.T) {
	p, _ := newPlatform(t, &scriptedRunner{}, fakeProber{"claude": true})
	assert.True(t, p.Detect())

	p, _ = newPlatform(t, &scriptedRunner{}, fakeProber{})
	assert.False(t, p.Detect())
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name       string
		fail       map[string]error
		wantOut    string
		notWantOut string
	}{
		{
			name:       "success",
			wantOut:    "Plugin installed (MCP server + onboarding skill).",
			notWantOut: "Failed to install",
		},
		{
			name:       "marketplace already added",
			fail:       map[string]error{addCmd: errors.New("exit status 1")},
			wantOut:    "Plugin installed (MCP server + onboarding skill).",
			notWantOut: "Failed to install",
		},
		{
			name:       "install fails",
			fail:       map[string]error{installCmd: errors.New("exit status 1")},
			wantOut:    "    " + installCmd + "\n",
			notWantOut: "Plugin installed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &scriptedRunner{fail: tt.fail}
			p, out := newPlatform(t, runner, nil)

			require.NoError(t, p.Setup(context.Background()))

			assert.Equal(t, []string{addCmd, installCmd}, runner.calls)
			assert.Contains(t, out.String(), tt.wantOut)
			assert.NotContains(t, out.String(), tt.notWantOut)
		})
	}
}

func TestSetup_FallbackListsManualCommands(t *testing.T) {
	runner := &scriptedRunner{fail: map[string]error{installCmd: errors.New("boom")}}
	p, out := newPlatform(t, runner, nil)

	require.NoError(t, p.Setup(context.Background()))

	want := "  Failed to install plugin automatically. You can install it manually:\n" +
		"    " + addCmd + "\n" +
		"    " + installCmd + "\n"
	assert.True(t, strings.HasSuffix(out.String(), want), "got:\n%s", out.String())
}

func TestSetup_CancelledContext(t *testing.T) {
	runner := &scriptedRunner{fail: map[string]error{installCmd: errors.New("signal: interrupt")}}
	p, _ := newPlatform(t, runner, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Setup(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

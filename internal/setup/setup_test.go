package setup

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/cli/prompt"
	internalerrors "github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/logging"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// fakePlatform records detection and setup calls into a shared journal.
type fakePlatform struct {
	desc     platform.Descriptor
	detected bool
	setupErr error

	journal     *[]string
	detectCalls int
}

func (f *fakePlatform) Descriptor() platform.Descriptor { return f.desc }

func (f *fakePlatform) Detect() bool {
	f.detectCalls++
	*f.journal = append(*f.journal, "detect "+f.desc.ID)
	return f.detected
}

func (f *fakePlatform) Setup(ctx context.Context) error {
	*f.journal = append(*f.journal, "setup "+f.desc.ID)
	return f.setupErr
}

// fakeSelector returns a fixed answer and records what it was shown.
type fakeSelector struct {
	answer []int
	err    error

	calls int
	title string
	items []prompt.Item
}

func (s *fakeSelector) Select(title string, items []prompt.Item) ([]int, error) {
	s.calls++
	s.title = title
	s.items = items
	return s.answer, s.err
}

type fixture struct {
	registry  *platform.Registry
	platforms []*fakePlatform
	journal   []string
	out       bytes.Buffer
}

func newFixture(t *testing.T, detected ...bool) *fixture {
	t.Helper()
	f := &fixture{registry: platform.NewRegistry()}
	defs := []platform.Descriptor{
		{ID: "claude-code", DisplayName: "Claude Code", NextSteps: []string{"Restart Claude Code", "Run /setup-ulink in your project"}},
		{ID: "cursor", DisplayName: "Cursor", NextSteps: []string{"Restart Cursor"}},
		{ID: "antigravity", DisplayName: "Antigravity", NextSteps: []string{"Restart Antigravity"}},
	}
	for i, d := range defs {
		p := &fakePlatform{desc: d, journal: &f.journal}
		if i < len(detected) {
			p.detected = detected[i]
		}
		require.NoError(t, f.registry.Register(p))
		f.platforms = append(f.platforms, p)
	}
	return f
}

func (f *fixture) run(t *testing.T, opts Options) error {
	t.Helper()
	opts.Registry = f.registry
	opts.Out = &f.out
	opts.Logger = logging.ForTest(t)
	return New(opts).Run(context.Background())
}

func (f *fixture) setups() []string {
	var out []string
	for _, e := range f.journal {
		if strings.HasPrefix(e, "setup ") {
			out = append(out, strings.TrimPrefix(e, "setup "))
		}
	}
	return out
}

func TestRun_DetectsOnceInOrderBeforeSelecting(t *testing.T) {
	f := newFixture(t, false, true, false)
	sel := &fakeSelector{answer: []int{1}}

	require.NoError(t, f.run(t, Options{Selector: sel}))

	assert.Equal(t, []string{
		"detect claude-code", "detect cursor", "detect antigravity",
		"setup cursor",
	}, f.journal)
	for _, p := range f.platforms {
		assert.Equal(t, 1, p.detectCalls, p.desc.ID)
	}
}

func TestRun_ItemsReflectDetection(t *testing.T) {
	f := newFixture(t, true, false, true)
	sel := &fakeSelector{answer: []int{}}

	require.NoError(t, f.run(t, Options{Selector: sel}))

	assert.Equal(t, TitleDetected, sel.title)
	assert.Equal(t, []prompt.Item{
		{Label: "Claude Code", Note: "(detected)", Checked: true},
		{Label: "Cursor"},
		{Label: "Antigravity", Note: "(detected)", Checked: true},
	}, sel.items)
}

func TestRun_NothingDetectedTitle(t *testing.T) {
	f := newFixture(t)
	sel := &fakeSelector{answer: []int{}}

	require.NoError(t, f.run(t, Options{Selector: sel}))

	assert.Equal(t, TitleNone, sel.title)
	for _, item := range sel.items {
		assert.False(t, item.Checked)
		assert.Empty(t, item.Note)
	}
}

func TestRun_NothingSelected(t *testing.T) {
	f := newFixture(t, true, true, true)
	sel := &fakeSelector{answer: []int{}}

	require.NoError(t, f.run(t, Options{Selector: sel}))

	assert.Empty(t, f.setups())
	assert.Contains(t, f.out.String(), "  No tools selected. Exiting.\n")
	assert.NotContains(t, f.out.String(), "Done!")
}

func TestRun_SetsUpInRegistryOrder(t *testing.T) {
	f := newFixture(t, true, true, true)
	sel := &fakeSelector{answer: []int{0, 2}}

	require.NoError(t, f.run(t, Options{Selector: sel}))

	assert.Equal(t, []string{"claude-code", "antigravity"}, f.setups())

	out := f.out.String()
	assert.Contains(t, out, "  Setting up Claude Code...\n  "+rule+"\n")
	assert.Less(t, strings.Index(out, "Setting up Claude Code"), strings.Index(out, "Setting up Antigravity"))
	assert.Equal(t, 40, len([]rune(rule)))
}

func TestRun_FirstSetupErrorStopsRun(t *testing.T) {
	f := newFixture(t, true, true, true)
	f.platforms[1].setupErr = errors.New("permission denied")
	sel := &fakeSelector{answer: []int{0, 1, 2}}

	err := f.run(t, Options{Selector: sel})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "setting up Cursor")
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, []string{"claude-code", "cursor"}, f.setups())
	assert.NotContains(t, f.out.String(), "Done!")
}

func TestRun_SelectorErrorPropagates(t *testing.T) {
	f := newFixture(t, true)
	sel := &fakeSelector{err: prompt.ErrInterrupted}

	err := f.run(t, Options{Selector: sel})

	assert.ErrorIs(t, err, prompt.ErrInterrupted)
	assert.Empty(t, f.setups())
}

func TestRun_Summary(t *testing.T) {
	f := newFixture(t, true, true, false)
	sel := &fakeSelector{answer: []int{0, 1}}

	require.NoError(t, f.run(t, Options{Selector: sel}))

	out := f.out.String()
	summary := out[strings.Index(out, "Done! Next steps:"):]
	assert.Contains(t, summary, "  Claude Code:\n    1. Restart Claude Code\n    2. Run /setup-ulink in your project\n")
	assert.Contains(t, summary, "  Cursor:\n    1. Restart Cursor\n")
	assert.NotContains(t, summary, "Antigravity")
	assert.Contains(t, summary, "configuring deep links automatically.")
}

func TestRun_Banner(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, Options{Selector: &fakeSelector{}}))

	assert.True(t, strings.HasPrefix(f.out.String(), "\n  ULink AI Setup\n  ==============\n"))
}

func TestRun_ExplicitPlatformsSkipSelector(t *testing.T) {
	f := newFixture(t, false, false, false)
	sel := &fakeSelector{}

	require.NoError(t, f.run(t, Options{Selector: sel, Platforms: []string{"antigravity", "claude-code"}}))

	assert.Zero(t, sel.calls)
	assert.Equal(t, []string{"claude-code", "antigravity"}, f.setups())
}

func TestRun_UnknownPlatform(t *testing.T) {
	f := newFixture(t)

	err := f.run(t, Options{Selector: &fakeSelector{}, Platforms: []string{"vscode"}})

	assert.ErrorIs(t, err, internalerrors.ErrUnknownPlatform)
	assert.Empty(t, f.setups())
}

func TestRun_AssumeYesSelectsDetected(t *testing.T) {
	f := newFixture(t, true, false, true)
	sel := &fakeSelector{}

	require.NoError(t, f.run(t, Options{Selector: sel, AssumeYes: true}))

	assert.Zero(t, sel.calls)
	assert.Equal(t, []string{"claude-code", "antigravity"}, f.setups())
}

func TestRun_AssumeYesNothingDetected(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.run(t, Options{Selector: &fakeSelector{}, AssumeYes: true}))

	assert.Empty(t, f.setups())
	assert.Contains(t, f.out.String(), "No tools selected. Exiting.")
}

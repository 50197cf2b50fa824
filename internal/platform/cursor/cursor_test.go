package cursor

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/install"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/logging"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/paths"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
)

const home = "/home/dev"

type fakeProber map[string]bool

func (f fakeProber) Exists(name string) bool { return f[name] }

func newDeps(t *testing.T) (platform.Deps, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	fsys := afero.NewMemMapFs()

	src := "/opt/ulink/skills/setup-ulink"
	require.NoError(t, fsys.MkdirAll(src, 0o755))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(src, "SKILL.md"), []byte("# skill\n"), 0o644))

	return platform.Deps{
		Home:        home,
		SkillSource: src,
		Install: install.Env{
			Fs:       fsys,
			Out:      out,
			Logger:   logging.ForTest(t),
			Redactor: paths.NewRedactor(home),
		},
		Prober: fakeProber{},
	}, out
}

func TestDescriptor(t *testing.T) {
	deps, _ := newDeps(t)
	d := New(deps).Descriptor()

	assert.Equal(t, "cursor", d.ID)
	assert.Equal(t, "Cursor", d.DisplayName)
	assert.Equal(t, filepath.Join(home, ".cursor/mcp.json"), d.ConfigPath)
	assert.Equal(t, filepath.Join(home, ".cursor/skills/setup-ulink"), d.SkillDir)
	assert.NotEmpty(t, d.NextSteps)
}

func TestDetect(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		deps, _ := newDeps(t)
		assert.False(t, New(deps).Detect())
	})

	t.Run("config directory", func(t *testing.T) {
		deps, _ := newDeps(t)
		require.NoError(t, deps.Install.Fs.MkdirAll(filepath.Join(home, ".cursor"), 0o755))
		assert.True(t, New(deps).Detect())
	})

	t.Run("command on path", func(t *testing.T) {
		deps, _ := newDeps(t)
		deps.Prober = fakeProber{"cursor": true}
		assert.True(t, New(deps).Detect())
	})
}

func TestSetup(t *testing.T) {
	deps, out := newDeps(t)
	p := New(deps)

	configured, err := p.Configured()
	require.NoError(t, err)
	assert.False(t, configured)

	require.NoError(t, p.Setup(context.Background()))

	configured, err = p.Configured()
	require.NoError(t, err)
	assert.True(t, configured)

	skill, err := afero.ReadFile(deps.Install.Fs, filepath.Join(home, ".cursor/skills/setup-ulink", "SKILL.md"))
	require.NoError(t, err)
	assert.Equal(t, "# skill\n", string(skill))

	assert.Contains(t, out.String(), "MCP config written to ~/"+".cursor/mcp.json")
	assert.Contains(t, out.String(), "Skill installed to ~/"+".cursor/skills/setup-ulink")
}

func TestSetup_PreservesExistingServers(t *testing.T) {
	deps, _ := newDeps(t)
	cfg := filepath.Join(home, ".cursor", "mcp.json")
	require.NoError(t, deps.Install.Fs.MkdirAll(filepath.Dir(cfg), 0o755))
	require.NoError(t, afero.WriteFile(deps.Install.Fs, cfg, []byte(`{"mcpServers":{"github":{"command":"gh"}}}`), 0o644))

	require.NoError(t, New(deps).Setup(context.Background()))

	data, err := afero.ReadFile(deps.Install.Fs, cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"github"`)
	assert.Contains(t, string(data), `"ulink"`)
}

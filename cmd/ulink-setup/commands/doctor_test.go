package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

func seedHealthyWorld(t *testing.T, env *testEnv) {
	t.Helper()
	env.prober["node"] = true
	env.prober["npx"] = true
	require.NoError(t, afero.WriteFile(env.fs, testSkillSrc+"/SKILL.md",
		[]byte("---\nname: setup-ulink\ndescription: ULink onboarding\n---\n"), 0o644))
	require.NoError(t, afero.WriteFile(env.fs, "/home/dev/.cursor/mcp.json", []byte(configuredCursor), 0o644))
}

func TestDoctor_Healthy(t *testing.T) {
	env := newTestEnv(t)
	seedHealthyWorld(t, env)

	out, _, err := execute(t, "doctor", "--all", "--skill-source", testSkillSrc)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ [runtime] node-runtime: node and npx found")
	assert.Contains(t, out, "✓ [skill] skill-bundle:")
	assert.Contains(t, out, "Summary: 4 passed, 0 info, 0 warnings, 0 errors")
}

func TestDoctor_HidesPassingByDefault(t *testing.T) {
	env := newTestEnv(t)
	seedHealthyWorld(t, env)

	out, _, err := execute(t, "doctor", "--skill-source", testSkillSrc)
	require.NoError(t, err)
	assert.Equal(t, "Summary: 4 passed, 0 info, 0 warnings, 0 errors\n", out)
}

func TestDoctor_WarningsExitOne(t *testing.T) {
	env := newTestEnv(t)
	seedHealthyWorld(t, env)
	require.NoError(t, env.fs.MkdirAll("/home/dev/.codex", 0o755))

	out, _, err := execute(t, "doctor", "--skill-source", testSkillSrc)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.CodeOf(err))
	assert.Contains(t, out, "codex")
	assert.Contains(t, out, "hint: run ulink-setup --platform codex")

	var buf bytes.Buffer
	PrintError(&buf, err)
	assert.Empty(t, buf.String(), "doctor findings are already printed")
}

func TestDoctor_MissingNpxExitTwo(t *testing.T) {
	env := newTestEnv(t)
	seedHealthyWorld(t, env)
	env.prober["npx"] = false

	_, _, err := execute(t, "doctor", "--skill-source", testSkillSrc)
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.CodeOf(err))
}

func TestDoctor_JSON(t *testing.T) {
	env := newTestEnv(t)
	seedHealthyWorld(t, env)

	out, _, err := execute(t, "doctor", "--json", "--skill-source", testSkillSrc)
	require.NoError(t, err)

	var report struct {
		Results []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"results"`
		Summary struct {
			Passed int `json:"passed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 4)
	assert.Equal(t, "node-runtime", report.Results[0].Name)
	assert.Equal(t, "pass", report.Results[0].Status)
	assert.Equal(t, 4, report.Summary.Passed)
}

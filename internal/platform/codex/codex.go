// Package codex configures ulink for the OpenAI Codex CLI.
package codex

import (
	"path/filepath"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/install"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/paths"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
)

// ID is the platform identifier.
const ID = "codex"

// New returns the Codex CLI platform rooted at deps.Home.
//
// Codex reads MCP servers from the [mcp_servers] table of ~/.codex/config.toml.
func New(deps platform.Deps) *platform.FileHost {
	dir := filepath.Join(deps.Home, ".codex")

	return platform.NewFileHost(platform.FileHostSpec{
		Descriptor: platform.Descriptor{
			ID:          ID,
			DisplayName: "Codex CLI",
			ConfigPath:  filepath.Join(dir, "config.toml"),
			SkillDir:    filepath.Join(dir, "skills", paths.SkillName),
			NextSteps: []string{
				"Restart Codex CLI",
				`Ask the agent: "setup ulink" in your project`,
			},
		},
		DetectDir: dir,
		Command:   "codex",
		Merger:    install.NewTOMLConfigMerger(deps.Install),
	}, deps)
}

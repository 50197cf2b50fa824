// Package cursor configures ulink for the Cursor editor.
package cursor

import (
	"path/filepath"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/install"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/paths"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
)

// ID is the platform identifier.
const ID = "cursor"

// New returns the Cursor platform rooted at deps.Home.
//
// Cursor reads MCP servers from ~/.cursor/mcp.json and skills from
// ~/.cursor/skills.
func New(deps platform.Deps) *platform.FileHost {
	dir := filepath.Join(deps.Home, ".cursor")

	return platform.NewFileHost(platform.FileHostSpec{
		Descriptor: platform.Descriptor{
			ID:          ID,
			DisplayName: "Cursor",
			ConfigPath:  filepath.Join(dir, "mcp.json"),
			SkillDir:    filepath.Join(dir, "skills", paths.SkillName),
			NextSteps: []string{
				"Restart Cursor",
				`Ask the agent: "setup ulink" in your project`,
			},
		},
		DetectDir: dir,
		Command:   "cursor",
		Merger:    install.NewMCPConfigMerger(deps.Install),
	}, deps)
}

// Package antigravity configures ulink for Google Antigravity.
package antigravity

import (
	"path/filepath"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/install"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/paths"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
)

// ID is the platform identifier.
const ID = "antigravity"

// New returns the Antigravity platform rooted at deps.Home.
// Antigravity keeps its state under ~/.gemini/antigravity.
func New(deps platform.Deps) *platform.FileHost {
	dir := filepath.Join(deps.Home, ".gemini", "antigravity")

	return platform.NewFileHost(platform.FileHostSpec{
		Descriptor: platform.Descriptor{
			ID:          ID,
			DisplayName: "Antigravity",
			ConfigPath:  filepath.Join(dir, "mcp_config.json"),
			SkillDir:    filepath.Join(dir, "skills", paths.SkillName),
			NextSteps: []string{
				"Restart Antigravity",
				`Ask the agent: "setup ulink" in your project`,
			},
		},
		DetectDir: dir,
		Command:   "antigravity",
		Merger:    install.NewMCPConfigMerger(deps.Install),
	}, deps)
}

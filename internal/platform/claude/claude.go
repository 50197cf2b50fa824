// Package claude installs ulink into Claude Code through its plugin system.
//
// Claude Code bundles the MCP server and the onboarding skill in a plugin, so
// this platform never writes config files. It shells out to the claude CLI
// instead and falls back to printing the manual commands when that fails.
package claude

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/logging"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/proc"
)

const (
	// ID is the platform identifier.
	ID = "claude-code"

	// Marketplace is the plugin marketplace repository.
	Marketplace = "FlywheelStudio/ulink-ai-setup"

	// Plugin is the plugin reference installed from the marketplace.
	Plugin = "ulink-onboarding@ulink"

	command = "claude"
)

// Platform is the Claude Code platform.
type Platform struct {
	prober platform.CommandProber
	runner proc.Runner
	out    io.Writer
	logger *slog.Logger
}

// New creates the Claude Code platform.
func New(deps platform.Deps) *Platform {
	p := &Platform{
		prober: deps.Prober,
		runner: deps.Runner,
		out:    deps.Install.Out,
		logger: deps.Install.Logger,
	}
	if p.runner == nil {
		p.runner = proc.NewExecRunner()
	}
	if p.out == nil {
		p.out = io.Discard
	}
	if p.logger == nil {
		p.logger = logging.NewDiscard()
	}
	return p
}

// Descriptor returns the platform's static facts.
func (p *Platform) Descriptor() platform.Descriptor {
	return platform.Descriptor{
		ID:          ID,
		DisplayName: "Claude Code",
		NextSteps: []string{
			"Restart Claude Code",
			"Run /setup-ulink in your project",
		},
	}
}

// Detect reports whether the claude CLI is on PATH.
func (p *Platform) Detect() bool {
	return p.prober != nil && p.prober.Exists(command)
}

// Setup adds the marketplace and installs the plugin.
//
// A failed marketplace add is ignored since it usually means the marketplace
// is already registered. A failed install prints the manual commands and is
// not returned, so other platforms still get set up.
func (p *Platform) Setup(ctx context.Context) error {
	fmt.Fprintln(p.out, "  Installing ULink plugin (includes MCP server + onboarding skill)...")

	fmt.Fprintln(p.out, "  Adding marketplace...")
	if err := p.runner.Run(ctx, command, "plugin", "marketplace", "add", Marketplace); err != nil {
		p.logger.Debug("marketplace add failed", "error", err)
	}

	fmt.Fprintln(p.out, "  Installing plugin...")
	if err := p.runner.Run(ctx, command, "plugin", "install", Plugin); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		p.logger.Warn("plugin install failed", "error", err)
		fmt.Fprintln(p.out, "  Failed to install plugin automatically. You can install it manually:")
		for _, line := range ManualCommands() {
			fmt.Fprintf(p.out, "    %s\n", line)
		}
		return nil
	}

	fmt.Fprintln(p.out, "  Plugin installed (MCP server + onboarding skill).")
	return nil
}

// ManualCommands returns the commands a user can run to install the plugin
// by hand.
func ManualCommands() []string {
	return []string{
		fmt.Sprintf("%s plugin marketplace add %s", command, Marketplace),
		fmt.Sprintf("%s plugin install %s", command, Plugin),
	}
}

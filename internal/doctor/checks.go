package doctor

import (
	"fmt"
	"io/fs"
	"runtime"
	"strings"

	"github.com/spf13/afero"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/paths"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
	"github.com/FlywheelStudio/ulink-ai-setup/pkg/frontmatter"
)

// RuntimeCheck verifies that the commands the MCP server entry launches are on PATH.
type RuntimeCheck struct {
	prober platform.CommandProber
}

var _ Check = (*RuntimeCheck)(nil)

// NewRuntimeCheck creates a runtime check backed by prober.
func NewRuntimeCheck(prober platform.CommandProber) *RuntimeCheck {
	return &RuntimeCheck{prober: prober}
}

// Name returns the unique identifier for this check.
func (c *RuntimeCheck) Name() string { return "node-runtime" }

// Category returns the grouping for this check.
func (c *RuntimeCheck) Category() string { return "runtime" }

// Run executes the check.
func (c *RuntimeCheck) Run() *CheckResult {
	node := c.prober.Exists("node")
	npx := c.prober.Exists("npx")
	details := map[string]any{"node": node, "npx": npx}

	if !npx {
		return &CheckResult{
			Status:  SeverityError,
			Message: "npx not found on PATH; AI tools start the ulink MCP server with npx",
			Details: details,
			FixHint: "install Node.js, which provides npx",
		}
	}
	if !node {
		return &CheckResult{
			Status:  SeverityWarning,
			Message: "npx found but node is not on PATH",
			Details: details,
			FixHint: "check your Node.js installation",
		}
	}
	return &CheckResult{
		Status:  SeverityPass,
		Message: "node and npx found",
		Details: details,
	}
}

// SkillBundleCheck verifies the skill bundle that setup copies.
type SkillBundleCheck struct {
	fs       afero.Fs
	source   string
	redactor paths.Redactor
}

var _ Check = (*SkillBundleCheck)(nil)

// NewSkillBundleCheck creates a check for the bundle at source.
func NewSkillBundleCheck(fsys afero.Fs, source string, redactor paths.Redactor) *SkillBundleCheck {
	return &SkillBundleCheck{fs: fsys, source: source, redactor: redactor}
}

// Name returns the unique identifier for this check.
func (c *SkillBundleCheck) Name() string { return "skill-bundle" }

// Category returns the grouping for this check.
func (c *SkillBundleCheck) Category() string { return "skill" }

// Run executes the check.
func (c *SkillBundleCheck) Run() *CheckResult {
	shown := c.redactor.Redact(c.source)
	details := map[string]any{"source": shown}
	hint := "pass --skill-source or set skill_source in the config file"

	if c.source == "" {
		return &CheckResult{
			Status:  SeverityWarning,
			Message: "no skill source configured; setup will skip the skill",
			FixHint: hint,
		}
	}

	info, err := c.fs.Stat(c.source)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &CheckResult{
			Status:  SeverityWarning,
			Message: fmt.Sprintf("skill bundle not found at %s; setup will skip the skill", shown),
			Details: details,
			FixHint: hint,
		}
	case err != nil:
		return &CheckResult{
			Status:  SeverityError,
			Message: fmt.Sprintf("cannot read skill bundle: %v", err),
			Details: details,
		}
	case !info.IsDir():
		return &CheckResult{
			Status:  SeverityError,
			Message: fmt.Sprintf("skill source %s is not a directory", shown),
			Details: details,
			FixHint: hint,
		}
	}

	skill, err := frontmatter.ReadSkill(c.fs, c.source)
	if err != nil {
		return &CheckResult{
			Status:  SeverityError,
			Message: fmt.Sprintf("invalid skill bundle: %v", err),
			Details: details,
			FixHint: "the bundle needs a SKILL.md with a YAML header",
		}
	}

	details["name"] = skill.Name
	if skill.Description != "" {
		details["description"] = skill.Description
	}

	if skill.Name != paths.SkillName {
		return &CheckResult{
			Status:  SeverityWarning,
			Message: fmt.Sprintf("skill bundle is named %q, expected %q", skill.Name, paths.SkillName),
			Details: details,
		}
	}

	return &CheckResult{
		Status:  SeverityPass,
		Message: fmt.Sprintf("skill bundle %s found at %s", skill.Name, shown),
		Details: details,
	}
}

// PlatformCheck reports which tools are detected and whether each detected
// tool already has the ulink entry.
type PlatformCheck struct {
	platforms []platform.Platform
}

var _ Check = (*PlatformCheck)(nil)

// NewPlatformCheck creates a check over platforms.
func NewPlatformCheck(platforms []platform.Platform) *PlatformCheck {
	return &PlatformCheck{platforms: platforms}
}

// Name returns the unique identifier for this check.
func (c *PlatformCheck) Name() string { return "platforms" }

// Category returns the grouping for this check.
func (c *PlatformCheck) Category() string { return "platform" }

// Run executes the check.
func (c *PlatformCheck) Run() *CheckResult {
	status := make(map[string]any, len(c.platforms))
	var detected, unconfigured, unreadable []string

	for _, p := range c.platforms {
		id := p.Descriptor().ID
		found := p.Detect()
		info := map[string]any{"detected": found}
		status[id] = info

		if !found {
			continue
		}
		detected = append(detected, id)

		in, ok := p.(platform.Inspector)
		if !ok {
			continue
		}
		configured, err := in.Configured()
		if err != nil {
			info["error"] = err.Error()
			unreadable = append(unreadable, id)
			continue
		}
		info["configured"] = configured
		if !configured {
			unconfigured = append(unconfigured, id)
		}
	}

	details := map[string]any{"platforms": status}

	switch {
	case len(unreadable) > 0:
		return &CheckResult{
			Status:  SeverityError,
			Message: "cannot read config for " + strings.Join(unreadable, ", "),
			Details: details,
			FixHint: "run ulink-setup again to rebuild the config",
		}
	case len(detected) == 0:
		return &CheckResult{
			Status:  SeverityWarning,
			Message: "no supported AI tools detected",
			Details: details,
			FixHint: "install Claude Code, Cursor, Antigravity, or Codex CLI",
		}
	case len(unconfigured) > 0:
		return &CheckResult{
			Status:  SeverityWarning,
			Message: fmt.Sprintf("%d detected tool(s) without ulink: %s", len(unconfigured), strings.Join(unconfigured, ", ")),
			Details: details,
			FixHint: "run ulink-setup --platform " + strings.Join(unconfigured, ","),
		}
	default:
		return &CheckResult{
			Status:  SeverityPass,
			Message: fmt.Sprintf("%d tool(s) detected", len(detected)),
			Details: details,
		}
	}
}

// PermissionCheck flags platform config files other users can write.
type PermissionCheck struct {
	fs        afero.Fs
	platforms []platform.Platform
	redactor  paths.Redactor
	goos      string
}

var _ Check = (*PermissionCheck)(nil)

// NewPermissionCheck creates a permission check over the platforms' config files.
func NewPermissionCheck(fsys afero.Fs, platforms []platform.Platform, redactor paths.Redactor) *PermissionCheck {
	return &PermissionCheck{
		fs:        fsys,
		platforms: platforms,
		redactor:  redactor,
		goos:      runtime.GOOS,
	}
}

// Name returns the unique identifier for this check.
func (c *PermissionCheck) Name() string { return "config-permissions" }

// Category returns the grouping for this check.
func (c *PermissionCheck) Category() string { return "filesystem" }

// Run executes the check.
func (c *PermissionCheck) Run() *CheckResult {
	// Unix permission bits do not apply on Windows.
	if c.goos == "windows" {
		return &CheckResult{
			Status:  SeverityInfo,
			Message: "permission check skipped on windows",
		}
	}

	var writable, unreadable []string
	checked := 0
	for _, p := range c.platforms {
		path := p.Descriptor().ConfigPath
		if path == "" {
			continue
		}

		info, err := c.fs.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		shown := c.redactor.Redact(path)
		if err != nil {
			unreadable = append(unreadable, shown)
			continue
		}
		checked++

		if info.Mode().Perm()&0o002 != 0 {
			writable = append(writable, shown)
		}
	}

	details := map[string]any{"checked": checked}

	switch {
	case len(unreadable) > 0:
		return &CheckResult{
			Status:  SeverityError,
			Message: "cannot stat " + strings.Join(unreadable, ", "),
			Details: details,
		}
	case len(writable) > 0:
		details["world_writable"] = writable
		return &CheckResult{
			Status:  SeverityWarning,
			Message: "world-writable config file(s): " + strings.Join(writable, ", "),
			Details: details,
			FixHint: "chmod 644 " + strings.Join(writable, " "),
		}
	default:
		return &CheckResult{
			Status:  SeverityPass,
			Message: fmt.Sprintf("%d config file(s) checked", checked),
			Details: details,
		}
	}
}

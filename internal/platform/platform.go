package platform

import (
	"context"
	"slices"

	"github.com/spf13/afero"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/install"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/proc"
)

// Descriptor holds the static facts about a platform.
type Descriptor struct {
	// ID is the stable identifier used on the command line (e.g. "cursor").
	ID string

	// DisplayName is shown to the user (e.g. "Cursor").
	DisplayName string

	// ConfigPath is the MCP config file written during setup.
	// Empty when the host manages its own config.
	ConfigPath string

	// SkillDir is where the skill bundle is copied.
	// Empty when the host installs the skill itself.
	SkillDir string

	// NextSteps are shown in the summary after a successful setup.
	NextSteps []string
}

// Platform is one supported AI coding assistant.
type Platform interface {
	// Descriptor returns the platform's static facts.
	Descriptor() Descriptor

	// Detect reports whether the host tool appears to be installed.
	// It must not modify anything.
	Detect() bool

	// Setup installs ulink into the host tool.
	Setup(ctx context.Context) error
}

// Inspector is implemented by platforms that can report whether ulink is
// already configured without changing anything.
type Inspector interface {
	Configured() (bool, error)
}

// CommandProber checks whether a command is available on PATH.
type CommandProber interface {
	Exists(name string) bool
}

// Deps carries everything a platform constructor needs.
// It is built once at startup and shared by every platform.
type Deps struct {
	// Home is the user's home directory. Platform paths are resolved under it.
	Home string

	// SkillSource is the directory holding the skill bundle to copy.
	SkillSource string

	// Install is the environment handed to mergers and copiers.
	Install install.Env

	// Prober answers PATH lookups for detection.
	Prober CommandProber

	// Runner executes host-tool subprocesses.
	Runner proc.Runner
}

// Fs returns the filesystem platforms should use, defaulting to the OS.
func (d Deps) Fs() afero.Fs {
	if d.Install.Fs == nil {
		return afero.NewOsFs()
	}
	return d.Install.Fs
}

func cloneDescriptor(d Descriptor) Descriptor {
	d.NextSteps = slices.Clone(d.NextSteps)
	return d
}

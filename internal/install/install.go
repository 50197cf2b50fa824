package install

import (
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/logging"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/paths"
)

// ServerName is the key the ulink server is registered under.
const ServerName = "ulink"

// ServerPackage is the pinned npm package that provides the MCP server.
const ServerPackage = "@ulinkly/mcp-server@0.1.11"

// ConnectionEntry is the launch configuration for an MCP server.
type ConnectionEntry struct {
	Command string   `json:"command" toml:"command"`
	Args    []string `json:"args" toml:"args"`
}

// DefaultEntry returns the canonical ulink connection entry.
func DefaultEntry() ConnectionEntry {
	return ConnectionEntry{
		Command: "npx",
		Args:    []string{"-y", ServerPackage},
	}
}

// ConfigMerger inserts the ulink entry into a host config file.
type ConfigMerger interface {
	// Merge writes the entry into the config at path, creating it if needed.
	Merge(path string) error

	// Configured reports whether the config at path already has a ulink entry.
	Configured(path string) (bool, error)
}

// Env carries the side-effect handles shared by the installer primitives.
type Env struct {
	// Fs is the filesystem to read and write. Defaults to the OS filesystem.
	Fs afero.Fs

	// Out receives user-facing progress lines. Defaults to io.Discard.
	Out io.Writer

	// Logger receives warnings and debug output. Defaults to a discard logger.
	Logger *slog.Logger

	// Redactor shortens paths before they are shown to the user.
	Redactor paths.Redactor
}

func (e Env) withDefaults() Env {
	if e.Fs == nil {
		e.Fs = afero.NewOsFs()
	}
	if e.Out == nil {
		e.Out = io.Discard
	}
	if e.Logger == nil {
		e.Logger = logging.NewDiscard()
	}
	return e
}

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

package platform

import (
	"context"

	"github.com/spf13/afero"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/install"
)

// FileHost is a platform configured by merging an MCP config file and copying
// the skill bundle into a skill directory.
type FileHost struct {
	desc        Descriptor
	detectDir   string
	command     string
	skillSource string

	fs     afero.Fs
	prober CommandProber
	merger install.ConfigMerger
	copier *install.SkillCopier
}

// FileHostSpec describes a FileHost.
type FileHostSpec struct {
	Descriptor Descriptor

	// DetectDir marks the host as present when it exists as a directory.
	DetectDir string

	// Command marks the host as present when it is found on PATH.
	Command string

	// Merger writes Descriptor.ConfigPath.
	Merger install.ConfigMerger
}

// NewFileHost creates a FileHost from spec using the shared deps.
func NewFileHost(spec FileHostSpec, deps Deps) *FileHost {
	return &FileHost{
		desc:        cloneDescriptor(spec.Descriptor),
		detectDir:   spec.DetectDir,
		command:     spec.Command,
		skillSource: deps.SkillSource,
		fs:          deps.Fs(),
		prober:      deps.Prober,
		merger:      spec.Merger,
		copier:      install.NewSkillCopier(deps.Install),
	}
}

// Descriptor returns the platform's static facts.
func (h *FileHost) Descriptor() Descriptor {
	return cloneDescriptor(h.desc)
}

// Detect reports whether the host's directory exists or its command is on PATH.
func (h *FileHost) Detect() bool {
	if DirExists(h.fs, h.detectDir) {
		return true
	}
	return h.prober != nil && h.command != "" && h.prober.Exists(h.command)
}

// Setup merges the MCP config and installs the skill bundle.
func (h *FileHost) Setup(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := h.merger.Merge(h.desc.ConfigPath); err != nil {
		return err
	}
	return h.copier.Install(h.desc.SkillDir, h.skillSource)
}

// Configured reports whether the host's config already has the ulink entry.
func (h *FileHost) Configured() (bool, error) {
	return h.merger.Configured(h.desc.ConfigPath)
}

// DirExists returns true if path exists and is a directory.
func DirExists(fs afero.Fs, path string) bool {
	if path == "" {
		return false
	}

	info, err := fs.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

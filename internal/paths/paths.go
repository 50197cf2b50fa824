package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

// AppName is used for the config directory and log prefixes.
const AppName = "ulink-setup"

// SkillName is the directory name the onboarding skill is installed under.
const SkillName = "setup-ulink"

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrap(ErrHomeDirNotFound, "resolving home")
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns <ConfigHome>/ulink-setup.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// DefaultSkillSource returns the skill bundle shipped next to the executable:
// <exe dir>/skills/setup-ulink. An empty string is returned when the
// executable path cannot be resolved.
func DefaultSkillSource() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "skills", SkillName)
}

// Redactor collapses the home directory prefix of a path to "~" for display.
// The zero value redacts nothing.
type Redactor struct {
	home string
}

// NewRedactor returns a Redactor for the given home directory.
func NewRedactor(home string) Redactor {
	return Redactor{home: filepath.Clean(home)}
}

// Redact returns p with a leading home directory replaced by "~".
// Only whole path components match, so /home/bob does not redact /home/bobby.
func (r Redactor) Redact(p string) string {
	if r.home == "" || r.home == "." || p == "" {
		return p
	}
	if p == r.home {
		return "~"
	}
	prefix := r.home + string(filepath.Separator)
	if strings.HasPrefix(p, prefix) {
		return "~" + string(filepath.Separator) + strings.TrimPrefix(p, prefix)
	}
	return p
}

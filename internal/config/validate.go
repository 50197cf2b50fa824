package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidPlatform indicates an unrecognized platform ID.
	ErrInvalidPlatform = errors.New("invalid platform")

	// ErrInvalidPicker indicates an unrecognized picker name.
	ErrInvalidPicker = errors.New("invalid picker")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Pickers lists the accepted values of the picker key.
var Pickers = []string{"checkbox", "fuzzy", "lines"}

// Validate checks a Config for validity against the known platform IDs.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config, platformIDs []string) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.Picker != "" && !slices.Contains(Pickers, cfg.Picker) {
		errs = append(errs, errors.Wrapf(ErrInvalidPicker, "%q (want one of %s)", cfg.Picker, strings.Join(Pickers, ", ")))
	}

	for _, id := range cfg.DisabledPlatforms {
		if !slices.Contains(platformIDs, id) {
			errs = append(errs, &PlatformError{
				Platform: id,
				Err:      ErrInvalidPlatform,
			})
		}
	}

	if cfg.SkillSource != "" {
		if err := validatePath(cfg.SkillSource); err != nil {
			errs = append(errs, &PathError{
				Field: "skill_source",
				Path:  cfg.SkillSource,
				Err:   err,
			})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if path == "" {
		return nil
	}

	// Null bytes are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// PlatformError represents an error for a specific platform.
type PlatformError struct {
	Platform string
	Err      error
}

func (e *PlatformError) Error() string {
	return e.Err.Error() + ": " + e.Platform
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Package fileutil provides file system utilities including atomic write operations.
package fileutil

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// This ensures interrupted writes leave the original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
// Permissions are applied to the final file via the perm parameter.
func AtomicWriteFile(fsys afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Same directory so the rename stays on one filesystem.
	tmp, err := afero.TempFile(fsys, dir, ".ulink-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := fsys.Chmod(tmpName, perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}

	if err := fsys.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true

	return nil
}

// ExistingPerm returns the permission bits of path, or def if it does not exist.
// Rewriting a config keeps whatever mode the user gave it.
func ExistingPerm(fsys afero.Fs, path string, def os.FileMode) os.FileMode {
	info, err := fsys.Stat(path)
	if err != nil {
		return def
	}
	return info.Mode().Perm()
}

package fileutil

import (
	"io"

	"github.com/spf13/afero"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

// MaxFileSize is the largest host config we are willing to load (4MB).
const MaxFileSize = 4 * 1024 * 1024

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file up to MaxFileSize.
// The open error is returned unwrapped-compatible, so errors.Is(err, fs.ErrNotExist)
// still reports a missing file.
func ReadFileWithLimit(fsys afero.Fs, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

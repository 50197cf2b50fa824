package fileutil

import (
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	fsys := afero.NewMemMapFs()

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"small file", 100, false},
		{"exact limit", MaxFileSize, false},
		{"too large", MaxFileSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/" + tt.name
			require.NoError(t, afero.WriteFile(fsys, path, make([]byte, tt.size), 0o644))

			_, err := ReadFileWithLimit(fsys, path)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrFileTooLarge), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadFileWithLimit_Missing(t *testing.T) {
	_, err := ReadFileWithLimit(afero.NewMemMapFs(), "/nope.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "missing file should match fs.ErrNotExist, got %v", err)
}

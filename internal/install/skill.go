package install

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/logging"
)

// SkillCopier copies a skill bundle into a host's skill directory.
type SkillCopier struct {
	env Env
}

// NewSkillCopier creates a SkillCopier.
func NewSkillCopier(env Env) *SkillCopier {
	return &SkillCopier{env: env.withDefaults()}
}

// Install copies the directory tree at src into dest.
//
// A missing src is reported on Out and skipped without touching the filesystem. dest is
// created before any file is copied. Existing files are overwritten and file
// modes follow the source.
func (c *SkillCopier) Install(dest, src string) error {
	info, err := c.env.Fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(c.env.Out, "  Warning: skill source not found, skipping skill install")
			c.env.Logger.Debug("skill source missing", "source", src)
			return nil
		}
		return errors.Wrapf(err, "checking skill source %s", c.env.Redactor.Redact(src))
	}
	if !info.IsDir() {
		return errors.Newf("skill source %s is not a directory", c.env.Redactor.Redact(src))
	}

	if err := c.env.Fs.MkdirAll(dest, dirPerm); err != nil {
		return errors.Wrapf(err, "creating skill directory %s", c.env.Redactor.Redact(dest))
	}

	if err := c.copyTree(src, dest); err != nil {
		return err
	}

	fmt.Fprintf(c.env.Out, "  Skill installed to %s\n", c.env.Redactor.Redact(dest))
	return nil
}

// Installed reports whether dest exists as a directory.
func (c *SkillCopier) Installed(dest string) bool {
	info, err := c.env.Fs.Stat(dest)
	return err == nil && info.IsDir()
}

func (c *SkillCopier) copyTree(src, dst string) error {
	entries, err := afero.ReadDir(c.env.Fs, src)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", c.env.Redactor.Redact(src))
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.Mode()&os.ModeSymlink != 0:
			c.env.Logger.Debug("skipping symlink in skill bundle", "path", srcPath)
		case entry.IsDir():
			if err := c.env.Fs.MkdirAll(dstPath, dirPerm); err != nil {
				return errors.Wrapf(err, "creating directory %s", c.env.Redactor.Redact(dstPath))
			}
			if err := c.copyTree(srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err := c.copyFile(srcPath, dstPath, entry.Mode().Perm()); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *SkillCopier) copyFile(src, dst string, perm os.FileMode) error {
	in, err := c.env.Fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening source file %s", c.env.Redactor.Redact(src))
	}
	defer in.Close()

	out, err := c.env.Fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, "creating destination file %s", c.env.Redactor.Redact(dst))
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copying %s", c.env.Redactor.Redact(src))
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", c.env.Redactor.Redact(dst))
	}

	// OpenFile only applies perm on create.
	if err := c.env.Fs.Chmod(dst, perm); err != nil {
		return errors.Wrapf(err, "setting mode on %s", c.env.Redactor.Redact(dst))
	}

	c.env.Logger.Log(context.Background(), logging.LevelTrace, "copied skill file", "dest", dst)
	return nil
}

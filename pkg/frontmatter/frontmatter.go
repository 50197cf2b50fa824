package frontmatter

import (
	"bufio"
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

// SkillFile is the entry point of a skill bundle.
const SkillFile = "SKILL.md"

var (
	// ErrMissingFrontmatter is returned when the first line is not "---".
	ErrMissingFrontmatter = errors.New("missing frontmatter")

	// ErrUnterminated is returned when no closing "---" line is found.
	ErrUnterminated = errors.New("missing closing frontmatter delimiter")
)

// Skill is the header of a SKILL.md file.
type Skill struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ParseHeader decodes the YAML between the opening and closing "---" lines
// of r into matter. Both LF and CRLF line endings are accepted.
func ParseHeader(r io.Reader, matter any) error {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return errors.Wrap(err, "reading frontmatter")
		}
		return ErrMissingFrontmatter
	}
	if strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff")) != "---" {
		return ErrMissingFrontmatter
	}

	var buf bytes.Buffer
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "---" {
			if err := yaml.Unmarshal(buf.Bytes(), matter); err != nil {
				return errors.Wrap(err, "parsing frontmatter")
			}
			return nil
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading frontmatter")
	}

	return ErrUnterminated
}

// ReadSkill parses the SKILL.md header of the bundle in dir.
func ReadSkill(fsys afero.Fs, dir string) (Skill, error) {
	var s Skill

	f, err := fsys.Open(filepath.Join(dir, SkillFile))
	if err != nil {
		return s, errors.Wrapf(err, "opening %s", SkillFile)
	}
	defer f.Close()

	if err := ParseHeader(f, &s); err != nil {
		return s, errors.Wrapf(err, "reading %s", SkillFile)
	}
	return s, nil
}

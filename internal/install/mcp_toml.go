package install

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
	"github.com/FlywheelStudio/ulink-ai-setup/pkg/fileutil"
)

// MCPServersTable is the TOML table that holds MCP server entries.
const MCPServersTable = "mcp_servers"

// TOMLConfigMerger merges the ulink entry into a TOML config such as
// Codex's config.toml. Comments in the source file are not preserved; Merge
// prints a notice before rewriting a file that has them.
type TOMLConfigMerger struct {
	env   Env
	entry ConnectionEntry
}

// NewTOMLConfigMerger creates a merger that writes DefaultEntry.
func NewTOMLConfigMerger(env Env) *TOMLConfigMerger {
	return &TOMLConfigMerger{
		env:   env.withDefaults(),
		entry: DefaultEntry(),
	}
}

// Merge inserts or replaces mcp_servers.ulink in the config at path.
func (m *TOMLConfigMerger) Merge(path string) error {
	doc, commented, err := m.read(path)
	if err != nil {
		return err
	}

	servers, ok := doc[MCPServersTable].(map[string]any)
	if !ok {
		servers = make(map[string]any)
		doc[MCPServersTable] = servers
	}

	if _, exists := servers[ServerName]; exists {
		fmt.Fprintln(m.env.Out, "  MCP server already configured, updating...")
	}

	servers[ServerName] = map[string]any{
		"command": m.entry.Command,
		"args":    m.entry.Args,
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding TOML config")
	}

	if err := m.env.Fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errors.Wrapf(err, "creating config directory for %s", m.env.Redactor.Redact(path))
	}

	if commented {
		fmt.Fprintf(m.env.Out, "  Note: comments in %s will not be kept\n", m.env.Redactor.Redact(path))
	}

	perm := fileutil.ExistingPerm(m.env.Fs, path, filePerm)
	if err := fileutil.AtomicWriteFile(m.env.Fs, path, data, perm); err != nil {
		return errors.Wrapf(err, "writing MCP config %s", m.env.Redactor.Redact(path))
	}

	m.env.Logger.Debug("toml config merged", "path", path, "bytes", len(data))
	fmt.Fprintf(m.env.Out, "  MCP config written to %s\n", m.env.Redactor.Redact(path))
	return nil
}

// Configured reports whether mcp_servers.ulink is present in the config at path.
func (m *TOMLConfigMerger) Configured(path string) (bool, error) {
	doc, err := m.load(path)
	if err != nil {
		return false, err
	}
	servers, ok := doc[MCPServersTable].(map[string]any)
	if !ok {
		return false, nil
	}
	_, exists := servers[ServerName]
	return exists, nil
}

func (m *TOMLConfigMerger) load(path string) (map[string]any, error) {
	doc, _, err := m.read(path)
	return doc, err
}

// read parses the config at path and reports whether the parsed file carried
// comments. A file that is rebuilt from scratch reports no comments.
func (m *TOMLConfigMerger) read(path string) (map[string]any, bool, error) {
	data, err := fileutil.ReadFileWithLimit(m.env.Fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]any), false, nil
		}
		return nil, false, errors.Wrapf(err, "reading TOML config %s", m.env.Redactor.Redact(path))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return make(map[string]any), false, nil
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		m.env.Logger.Warn("could not parse existing config, starting fresh", "path", path, "error", err)
		return make(map[string]any), false, nil
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	return doc, hasComments(data), nil
}

// hasComments reports whether the TOML document contains any comment, either
// on its own line or trailing an expression.
func hasComments(data []byte) bool {
	p := unstable.Parser{KeepComments: true}
	p.Reset(data)
	for p.NextExpression() {
		for n := p.Expression(); n != nil; n = n.Next() {
			if n.Kind == unstable.Comment {
				return true
			}
		}
	}
	return false
}

package install

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
	"github.com/FlywheelStudio/ulink-ai-setup/pkg/fileutil"
)

// MCPServersKey is the top-level object that holds MCP server entries.
const MCPServersKey = "mcpServers"

var errNotObject = errors.New("top-level value is not an object")

var (
	serversPointer = "/" + MCPServersKey
	entryPointer   = serversPointer + "/" + ServerName
)

// MCPConfigMerger merges the ulink entry into a JSON MCP config.
type MCPConfigMerger struct {
	env   Env
	entry ConnectionEntry
}

// NewMCPConfigMerger creates a merger that writes DefaultEntry.
func NewMCPConfigMerger(env Env) *MCPConfigMerger {
	return &MCPConfigMerger{
		env:   env.withDefaults(),
		entry: DefaultEntry(),
	}
}

// Merge inserts or replaces mcpServers.ulink in the config at path.
//
// A missing or empty file starts from an empty object. A file that cannot be
// parsed, or whose top level is not an object, is logged and rebuilt from an
// empty object. Any other read failure is returned.
func (m *MCPConfigMerger) Merge(path string) error {
	doc, err := m.load(path)
	if err != nil {
		return err
	}

	if doc.Find(entryPointer) != nil {
		fmt.Fprintln(m.env.Out, "  MCP server already configured, updating...")
	}

	if err := m.setEntry(&doc); err != nil {
		return err
	}

	data, err := render(doc)
	if err != nil {
		return err
	}

	if err := m.env.Fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errors.Wrapf(err, "creating config directory for %s", m.env.Redactor.Redact(path))
	}

	perm := fileutil.ExistingPerm(m.env.Fs, path, filePerm)
	if err := fileutil.AtomicWriteFile(m.env.Fs, path, data, perm); err != nil {
		return errors.Wrapf(err, "writing MCP config %s", m.env.Redactor.Redact(path))
	}

	m.env.Logger.Debug("mcp config merged", "path", path, "bytes", len(data))
	fmt.Fprintf(m.env.Out, "  MCP config written to %s\n", m.env.Redactor.Redact(path))
	return nil
}

// Configured reports whether mcpServers.ulink is present in the config at path.
// Missing and unparsable files report false without error.
func (m *MCPConfigMerger) Configured(path string) (bool, error) {
	doc, err := m.load(path)
	if err != nil {
		return false, err
	}
	return doc.Find(entryPointer) != nil, nil
}

// load reads and parses the config at path. The returned document always has a
// top-level object.
func (m *MCPConfigMerger) load(path string) (hujson.Value, error) {
	data, err := fileutil.ReadFileWithLimit(m.env.Fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return emptyObject(), nil
		}
		return hujson.Value{}, errors.Wrapf(err, "reading MCP config %s", m.env.Redactor.Redact(path))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return emptyObject(), nil
	}

	doc, err := hujson.Parse(data)
	if err == nil && doc.Value.Kind() != '{' {
		err = errNotObject
	}
	if err != nil {
		m.env.Logger.Warn("could not parse existing config, starting fresh", "path", path, "error", err)
		return emptyObject(), nil
	}

	if n := dedupeMembers(&doc); n > 0 {
		m.env.Logger.Warn("config has duplicate keys, keeping the last of each", "path", path, "dropped", n)
	}
	return doc, nil
}

// dedupeMembers collapses repeated object keys throughout v so that each
// name keeps the position of its first occurrence and the value of its last,
// the same result a JSON parser produces. It returns the number of members
// dropped.
func dedupeMembers(v *hujson.Value) int {
	dropped := 0
	switch t := v.Value.(type) {
	case *hujson.Object:
		index := make(map[string]int, len(t.Members))
		kept := t.Members[:0]
		for _, mem := range t.Members {
			lit, _ := mem.Name.Value.(hujson.Literal)
			name := lit.String()
			if i, ok := index[name]; ok {
				kept[i].Value = mem.Value
				dropped++
				continue
			}
			index[name] = len(kept)
			kept = append(kept, mem)
		}
		t.Members = kept
		for i := range t.Members {
			dropped += dedupeMembers(&t.Members[i].Value)
		}
	case *hujson.Array:
		for i := range t.Elements {
			dropped += dedupeMembers(&t.Elements[i])
		}
	}
	return dropped
}

// setEntry ensures mcpServers is an object and sets its ulink member.
func (m *MCPConfigMerger) setEntry(doc *hujson.Value) error {
	servers := doc.Find(serversPointer)
	if servers == nil || servers.Value.Kind() != '{' {
		if err := applyAdd(doc, serversPointer, map[string]any{}); err != nil {
			return err
		}
	}
	return applyAdd(doc, entryPointer, m.entry)
}

// patchOp is a single RFC 6902 operation.
type patchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// applyAdd sets the member at ptr, replacing any existing value.
func applyAdd(doc *hujson.Value, ptr string, value any) error {
	patch, err := json.Marshal([]patchOp{{Op: "add", Path: ptr, Value: value}})
	if err != nil {
		return errors.Wrap(err, "encoding config patch")
	}
	if err := doc.Patch(patch); err != nil {
		return errors.Wrapf(err, "patching %s", ptr)
	}
	return nil
}

// render converts doc to standard JSON with 2-space indentation and a
// trailing newline.
func render(doc hujson.Value) ([]byte, error) {
	doc.Minimize()

	var buf bytes.Buffer
	if err := json.Indent(&buf, doc.Pack(), "", "  "); err != nil {
		return nil, errors.Wrap(err, "formatting MCP config")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func emptyObject() hujson.Value {
	return hujson.Value{Value: &hujson.Object{}}
}

// Package probe answers "is this command on PATH?" for a fixed set of names.
//
// Only allowlisted names are ever looked up. Anything else returns false
// without spawning a process, so a caller cannot turn a probe into arbitrary
// command execution.
package probe

import (
	"context"
	"os/exec"
	"runtime"
)

// allowlist is the fixed set of commands that may be probed.
var allowlist = map[string]struct{}{
	"ulink":       {},
	"node":        {},
	"npx":         {},
	"npm":         {},
	"flutter":     {},
	"xcodebuild":  {},
	"keytool":     {},
	"curl":        {},
	"claude":      {},
	"cursor":      {},
	"antigravity": {},
	"codex":       {},
}

// Allowed reports whether name is on the probe allowlist.
func Allowed(name string) bool {
	_, ok := allowlist[name]
	return ok
}

// RunFunc runs a lookup command and returns its error. A nil error means the
// command exited zero.
type RunFunc func(ctx context.Context, name string, args ...string) error

// Option configures a Prober.
type Option func(*Prober)

// WithRunner replaces the function used to spawn the lookup command.
func WithRunner(run RunFunc) Option {
	return func(p *Prober) {
		p.run = run
	}
}

// WithGOOS overrides the operating system used to pick the lookup command.
func WithGOOS(goos string) Option {
	return func(p *Prober) {
		p.goos = goos
	}
}

// Prober checks for executables on PATH.
type Prober struct {
	run  RunFunc
	goos string
}

// New creates a Prober that spawns the platform lookup command.
func New(opts ...Option) *Prober {
	p := &Prober{
		run:  execRun,
		goos: runtime.GOOS,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Exists reports whether name resolves on PATH.
// Names outside the allowlist and lookup failures both report false.
func (p *Prober) Exists(name string) bool {
	return p.ExistsContext(context.Background(), name)
}

// ExistsContext is Exists with a caller-supplied context for the spawn.
func (p *Prober) ExistsContext(ctx context.Context, name string) bool {
	if !Allowed(name) {
		return false
	}
	return p.run(ctx, p.lookupCommand(), name) == nil
}

func (p *Prober) lookupCommand() string {
	if p.goos == "windows" {
		return "where"
	}
	return "which"
}

// execRun spawns name with a literal argv. No shell is involved and all
// standard streams are discarded.
func execRun(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run()
}

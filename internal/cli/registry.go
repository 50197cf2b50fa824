// Package cli assembles the runtime objects the ulink-setup commands share.
package cli

import (
	"slices"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform/antigravity"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform/claude"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform/codex"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform/cursor"
)

// builders lists every supported platform in display order.
var builders = []struct {
	id    string
	build func(platform.Deps) platform.Platform
}{
	{claude.ID, func(d platform.Deps) platform.Platform { return claude.New(d) }},
	{cursor.ID, func(d platform.Deps) platform.Platform { return cursor.New(d) }},
	{antigravity.ID, func(d platform.Deps) platform.Platform { return antigravity.New(d) }},
	{codex.ID, func(d platform.Deps) platform.Platform { return codex.New(d) }},
}

// PlatformIDs returns the IDs of every supported platform in display order.
func PlatformIDs() []string {
	ids := make([]string, len(builders))
	for i, b := range builders {
		ids[i] = b.id
	}
	return ids
}

// NewRegistry builds the platform registry from deps, leaving out any
// platform whose ID is in disabled.
func NewRegistry(deps platform.Deps, disabled ...string) (*platform.Registry, error) {
	reg := platform.NewRegistry()
	for _, b := range builders {
		if slices.Contains(disabled, b.id) {
			continue
		}
		if err := reg.Register(b.build(deps)); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Package setup runs the interactive installation flow: detect the supported
// tools, ask which to configure, set each one up in order, and print what to
// do next.
package setup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/cli/prompt"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/logging"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/platform"
)

// Selection titles.
const (
	TitleDetected = "Select which tools to set up:"
	TitleNone     = "No AI tools detected. Select which to set up:"
)

const detectedNote = "(detected)"

var rule = strings.Repeat("─", 40)

// Options configures an Orchestrator.
type Options struct {
	// Registry holds the platforms to offer, in display order.
	Registry *platform.Registry

	// Selector asks the user which platforms to set up.
	// Unused when Platforms or AssumeYes is set.
	Selector prompt.MultiSelector

	// Out receives user-facing output. Defaults to io.Discard.
	Out io.Writer

	// Logger receives diagnostics. Defaults to a discard logger.
	Logger *slog.Logger

	// Platforms, when non-empty, selects these IDs without prompting.
	Platforms []string

	// AssumeYes selects every detected platform without prompting.
	AssumeYes bool
}

// Orchestrator drives one setup run.
type Orchestrator struct {
	opts  Options
	out   io.Writer
	log   *slog.Logger
	bold  *color.Color
	green *color.Color
}

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		opts:  opts,
		out:   opts.Out,
		log:   opts.Logger,
		bold:  color.New(color.Bold),
		green: color.New(color.FgGreen, color.Bold),
	}
	if o.out == nil {
		o.out = io.Discard
	}
	if o.log == nil {
		o.log = logging.NewDiscard()
	}
	return o
}

// Run executes the flow.
//
// Platforms are detected once, in registry order. Setups run one at a time in
// registry order and the first failure stops the run. Choosing nothing is not
// an error.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.printBanner()

	all := o.opts.Registry.All()
	detected := make([]bool, len(all))
	for i, p := range all {
		detected[i] = p.Detect()
		o.log.Debug("platform detection", "platform", p.Descriptor().ID, "detected", detected[i])
	}

	selected, err := o.choose(all, detected)
	if err != nil {
		return err
	}

	if len(selected) == 0 {
		fmt.Fprint(o.out, "\n  No tools selected. Exiting.\n\n")
		return nil
	}

	fmt.Fprintln(o.out)
	for _, p := range selected {
		d := p.Descriptor()
		fmt.Fprintf(o.out, "  Setting up %s...\n", o.bold.Sprint(d.DisplayName))
		fmt.Fprintf(o.out, "  %s\n", rule)

		o.log.Info("setting up platform", "platform", d.ID)
		if err := p.Setup(ctx); err != nil {
			return errors.Wrapf(err, "setting up %s", d.DisplayName)
		}

		fmt.Fprintln(o.out)
	}

	o.printSummary(selected)
	return nil
}

// choose resolves which platforms to set up.
func (o *Orchestrator) choose(all []platform.Platform, detected []bool) ([]platform.Platform, error) {
	if len(o.opts.Platforms) > 0 {
		return o.opts.Registry.Select(o.opts.Platforms)
	}

	if o.opts.AssumeYes {
		var selected []platform.Platform
		for i, p := range all {
			if detected[i] {
				selected = append(selected, p)
			}
		}
		return selected, nil
	}

	items := make([]prompt.Item, len(all))
	anyDetected := false
	for i, p := range all {
		items[i] = prompt.Item{
			Label:   p.Descriptor().DisplayName,
			Checked: detected[i],
		}
		if detected[i] {
			items[i].Note = detectedNote
			anyDetected = true
		}
	}

	title := TitleNone
	if anyDetected {
		title = TitleDetected
	}

	indices, err := o.opts.Selector.Select(title, items)
	if err != nil {
		return nil, err
	}

	selected := make([]platform.Platform, 0, len(indices))
	for _, i := range indices {
		selected = append(selected, all[i])
	}
	return selected, nil
}

func (o *Orchestrator) printBanner() {
	fmt.Fprintln(o.out)
	fmt.Fprintf(o.out, "  %s\n", o.bold.Sprint("ULink AI Setup"))
	fmt.Fprintln(o.out, "  ==============")
	fmt.Fprintln(o.out)
	fmt.Fprintln(o.out, "  This will configure the ULink MCP server and onboarding")
	fmt.Fprintln(o.out, "  skill for your AI coding assistant.")
	fmt.Fprintln(o.out)
}

func (o *Orchestrator) printSummary(selected []platform.Platform) {
	fmt.Fprintf(o.out, "  %s\n", o.green.Sprint("Done! Next steps:"))
	fmt.Fprintf(o.out, "  %s\n", rule)
	fmt.Fprintln(o.out)

	for _, p := range selected {
		d := p.Descriptor()
		if len(d.NextSteps) == 0 {
			continue
		}
		fmt.Fprintf(o.out, "  %s:\n", d.DisplayName)
		for i, step := range d.NextSteps {
			fmt.Fprintf(o.out, "    %d. %s\n", i+1, step)
		}
		fmt.Fprintln(o.out)
	}

	fmt.Fprintln(o.out, "  The AI will walk you through the rest:")
	fmt.Fprintln(o.out, "  detecting your app, connecting to ULink, and")
	fmt.Fprintln(o.out, "  configuring deep links automatically.")
	fmt.Fprintln(o.out)
}

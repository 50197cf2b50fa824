// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"io"
	"os"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
	"github.com/FlywheelStudio/ulink-ai-setup/internal/logging"
)

// Sentinel errors for item selection.
var (
	ErrNoItems            = errors.New("no items to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
	ErrInterrupted        = errors.New("selection interrupted")
)

// Item is one selectable entry.
type Item struct {
	// Label is the text shown for the item.
	Label string

	// Note is shown dimmed after the label, e.g. "(detected)".
	Note string

	// Checked is the initial selection state.
	Checked bool
}

// MultiSelector asks the user to pick any number of items.
//
// Select returns the indices of the chosen items in ascending order. An empty
// result with a nil error means the user confirmed with nothing chosen.
type MultiSelector interface {
	Select(title string, items []Item) ([]int, error)
}

// Picker names a MultiSelector implementation.
type Picker string

// Available pickers.
const (
	PickerCheckbox Picker = "checkbox"
	PickerFuzzy    Picker = "fuzzy"
	PickerLines    Picker = "lines"
)

// Valid reports whether p names a known picker.
func (p Picker) Valid() bool {
	switch p {
	case PickerCheckbox, PickerFuzzy, PickerLines:
		return true
	default:
		return false
	}
}

// ForTerminal returns the selector for picker. The raw-mode and fuzzy pickers
// need a terminal on in; without one the line selector is used instead.
func ForTerminal(picker Picker, in *os.File, out io.Writer) MultiSelector {
	if picker == PickerLines || !logging.IsInteractive(in) {
		return NewLineSelector(in, out)
	}
	if picker == PickerFuzzy {
		return NewFuzzySelector()
	}
	return NewCheckbox(NewTTY(in, out))
}

func selectedIndices(checked []bool) []int {
	selected := make([]int, 0, len(checked))
	for i, c := range checked {
		if c {
			selected = append(selected, i)
		}
	}
	return selected
}

package prompt

import (
	"slices"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

// findMultiFunc matches the signature of fuzzyfinder.FindMulti.
type findMultiFunc func(slice any, itemFunc func(i int) string, opts ...fuzzyfinder.Option) ([]int, error)

// FuzzySelector picks items with a full-screen fuzzy finder.
// Tab marks items, enter confirms.
type FuzzySelector struct {
	find findMultiFunc
}

// NewFuzzySelector creates a FuzzySelector.
func NewFuzzySelector() *FuzzySelector {
	return &FuzzySelector{find: fuzzyfinder.FindMulti}
}

// Select opens the finder over items with checked items already marked.
// Aborting the finder returns
// ErrInterrupted.
func (s *FuzzySelector) Select(title string, items []Item) ([]int, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	idxs, err := s.find(
		items,
		func(i int) string {
			return items[i].Label
		},
		fuzzyfinder.WithPromptString(title+" "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return previewText(items[i])
		}),
		fuzzyfinder.WithPreselected(preselected(items)),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrInterrupted
		}
		return nil, errors.Wrap(err, "fuzzy selection failed")
	}

	idxs = slices.Clone(idxs)
	slices.Sort(idxs)
	return slices.Compact(idxs), nil
}

// preselected marks the items that start checked.
func preselected(items []Item) func(i int) bool {
	return func(i int) bool {
		return i >= 0 && i < len(items) && items[i].Checked
	}
}

func previewText(item Item) string {
	text := item.Label
	if item.Note != "" {
		text += " " + item.Note
	}
	return text + "\n\nTab to mark, Enter to confirm."
}

package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

// LineSelector prompts for a list of item numbers on a single line.
// It works on any reader, so it is the fallback when stdin is not a terminal.
type LineSelector struct {
	reader io.Reader
	writer io.Writer
}

// NewLineSelector creates a LineSelector reading from r and writing to w.
// A nil r reads from os.Stdin and a nil w writes to os.Stdout.
func NewLineSelector(r io.Reader, w io.Writer) *LineSelector {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &LineSelector{
		reader: r,
		writer: w,
	}
}

// Select lists items with their numbers and reads the user's choice.
//
// Input is a comma or space separated list of 1-based numbers. Empty input
// keeps the initial check marks, "a" selects everything and "n" selects
// nothing.
//
// Returns:
//   - ErrNoItems if items is empty
//   - ErrInvalidSelection if a number is malformed or out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *LineSelector) Select(title string, items []Item) ([]int, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	defaults := make([]bool, len(items))
	var defaultNums []string
	fmt.Fprintf(s.writer, "  %s\n", title)
	for i, item := range items {
		box := "[ ]"
		if item.Checked {
			box = "[x]"
			defaults[i] = true
			defaultNums = append(defaultNums, strconv.Itoa(i+1))
		}
		label := item.Label
		if item.Note != "" {
			label += " " + item.Note
		}
		fmt.Fprintf(s.writer, "  %d) %s %s\n", i+1, box, label)
	}
	fmt.Fprintf(s.writer, "  Select (numbers, a=all, n=none) [%s]: ", strings.Join(defaultNums, ","))

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "reading selection")
		}
		if strings.TrimSpace(input) == "" {
			return nil, ErrSelectionCancelled
		}
	}

	return parseSelection(strings.TrimSpace(input), defaults)
}

// parseSelection resolves a typed selection against the default check marks.
func parseSelection(input string, defaults []bool) ([]int, error) {
	switch strings.ToLower(input) {
	case "":
		return selectedIndices(defaults), nil
	case "a", "all":
		all := make([]bool, len(defaults))
		for i := range all {
			all[i] = true
		}
		return selectedIndices(all), nil
	case "n", "none":
		return []int{}, nil
	}

	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	var selected []int
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", f)
		}
		if n < 1 || n > len(defaults) {
			return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(defaults))
		}
		if !slices.Contains(selected, n-1) {
			selected = append(selected, n-1)
		}
	}
	slices.Sort(selected)
	return selected, nil
}

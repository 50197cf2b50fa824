package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

// Terminal is a character device that can be switched into raw mode.
type Terminal interface {
	io.Reader
	io.Writer

	// MakeRaw puts the terminal into raw mode and returns a function that
	// restores the previous mode.
	MakeRaw() (restore func() error, err error)
}

const checkboxHint = "(arrow keys to move, space to toggle, enter to confirm)"

// clearLine erases the current terminal line.
const clearLine = "\x1b[2K"

// Checkbox is a raw-mode multi-select list driven by arrow keys.
//
// The list is drawn once and then redrawn in place after every keypress by
// moving the cursor up over the previous frame. Lines end in "\r\n" because
// raw mode turns off output newline translation.
type Checkbox struct {
	term Terminal

	pointer *color.Color
	check   *color.Color
	faint   *color.Color
}

// NewCheckbox creates a Checkbox on term.
// Colors are always emitted since the checkbox only runs on a terminal.
func NewCheckbox(term Terminal) *Checkbox {
	c := &Checkbox{
		term:    term,
		pointer: color.New(color.FgCyan),
		check:   color.New(color.FgGreen),
		faint:   color.New(color.Faint),
	}
	c.pointer.EnableColor()
	c.check.EnableColor()
	c.faint.EnableColor()
	return c
}

// Select shows items under title and returns the indices checked when the user
// presses enter.
//
// Returns:
//   - ErrNoItems if items is empty; the terminal is not touched
//   - ErrInterrupted on Ctrl+C
//   - ErrSelectionCancelled if input reaches EOF
//
// The terminal is restored before Select returns on every path.
func (c *Checkbox) Select(title string, items []Item) (selected []int, err error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	restore, err := c.term.MakeRaw()
	if err != nil {
		return nil, errors.Wrap(err, "entering raw mode")
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = errors.Wrap(rerr, "restoring terminal")
		}
	}()

	st := newState(items)
	if err := c.render(title, items, st, false); err != nil {
		return nil, err
	}

	buf := make([]byte, 64)
	for {
		n, rerr := c.term.Read(buf)
		if n > 0 {
			dirty := false
			for _, k := range decodeKeys(buf[:n]) {
				switch k {
				case keyInterrupt:
					return nil, ErrInterrupted
				case keyConfirm:
					return st.selected(), nil
				default:
					st.apply(k)
					dirty = true
				}
			}
			if dirty {
				if err := c.render(title, items, st, true); err != nil {
					return nil, err
				}
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil, ErrSelectionCancelled
			}
			return nil, errors.Wrap(rerr, "reading key")
		}
	}
}

// render draws the title, one line per item, and the hint. A repaint first
// moves up over the previous frame, which is always len(items)+2 lines.
func (c *Checkbox) render(title string, items []Item, st *state, repaint bool) error {
	var b strings.Builder
	if repaint {
		fmt.Fprintf(&b, "\x1b[%dA", len(items)+2)
	}

	fmt.Fprintf(&b, "%s  %s\r\n", clearLine, title)
	for i, item := range items {
		pointer := " "
		if i == st.cursor {
			pointer = c.pointer.Sprint(">")
		}
		box := "[ ]"
		if st.checked[i] {
			box = c.check.Sprint("[x]")
		}
		label := item.Label
		if item.Note != "" {
			label += " " + c.faint.Sprint(item.Note)
		}
		fmt.Fprintf(&b, "%s  %s %s %s\r\n", clearLine, pointer, box, label)
	}
	fmt.Fprintf(&b, "%s  %s\r\n", clearLine, c.faint.Sprint(checkboxHint))

	if _, err := io.WriteString(c.term, b.String()); err != nil {
		return errors.Wrap(err, "drawing selector")
	}
	return nil
}

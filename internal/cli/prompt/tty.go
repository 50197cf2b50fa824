package prompt

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/FlywheelStudio/ulink-ai-setup/internal/errors"
)

// TTY is a Terminal backed by a real terminal device.
type TTY struct {
	in  *os.File
	out io.Writer
}

// NewTTY returns a Terminal reading keys from in and drawing to out.
func NewTTY(in *os.File, out io.Writer) *TTY {
	return &TTY{in: in, out: out}
}

func (t *TTY) Read(p []byte) (int, error)  { return t.in.Read(p) }
func (t *TTY) Write(p []byte) (int, error) { return t.out.Write(p) }

// MakeRaw switches the input terminal to raw mode.
func (t *TTY) MakeRaw() (func() error, error) {
	fd := int(t.in.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "setting raw mode")
	}
	return func() error {
		return term.Restore(fd, old)
	}, nil
}

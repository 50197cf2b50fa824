package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []key
	}{
		{"csi up", "\x1b[A", []key{keyUp}},
		{"csi down", "\x1b[B", []key{keyDown}},
		{"ss3 up", "\x1bOA", []key{keyUp}},
		{"ss3 down", "\x1bOB", []key{keyDown}},
		{"vim", "kj", []key{keyUp, keyDown}},
		{"toggle", " ", []key{keyToggle}},
		{"all", "a", []key{keyAll}},
		{"carriage return", "\r", []key{keyConfirm}},
		{"line feed", "\n", []key{keyConfirm}},
		{"ctrl-c", "\x03", []key{keyInterrupt}},
		{"mixed chunk", "\x1b[B \x1b[A\r", []key{keyDown, keyToggle, keyUp, keyConfirm}},
		{"right arrow ignored", "\x1b[C", nil},
		{"delete ignored", "\x1b[3~ ", []key{keyToggle}},
		{"lone escape", "\x1b", nil},
		{"truncated csi", "\x1b[", nil},
		{"alt-j keeps j", "\x1bj", []key{keyDown}},
		{"plain letters ignored", "xyzA", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeKeys([]byte(tt.input)))
		})
	}
}

func TestState_CursorStaysInRange(t *testing.T) {
	st := newState(threeItems())
	for _, k := range []key{keyUp, keyUp, keyUp, keyUp, keyDown} {
		st.apply(k)
		assert.GreaterOrEqual(t, st.cursor, 0)
		assert.Less(t, st.cursor, 3)
	}
	assert.Equal(t, 0, st.cursor)
}

func TestState_SingleItem(t *testing.T) {
	st := newState([]Item{{Label: "only"}})
	st.apply(keyDown)
	st.apply(keyUp)
	st.apply(keyToggle)
	assert.Equal(t, 0, st.cursor)
	assert.Equal(t, []int{0}, st.selected())
}

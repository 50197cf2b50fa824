package prompt

// state is the cursor and check marks of one selector session.
// cursor stays in [0, len(checked)).
type state struct {
	cursor  int
	checked []bool
}

func newState(items []Item) *state {
	s := &state{checked: make([]bool, len(items))}
	for i, item := range items {
		s.checked[i] = item.Checked
	}
	return s
}

// apply updates the state for a navigation or toggle key.
// Confirm and interrupt are handled by the caller.
func (s *state) apply(k key) {
	n := len(s.checked)
	switch k {
	case keyUp:
		s.cursor = (s.cursor - 1 + n) % n
	case keyDown:
		s.cursor = (s.cursor + 1) % n
	case keyToggle:
		s.checked[s.cursor] = !s.checked[s.cursor]
	case keyAll:
		all := true
		for _, c := range s.checked {
			all = all && c
		}
		for i := range s.checked {
			s.checked[i] = !all
		}
	}
}

func (s *state) selected() []int {
	return selectedIndices(s.checked)
}

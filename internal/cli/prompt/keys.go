package prompt

// key is a decoded keypress.
type key int

const (
	keyUp key = iota + 1
	keyDown
	keyToggle
	keyAll
	keyConfirm
	keyInterrupt
)

const (
	esc    = 0x1b
	ctrlC  = 0x03
	csi    = '['
	ss3    = 'O'
	space  = ' '
	cr     = '\r'
	lf     = '\n'
	arrowU = 'A'
	arrowD = 'B'
)

// decodeKeys turns one read from a raw terminal into keypresses. A single
// read can carry several keys when input arrives faster than it is consumed.
// Unrecognised bytes and escape sequences are dropped.
func decodeKeys(chunk []byte) []key {
	var keys []key
	for i := 0; i < len(chunk); i++ {
		switch chunk[i] {
		case esc:
			k, n := decodeEscape(chunk[i:])
			if k != 0 {
				keys = append(keys, k)
			}
			i += n - 1
		case 'k':
			keys = append(keys, keyUp)
		case 'j':
			keys = append(keys, keyDown)
		case space:
			keys = append(keys, keyToggle)
		case 'a':
			keys = append(keys, keyAll)
		case cr, lf:
			keys = append(keys, keyConfirm)
		case ctrlC:
			keys = append(keys, keyInterrupt)
		}
	}
	return keys
}

// decodeEscape decodes the escape sequence at the start of b and returns the
// key (0 if none) and the number of bytes consumed.
func decodeEscape(b []byte) (key, int) {
	if len(b) < 2 {
		return 0, len(b)
	}

	switch b[1] {
	case ss3:
		if len(b) < 3 {
			return 0, len(b)
		}
		return arrowKey(b[2]), 3
	case csi:
		// Parameter and intermediate bytes, then a final byte in 0x40-0x7e.
		for n := 2; n < len(b); n++ {
			if b[n] >= 0x40 && b[n] <= 0x7e {
				return arrowKey(b[n]), n + 1
			}
		}
		return 0, len(b)
	default:
		// Alt+key: drop the escape, leave the key for the caller.
		return 0, 1
	}
}

func arrowKey(final byte) key {
	switch final {
	case arrowU:
		return keyUp
	case arrowD:
		return keyDown
	default:
		return 0
	}
}

package panel

import "strings"

// Alphabet is the fixed ordered set of state symbols. A symbol's index
// is the state id stored per channel; index 0 ("0") is the off state.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz-_:.?!$%/<>ABCDEFGHIJKLMNOPQRSTUVWXYZ "

// symbolIndex resolves a symbol byte to its state id.
func symbolIndex(b byte) (uint8, bool) {
	i := strings.IndexByte(Alphabet, b)
	if i < 0 {
		return 0, false
	}
	return uint8(i), true
}

// symbolFor returns the external symbol for a state id.
func symbolFor(state uint8) byte {
	if int(state) >= len(Alphabet) {
		return '?'
	}
	return Alphabet[state]
}

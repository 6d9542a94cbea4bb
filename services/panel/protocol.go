package panel

import (
	"strings"

	"lightboard-go/errcode"
	"lightboard-go/x/strconvx"
)

// The command grammar is deliberately tiny and case-sensitive:
//
//	"?"            status query, no mutation
//	"<index>=<c>"  set channel <index> to the state with symbol <c>
//
// Anything else is rejected with a stable errcode and zero mutation.

type command struct {
	query   bool
	channel int
	state   uint8
}

// parseCommand validates a raw payload against the grammar and the
// channel count. The left side is validated as a generic numeric (a
// single embedded '.' is tolerated, duplicated or trailing dots are
// not) though only the integer part is meaningful.
func parseCommand(raw string, channels int) (command, error) {
	if raw == "?" {
		return command{query: true}, nil
	}

	eq := strings.IndexByte(raw, '=')
	if eq < 1 {
		return command{}, errcode.InvalidCommand
	}
	left, right := raw[:eq], raw[eq+1:]

	if !isNumeric(left) {
		return command{}, errcode.InvalidCommand
	}
	intPart := left
	if dot := strings.IndexByte(left, '.'); dot >= 0 {
		intPart = left[:dot]
	}
	ch, err := strconvx.Atoi(intPart)
	if err != nil {
		return command{}, errcode.InvalidCommand
	}

	if len(right) != 1 {
		return command{}, errcode.InvalidCommand
	}
	state, ok := symbolIndex(right[0])
	if !ok {
		return command{}, errcode.UnknownSymbol
	}
	if ch >= channels {
		return command{}, errcode.ChannelRange
	}
	return command{channel: ch, state: state}, nil
}

// isNumeric accepts digit runs with at most one non-trailing '.'.
func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	seenDot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c == '.' {
			if seenDot || i == len(s)-1 {
				return false
			}
			seenDot = true
			continue
		}
		return false
	}
	return true
}

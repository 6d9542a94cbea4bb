package panel

// Channel fade state is a tagged value instead of a signed sentinel
// counter. fadeOut counts `step` down from the full fade length to the
// crossover; fadeIn counts `step` up from the crossover back to full.
type fadePhase uint8

const (
	fadeIdle fadePhase = iota
	fadeOut
	fadeIn
)

type channel struct {
	state uint8 // committed state, displayed when idle
	next  uint8 // fade target; meaningless while idle
	heat  uint8 // afterglow intensity, 255 = fresh change
	phase fadePhase
	step  int16
}

// Table owns the fixed-capacity channel array and the channel→pixel
// mapping. It is allocated once at startup and mutated only from the
// panel scheduler goroutine; no locking, no growth.
type Table struct {
	ch      []channel
	mapping []int
}

// MaxChannels keeps state ids and channel counts inside byte range.
const MaxChannels = 254

// NewTable builds a table of n channels. mapping remaps channel index
// to pixel index; nil or short mappings fall back to identity per slot.
func NewTable(n int, mapping []int) *Table {
	if n < 1 {
		n = 1
	}
	if n > MaxChannels {
		n = MaxChannels
	}
	t := &Table{
		ch:      make([]channel, n),
		mapping: make([]int, n),
	}
	for i := range t.mapping {
		if i < len(mapping) && mapping[i] >= 0 {
			t.mapping[i] = mapping[i]
		} else {
			t.mapping[i] = i
		}
	}
	return t
}

func (t *Table) Len() int { return len(t.ch) }

// Pixel returns the physical pixel index for a channel.
func (t *Table) Pixel(ch int) int { return t.mapping[ch] }

// State returns the committed state of a channel, 0 if out of range.
func (t *Table) State(ch int) uint8 {
	if ch < 0 || ch >= len(t.ch) {
		return 0
	}
	return t.ch[ch].state
}

// Heat returns the afterglow level of a channel, 0 if out of range.
func (t *Table) Heat(ch int) uint8 {
	if ch < 0 || ch >= len(t.ch) {
		return 0
	}
	return t.ch[ch].heat
}

// Cool decrements each channel's heat by one unit, never below floor.
func (t *Table) Cool(floor uint8) {
	for j := range t.ch {
		if t.ch[j].heat > floor {
			t.ch[j].heat--
		}
	}
}

// Status renders one alphabet symbol per channel in index order,
// always from the committed state, never from a fade target.
func (t *Table) Status() string {
	out := make([]byte, len(t.ch))
	for i := range t.ch {
		out[i] = symbolFor(t.ch[i].state)
	}
	return string(out)
}

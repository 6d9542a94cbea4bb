// Package runavg implements a fixed-capacity running average.
// The window is allocated once; pushing into a full window evicts the
// oldest sample. No allocation happens after New.
package runavg

type Avg struct {
	buf  []float64
	head int
	n    int
	sum  float64
}

// New returns a running average over a window of the given size.
// size < 1 is coerced to 1.
func New(size int) *Avg {
	if size < 1 {
		size = 1
	}
	return &Avg{buf: make([]float64, size)}
}

// Add pushes v, evicting the oldest sample once the window is full.
func (a *Avg) Add(v float64) {
	if a.n == len(a.buf) {
		a.sum -= a.buf[a.head]
	} else {
		a.n++
	}
	a.buf[a.head] = v
	a.sum += v
	a.head++
	if a.head == len(a.buf) {
		a.head = 0
	}
}

// Mean returns the average of the samples currently in the window.
// An empty window reads as 0.
func (a *Avg) Mean() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sum / float64(a.n)
}

// Len reports how many samples the window currently holds.
func (a *Avg) Len() int { return a.n }

// Clear empties the window without releasing it.
func (a *Avg) Clear() {
	a.head = 0
	a.n = 0
	a.sum = 0
	for i := range a.buf {
		a.buf[i] = 0
	}
}

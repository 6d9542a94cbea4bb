//go:build !(rp2040 || rp2350)

package strip

// MemWriter captures frames in memory. It backs host builds (the
// terminal simulator renders from it) and tests.
type MemWriter struct {
	Last    []RGB
	Frames  int
	OnFrame func(pix []RGB)
}

func NewMemWriter(n int) *MemWriter {
	return &MemWriter{Last: make([]RGB, n)}
}

func (w *MemWriter) WriteFrame(pix []RGB) error {
	copy(w.Last, pix)
	w.Frames++
	if w.OnFrame != nil {
		w.OnFrame(w.Last)
	}
	return nil
}

package panel

import (
	"testing"

	"lightboard-go/drivers/strip"
)

const testFade = 5

func newTestEngine(t *testing.T, channels int, mapping []int) (*Engine, *Table, *strip.Buffer) {
	t.Helper()
	pal, err := NewPalette(DefaultColors())
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	tab := NewTable(channels, mapping)
	buf := strip.NewBuffer(channels, strip.NewMemWriter(channels))
	return NewEngine(tab, pal, buf, testFade), tab, buf
}

// advanceUntilCommit runs frames until a commit happens, returning the
// tick count and the number of commit events seen.
func advanceUntilCommit(t *testing.T, e *Engine, maxTicks int) (ticks, commits int) {
	t.Helper()
	for ticks = 1; ticks <= maxTicks; ticks++ {
		commits += e.Advance()
		if commits > 0 {
			return ticks, commits
		}
	}
	t.Fatalf("no commit within %d ticks", maxTicks)
	return 0, 0
}

func TestIdleSameStateIsNoop(t *testing.T) {
	e, tab, _ := newTestEngine(t, 5, nil)
	if e.Request(2, 0) {
		t.Fatal("requesting the current state reported a state change")
	}
	if tab.ch[2].phase != fadeIdle {
		t.Fatal("no-op request started a fade")
	}
	if e.Advance() != 0 {
		t.Fatal("idle advance reported a commit")
	}
}

func TestFullCycleCommitsExactlyOnce(t *testing.T) {
	e, tab, _ := newTestEngine(t, 5, nil)
	if e.Request(2, 3) {
		t.Fatal("starting a fade must not report an immediate commit")
	}

	ticks, commits := advanceUntilCommit(t, e, 100)
	if commits != 1 {
		t.Fatalf("commits = %d, want 1", commits)
	}
	// fade-out runs fadeFrames ticks, fade-in fadeFrames+1 including
	// the crossover, committing on its last tick.
	if want := 2*testFade + 1; ticks != want {
		t.Fatalf("committed after %d ticks, want %d", ticks, want)
	}
	if got := tab.State(2); got != 3 {
		t.Fatalf("committed state = %d, want 3", got)
	}
	if tab.Status() != "00300" {
		t.Fatalf("status = %q, want 00300", tab.Status())
	}

	// Nothing further happens on an idle channel.
	if e.Advance() != 0 {
		t.Fatal("idle channel committed again")
	}
}

func TestStatusStaysCommittedMidFade(t *testing.T) {
	e, tab, _ := newTestEngine(t, 5, nil)
	e.Request(2, 3)
	for i := 0; i < testFade+2; i++ { // well past the crossover
		e.Advance()
		if tab.Status() != "00000" {
			t.Fatalf("tick %d: status leaked the fade target: %q", i, tab.Status())
		}
	}
}

func TestRetargetDuringFadeOutPreservesElapsed(t *testing.T) {
	e, tab, _ := newTestEngine(t, 5, nil)
	e.Request(0, 2) // toward B
	e.Advance()
	e.Advance()
	if e.Request(0, 4) { // redirect to C while still dipping
		t.Fatal("retarget during fade-out must not commit")
	}

	ticks, _ := advanceUntilCommit(t, e, 100)
	if got := tab.State(0); got != 4 {
		t.Fatalf("ended at state %d, want 4", got)
	}
	// The two elapsed dip frames are preserved across the redirect.
	if want := 2*testFade + 1 - 2; ticks != want {
		t.Fatalf("committed after %d more ticks, want %d", ticks, want)
	}
}

func TestRetargetNeverShowsIntermediateState(t *testing.T) {
	e, tab, _ := newTestEngine(t, 5, nil)
	e.Request(0, 2)
	e.Advance()
	e.Request(0, 4)
	for i := 0; i < 4*testFade; i++ {
		e.Advance()
		if tab.State(0) == 2 {
			t.Fatalf("tick %d: intermediate state 2 became committed", i)
		}
	}
	if tab.State(0) != 4 {
		t.Fatalf("final state = %d, want 4", tab.State(0))
	}
}

func TestReversalDuringFadeInCommitsImmediately(t *testing.T) {
	e, tab, _ := newTestEngine(t, 5, nil)
	e.Request(1, 2)
	for i := 0; i < testFade+3; i++ { // into the fade-in half
		e.Advance()
	}
	if tab.ch[1].phase != fadeIn {
		t.Fatalf("setup: expected fade-in, got phase %d", tab.ch[1].phase)
	}

	if !e.Request(1, 5) {
		t.Fatal("reversal must report the committed state change")
	}
	if got := tab.State(1); got != 2 {
		t.Fatalf("reversal committed state %d, want 2", got)
	}
	if tab.ch[1].phase != fadeOut {
		t.Fatal("reversal did not re-enter the dip")
	}

	_, commits := advanceUntilCommit(t, e, 100)
	if commits != 1 {
		t.Fatalf("commits after reversal = %d, want 1", commits)
	}
	if got := tab.State(1); got != 5 {
		t.Fatalf("final state = %d, want 5", got)
	}
}

func TestHeatSetExactlyAtCrossover(t *testing.T) {
	e, tab, _ := newTestEngine(t, 5, nil)
	e.Request(3, 2)
	for i := 0; i < testFade; i++ {
		e.Advance()
		if tab.Heat(3) != 0 {
			t.Fatalf("tick %d: heat set before the crossover", i+1)
		}
	}
	e.Advance() // crossover frame
	if tab.Heat(3) != 255 {
		t.Fatalf("heat after crossover = %d, want 255", tab.Heat(3))
	}
}

func TestCooldownDecaysToFloor(t *testing.T) {
	e, tab, _ := newTestEngine(t, 2, nil)
	e.Request(0, 2)
	for i := 0; i < 3*testFade; i++ {
		e.Advance()
	}
	if tab.Heat(0) != 255 {
		t.Fatalf("setup: heat = %d, want 255", tab.Heat(0))
	}

	const floor = 128
	for i := 0; i < 1000; i++ {
		tab.Cool(floor)
	}
	if tab.Heat(0) != floor {
		t.Fatalf("heat = %d, want floor %d", tab.Heat(0), floor)
	}
	// Untouched channels never had heat and stay put.
	if tab.Heat(1) != 0 {
		t.Fatalf("cold channel heated up to %d", tab.Heat(1))
	}
}

func TestOutOfRangeRequestIgnored(t *testing.T) {
	e, tab, _ := newTestEngine(t, 5, nil)
	if e.Request(9, 3) {
		t.Fatal("out-of-range request reported a change")
	}
	if e.Request(-1, 3) {
		t.Fatal("negative channel reported a change")
	}
	for i := 0; i < 5; i++ {
		if tab.ch[i].phase != fadeIdle {
			t.Fatalf("channel %d started fading", i)
		}
	}
}

func TestMappingRoutesDisplayWrites(t *testing.T) {
	e, tab, buf := newTestEngine(t, 3, []int{2, 1, 0})
	e.Request(0, 2)
	for i := 0; i < 3*testFade; i++ {
		e.Advance()
	}
	if tab.State(0) != 2 {
		t.Fatalf("setup: state = %d", tab.State(0))
	}
	// Channel 0 is red at full heat; it must land on pixel 2.
	if px := buf.Pixel(2); px.R == 0 {
		t.Fatalf("mapped pixel not written: %+v", px)
	}
	if px := buf.Pixel(0); px.R != 0 {
		t.Fatalf("unmapped pixel written: %+v", px)
	}
}

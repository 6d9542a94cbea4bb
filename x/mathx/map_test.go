package mathx

import "testing"

func TestMap8(t *testing.T) {
	type C struct{ x, top, out, want uint8 }
	for _, c := range []C{
		{0, 35, 200, 0},
		{35, 35, 200, 200},
		{17, 34, 200, 100},
		{40, 35, 200, 200}, // clamped
		{5, 0, 200, 0},     // degenerate range
	} {
		if got := Map8(c.x, c.top, c.out); got != c.want {
			t.Fatalf("Map8(%d,%d,%d) = %d, want %d", c.x, c.top, c.out, got, c.want)
		}
	}
}

func TestScale8(t *testing.T) {
	if got := Scale8(200, 255); got != 200 {
		t.Fatalf("full-scale Scale8 changed value: %d", got)
	}
	if got := Scale8(200, 0); got != 0 {
		t.Fatalf("zero-scale Scale8 non-zero: %d", got)
	}
	if got := Scale8(200, 128); got != 100 {
		t.Fatalf("half-scale Scale8: got %d, want 100", got)
	}
}

func TestMapU16BrightnessRange(t *testing.T) {
	// Average in [0,255] mapped onto the configured brightness bounds.
	if got := MapU16(0, 0, 255, 12, 128); got != 12 {
		t.Fatalf("low bound: got %d", got)
	}
	if got := MapU16(255, 0, 255, 12, 128); got != 128 {
		t.Fatalf("high bound: got %d", got)
	}
	if got := MapU16(300, 0, 255, 12, 128); got != 128 {
		t.Fatalf("clamp above: got %d", got)
	}
}

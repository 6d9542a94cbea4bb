//go:build !(rp2040 || rp2350)

package main

// The board image only makes sense on RP2 hardware; build cmd/sim for
// a host run.
func main() {
	println("board: rp2040/rp2350 target only, use cmd/sim on a host")
}

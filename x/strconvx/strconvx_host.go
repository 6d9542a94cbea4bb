//go:build !(rp2040 || rp2350)

package strconvx

import "strconv"

// Signature parity with strconv; delegate straight through on hosts.

func Atoi(s string) (int, error) { return strconv.Atoi(s) }

func Itoa(i int) string { return strconv.Itoa(i) }

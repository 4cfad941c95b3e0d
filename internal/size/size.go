// Package size converts between byte counts and human-readable quantities
// using binary (power-of-1024) units.
package size

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

const (
	KiB uint64 = 1 << 10
	MiB uint64 = 1 << 20
	GiB uint64 = 1 << 30
	TiB uint64 = 1 << 40
)

// ErrNotAValue is returned when a quantity cannot be parsed.
var ErrNotAValue = errors.New("not a value")

var units = map[string]uint64{
	"k": KiB, "kb": KiB, "kib": KiB,
	"m": MiB, "mb": MiB, "mib": MiB,
	"g": GiB, "gb": GiB, "gib": GiB,
	"t": TiB, "tb": TiB, "tib": TiB,
}

// Format renders n with the largest unit whose quotient is at least one.
// The magnitude is truncated; GiB is the largest unit emitted.
func Format(n uint64) string {
	switch {
	case n < KiB:
		return fmt.Sprintf("%d bytes", n)
	case n < MiB:
		return fmt.Sprintf("%d KiB", n/KiB)
	case n < GiB:
		return fmt.Sprintf("%d MiB", n/MiB)
	default:
		return fmt.Sprintf("%d GiB", n/GiB)
	}
}

// Parse reads quantities such as "5k", "10M", "6 GiB" or "2tb".
// A unit is mandatory.
func Parse(s string) (uint64, error) {
	s = strings.TrimSpace(s)

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("%q: %w", s, ErrNotAValue)
	}

	magnitude, err := strconv.ParseUint(s[:end], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrNotAValue)
	}

	unit := strings.TrimLeft(s[end:], " \t")
	factor, ok := units[lowerASCII(unit)]
	if !ok {
		return 0, fmt.Errorf("%q: %w", s, ErrNotAValue)
	}

	hi, lo := bits.Mul64(magnitude, factor)
	if hi != 0 {
		return 0, fmt.Errorf("%q overflows 64 bits: %w", s, ErrNotAValue)
	}
	return lo, nil
}

// lowerASCII folds A-Z only. strings.ToLower would also map symbols such as
// the Kelvin sign onto unit letters.
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

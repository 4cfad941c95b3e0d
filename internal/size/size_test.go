package size

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"5k", 5120},
		{"10M", 10485760},
		{"6G", 6442450944},
		{"1t", TiB},
		{"3kb", 3 * KiB},
		{"3KiB", 3 * KiB},
		{"7 MiB", 7 * MiB},
		{"  2gb ", 2 * GiB},
		{"0k", 0},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{
		"12345",
		"7X",
		"",
		"k",
		"-5k",
		"5.5G",
		"5\u212a", // Kelvin sign, not K
		"5 \u212aiB",
		"16777216T",                // 2^24 TiB = 2^64
		"99999999999999999999999k", // digits overflow
	} {
		if _, err := Parse(in); !errors.Is(err, ErrNotAValue) {
			t.Errorf("Parse(%q) error = %v, want ErrNotAValue", in, err)
		}
	}
}

func TestParse_RoundTripLaw(t *testing.T) {
	units := []struct {
		name   string
		factor uint64
	}{
		{"KiB", KiB},
		{"MiB", MiB},
		{"GiB", GiB},
		{"TiB", TiB},
	}

	for _, u := range units {
		for _, m := range []uint64{0, 1, 2, 1023, 1024, 65535, math.MaxUint64 / u.factor} {
			for _, format := range []string{"%d%s", "%d %s"} {
				in := fmt.Sprintf(format, m, u.name)
				got, err := Parse(in)
				if err != nil {
					t.Fatalf("Parse(%q) failed: %v", in, err)
				}
				if got != m*u.factor {
					t.Errorf("Parse(%q) = %d, want %d", in, got, m*u.factor)
				}
			}
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 bytes"},
		{1023, "1023 bytes"},
		{1024, "1 KiB"},
		{1048575, "1023 KiB"},
		{1048576, "1 MiB"},
		{1073741823, "1023 MiB"},
		{1073741824, "1 GiB"},
		{3 * TiB, "3072 GiB"},
	}

	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormat_ParsesBack(t *testing.T) {
	for _, n := range []uint64{KiB, 5 * KiB, 17 * MiB, 9 * GiB} {
		got, err := Parse(Format(n))
		if err != nil {
			t.Fatalf("Parse(Format(%d)) failed: %v", n, err)
		}
		if got != n {
			t.Errorf("Parse(Format(%d)) = %d", n, got)
		}
	}
}

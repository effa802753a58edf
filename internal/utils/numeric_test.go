package utils

import "testing"

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"":        0,
		"   ":     0,
		"abc":     0,
		"-5":      0,
		"NaN":     0,
		"Inf":     0,
		"0":       0,
		"83":      83,
		" 45.50 ": 45.5,
	}
	for in, want := range cases {
		if got := ParseAmount(in); got != want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseCount(t *testing.T) {
	cases := map[string]int{
		"":    0,
		"-2":  0,
		"2.5": 0,
		"3":   3,
	}
	for in, want := range cases {
		if got := ParseCount(in); got != want {
			t.Fatalf("ParseCount(%q) = %d, want %d", in, got, want)
		}
	}
}

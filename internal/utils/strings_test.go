package utils

import (
	"reflect"
	"testing"
)

func TestTextAreaToList(t *testing.T) {
	got := TextAreaToList("Park fees\r\n\r\n  Full board meals  \nWater\n\n")
	want := []string{"Park fees", "Full board meals", "Water"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TextAreaToList = %v, want %v", got, want)
	}

	if got := TextAreaToList(""); len(got) != 0 {
		t.Fatalf("empty textarea should yield empty list, got %v", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  Arusha   to \t Serengeti "); got != "Arusha to Serengeti" {
		t.Fatalf("NormalizeSpace = %q", got)
	}
}

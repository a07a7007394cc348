package celpaint

import (
	"image/color"
	"testing"
)

// Verify at compile time that Color implements color.Color.
var _ color.Color = Color{}

func TestColorMatchesExact(t *testing.T) {
	ref := Color{R: 10, G: 20, B: 30, A: 255}

	if !ref.Matches(ref, 0) {
		t.Error("color should match itself at tolerance 0")
	}
	if (Color{R: 10, G: 20, B: 30, A: 254}).Matches(ref, 0) {
		t.Error("alpha difference must break an exact match")
	}
}

func TestColorMatchesTolerance(t *testing.T) {
	ref := Color{R: 200, G: 0, B: 0, A: 255}

	tests := []struct {
		name string
		c    Color
		want bool
	}{
		{"within on all channels", Color{R: 205, G: 5, B: 3, A: 255}, true},
		{"red off by 15", Color{R: 215, G: 0, B: 0, A: 255}, false},
		{"exact boundary", Color{R: 190, G: 10, B: 10, A: 245}, true},
		{"alpha off by 11", Color{R: 200, G: 0, B: 0, A: 244}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Matches(ref, 10); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", White},
		{"f008", Color{R: 255, A: 136}},
		{"#0000FF", Blue},
		{"#ffff0080", Color{R: 255, G: 255, A: 128}},
		{" 102030 ", RGB(0x10, 0x20, 0x30)},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Errorf("ParseHex(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "#12", "#12345", "#gg0000", "#1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q): expected error", bad)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := Color{R: 1, G: 0xab, B: 0xcd, A: 0x7f}
	if got := MustHex(c.Hex()); got != c {
		t.Errorf("round trip = %v, want %v", got, c)
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.RGBA{R: 128, G: 0, B: 0, A: 128})
	if got != (Color{R: 255, A: 128}) {
		t.Errorf("FromColor(premultiplied) = %v", got)
	}
}

func TestToleranceBoundary(t *testing.T) {
	tests := []struct {
		in   string
		want uint8
	}{
		{"0", 0},
		{"10", 10},
		{" 255 ", 255},
		{"256", 0},
		{"-1", 0},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseTolerance(tt.in); got != tt.want {
			t.Errorf("ParseTolerance(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}

	if ClampTolerance(300) != 0 || ClampTolerance(42) != 42 {
		t.Error("ClampTolerance out-of-range handling")
	}
}

package kaleido

import (
	"errors"
	"image/color"
	"testing"
)

// Verify at compile time that RGBA implements color.Color.
var _ color.Color = RGBA{}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"0f08", color.NRGBA{R: 0, G: 255, B: 0, A: 136}},
		{"#3498db", color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 255}},
		{"3498DB80", color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0x80}},
		{"transparent", color.NRGBA{}},
	}
	for _, tt := range tests {
		c, err := ParseHex(tt.in)
		if err != nil {
			t.Errorf("ParseHex(%q) failed: %v", tt.in, err)
			continue
		}
		if got := c.NRGBA(); got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "#gg0000", "red"} {
		if _, err := ParseHex(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHex(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
	if Hex("nope") != Black {
		t.Error("Hex of a malformed string should be black")
	}
}

func TestRGBA_HexRoundTrip(t *testing.T) {
	for _, s := range []string{"#00000000", "#ff8000ff", "#12345678"} {
		if got := Hex(s).Hex(); got != s {
			t.Errorf("Hex(%q).Hex() = %q", s, got)
		}
	}
}

func TestFromColor(t *testing.T) {
	// Premultiplied half-transparent red un-premultiplies to full red.
	c := FromColor(color.RGBA{R: 128, A: 128})
	if c.R < 0.99 || c.A < 0.5 || c.A > 0.51 {
		t.Errorf("FromColor = %+v", c)
	}
	if got := FromColor(White.Color()); got != White {
		t.Errorf("FromColor(White) = %+v", got)
	}
}

func TestRGBA_Lerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	if got.R != 0.5 || got.G != 0.5 || got.B != 0.5 || got.A != 1 {
		t.Errorf("Lerp = %+v", got)
	}
}

func TestRGBA_NRGBAClamps(t *testing.T) {
	got := RGBA{R: 2, G: -1, B: 0.5, A: 1}.NRGBA()
	if got != (color.NRGBA{R: 255, G: 0, B: 128, A: 255}) {
		t.Errorf("NRGBA() = %v", got)
	}
}

package compositor

import (
	"image/color"
	"testing"
)

func TestColorChannels(t *testing.T) {
	c := ARGB(0x80, 0x10, 0x20, 0x30)
	if c.A() != 0x80 || c.R() != 0x10 || c.G() != 0x20 || c.B() != 0x30 {
		t.Errorf("channels of %v = %d %d %d %d", c, c.A(), c.R(), c.G(), c.B())
	}
	if c != Color(0x80102030) {
		t.Errorf("ARGB() = %v, want #80102030", c)
	}
}

func TestColorTransparency(t *testing.T) {
	tests := []struct {
		c           Color
		transparent bool
		opaque      bool
	}{
		{ColorTransparent, true, false},
		{ColorBlack, false, true},
		{ColorRed.WithAlpha(1), false, false},
		{ColorWhite.WithAlpha(0), true, false},
	}
	for _, tt := range tests {
		if got := tt.c.IsTransparent(); got != tt.transparent {
			t.Errorf("%v.IsTransparent() = %v, want %v", tt.c, got, tt.transparent)
		}
		if got := tt.c.IsOpaque(); got != tt.opaque {
			t.Errorf("%v.IsOpaque() = %v, want %v", tt.c, got, tt.opaque)
		}
	}
}

func TestColorModulateAlpha(t *testing.T) {
	if got := ColorBlack.ModulateAlpha(0.5).A(); got != 128 {
		t.Errorf("ModulateAlpha(0.5).A() = %d, want 128", got)
	}
	if got := ColorBlack.ModulateAlpha(0); !got.IsTransparent() {
		t.Errorf("ModulateAlpha(0) = %v, want transparent", got)
	}
	if got := ColorBlue.ModulateAlpha(2); got != ColorBlue {
		t.Errorf("ModulateAlpha(2) = %v, want %v", got, ColorBlue)
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	if want := RGB(1, 2, 3); got != want {
		t.Errorf("FromColor() = %v, want %v", got, want)
	}
}

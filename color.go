package compositor

import (
	"fmt"
	"image/color"
)

// Color is a non-premultiplied 32-bit color stored as 0xAARRGGBB.
type Color uint32

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)

// ARGB constructs a Color from alpha, red, green and blue bytes.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color.
func RGB(r, g, b uint8) Color {
	return ARGB(0xFF, r, g, b)
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// IsTransparent reports whether the alpha channel is zero.
func (c Color) IsTransparent() bool {
	return c.A() == 0
}

// IsOpaque reports whether the alpha channel is fully set.
func (c Color) IsOpaque() bool {
	return c.A() == 0xFF
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	return Color(uint32(a)<<24 | uint32(c)&0x00FFFFFF)
}

// ModulateAlpha scales the alpha channel by opacity in [0, 1].
func (c Color) ModulateAlpha(opacity float64) Color {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return c.WithAlpha(0)
	}
	return c.WithAlpha(uint8(float64(c.A())*opacity + 0.5))
}

// NRGBA converts to the standard non-premultiplied color type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

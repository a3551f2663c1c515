package rdp

import "image/color"

// RGBA32 unpacks a colour register value in RGBA 8888 order.
func RGBA32(c uint32) color.RGBA {
	return color.RGBA{uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)}
}

// RGBA16 unpacks a 5551 colour, as stored in 16-bit framebuffers and the low
// half of the fill colour.
func RGBA16(c uint16) color.RGBA {
	expand := func(v uint16) uint8 {
		v &= 0x1f
		return uint8(v<<3 | v>>2)
	}
	a := uint8(0)
	if c&1 != 0 {
		a = 0xff
	}
	return color.RGBA{expand(c >> 11), expand(c >> 6), expand(c >> 1), a}
}

// FillColor returns the colour of a fill rectangle for a framebuffer of the
// given pixel size in bits.
func FillColor(c uint32, bpp int) color.RGBA {
	if bpp == 32 {
		return RGBA32(c)
	}
	return RGBA16(uint16(c))
}

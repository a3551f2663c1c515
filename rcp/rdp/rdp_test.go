package rdp_test

import (
	"image/color"
	"testing"

	"github.com/clktmr/n64hle/rcp/rdp"
	n64testing "github.com/clktmr/n64hle/testing"
)

func TestSetBits(t *testing.T) {
	var m rdp.ModeFlags

	// G_SETOTHERMODE_H cycle type: shift 20, length 2
	m.SetBits(true, 20, 2, uint32(rdp.CycleFill)<<20)
	n64testing.ExpectEquality(t, m.CycleType(), rdp.CycleFill)
	n64testing.ExpectEquality(t, m.Low(), uint32(0))

	m.SetBits(false, 4, 2, 0x30)
	n64testing.ExpectSuccess(t, m.DepthTest())
	n64testing.ExpectSuccess(t, m.DepthWrite())
	n64testing.ExpectFailure(t, m.PrimDepth())
	n64testing.ExpectEquality(t, m.CycleType(), rdp.CycleFill)

	m.SetBits(false, 4, 1, 0)
	n64testing.ExpectFailure(t, m.DepthTest())
	n64testing.ExpectSuccess(t, m.DepthWrite())

	m.SetBits(false, 10, 2, 0xc00)
	n64testing.ExpectSuccess(t, m.Decal())

	// full word
	m.SetBits(false, 0, 32, 0xdeadbeef)
	n64testing.ExpectEquality(t, m.Low(), uint32(0xdeadbeef))
	n64testing.ExpectEquality(t, m.High(), uint32(rdp.CycleFill)<<20)

	// ignored
	m.SetBits(true, 40, 2, 0xffffffff)
	n64testing.ExpectEquality(t, m.High(), uint32(rdp.CycleFill)<<20)
}

func TestCombine(t *testing.T) {
	// G_CC_MODULATEIDECALA: TEXEL0, 0, SHADE, 0 / 0, 0, 0, TEXEL0
	mux := uint64(0x00127e24)<<32 | 0xfffff3f9
	c := rdp.DecodeCombine(mux)
	n64testing.ExpectEquality(t, c.One.RGB.A, rdp.CombineTex0)
	n64testing.ExpectEquality(t, c.One.RGB.C, rdp.CombineShade)
	n64testing.ExpectEquality(t, c.One.Alpha.D, rdp.CombineTex0)
	n64testing.ExpectSuccess(t, c.Uses(rdp.CombineTex0, rdp.CycleOne))
	n64testing.ExpectSuccess(t, c.Uses(rdp.CombineShade, rdp.CycleOne))
	n64testing.ExpectFailure(t, c.Uses(rdp.CombineEnvironment, rdp.CycleOne))
}

func TestColors(t *testing.T) {
	n64testing.ExpectEquality(t, rdp.RGBA32(0x11223344), color.RGBA{0x11, 0x22, 0x33, 0x44})
	n64testing.ExpectEquality(t, rdp.RGBA16(0xffff), color.RGBA{0xff, 0xff, 0xff, 0xff})
	n64testing.ExpectEquality(t, rdp.RGBA16(0xf800), color.RGBA{0xff, 0, 0, 0})
	n64testing.ExpectEquality(t, rdp.FillColor(0x00010001, 16), color.RGBA{0, 0, 0, 0xff})
	n64testing.ExpectEquality(t, rdp.FillColor(0x000000ff, 32), color.RGBA{0, 0, 0, 0xff})
}

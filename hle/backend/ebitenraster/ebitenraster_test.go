package ebitenraster_test

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/clktmr/n64hle/hle/backend/ebitenraster"
	"github.com/clktmr/n64hle/hle/renderer"
	"github.com/clktmr/n64hle/rcp/rdp"
	n64testing "github.com/clktmr/n64hle/testing"
)

func TestConvert(t *testing.T) {
	b := renderer.Batch{
		Vertices: []renderer.Vertex{
			{X: 1, Y: 2, U: 4, V: 8, R: 1, A: 1},
			{X: 3, Y: 4, U: 16, V: 32, G: 1, A: 0.5},
			{X: 5, Y: 6, B: 1, A: 1},
		},
	}
	src := image.Rect(10, 20, 14, 24)

	vs, is := ebitenraster.Convert(b, src, nil, nil)
	n64testing.ExpectEquality(t, len(vs), 3)
	n64testing.ExpectSuccess(t, slices.Equal(is, []uint16{0, 1, 2}))
	n64testing.ExpectEquality(t, vs[1].DstX, float32(3))
	n64testing.ExpectEquality(t, vs[1].ColorA, float32(0.5))

	// untextured vertices sample the centre of the source
	n64testing.ExpectEquality(t, vs[0].SrcX, float32(12))
	n64testing.ExpectEquality(t, vs[0].SrcY, float32(22))

	b.State.Textured = true
	vs, _ = ebitenraster.Convert(b, src, vs[:0], nil)
	n64testing.ExpectEquality(t, vs[1].SrcX, float32(26))
	n64testing.ExpectEquality(t, vs[1].SrcY, float32(52))
}

func TestCheckerboard(t *testing.T) {
	img := ebitenraster.Checkerboard(8, 4, color.White, color.Black)
	n64testing.ExpectEquality(t, img.Bounds(), image.Rect(0, 0, 8, 8))
	n64testing.ExpectEquality(t, img.RGBAAt(0, 0), color.RGBA{0xff, 0xff, 0xff, 0xff})
	n64testing.ExpectEquality(t, img.RGBAAt(1, 1), color.RGBA{0xff, 0xff, 0xff, 0xff})
	n64testing.ExpectEquality(t, img.RGBAAt(2, 0), color.RGBA{0, 0, 0, 0xff})
	n64testing.ExpectEquality(t, img.RGBAAt(2, 2), color.RGBA{0xff, 0xff, 0xff, 0xff})
}

func TestSamplesTexture(t *testing.T) {
	// G_CC_MODULATEIDECALA reads texel 0, G_CC_SHADE doesn't
	modulate := rdp.DecodeCombine(uint64(0x00127e24)<<32 | 0xfffff3f9)
	shade := rdp.DecodeCombine(uint64(0x00ffffff)<<32 | 0xfffe793c)

	st := renderer.State{Combine: modulate}
	n64testing.ExpectFailure(t, ebitenraster.SamplesTexture(st))
	st.Textured = true
	n64testing.ExpectSuccess(t, ebitenraster.SamplesTexture(st))
	st.Combine = shade
	n64testing.ExpectFailure(t, ebitenraster.SamplesTexture(st))
}

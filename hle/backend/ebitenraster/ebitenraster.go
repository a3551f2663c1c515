// Package ebitenraster draws renderer batches onto an ebiten image.
//
// Triangles are drawn with Image.DrawTriangles, vertex colours modulating
// either a white source or a texture registered for the batch's tile.
// Ebiten has no depth buffer, so batches are drawn in submission order and
// the depth test is ignored.
package ebitenraster

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/clktmr/n64hle/hle/renderer"
	"github.com/clktmr/n64hle/rcp/rdp"
)

// Raster implements renderer.Rasterizer. It is not safe for concurrent use
// and must only draw while ebiten runs its game loop.
type Raster struct {
	dst      *ebiten.Image
	white    *ebiten.Image
	textures [8]*ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

// New returns a Raster drawing to dst.
func New(dst *ebiten.Image) *Raster {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Raster{
		dst:   dst,
		white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// SetTarget changes the image batches are drawn to.
func (r *Raster) SetTarget(dst *ebiten.Image) {
	r.dst = dst
}

// SetTexture registers the texture sampled for batches using tile. A nil
// image draws the tile untextured.
func (r *Raster) SetTexture(tile int, img *ebiten.Image) {
	r.textures[tile&7] = img
}

// Clear fills the target with c.
func (r *Raster) Clear(c color.Color) {
	r.dst.Fill(c)
}

func (r *Raster) RenderBatch(b renderer.Batch) {
	if b.Count() < 3 || r.dst == nil {
		return
	}

	src := r.white
	if tex := r.textures[b.State.Tile&7]; tex != nil && SamplesTexture(b.State) {
		src = tex
	}
	r.vertices, r.indices = Convert(b, src.Bounds(), r.vertices[:0], r.indices[:0])

	dst := r.dst
	if !b.State.Scissor.Empty() {
		clip := b.State.Scissor.Intersect(dst.Bounds())
		if clip.Empty() {
			return
		}
		dst = dst.SubImage(clip).(*ebiten.Image)
	}

	opts := &ebiten.DrawTrianglesOptions{
		Blend:     ebiten.BlendSourceOver,
		AntiAlias: false,
	}
	if src != r.white {
		opts.Address = ebiten.AddressRepeat
	}
	dst.DrawTriangles(r.vertices, r.indices, src, opts)
}

// SamplesTexture reports whether a batch drawn with st is textured and its
// combiner reads the texture at all.
func SamplesTexture(st renderer.State) bool {
	if !st.Textured {
		return false
	}
	cycle := st.OtherMode.CycleType()
	return st.Combine.Uses(rdp.CombineTex0, cycle) || st.Combine.Uses(rdp.CombineTex1, cycle)
}

// Checkerboard returns a size by size image of cells by cells squares
// alternating between a and b. Texture decoding is left to the caller, a
// checkerboard shows how texture coordinates map onto the geometry.
func Checkerboard(size, cells int, a, b color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(size/max(cells, 1), 1)
	for y := range size {
		for x := range size {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// Convert appends the vertices of b and their indices to vs and is.
// Texture coordinates are offset into src, untextured vertices sample its
// centre.
func Convert(b renderer.Batch, src image.Rectangle, vs []ebiten.Vertex, is []uint16) ([]ebiten.Vertex, []uint16) {
	cx := float32(src.Min.X) + float32(src.Dx())/2
	cy := float32(src.Min.Y) + float32(src.Dy())/2
	for i, v := range b.Vertices {
		ev := ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   cx,
			SrcY:   cy,
			ColorR: v.R,
			ColorG: v.G,
			ColorB: v.B,
			ColorA: v.A,
		}
		if b.State.Textured {
			ev.SrcX = float32(src.Min.X) + v.U
			ev.SrcY = float32(src.Min.Y) + v.V
		}
		vs = append(vs, ev)
		is = append(is, uint16(i))
	}
	return vs, is
}

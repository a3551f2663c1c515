package renderer

import (
	"image/color"

	"golang.org/x/image/math/f32"
)

// corners in the order top left, top right, bottom left, bottom right
func (r *Renderer) draw2D(xy0, xy1 f32.Vec2, uv [4]f32.Vec2, col f32.Vec4, textured bool) {
	r.Flush()

	lo, hi := r.Viewport.ToHost(xy0), r.Viewport.ToHost(xy1)
	pos := [4]f32.Vec2{{lo[0], lo[1]}, {hi[0], lo[1]}, {lo[0], hi[1]}, {hi[0], hi[1]}}
	z := float32(0)
	if r.otherMode.PrimDepth() {
		z = r.primDepth / 65535
	}

	r.batch = r.batch[:0]
	for _, i := range [...]int{0, 1, 2, 2, 1, 3} {
		r.batch = append(r.batch, Vertex{
			X: pos[i][0], Y: pos[i][1], Z: z, W: 1,
			U: uv[i][0], V: uv[i][1],
			R: col[0], G: col[1], B: col[2], A: col[3],
		})
	}

	state := r.state()
	state.Textured = textured
	r.stats.Rects++
	r.stats.Batches++
	r.raster.RenderBatch(Batch{
		Vertices:   r.batch,
		Primitive:  Triangles,
		Mode:       Mode2D,
		DepthTest:  r.otherMode.DepthTest(),
		DepthWrite: r.otherMode.DepthWrite(),
		Decal:      r.otherMode.Decal(),
		State:      state,
	})
}

// FillRect draws a solid rectangle between two corners given in logical
// pixels.
func (r *Renderer) FillRect(xy0, xy1 f32.Vec2, c color.RGBA) {
	r.draw2D(xy0, xy1, [4]f32.Vec2{}, rgba(c), false)
}

// TexRect draws a textured rectangle. uv0 and uv1 are the texture
// coordinates at xy0 and xy1.
func (r *Renderer) TexRect(tile int, xy0, xy1, uv0, uv1 f32.Vec2) {
	r.SetTextureTile(tile)
	r.draw2D(xy0, xy1, [4]f32.Vec2{
		{uv0[0], uv0[1]}, {uv1[0], uv0[1]}, {uv0[0], uv1[1]}, {uv1[0], uv1[1]},
	}, f32.Vec4{1, 1, 1, 1}, true)
}

// TexRectFlip is TexRect with the texture's axes swapped.
func (r *Renderer) TexRectFlip(tile int, xy0, xy1, uv0, uv1 f32.Vec2) {
	r.SetTextureTile(tile)
	r.draw2D(xy0, xy1, [4]f32.Vec2{
		{uv0[0], uv0[1]}, {uv0[0], uv1[1]}, {uv1[0], uv0[1]}, {uv1[0], uv1[1]},
	}, f32.Vec4{1, 1, 1, 1}, true)
}

package renderer

import (
	"golang.org/x/image/math/f32"

	"github.com/clktmr/n64hle/logger"
)

// AddTriangle appends a triangle to the pending batch and reports whether it
// is visible. Triangles entirely outside one plane of the view volume and
// culled faces are dropped.
func (r *Renderer) AddTriangle(v0, v1, v2 int) bool {
	for _, i := range [...]int{v0, v1, v2} {
		if i < 0 || i >= MaxVertices {
			r.log.Logf(logger.Allow, "renderer", "triangle references vertex %d", i)
			return false
		}
	}
	f0, f1, f2 := r.vtx[v0].ClipFlags, r.vtx[v1].ClipFlags, r.vtx[v2].ClipFlags
	if f0&f1&f2 != 0 {
		return false
	}
	if r.tnl.Flags&TnLCull != 0 && r.culled(v0, v1, v2) {
		return false
	}

	if r.numIndices+3 > MaxIndices {
		r.Flush()
	}
	r.indices[r.numIndices] = uint16(v0)
	r.indices[r.numIndices+1] = uint16(v1)
	r.indices[r.numIndices+2] = uint16(v2)
	r.numIndices += 3
	r.clipUnion |= f0 | f1 | f2
	return true
}

// culled tests the winding in normalised device coordinates. Triangles with
// a vertex behind the eye are never culled, the clipper handles them.
func (r *Renderer) culled(v0, v1, v2 int) bool {
	a, b, c := &r.vtx[v0].Projected, &r.vtx[v1].Projected, &r.vtx[v2].Projected
	if a[3] <= 0 || b[3] <= 0 || c[3] <= 0 {
		return false
	}
	ax, ay := a[0]/a[3], a[1]/a[3]
	bx, by := b[0]/b[3], b[1]/b[3]
	cx, cy := c[0]/c[3], c[1]/c[3]
	cross := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	if r.tnl.Flags&TnLCullBack != 0 {
		return cross <= 0
	}
	return cross >= 0
}

// Pending returns the number of triangles waiting for Flush.
func (r *Renderer) Pending() int {
	return r.numIndices / 3
}

// ClipUnion returns the union of the clip flags of all pending triangles.
func (r *Renderer) ClipUnion() uint8 {
	return r.clipUnion
}

type clipVertex struct {
	pos f32.Vec4
	tex f32.Vec2
	col f32.Vec4
}

func lerp(a, b *clipVertex, t float32) clipVertex {
	var o clipVertex
	for i := range o.pos {
		o.pos[i] = a.pos[i] + (b.pos[i]-a.pos[i])*t
		o.col[i] = a.col[i] + (b.col[i]-a.col[i])*t
	}
	for i := range o.tex {
		o.tex[i] = a.tex[i] + (b.tex[i]-a.tex[i])*t
	}
	return o
}

// Signed distances to the six planes of the canonical view volume in
// homogeneous space. Inside is >= 0.
var planes = [...]func(p *f32.Vec4) float32{
	func(p *f32.Vec4) float32 { return p[3] + p[0] },
	func(p *f32.Vec4) float32 { return p[3] - p[0] },
	func(p *f32.Vec4) float32 { return p[3] + p[1] },
	func(p *f32.Vec4) float32 { return p[3] - p[1] },
	func(p *f32.Vec4) float32 { return p[3] + p[2] },
	func(p *f32.Vec4) float32 { return p[3] - p[2] },
}

// clip clips the polygon in r.clipping[0] against all planes
// (Sutherland-Hodgman) and returns the result.
func (r *Renderer) clip() []clipVertex {
	in, out := r.clipping[0], r.clipping[1]
	for _, dist := range planes {
		out = out[:0]
		for i := range in {
			prev, cur := &in[(i+len(in)-1)%len(in)], &in[i]
			dp, dc := dist(&prev.pos), dist(&cur.pos)
			if dc >= 0 {
				if dp < 0 {
					out = append(out, lerp(prev, cur, dp/(dp-dc)))
				}
				out = append(out, *cur)
			} else if dp >= 0 {
				out = append(out, lerp(prev, cur, dp/(dp-dc)))
			}
		}
		in, out = out, in
		if len(in) < 3 {
			break
		}
	}
	r.clipping[0], r.clipping[1] = in, out
	return in
}

func (r *Renderer) clipVertex(i uint16) clipVertex {
	v := &r.vtx[i]
	return clipVertex{pos: v.Projected, tex: v.Texture, col: v.Color}
}

const minW = 1e-6

func (r *Renderer) emit(c *clipVertex) {
	w := c.pos[3]
	if w > -minW && w < minW {
		w = minW
	}
	h := r.Viewport.Project(f32.Vec3{c.pos[0] / w, c.pos[1] / w, c.pos[2] / w})
	if r.otherMode.PrimDepth() {
		h[2] = r.primDepth / 65535
	}
	r.batch = append(r.batch, Vertex{
		X: h[0], Y: h[1], Z: h[2], W: w,
		U: c.tex[0], V: c.tex[1],
		R: c.col[0], G: c.col[1], B: c.col[2], A: c.col[3],
	})
}

// Flush hands the pending triangles to the rasterizer. If any of them
// crosses the view volume, those triangles are clipped first.
func (r *Renderer) Flush() {
	if r.numIndices == 0 {
		return
	}
	r.batch = r.batch[:0]
	indices := r.indices[:r.numIndices]
	if r.clipUnion == 0 {
		for _, i := range indices {
			c := r.clipVertex(i)
			r.emit(&c)
		}
	} else {
		for t := 0; t+2 < len(indices); t += 3 {
			i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
			if r.vtx[i0].ClipFlags|r.vtx[i1].ClipFlags|r.vtx[i2].ClipFlags == 0 {
				for _, i := range [...]uint16{i0, i1, i2} {
					c := r.clipVertex(i)
					r.emit(&c)
				}
				continue
			}

			r.stats.TrisClipped++
			r.clipping[0] = append(r.clipping[0][:0], r.clipVertex(i0), r.clipVertex(i1), r.clipVertex(i2))
			poly := r.clip()
			for k := 1; k+1 < len(poly); k++ {
				r.emit(&poly[0])
				r.emit(&poly[k])
				r.emit(&poly[k+1])
			}
		}
	}
	r.numIndices = 0
	r.clipUnion = 0

	if len(r.batch) == 0 {
		return
	}
	r.stats.TrisRendered += len(r.batch) / 3
	r.stats.Batches++
	r.raster.RenderBatch(Batch{
		Vertices:   r.batch,
		Primitive:  Triangles,
		Mode:       Mode3D,
		DepthTest:  r.tnl.Flags&TnLZBuffer != 0 && r.otherMode.DepthTest(),
		DepthWrite: r.otherMode.DepthWrite(),
		Decal:      r.otherMode.Decal(),
		State:      r.state(),
	})
}

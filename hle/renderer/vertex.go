package renderer

import (
	"image/color"
	"math"

	"golang.org/x/image/math/f32"

	"github.com/clktmr/n64hle/hle/matrix"
	"github.com/clktmr/n64hle/hle/vertex"
	"github.com/clktmr/n64hle/logger"
)

// Offsets for ModifyVertex.
const (
	ModifyRGBA     = 0x10
	ModifyST       = 0x14
	ModifyXYScreen = 0x18
	ModifyZScreen  = 0x1c
)

func (r *Renderer) validVertex(i int) bool {
	if i < 0 || i >= MaxVertices {
		r.log.Logf(logger.Allow, "renderer", "vertex %d out of range", i)
		return false
	}
	return true
}

func clipFlags(p f32.Vec4) (f uint8) {
	w := p[3]
	if p[0] < -w {
		f |= ClipXNeg
	} else if p[0] > w {
		f |= ClipXPos
	}
	if p[1] < -w {
		f |= ClipYNeg
	} else if p[1] > w {
		f |= ClipYPos
	}
	if p[2] < -w {
		f |= ClipZNeg
	} else if p[2] > w {
		f |= ClipZPos
	}
	return
}

func rgba(c color.RGBA) f32.Vec4 {
	return f32.Vec4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

// release flushes the pending triangles if any of them references slot, so
// they are drawn with the vertex as it was when they were added.
func (r *Renderer) release(slot int) {
	for _, i := range r.indices[:r.numIndices] {
		if int(i) == slot {
			r.Flush()
			return
		}
	}
}

// SubmitVertex transforms raw and stores the result in slot. Slots outside
// the vertex cache are ignored.
func (r *Renderer) SubmitVertex(slot int, raw vertex.Raw, format vertex.Format) {
	if !r.validVertex(slot) {
		return
	}
	r.release(slot)
	pos := f32.Vec4{float32(raw.X), float32(raw.Y), float32(raw.Z), 1}

	var mv, wp f32.Mat4
	if format == vertex.DKR {
		mv = r.dkr.m[r.dkr.selected]
		p := r.Matrices.Top(matrix.Projection)
		wp = matrix.Mul(&mv, &p)
	} else {
		mv = r.Matrices.Top(matrix.ModelView)
		wp = r.Matrices.Combined()
	}

	v := &r.vtx[slot]
	v.Transformed = matrix.Transform(&mv, pos)
	v.Projected = matrix.Transform(&wp, pos)
	v.ClipFlags = clipFlags(v.Projected)

	texGenerated := false
	switch format {
	case vertex.PD:
		v.Color = r.indexedColor(raw.ColorIndex)
	case vertex.DKR:
		v.Color = rgba(raw.Color())
	default:
		if r.tnl.Flags&TnLLight == 0 {
			v.Color = rgba(raw.Color())
			break
		}
		nx, ny, nz := raw.Normal()
		n := normalise(matrix.TransformNormal(&mv, f32.Vec3{nx, ny, nz}))
		v.Color = r.light(n)
		v.Color[3] = float32(raw.A) / 255
		if r.tnl.Flags&TnLTexGen != 0 {
			v.Texture = texGen(n, r.tnl.Flags&TnLTexGenLin != 0)
			texGenerated = true
		}
	}
	if !texGenerated {
		v.Texture = f32.Vec2{
			raw.TU.Float() * r.tnl.TextureScale[0],
			raw.TV.Float() * r.tnl.TextureScale[1],
		}
	}

	if r.tnl.Flags&TnLFog != 0 && v.Projected[3] > 0 {
		z := v.Projected[2] / v.Projected[3]
		v.Color[3] = clamp01((z*r.tnl.FogMult + r.tnl.FogOffset) / 256)
	}
}

// texGen derives texture coordinates from a normal for environment mapping.
func texGen(n f32.Vec3, linear bool) f32.Vec2 {
	if linear {
		return f32.Vec2{
			float32(math.Acos(float64(clampUnit(n[0])))) / math.Pi,
			float32(math.Acos(float64(clampUnit(n[1])))) / math.Pi,
		}
	}
	return f32.Vec2{0.5 * (1 + n[0]), 0.5 * (1 - n[1])}
}

func clampUnit(f float32) float32 {
	return min(max(f, -1), 1)
}

func (r *Renderer) indexedColor(i uint8) f32.Vec4 {
	if r.mem == nil {
		return f32.Vec4{1, 1, 1, 1}
	}
	a := r.pdColorBase + uint32(i)
	return rgba(color.RGBA{r.mem.Read8(a), r.mem.Read8(a + 1), r.mem.Read8(a + 2), r.mem.Read8(a + 3)})
}

// SubmitVertices decodes and submits n records starting at addr to slots
// starting at v0.
func (r *Renderer) SubmitVertices(addr uint32, v0, n int, format vertex.Format) {
	if r.mem == nil {
		return
	}
	if v0 < 0 || n < 0 || v0+n > MaxVertices {
		r.log.Logf(logger.Allow, "renderer", "loading vertices %d..%d past cache size %d", v0, v0+n-1, MaxVertices)
		return
	}
	size := uint32(format.Size())
	for i := range n {
		r.SubmitVertex(v0+i, vertex.Read(r.mem, format, addr+uint32(i)*size), format)
	}
}

// TestRange reports whether the vertices v0 to vn inclusive are possibly
// visible: no single plane has all of them outside.
func (r *Renderer) TestRange(v0, vn int) bool {
	if v0 < 0 || vn >= MaxVertices || v0 > vn {
		return true
	}
	f := r.vtx[v0].ClipFlags
	for i := v0 + 1; i <= vn; i++ {
		f &= r.vtx[i].ClipFlags
	}
	return f == 0
}

// Vertex returns the vertex in slot i.
func (r *Renderer) Vertex(i int) Projected {
	if !r.validVertex(i) {
		return Projected{}
	}
	return r.vtx[i]
}

func (r *Renderer) Flags(i int) uint8 {
	return r.Vertex(i).ClipFlags
}

func (r *Renderer) TransformedPos(i int) f32.Vec4 {
	return r.Vertex(i).Transformed
}

func (r *Renderer) ProjectedPos(i int) f32.Vec4 {
	return r.Vertex(i).Projected
}

// VertexDepth returns the clip space z of vertex i.
func (r *Renderer) VertexDepth(i int) int32 {
	return int32(r.Vertex(i).Projected[2])
}

// CopyVertex copies slot src to slot dst.
func (r *Renderer) CopyVertex(src, dst int) {
	if r.validVertex(src) && r.validVertex(dst) {
		r.release(dst)
		r.vtx[dst] = r.vtx[src]
	}
}

func (r *Renderer) SetVertexColor(i int, c color.RGBA) {
	if r.validVertex(i) {
		r.release(i)
		r.vtx[i].Color = rgba(c)
	}
}

// SetVertexTexCoord sets the texture coordinate of vertex i from s10.5
// values.
func (r *Renderer) SetVertexTexCoord(i int, tu, tv int16) {
	if r.validVertex(i) {
		r.release(i)
		r.vtx[i].Texture = f32.Vec2{float32(tu) / 32, float32(tv) / 32}
	}
}

// SetVertexXY moves vertex i to the given logical screen position.
func (r *Renderer) SetVertexXY(i int, x, y float32) {
	if !r.validVertex(i) {
		return
	}
	r.release(i)
	scale, trans := r.Viewport.Viewport()
	v := &r.vtx[i]
	w := v.Projected[3]
	if scale[0] != 0 {
		v.Projected[0] = (x - trans[0]) / scale[0] * w
	}
	if scale[1] != 0 {
		v.Projected[1] = (trans[1] - y) / scale[1] * w
	}
	v.ClipFlags = clipFlags(v.Projected)
}

// SetVertexZ sets the screen depth of vertex i, z in [0, 0x7fff].
func (r *Renderer) SetVertexZ(i int, z float32) {
	if !r.validVertex(i) {
		return
	}
	r.release(i)
	v := &r.vtx[i]
	v.Projected[2] = (z/0x3fff - 1) * v.Projected[3]
	v.Transformed[2] = z
	v.ClipFlags = clipFlags(v.Projected)
}

// ModifyVertex applies a vertex modification command. where is one of the
// Modify offsets.
func (r *Renderer) ModifyVertex(where uint32, i int, val uint32) {
	switch where {
	case ModifyRGBA:
		r.SetVertexColor(i, color.RGBA{uint8(val >> 24), uint8(val >> 16), uint8(val >> 8), uint8(val)})
	case ModifyST:
		r.SetVertexTexCoord(i, int16(val>>16), int16(val))
	case ModifyXYScreen:
		r.SetVertexXY(i, float32(int16(val>>16))/4, float32(int16(val))/4)
	case ModifyZScreen:
		r.SetVertexZ(i, float32(val>>16))
	default:
		r.log.Logf(logger.Allow, "renderer", "unknown vertex modification 0x%02x", where)
	}
}

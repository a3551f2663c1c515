package gbi

import (
	"golang.org/x/image/math/f32"

	"github.com/clktmr/n64hle/hle/matrix"
	"github.com/clktmr/n64hle/hle/renderer"
	"github.com/clktmr/n64hle/hle/vertex"
	"github.com/clktmr/n64hle/logger"
	"github.com/clktmr/n64hle/rcp/fixed"
)

// Geometry mode bits differ between Fast3D/F3DEX and F3DEX2.
type geometryBits struct {
	zbuffer, shade, smooth       uint32
	cullFront, cullBack          uint32
	fog, lighting                uint32
	textureGen, textureGenLinear uint32
}

var (
	gbi1Geometry = geometryBits{
		zbuffer: 0x1, shade: 0x4, smooth: 0x200,
		cullFront: 0x1000, cullBack: 0x2000,
		fog: 0x10000, lighting: 0x20000,
		textureGen: 0x40000, textureGenLinear: 0x80000,
	}
	gbi2Geometry = geometryBits{
		zbuffer: 0x1, shade: 0x4, smooth: 0x200000,
		cullFront: 0x200, cullBack: 0x400,
		fog: 0x10000, lighting: 0x20000,
		textureGen: 0x40000, textureGenLinear: 0x80000,
	}
)

func (s *Session) updateGeometryMode(b *geometryBits) {
	m := s.geometryMode
	var f renderer.TnLFlags
	if m&b.lighting != 0 {
		f |= renderer.TnLLight
	}
	if m&b.textureGen != 0 {
		f |= renderer.TnLTexGen
	}
	if m&b.textureGenLinear != 0 {
		f |= renderer.TnLTexGenLin
	}
	if m&b.fog != 0 {
		f |= renderer.TnLFog
	}
	if m&b.shade != 0 && m&b.smooth != 0 {
		f |= renderer.TnLShade
	}
	if m&b.zbuffer != 0 {
		f |= renderer.TnLZBuffer
	}
	s.Renderer.SetTnLMode(f)
	s.Renderer.SetCullMode(m&(b.cullFront|b.cullBack) != 0, m&b.cullBack != 0)
}

// GeometryMode returns the raw geometry mode word.
func (s *Session) GeometryMode() uint32 {
	return s.geometryMode
}

func gbi1ClearGeometryMode(s *Session, w0, w1 uint32) {
	s.geometryMode &^= w1
	s.updateGeometryMode(&gbi1Geometry)
}

func gbi1SetGeometryMode(s *Session, w0, w1 uint32) {
	s.geometryMode |= w1
	s.updateGeometryMode(&gbi1Geometry)
}

func gbi2GeometryMode(s *Session, w0, w1 uint32) {
	s.geometryMode &= w0 & 0x00ffffff
	s.geometryMode |= w1
	s.updateGeometryMode(&gbi2Geometry)
}

func gbi1SetOtherModeL(s *Session, w0, w1 uint32) {
	shift, length := (w0>>8)&0xff, w0&0xff
	s.Renderer.SetOtherModeBits(false, shift, length, w1)
}

func gbi1SetOtherModeH(s *Session, w0, w1 uint32) {
	shift, length := (w0>>8)&0xff, w0&0xff
	s.Renderer.SetOtherModeBits(true, shift, length, w1)
}

func gbi2OtherModeField(w0 uint32) (shift, length uint32) {
	length = (w0 & 0xff) + 1
	shift = 32 - ((w0 >> 8) & 0xff) - length
	return
}

func gbi2SetOtherModeL(s *Session, w0, w1 uint32) {
	shift, length := gbi2OtherModeField(w0)
	s.Renderer.SetOtherModeBits(false, shift, length, w1)
}

func gbi2SetOtherModeH(s *Session, w0, w1 uint32) {
	shift, length := gbi2OtherModeField(w0)
	s.Renderer.SetOtherModeBits(true, shift, length, w1)
}

func texture(s *Session, on bool, w0, w1 uint32) {
	s.Renderer.SetTextureTile(int(w0>>8) & 7)
	s.Renderer.SetTextureEnable(on)
	scaleS := fixed.UInt0_16(w1 >> 16).Float()
	scaleT := fixed.UInt0_16(w1).Float()
	s.Renderer.SetTextureScale(scaleS, scaleT)
}

func gbi1Texture(s *Session, w0, w1 uint32) {
	texture(s, w0&0xff != 0, w0, w1)
}

func gbi2Texture(s *Session, w0, w1 uint32) {
	texture(s, (w0>>1)&0x7f != 0, w0, w1)
}

// Vertices

func gbi0Vtx(s *Session, w0, w1 uint32) {
	n := int((w0>>20)&0xf) + 1
	v0 := int((w0 >> 16) & 0xf)
	s.Renderer.SubmitVertices(s.Segment(w1), v0, n, vertex.Standard)
}

func gbi1Vtx(s *Session, w0, w1 uint32) {
	v0 := int((w0>>16)&0xff) / s.info.Stride
	n := int((w0 >> 10) & 0x3f)
	s.Renderer.SubmitVertices(s.Segment(w1), v0, n, vertex.Standard)
}

func gbi2Vtx(s *Session, w0, w1 uint32) {
	end := int(w0&0xff) >> 1
	n := int((w0 >> 12) & 0xff)
	s.Renderer.SubmitVertices(s.Segment(w1), end-n, n, vertex.Standard)
}

func gbi1ModifyVtx(s *Session, w0, w1 uint32) {
	where := (w0 >> 16) & 0xff
	s.Renderer.ModifyVertex(where, int(w0&0xffff)/2, w1)
}

func gbi2ModifyVtx(s *Session, w0, w1 uint32) {
	gbi1ModifyVtx(s, w0, w1)
}

// Triangles

func (s *Session) tri(v0, v1, v2 uint32) {
	s.Renderer.AddTriangle(int(v0), int(v1), int(v2))
}

// tri1 adds the triangle with vertex offsets in the low three bytes of w.
func (s *Session) tri1(w uint32, stride uint32) {
	s.tri(((w>>16)&0xff)/stride, ((w>>8)&0xff)/stride, (w&0xff)/stride)
}

func gbi1Tri1(s *Session, w0, w1 uint32) {
	s.tri1(w1, uint32(s.info.Stride))
}

func gbi1Tri2(s *Session, w0, w1 uint32) {
	stride := uint32(s.info.Stride)
	s.tri1(w0, stride)
	s.tri1(w1, stride)
}

// quad adds the quad v0 v1 v2 v3 with v3 in the top byte of w as two
// triangles.
func (s *Session) quad(w uint32, stride uint32) {
	v3 := ((w >> 24) & 0xff) / stride
	v0 := ((w >> 16) & 0xff) / stride
	v1 := ((w >> 8) & 0xff) / stride
	v2 := (w & 0xff) / stride
	s.tri(v0, v1, v2)
	s.tri(v2, v3, v0)
}

func gbi1Line3D(s *Session, w0, w1 uint32) {
	s.quad(w1, uint32(s.info.Stride))
}

// gbi0Tri4 draws up to four triangles with 4-bit vertex indices. Triangle k
// takes its first vertex from nibble k of w0 and the other two from nibbles
// 2k and 2k+1 of w1. Unused triangles repeat one vertex.
func gbi0Tri4(s *Session, w0, w1 uint32) {
	for k := range uint32(4) {
		x := (w0 >> (4 * k)) & 0xf
		y := (w1 >> (8 * k)) & 0xf
		z := (w1 >> (8*k + 4)) & 0xf
		if x == y && y == z {
			continue
		}
		s.tri(x, y, z)
	}
}

func gbi2Tri1(s *Session, w0, w1 uint32) {
	s.tri1(w0, 2)
}

func gbi2Tri2(s *Session, w0, w1 uint32) {
	s.tri1(w0, 2)
	s.tri1(w1, 2)
}

func gbi2Quad(s *Session, w0, w1 uint32) {
	gbi2Tri2(s, w0, w1)
}

// Matrices

func gbi0Mtx(s *Session, w0, w1 uint32) {
	params := (w0 >> 16) & 0xff
	m := matrix.Read(s.Mem, s.Segment(w1))
	k := matrix.ModelView
	if params&1 != 0 {
		k = matrix.Projection
	}
	s.Renderer.Matrices.Set(k, m, params&4 != 0, params&2 != 0)
}

func gbi1Mtx(s *Session, w0, w1 uint32) {
	gbi0Mtx(s, w0, w1)
}

func gbi2Mtx(s *Session, w0, w1 uint32) {
	m := matrix.Read(s.Mem, s.Segment(w1))
	load := w0&2 != 0
	if w0&4 != 0 {
		s.Renderer.Matrices.Set(matrix.Projection, m, false, load)
	} else {
		s.Renderer.Matrices.Set(matrix.ModelView, m, w0&1 == 0, load)
	}
}

func gbi1PopMtx(s *Session, w0, w1 uint32) {
	k := matrix.ModelView
	if w1&1 != 0 {
		k = matrix.Projection
	}
	s.Renderer.Matrices.Pop(k)
}

func gbi2PopMtx(s *Session, w0, w1 uint32) {
	for range max(w1>>6, 1) {
		s.Renderer.Matrices.Pop(matrix.ModelView)
	}
}

// InsertMatrix modifies two elements of the combined matrix. offset is the
// byte offset into an s15.16 matrix.
func (s *Session) InsertMatrix(offset, w uint32) {
	s.Renderer.Matrices.Insert(int(offset&0x1f)>>1, offset&0x20 != 0, w)
}

// ForceMatrix replaces the combined matrix with the one at addr.
func (s *Session) ForceMatrix(addr uint32) {
	s.Renderer.Matrices.Force(matrix.Read(s.Mem, addr))
}

// Move word

const (
	mwMatrix      = 0x00
	mwNumLight    = 0x02
	mwClip        = 0x04
	mwSegment     = 0x06
	mwFog         = 0x08
	mwLightColor  = 0x0a
	mwPoints      = 0x0c
	mwPerspNormal = 0x0e
)

func (s *Session) moveWord(index, offset, w1 uint32, lightSize uint32) {
	switch index {
	case mwMatrix:
		s.InsertMatrix(offset, w1)
	case mwSegment:
		s.SetSegment(int(offset>>2), w1)
	case mwFog:
		s.Renderer.SetFog(int16(w1>>16), int16(w1))
	case mwLightColor:
		if offset%lightSize == 0 {
			s.Renderer.SetLightColor(int(offset/lightSize), uint8(w1>>24), uint8(w1>>16), uint8(w1>>8))
		}
	case mwPoints:
		s.Renderer.ModifyVertex(offset%40, int(offset/40), w1)
	case mwClip, mwPerspNormal:
	default:
		s.log.Logf(logger.Allow, "gbi", "unknown move word index 0x%02x", index)
	}
}

func gbi1MoveWord(s *Session, w0, w1 uint32) {
	index, offset := w0&0xff, (w0>>8)&0xffff
	if index == mwNumLight {
		s.Renderer.SetNumLights(int((w1-0x80000000)>>5) - 1)
		return
	}
	s.moveWord(index, offset, w1, 0x20)
}

func gbi2MoveWord(s *Session, w0, w1 uint32) {
	index, offset := (w0>>16)&0xff, w0&0xffff
	if index == mwNumLight {
		s.Renderer.SetNumLights(int(w1 / 24))
		return
	}
	s.moveWord(index, offset, w1, 0x18)
}

// Move mem

func (s *Session) readViewport(addr uint32) {
	h := func(i uint32) float32 { return float32(int16(s.Mem.Read16(addr+i))) / 4 }
	scale := f32.Vec2{h(0), h(2)}
	trans := f32.Vec2{h(8), h(10)}
	s.Renderer.SetViewport(scale, trans)
}

func (s *Session) readLight(l int, addr uint32) {
	s.Renderer.SetLightColor(l, s.Mem.Read8(addr), s.Mem.Read8(addr+1), s.Mem.Read8(addr+2))
	x := int8(s.Mem.Read8(addr + 8))
	y := int8(s.Mem.Read8(addr + 9))
	z := int8(s.Mem.Read8(addr + 10))
	s.Renderer.SetLightDirection(l, float32(x), float32(y), float32(z))
}

func gbi1MoveMem(s *Session, w0, w1 uint32) {
	typ := (w0 >> 16) & 0xff
	addr := s.Segment(w1)
	switch {
	case typ == 0x80:
		s.readViewport(addr)
	case typ >= 0x86 && typ <= 0x94:
		s.readLight(int(typ-0x86)/2, addr)
	case typ == 0x9e:
		s.ForceMatrix(addr)
		// the three commands loading the rest of the matrix are redundant
		s.skip(3)
	case typ == 0x82, typ == 0x84:
		// look at vectors for texture generation
	default:
		s.log.Logf(logger.Allow, "gbi", "unknown move mem type 0x%02x", typ)
	}
}

func gbi2MoveMem(s *Session, w0, w1 uint32) {
	typ := w0 & 0xfe
	addr := s.Segment(w1)
	switch typ {
	case 8:
		s.readViewport(addr)
	case 10:
		l := int((w0>>8)&0xff)*8/24 - 2
		if l >= 0 {
			s.readLight(l, addr)
		}
	case 14:
		s.ForceMatrix(addr)
	default:
		s.log.Logf(logger.Allow, "gbi", "unknown move mem type 0x%02x", typ)
	}
}

package gbi

import (
	"golang.org/x/image/math/f32"

	"github.com/clktmr/n64hle/hle/matrix"
	"github.com/clktmr/n64hle/hle/vertex"
	"github.com/clktmr/n64hle/logger"
	"github.com/clktmr/n64hle/rcp/fixed"
)

// Commands of microcodes modified for single titles.

// GoldenEye draws its sky with a block of commands following an RDPHALF_1
// tagged 0xce.
const goldenEyeSkyCommands = 39

func goldenEyeRDPHalf1(s *Session, w0, w1 uint32) {
	if w1>>24 != 0xce {
		rdpHalf1(s, w0, w1)
		return
	}
	_, a1 := s.next(0)
	_, a3 := s.next(2)
	y0 := fixed.UInt14_2(a3 & 0xfff).Float()
	y1 := fixed.UInt14_2(a1 & 0xfff).Float()
	width := float32(s.colorImage.Width)
	if s.colorImage.Width <= 1 {
		width = 320
	}
	s.Renderer.FillRect(f32.Vec2{0, min(y0, y1)}, f32.Vec2{width, max(y0, y1)}, s.Renderer.PrimitiveColor())
	s.skip(goldenEyeSkyCommands)
}

// Wave Race 64 and Shadows of the Empire use a beta Fast3D with a vertex
// stride of 5.
const betaStride = 5

func betaVtx(s *Session, w0, w1 uint32) {
	v0 := int((w0>>16)&0xff) / betaStride
	n := int((w0 >> 9) & 0x7f)
	s.Renderer.SubmitVertices(s.Segment(w1), v0, n, vertex.Standard)
}

func betaTri1(s *Session, w0, w1 uint32) {
	s.tri1(w1, betaStride)
}

func betaTri2(s *Session, w0, w1 uint32) {
	s.tri1(w0, betaStride)
	s.tri1(w1, betaStride)
}

func betaLine3D(s *Session, w0, w1 uint32) {
	s.quad(w1, betaStride)
}

// Last Legion UX, Dark Rift and Toukon Road.

func lastLegion0x80(s *Session, w0, w1 uint32) {
	s.skip(2)
}

// lastLegion0x00 calls the two lists referenced by the list at w1, or ends
// the current list if w1 is zero.
func lastLegion0x00(s *Session, w0, w1 uint32) {
	s.skip(2)
	switch {
	case w0 == 0 && w1 != 0:
		addr := s.Segment(w1)
		pc1 := s.Mem.Read32(addr + 8*1 + 4)
		pc2 := s.Mem.Read32(addr + 8*4 + 4)
		for _, pc := range [...]uint32{pc1, pc2} {
			if pc != 0 && pc&0x00ffffff != 0x00ffffff {
				s.pushDL(s.Segment(pc), -1)
			}
		}
	case w1 == 0:
		s.popDL()
	default:
		s.log.Logf(logger.Allow, "gbi", "unknown Last Legion command %08x %08x", w0, w1)
	}
}

// lastLegionTexRect is a texture rectangle with its corners swapped.
func lastLegionTexRect(s *Session, w0, w1 uint32) {
	_, w2 := s.next(0)
	_, w3 := s.next(1)
	s.skip(2)
	s.texRect(w0&0xff000000|w1&0x00ffffff, w1&0xff000000|w0&0x00ffffff, w2, w3, false)
}

// Perfect Dark

func pdVtx(s *Session, w0, w1 uint32) {
	v0 := int((w0 >> 16) & 0xf)
	n := int((w0>>20)&0xf) + 1
	s.Renderer.SubmitVertices(s.Segment(w1), v0, n, vertex.PD)
}

func pdSetVtxCI(s *Session, w0, w1 uint32) {
	s.Renderer.SetColorIndexBase(s.Segment(w1))
}

// Diddy Kong Racing and Jet Force Gemini

func dkrSetAddr(s *Session, w0, w1 uint32) {
	s.dkr.mtxBase = w0 & 0x00ffffff
	s.dkr.vtxBase = s.Segment(w1 & 0x00ffffff)
	s.dkr.vtxCount = 0
}

func dkrMtx(s *Session, w0, w1 uint32) {
	addr := s.Mem.Mask(s.Segment(s.dkr.mtxBase) + w1)
	idx := int(w0>>16) & 3
	mul := false
	if idx == 0 {
		idx = int(w0>>22) & 3
		mul = true
	}
	s.Renderer.SetDKRMatrix(idx, matrix.Read(s.Mem, addr), mul)
}

func dkrVtx(s *Session, w0, w1 uint32) {
	n := int((w0>>19)&0x1f) + 1
	if w0&0x00010000 != 0 {
		if s.dkr.billboard {
			s.dkr.vtxCount = 1
		}
	} else {
		s.dkr.vtxCount = 0
	}
	v0 := int((w0>>9)&0x1f) + s.dkr.vtxCount
	s.Renderer.SubmitVertices(s.Mem.Mask(s.dkr.vtxBase+w1), v0, n, vertex.DKR)
}

// dkrTriSize is the size of a DMA triangle: flag, three indices and three
// texture coordinates.
const dkrTriSize = 16

func dkrDMATri(s *Session, w0, w1 uint32) {
	addr := s.Segment(w1)
	count := int((w0 >> 4) & 0x1f)
	for i := range count {
		t := addr + uint32(i)*dkrTriSize
		flag := s.Mem.Read8(t)
		v0, v1, v2 := int(s.Mem.Read8(t+1)), int(s.Mem.Read8(t+2)), int(s.Mem.Read8(t+3))
		st := func(j uint32) (int16, int16) {
			return int16(s.Mem.Read16(t + 4 + j*4)), int16(s.Mem.Read16(t + 6 + j*4))
		}

		s.Renderer.SetCullMode(flag&0x40 == 0, true)
		for j, v := range [...]int{v0, v1, v2} {
			tu, tv := st(uint32(j))
			s.Renderer.SetVertexTexCoord(v, tu, tv)
		}
		s.Renderer.AddTriangle(v0, v1, v2)
	}
	s.dkr.vtxCount = 0
}

func dkrMoveWord(s *Session, w0, w1 uint32) {
	switch w0 & 0xff {
	case 0x02:
		s.dkr.billboard = w1&1 != 0
	case 0x0a:
		s.Renderer.SelectDKRMatrix(int(w1>>6) & 3)
	default:
		gbi1MoveWord(s, w0, w1)
	}
}

func dkrTexture(s *Session, w0, w1 uint32) {
	texture(s, true, w0, w1)
}

// Conker's Bad Fur Day

func conkerVtx(s *Session, w0, w1 uint32) {
	end := int((w0 >> 1) & 0x7f)
	n := int((w0 >> 12) & 0xff)
	s.Renderer.SubmitVertices(s.Segment(w1), end-n, n, vertex.Standard)
}

func conkerTri1(s *Session, w0, w1 uint32) {
	gbi2Tri1(s, w0, w1)
}

func conkerTri2(s *Session, w0, w1 uint32) {
	gbi2Tri2(s, w0, w1)
}

// conkerTri4 draws four triangles with 5-bit vertex indices. Opcodes 0x10
// to 0x1f all map here since the top nibble of w0 is the opcode.
func conkerTri4(s *Session, w0, w1 uint32) {
	idx := [12]uint32{
		w1 & 0x1f, (w1 >> 5) & 0x1f, (w1 >> 10) & 0x1f,
		(w1 >> 15) & 0x1f, (w1 >> 20) & 0x1f, (w1 >> 25) & 0x1f,
		w0 & 0x1f, (w0 >> 5) & 0x1f, (w0 >> 10) & 0x1f,
		(w0>>15)&0x7<<2 | w1>>30, (w0 >> 18) & 0x1f, (w0 >> 23) & 0x1f,
	}
	for t := 0; t < len(idx); t += 3 {
		if idx[t] == idx[t+1] && idx[t+1] == idx[t+2] {
			continue
		}
		s.tri(idx[t], idx[t+1], idx[t+2])
	}
}

func conkerMoveWord(s *Session, w0, w1 uint32) {
	if (w0>>16)&0xff == mwNumLight {
		s.Renderer.SetNumLights(int(w1 / 48))
		return
	}
	gbi2MoveWord(s, w0, w1)
}

func conkerMoveMem(s *Session, w0, w1 uint32) {
	if w0&0xfe != 10 {
		gbi2MoveMem(s, w0, w1)
		return
	}
	off := (w0 >> 5) & 0x3fff
	if off >= 0x30 {
		s.readLight(int(off-0x30)/0x30, s.Segment(w1))
	}
}

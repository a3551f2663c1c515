package gbi

import (
	"golang.org/x/image/math/f32"

	"github.com/clktmr/n64hle/rcp/fixed"
)

// Sprite microcode. Objects are rectangles read from structures in RDRAM
// and drawn as texture rectangles from tile 0.

// objSprite is the uObjSprite structure.
type objSprite struct {
	X, Y           float32 // s10.2
	ScaleW, ScaleH float32 // u5.10
	ImageW, ImageH float32 // u10.5
	Flags          uint8
}

const (
	objFlagFlipS = 0x01
	objFlagFlipT = 0x10
)

func (s *Session) readObjSprite(addr uint32) objSprite {
	h := func(i uint32) uint16 { return s.Mem.Read16(addr + i) }
	return objSprite{
		X:      float32(int16(h(0))) / 4,
		ScaleW: float32(h(2)) / 1024,
		ImageW: fixed.Int11_5(h(4)).Float(),
		Y:      float32(int16(h(8))) / 4,
		ScaleH: float32(h(10)) / 1024,
		ImageH: fixed.Int11_5(h(12)).Float(),
		Flags:  s.Mem.Read8(addr + 23),
	}
}

func objRectangle(s *Session, w0, w1 uint32) {
	o := s.readObjSprite(s.Segment(w1))
	if o.ScaleW == 0 || o.ScaleH == 0 {
		return
	}
	xy0 := f32.Vec2{o.X, o.Y}
	xy1 := f32.Vec2{o.X + o.ImageW/o.ScaleW, o.Y + o.ImageH/o.ScaleH}
	uv0, uv1 := f32.Vec2{0, 0}, f32.Vec2{o.ImageW, o.ImageH}
	if o.Flags&objFlagFlipS != 0 {
		uv0[0], uv1[0] = uv1[0], uv0[0]
	}
	if o.Flags&objFlagFlipT != 0 {
		uv0[1], uv1[1] = uv1[1], uv0[1]
	}
	s.Renderer.TexRect(0, xy0, xy1, uv0, uv1)
}

// objBackground is the uObjBg structure.
type objBackground struct {
	ImageX, ImageY float32 // u10.5
	FrameX, FrameY float32 // s10.2
	FrameW, FrameH float32 // u10.2
	ScaleW, ScaleH float32 // u5.10, scaled backgrounds only
}

func (s *Session) readObjBackground(addr uint32, scaled bool) objBackground {
	h := func(i uint32) uint16 { return s.Mem.Read16(addr + i) }
	bg := objBackground{
		ImageX: fixed.Int11_5(h(0)).Float(),
		FrameX: float32(int16(h(4))) / 4,
		FrameW: fixed.UInt14_2(h(6)).Float(),
		ImageY: fixed.Int11_5(h(8)).Float(),
		FrameY: float32(int16(h(12))) / 4,
		FrameH: fixed.UInt14_2(h(14)).Float(),
		ScaleW: 1,
		ScaleH: 1,
	}
	if scaled {
		bg.ScaleW = float32(h(28)) / 1024
		bg.ScaleH = float32(h(30)) / 1024
	}
	return bg
}

func (s *Session) drawBackground(bg objBackground) {
	xy0 := f32.Vec2{bg.FrameX, bg.FrameY}
	xy1 := f32.Vec2{bg.FrameX + bg.FrameW, bg.FrameY + bg.FrameH}
	uv0 := f32.Vec2{bg.ImageX, bg.ImageY}
	uv1 := f32.Vec2{bg.ImageX + bg.FrameW*bg.ScaleW, bg.ImageY + bg.FrameH*bg.ScaleH}
	s.Renderer.TexRect(0, xy0, xy1, uv0, uv1)
}

func bgCopy(s *Session, w0, w1 uint32) {
	s.drawBackground(s.readObjBackground(s.Segment(w1), false))
}

func bg1Cyc(s *Session, w0, w1 uint32) {
	s.drawBackground(s.readObjBackground(s.Segment(w1), true))
}

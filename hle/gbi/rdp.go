package gbi

import (
	"golang.org/x/image/math/f32"

	"github.com/clktmr/n64hle/logger"
	"github.com/clktmr/n64hle/rcp/fixed"
	"github.com/clktmr/n64hle/rcp/rdp"
)

type imageDesc struct {
	Addr   uint32
	Format uint32
	Size   uint32 // pixel size, 0 to 3 for 4 to 32 bits
	Width  int
}

func (i *imageDesc) bpp() int {
	return 4 << i.Size
}

func decodeImage(s *Session, w0, w1 uint32) imageDesc {
	return imageDesc{
		Addr:   s.Segment(w1),
		Format: (w0 >> 21) & 7,
		Size:   (w0 >> 19) & 3,
		Width:  int(w0&0xfff) + 1,
	}
}

// Tile is a tile descriptor as set by SETTILE and SETTILESIZE.
type Tile struct {
	Format, Size uint32
	Line         uint32
	TMem         uint32
	Palette      uint32

	Bounds fixed.Rectangle[fixed.UInt14_2]
}

// Tile returns tile descriptor i.
func (s *Session) Tile(i int) Tile {
	return s.tiles[i&7]
}

func setColorImage(s *Session, w0, w1 uint32) {
	s.Renderer.Flush()
	s.colorImage = decodeImage(s, w0, w1)
}

func setDepthImage(s *Session, w0, w1 uint32) {
	s.depthImage = s.Segment(w1)
}

func setTextureImage(s *Session, w0, w1 uint32) {
	s.textureImage = decodeImage(s, w0, w1)
}

func setTile(s *Session, w0, w1 uint32) {
	t := &s.tiles[(w1>>24)&7]
	t.Format = (w0 >> 21) & 7
	t.Size = (w0 >> 19) & 3
	t.Line = (w0 >> 9) & 0x1ff
	t.TMem = w0 & 0x1ff
	t.Palette = (w1 >> 20) & 0xf
}

func tileBounds(w0, w1 uint32) fixed.Rectangle[fixed.UInt14_2] {
	return fixed.Rect(
		fixed.UInt14_2((w0>>12)&0xfff), fixed.UInt14_2(w0&0xfff),
		fixed.UInt14_2((w1>>12)&0xfff), fixed.UInt14_2(w1&0xfff),
	)
}

func setTileSize(s *Session, w0, w1 uint32) {
	s.tiles[(w1>>24)&7].Bounds = tileBounds(w0, w1)
}

// Texture loads only track which tile was loaded, sampling is up to the
// rasterizer.
func loadTile(s *Session, w0, w1 uint32) {
	s.tiles[(w1>>24)&7].Bounds = tileBounds(w0, w1)
}

func loadBlock(s *Session, w0, w1 uint32) {}

func loadTLUT(s *Session, w0, w1 uint32) {}

func rdpTriangle(s *Session, w0, w1 uint32) {
	s.log.Logf(logger.Allow, "gbi", "raw RDP triangle 0x%02x ignored", Opcode(w0))
}

func setScissor(s *Session, w0, w1 uint32) {
	x0 := fixed.UInt14_2((w0 >> 12) & 0xfff).Float()
	y0 := fixed.UInt14_2(w0 & 0xfff).Float()
	x1 := fixed.UInt14_2((w1 >> 12) & 0xfff).Float()
	y1 := fixed.UInt14_2(w1 & 0xfff).Float()
	s.Renderer.SetScissor(x0, y0, x1, y1)
}

func setPrimDepth(s *Session, w0, w1 uint32) {
	s.Renderer.SetPrimitiveDepth((w1 >> 16) & 0x7fff)
}

func setOtherMode(s *Session, w0, w1 uint32) {
	s.Renderer.SetOtherMode(rdp.ModeFlags(w0&0x00ffffff)<<32 | rdp.ModeFlags(w1))
}

func setFillColor(s *Session, w0, w1 uint32) {
	s.Renderer.SetFillColor(w1)
}

func setFogColor(s *Session, w0, w1 uint32) {
	s.Renderer.SetFogColor(rdp.RGBA32(w1))
}

func setBlendColor(s *Session, w0, w1 uint32) {
	s.Renderer.SetBlendColor(rdp.RGBA32(w1))
}

func setPrimColor(s *Session, w0, w1 uint32) {
	s.Renderer.SetPrimitiveColor(rdp.RGBA32(w1))
}

func setEnvColor(s *Session, w0, w1 uint32) {
	s.Renderer.SetEnvColor(rdp.RGBA32(w1))
}

func setCombine(s *Session, w0, w1 uint32) {
	s.Renderer.SetMux(uint64(w0&0x00ffffff)<<32 | uint64(w1))
}

// rect decodes the corners of a rectangle command. Fill and copy mode
// rectangles include their lower right edge.
func (s *Session) rect(w0, w1 uint32) (xy0, xy1 f32.Vec2) {
	xy1 = f32.Vec2{
		fixed.UInt14_2((w0 >> 12) & 0xfff).Float(),
		fixed.UInt14_2(w0 & 0xfff).Float(),
	}
	xy0 = f32.Vec2{
		fixed.UInt14_2((w1 >> 12) & 0xfff).Float(),
		fixed.UInt14_2(w1 & 0xfff).Float(),
	}
	switch s.Renderer.OtherMode().CycleType() {
	case rdp.CycleFill, rdp.CycleCopy:
		xy1[0]++
		xy1[1]++
	}
	return
}

func fillRect(s *Session, w0, w1 uint32) {
	// depth buffer clears
	if s.depthImage != 0 && s.colorImage.Addr == s.depthImage {
		return
	}
	xy0, xy1 := s.rect(w0, w1)
	c := s.Renderer.PrimitiveColor()
	if s.Renderer.OtherMode().CycleType() == rdp.CycleFill {
		c = rdp.FillColor(s.Renderer.FillColor(), s.colorImage.bpp())
	}
	s.Renderer.FillRect(xy0, xy1, c)
}

// texRect draws a texture rectangle. w2 holds the texture coordinate of the
// upper left corner in s10.5, w3 the s5.10 derivatives.
func (s *Session) texRect(w0, w1, w2, w3 uint32, flip bool) {
	tile := int(w1>>24) & 7
	xy0, xy1 := s.rect(w0, w1)

	uv0 := f32.Vec2{
		fixed.Int11_5(int16(w2 >> 16)).Float(),
		fixed.Int11_5(int16(w2)).Float(),
	}
	dsdx := float32(int16(w3>>16)) / 1024
	dtdy := float32(int16(w3)) / 1024
	if s.Renderer.OtherMode().CycleType() == rdp.CycleCopy {
		dsdx /= 4
	}

	w, h := xy1[0]-xy0[0], xy1[1]-xy0[1]
	if flip {
		w, h = h, w
	}
	uv1 := f32.Vec2{uv0[0] + dsdx*w, uv0[1] + dtdy*h}

	if flip {
		s.Renderer.TexRectFlip(tile, xy0, xy1, uv0, uv1)
	} else {
		s.Renderer.TexRect(tile, xy0, xy1, uv0, uv1)
	}
}

// Texture rectangles take two more words from the following RDPHALF
// commands.
func texRect(s *Session, w0, w1 uint32) {
	_, w2 := s.next(0)
	_, w3 := s.next(1)
	s.skip(2)
	s.texRect(w0, w1, w2, w3, false)
}

func texRectFlip(s *Session, w0, w1 uint32) {
	_, w2 := s.next(0)
	_, w3 := s.next(1)
	s.skip(2)
	s.texRect(w0, w1, w2, w3, true)
}

// Package renderer is the geometry pipeline driven by display list
// handlers. It transforms and lights vertices, computes clip flags, batches
// triangles and hands finished batches to a Rasterizer.
package renderer

import (
	"image"
	"image/color"

	"golang.org/x/image/math/f32"

	"github.com/clktmr/n64hle/hle/matrix"
	"github.com/clktmr/n64hle/hle/viewport"
	"github.com/clktmr/n64hle/logger"
	"github.com/clktmr/n64hle/rcp/rdp"
	"github.com/clktmr/n64hle/rcp/rdram"
)

const (
	// MaxVertices is the size of the vertex cache. F3DLP.Rej supports up to
	// 80 vertices.
	MaxVertices = 80

	// MaxIndices is the capacity of the triangle batch.
	MaxIndices = 320
)

// Clip flags, one per half space of the canonical view volume.
const (
	ClipXNeg uint8 = 0x01
	ClipYNeg uint8 = 0x02
	ClipZNeg uint8 = 0x04
	ClipXPos uint8 = 0x08
	ClipYPos uint8 = 0x10
	ClipZPos uint8 = 0x20

	ClipAll = ClipXNeg | ClipYNeg | ClipZNeg | ClipXPos | ClipYPos | ClipZPos
)

// Projected is a vertex after transformation.
type Projected struct {
	Transformed f32.Vec4 // model-view space
	Projected   f32.Vec4 // clip space
	Texture     f32.Vec2
	Color       f32.Vec4
	ClipFlags   uint8
}

// Stats counts the work done since the last BeginScene.
type Stats struct {
	TrisRendered int
	TrisClipped  int
	Rects        int
	Batches      int
}

// Renderer is the geometry pipeline. It is not safe for concurrent use.
type Renderer struct {
	log    *logger.Logger
	raster Rasterizer
	mem    *rdram.Memory

	Viewport *viewport.Mapper
	Matrices *matrix.Stacks

	tnl TnL

	vtx        [MaxVertices]Projected
	indices    [MaxIndices]uint16
	numIndices int
	clipUnion  uint8

	batch    []Vertex
	clipping [2][]clipVertex

	otherMode   rdp.ModeFlags
	mux         uint64
	primDepth   float32
	primColor   color.RGBA
	envColor    color.RGBA
	fogColor    color.RGBA
	fillColor   uint32
	blendColor  color.RGBA
	alphaRef    uint8
	textureTile int
	scissor     image.Rectangle

	pdColorBase uint32

	dkr struct {
		m        [DKRMatrices]f32.Mat4
		selected int
	}

	stats Stats
}

// New returns a renderer drawing to raster, which may be nil to discard
// all output. mem is the memory vertices with indexed colours are looked up
// in.
func New(raster Rasterizer, mapper *viewport.Mapper, mem *rdram.Memory, log *logger.Logger) *Renderer {
	if raster == nil {
		raster = Discard
	}
	if log == nil {
		log = logger.NewLogger(1)
	}
	if mapper == nil {
		mapper = viewport.New(viewport.LogicalWidth, viewport.LogicalHeight)
	}
	r := &Renderer{
		log:      log,
		raster:   raster,
		mem:      mem,
		Viewport: mapper,
		Matrices: matrix.New(log),
		batch:    make([]Vertex, 0, MaxIndices),
	}
	r.Reset()
	return r
}

// Reset returns the pipeline to its power-on state.
func (r *Renderer) Reset() {
	r.Matrices.Reset()
	r.tnl = TnL{TextureScale: f32.Vec2{1, 1}}
	r.numIndices = 0
	r.clipUnion = 0
	r.otherMode = 0
	r.mux = 0
	r.primDepth = 0
	r.alphaRef = 0
	r.textureTile = 0
	w, h := r.Viewport.HostSize()
	r.scissor = image.Rect(0, 0, w, h)
	clear(r.vtx[:])
	for i := range r.dkr.m {
		r.dkr.m[i] = matrix.Identity()
	}
	r.dkr.selected = 0
}

// BeginScene starts the execution of a display list.
func (r *Renderer) BeginScene() {
	r.stats = Stats{}
	r.numIndices = 0
	r.clipUnion = 0
	r.Matrices.Reset()
}

// EndScene flushes pending triangles.
func (r *Renderer) EndScene() {
	r.Flush()
}

func (r *Renderer) Stats() Stats {
	return r.stats
}

// SetOtherMode replaces the other modes word.
func (r *Renderer) SetOtherMode(m rdp.ModeFlags) {
	if m != r.otherMode {
		r.Flush()
	}
	r.otherMode = m
}

// SetOtherModeBits updates one field of the other modes word.
func (r *Renderer) SetOtherModeBits(high bool, shift, length, data uint32) {
	m := r.otherMode
	m.SetBits(high, shift, length, data)
	r.SetOtherMode(m)
}

func (r *Renderer) OtherMode() rdp.ModeFlags {
	return r.otherMode
}

// SetMux sets the colour combiner.
func (r *Renderer) SetMux(mux uint64) {
	if mux != r.mux {
		r.Flush()
	}
	r.mux = mux
}

func (r *Renderer) Mux() uint64 {
	return r.mux
}

// SetPrimitiveDepth sets the depth used when the other modes select
// primitive depth. z ranges from 32767 (near) to 0.
func (r *Renderer) SetPrimitiveDepth(z uint32) {
	z &= 0x7fff
	r.primDepth = float32(((32767 - int32(z)) << 1) + 1)
}

func (r *Renderer) PrimitiveDepth() float32 {
	return r.primDepth
}

func (r *Renderer) SetPrimitiveColor(c color.RGBA) {
	if c != r.primColor {
		r.Flush()
	}
	r.primColor = c
}

func (r *Renderer) PrimitiveColor() color.RGBA {
	return r.primColor
}

func (r *Renderer) SetEnvColor(c color.RGBA) {
	if c != r.envColor {
		r.Flush()
	}
	r.envColor = c
}

func (r *Renderer) SetFogColor(c color.RGBA) {
	if c != r.fogColor {
		r.Flush()
	}
	r.fogColor = c
}

func (r *Renderer) SetBlendColor(c color.RGBA) {
	if c != r.blendColor {
		r.Flush()
	}
	r.blendColor = c
	r.alphaRef = c.A
}

// SetFillColor sets the raw fill colour register.
func (r *Renderer) SetFillColor(c uint32) {
	r.fillColor = c
}

func (r *Renderer) FillColor() uint32 {
	return r.fillColor
}

func (r *Renderer) SetTextureTile(tile int) {
	if tile&7 != r.textureTile {
		r.Flush()
	}
	r.textureTile = tile & 7
}

// SetScissor sets the scissor in logical coordinates.
func (r *Renderer) SetScissor(x0, y0, x1, y1 float32) {
	lo := r.Viewport.ToHost(f32.Vec2{x0, y0})
	hi := r.Viewport.ToHost(f32.Vec2{x1, y1})
	r.Flush()
	r.scissor = image.Rect(int(lo[0]), int(lo[1]), int(hi[0]), int(hi[1]))
}

func (r *Renderer) Scissor() image.Rectangle {
	return r.scissor
}

// SetViewport sets the console viewport and flushes pending triangles, which
// were projected with the previous one.
func (r *Renderer) SetViewport(scale, trans f32.Vec2) {
	r.Flush()
	r.Viewport.SetViewport(scale, trans)
}

// SetColorIndexBase sets the address of the colour table indexed by PD
// vertices.
func (r *Renderer) SetColorIndexBase(addr uint32) {
	r.pdColorBase = addr
}

func (r *Renderer) state() State {
	return State{
		OtherMode:   r.otherMode,
		Mux:         r.mux,
		Combine:     rdp.DecodeCombine(r.mux),
		Primitive:   r.primColor,
		Environment: r.envColor,
		Fog:         r.fogColor,
		Blend:       r.blendColor,
		AlphaRef:    r.alphaRef,
		Tile:        r.textureTile,
		Textured:    r.tnl.Flags&TnLTexture != 0,
		FogEnabled:  r.tnl.Flags&TnLFog != 0,
		Scissor:     r.scissor,
	}
}

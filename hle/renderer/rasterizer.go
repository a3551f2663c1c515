package renderer

import (
	"image"
	"image/color"

	"github.com/clktmr/n64hle/rcp/rdp"
)

type Primitive uint8

const (
	Triangles Primitive = iota // every three vertices form a triangle
)

type Mode uint8

const (
	Mode3D Mode = iota // projected geometry
	Mode2D             // screen space rectangles
)

func (m Mode) String() string {
	if m == Mode2D {
		return "2D"
	}
	return "3D"
}

// Vertex is a rasterizer-ready vertex in host pixels.
type Vertex struct {
	X, Y, Z float32 // Z is depth in [0, 1]
	W       float32 // clip space w, 1 for 2D geometry

	U, V float32 // texels of the current tile

	R, G, B, A float32
}

// State is the render state shared by all vertices of a batch.
type State struct {
	OtherMode rdp.ModeFlags
	Mux       uint64
	Combine   rdp.CombineMode

	Primitive, Environment, Fog, Blend color.RGBA
	AlphaRef                           uint8

	Tile       int
	Textured   bool
	FogEnabled bool

	Scissor image.Rectangle
}

// Batch is one flush worth of clipped and transformed vertices. Vertices is
// only valid during the call to RenderBatch.
type Batch struct {
	Vertices   []Vertex
	Primitive  Primitive
	Mode       Mode
	DepthTest  bool
	DepthWrite bool
	Decal      bool
	State      State
}

// Count returns the number of vertices.
func (b *Batch) Count() int {
	return len(b.Vertices)
}

// Rasterizer draws batches produced by the pipeline.
type Rasterizer interface {
	RenderBatch(b Batch)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(b Batch)

func (f RasterizerFunc) RenderBatch(b Batch) { f(b) }

// Discard is a Rasterizer that draws nothing.
var Discard Rasterizer = RasterizerFunc(func(Batch) {})

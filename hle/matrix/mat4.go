// Package matrix implements the projection and model-view matrix stacks of
// the geometry pipeline.
//
// Matrices use the console's row vector convention: a vertex v is
// transformed as v*M, so M1*M2 applies M1 first.
package matrix

import (
	"golang.org/x/image/math/f32"

	"github.com/clktmr/n64hle/rcp/fixed"
	"github.com/clktmr/n64hle/rcp/rdram"
)

// Size of a matrix in RDRAM.
const Size = 64

func Identity() f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns a*b.
func Mul(a, b *f32.Mat4) (m f32.Mat4) {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4]*b[c] + a[r*4+1]*b[4+c] + a[r*4+2]*b[8+c] + a[r*4+3]*b[12+c]
		}
	}
	return
}

// Transform returns v*m.
func Transform(m *f32.Mat4, v f32.Vec4) (o f32.Vec4) {
	for c := 0; c < 4; c++ {
		o[c] = v[0]*m[c] + v[1]*m[4+c] + v[2]*m[8+c] + v[3]*m[12+c]
	}
	return
}

// TransformNormal returns v*m ignoring translation.
func TransformNormal(m *f32.Mat4, v f32.Vec3) (o f32.Vec3) {
	for c := 0; c < 3; c++ {
		o[c] = v[0]*m[c] + v[1]*m[4+c] + v[2]*m[8+c]
	}
	return
}

// Read loads a matrix stored in RDRAM as s15.16 fixed point. The sixteen
// integer halves precede the sixteen fractional halves, both row major.
func Read(mem *rdram.Memory, addr uint32) (m f32.Mat4) {
	for i := range uint32(16) {
		hi := mem.Read16(addr + i*2)
		lo := mem.Read16(addr + 32 + i*2)
		m[i] = fixed.Int16_16(uint32(hi)<<16 | uint32(lo)).Float()
	}
	return
}

// Write stores m in the format understood by Read.
func Write(mem *rdram.Memory, addr uint32, m *f32.Mat4) {
	for i := range uint32(16) {
		v := uint32(fixed.Int16_16F(m[i]))
		mem.Write16(addr+i*2, uint16(v>>16))
		mem.Write16(addr+32+i*2, uint16(v))
	}
}

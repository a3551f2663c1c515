package renderer

import (
	"golang.org/x/image/math/f32"

	"github.com/clktmr/n64hle/hle/matrix"
	"github.com/clktmr/n64hle/logger"
)

// DKRMatrices is the number of model matrix slots of the DKR microcode.
const DKRMatrices = 4

// SetDKRMatrix loads slot idx. With mul the matrix is combined with slot 0.
func (r *Renderer) SetDKRMatrix(idx int, m f32.Mat4, mul bool) {
	if idx < 0 || idx >= DKRMatrices {
		r.log.Logf(logger.Allow, "renderer", "DKR matrix slot %d out of range", idx)
		return
	}
	if mul {
		m = matrix.Mul(&m, &r.dkr.m[0])
	}
	r.dkr.m[idx] = m
	r.dkr.selected = idx
}

// SelectDKRMatrix selects the slot used to transform DKR vertices.
func (r *Renderer) SelectDKRMatrix(idx int) {
	if idx < 0 || idx >= DKRMatrices {
		r.log.Logf(logger.Allow, "renderer", "DKR matrix slot %d out of range", idx)
		return
	}
	r.dkr.selected = idx
}

func (r *Renderer) DKRMatrix(idx int) f32.Mat4 {
	return r.dkr.m[idx&(DKRMatrices-1)]
}

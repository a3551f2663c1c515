package matrix_test

import (
	"strings"
	"testing"

	"golang.org/x/image/math/f32"

	"github.com/clktmr/n64hle/hle/matrix"
	"github.com/clktmr/n64hle/logger"
	n64testing "github.com/clktmr/n64hle/testing"
)

func scale(s float32) f32.Mat4 {
	return f32.Mat4{
		s, 0, 0, 0,
		0, s, 0, 0,
		0, 0, s, 0,
		0, 0, 0, 1,
	}
}

func translate(x, y, z float32) f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func TestTransform(t *testing.T) {
	a, b := scale(2), translate(1, 2, 3)
	m := matrix.Mul(&a, &b)
	v := matrix.Transform(&m, f32.Vec4{1, 1, 1, 1})
	n64testing.ExpectEquality(t, v, f32.Vec4{3, 4, 5, 1})

	n := matrix.TransformNormal(&m, f32.Vec3{0, 1, 0})
	n64testing.ExpectEquality(t, n, f32.Vec3{0, 2, 0})
}

func TestPushPop(t *testing.T) {
	s := matrix.New(nil)
	s.Load(matrix.ModelView, scale(2))
	before := s.Top(matrix.ModelView)

	n64testing.ExpectSuccess(t, s.Push(matrix.ModelView))
	s.Multiply(matrix.ModelView, translate(1, 0, 0))
	n64testing.ExpectEquality(t, s.Depth(matrix.ModelView), 1)
	n64testing.ExpectInequality(t, s.Top(matrix.ModelView), before)

	n64testing.ExpectSuccess(t, s.Pop(matrix.ModelView))
	n64testing.ExpectEquality(t, s.Top(matrix.ModelView), before)
	n64testing.ExpectEquality(t, s.Depth(matrix.ModelView), 0)
}

func TestUnderflow(t *testing.T) {
	s := matrix.New(nil)
	s.Load(matrix.Projection, scale(3))
	n64testing.ExpectFailure(t, s.Pop(matrix.Projection))
	n64testing.ExpectEquality(t, s.Depth(matrix.Projection), 0)
	n64testing.ExpectEquality(t, s.Top(matrix.Projection), scale(3))
}

func TestOverflow(t *testing.T) {
	log := logger.NewLogger(10)
	s := matrix.New(log)
	for i := 0; i < matrix.StackSize-1; i++ {
		n64testing.ExpectSuccess(t, s.Push(matrix.ModelView), i)
	}
	n64testing.ExpectEquality(t, s.Depth(matrix.ModelView), matrix.StackSize-1)

	// clamped, the top is overwritten in place
	s.Set(matrix.ModelView, scale(4), true, true)
	n64testing.ExpectEquality(t, s.Depth(matrix.ModelView), matrix.StackSize-1)
	n64testing.ExpectEquality(t, s.Top(matrix.ModelView), scale(4))

	w := &strings.Builder{}
	log.Write(w)
	n64testing.ExpectSuccess(t, strings.HasPrefix(w.String(), "matrix: pushing past modelview stack limit"))
}

func TestCombinedLazy(t *testing.T) {
	s := matrix.New(nil)
	n64testing.ExpectFailure(t, s.Valid())
	n64testing.ExpectEquality(t, s.Combined(), matrix.Identity())
	n64testing.ExpectSuccess(t, s.Valid())

	s.Load(matrix.ModelView, translate(1, 2, 3))
	n64testing.ExpectFailure(t, s.Valid())
	s.Load(matrix.Projection, scale(2))

	// modelview is applied first
	c := s.Combined()
	v := matrix.Transform(&c, f32.Vec4{0, 0, 0, 1})
	n64testing.ExpectEquality(t, v, f32.Vec4{2, 4, 6, 1})

	s.Pop(matrix.Projection)
	n64testing.ExpectFailure(t, s.Valid())
}

func TestSetMultiply(t *testing.T) {
	s := matrix.New(nil)
	s.Set(matrix.Projection, scale(2), false, true)
	s.Set(matrix.Projection, translate(1, 0, 0), true, false)
	n64testing.ExpectEquality(t, s.Depth(matrix.Projection), 1)

	top := s.Top(matrix.Projection)
	v := matrix.Transform(&top, f32.Vec4{1, 0, 0, 1})
	n64testing.ExpectEquality(t, v, f32.Vec4{4, 0, 0, 1})
}

func TestForceInsert(t *testing.T) {
	s := matrix.New(nil)
	s.Force(scale(5))
	n64testing.ExpectEquality(t, s.Combined(), scale(5))

	s.Insert(0, false, 0x0003fffe)
	c := s.Combined()
	n64testing.ExpectEquality(t, c[0], float32(3))
	n64testing.ExpectEquality(t, c[1], float32(-2))

	s.Insert(0, true, 0x80004000)
	c = s.Combined()
	n64testing.ExpectEquality(t, c[0], float32(3.5))
	n64testing.ExpectEquality(t, c[1], float32(-1.75))
}

func TestReadWrite(t *testing.T) {
	m := n64testing.NewMemory(0x1000, 0, nil)
	in := f32.Mat4{
		1, 0.5, -0.5, 0,
		0, 1, 0, 0,
		0, 0, -2.25, 0,
		100, -100, 0, 1,
	}
	matrix.Write(m, 0x100, &in)
	n64testing.ExpectEquality(t, matrix.Read(m, 0x100), in)

	// integer half of element 0 is the first halfword in memory
	n64testing.ExpectEquality(t, m.Read16(0x100), uint16(1))
	n64testing.ExpectEquality(t, m.Read16(0x100+32+2), uint16(0x8000))
}

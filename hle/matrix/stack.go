package matrix

import (
	"golang.org/x/image/math/f32"

	"github.com/clktmr/n64hle/logger"
)

// StackSize is the capacity of each stack. The hardware manual guarantees
// 18 levels.
const StackSize = 20

type Kind uint8

const (
	Projection Kind = iota
	ModelView
)

func (k Kind) String() string {
	if k == Projection {
		return "projection"
	}
	return "modelview"
}

type stack struct {
	m   [StackSize]f32.Mat4
	top int
}

// Stacks holds the projection and model-view stacks and the combined
// world-project matrix derived from their tops.
type Stacks struct {
	stacks [2]stack

	combined f32.Mat4
	valid    bool

	log *logger.Logger
}

// New returns stacks with identity matrices on top. Diagnostics are sent to
// log, which may be nil.
func New(log *logger.Logger) *Stacks {
	s := &Stacks{log: log}
	s.Reset()
	return s
}

// Reset empties both stacks and loads identity matrices.
func (s *Stacks) Reset() {
	for i := range s.stacks {
		s.stacks[i].top = 0
		s.stacks[i].m[0] = Identity()
	}
	s.valid = false
}

func (s *Stacks) Top(k Kind) f32.Mat4 {
	st := &s.stacks[k]
	return st.m[st.top]
}

// Depth returns the index of the top of stack k.
func (s *Stacks) Depth(k Kind) int {
	return s.stacks[k].top
}

// Push duplicates the top of stack k. A full stack is left unchanged, so the
// next Load or Multiply overwrites the top in place. Push reports whether a
// new level was created.
func (s *Stacks) Push(k Kind) bool {
	st := &s.stacks[k]
	if st.top >= StackSize-1 {
		if s.log != nil {
			s.log.Logf(logger.Allow, "matrix", "pushing past %v stack limit (%d)", k, StackSize)
		}
		return false
	}
	st.m[st.top+1] = st.m[st.top]
	st.top++
	return true
}

// Pop discards the top of stack k. Popping the last level is a no-op.
func (s *Stacks) Pop(k Kind) bool {
	st := &s.stacks[k]
	s.valid = false
	if st.top == 0 {
		return false
	}
	st.top--
	return true
}

// Load replaces the top of stack k.
func (s *Stacks) Load(k Kind, m f32.Mat4) {
	st := &s.stacks[k]
	st.m[st.top] = m
	s.valid = false
}

// Multiply replaces the top of stack k with m*top.
func (s *Stacks) Multiply(k Kind, m f32.Mat4) {
	st := &s.stacks[k]
	st.m[st.top] = Mul(&m, &st.m[st.top])
	s.valid = false
}

// Set applies a matrix command: optionally push, then load or multiply.
func (s *Stacks) Set(k Kind, m f32.Mat4, push, load bool) {
	if push {
		s.Push(k)
	}
	if load {
		s.Load(k, m)
	} else {
		s.Multiply(k, m)
	}
}

// Combined returns modelview*projection, recomputing it only if either top
// changed since the last call.
func (s *Stacks) Combined() f32.Mat4 {
	if !s.valid {
		mv, p := &s.stacks[ModelView], &s.stacks[Projection]
		s.combined = Mul(&mv.m[mv.top], &p.m[p.top])
		s.valid = true
	}
	return s.combined
}

// Valid reports whether the combined matrix is up to date.
func (s *Stacks) Valid() bool {
	return s.valid
}

// Force replaces the combined matrix. It stays in effect until one of the
// stacks changes.
func (s *Stacks) Force(m f32.Mat4) {
	s.combined = m
	s.valid = true
}

// Insert overwrites two adjacent elements of the combined matrix starting at
// element i. Without fractional the 16-bit halves of w become the integer
// parts, otherwise they replace the fractions of the existing values.
func (s *Stacks) Insert(i int, fractional bool, w uint32) {
	s.Combined()
	i &= 15
	hi, lo := w>>16, w&0xffff
	if fractional {
		s.combined[i] = float32(int32(s.combined[i])) + float32(hi)/65536
		if i+1 < len(s.combined) {
			s.combined[i+1] = float32(int32(s.combined[i+1])) + float32(lo)/65536
		}
	} else {
		s.combined[i] = float32(int16(hi))
		if i+1 < len(s.combined) {
			s.combined[i+1] = float32(int16(lo))
		}
	}
}

package fixed

import "golang.org/x/exp/constraints"

// Point is an X, Y coordinate pair of any fixed-point or integer type.
type Point[T constraints.Integer] struct{ X, Y T }

// Rectangle contains the points with Min.X <= X < Max.X, Min.Y <= Y < Max.Y.
// It is the fixed-point counterpart of image.Rectangle, used for RDP
// rectangle and scissor operands.
type Rectangle[T constraints.Integer] struct{ Min, Max Point[T] }

// Rect is shorthand for Rectangle{Pt(x0, y0), Pt(x1, y1)}. The returned
// rectangle has minimum and maximum coordinates swapped if necessary so that
// it is well-formed.
func Rect[T constraints.Integer](x0, y0, x1, y1 T) Rectangle[T] {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rectangle[T]{Point[T]{x0, y0}, Point[T]{x1, y1}}
}

func (r Rectangle[T]) Dx() T      { return r.Max.X - r.Min.X }
func (r Rectangle[T]) Dy() T      { return r.Max.Y - r.Min.Y }
func (r Rectangle[T]) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Clamp limits v to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package coordinate

import "cmp"

type Point[T cmp.Ordered] struct {
	X T
	Y T
}

func NewPoint[T cmp.Ordered](x, y T) Point[T] {
	return Point[T]{X: x, Y: y}
}

// Compare orders points row-major: by Y, then by X.
func (p Point[T]) Compare(other Point[T]) int {
	if c := cmp.Compare(p.Y, other.Y); c != 0 {
		return c
	}
	return cmp.Compare(p.X, other.X)
}

// Ordered returns a and b with the earlier point first.
func Ordered[T cmp.Ordered](a, b Point[T]) (Point[T], Point[T]) {
	if a.Compare(b) > 0 {
		return b, a
	}
	return a, b
}

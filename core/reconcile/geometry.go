package reconcile

import "math"

// ParallelTolerance is the smallest |cross product| of the two direction
// vectors for which lines are considered intersecting.
const ParallelTolerance = 1e-10

// Intersect returns the XY intersection of the infinite lines through a and
// b, at Z = 0. ok is false for parallel or degenerate lines, a nil line, or a
// non-finite result.
func Intersect(a, b *Line) (pt Point, ok bool) {
	if a == nil || b == nil {
		return Point{}, false
	}

	x1, y1 := a.Start.X, a.Start.Y
	x2, y2 := a.End.X, a.End.Y
	x3, y3 := b.Start.X, b.Start.Y
	x4, y4 := b.End.X, b.End.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < ParallelTolerance || math.IsNaN(denom) {
		return Point{}, false
	}

	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	ix := x1 + t*(x2-x1)
	iy := y1 + t*(y2-y1)

	if !finite(ix) || !finite(iy) {
		return Point{}, false
	}
	return Point{X: ix, Y: iy}, true
}

// GridIntersection intersects the curves of two grids.
func GridIntersection(a, b *Grid) (Point, bool) {
	if a == nil || b == nil {
		return Point{}, false
	}
	return Intersect(a.Curve, b.Curve)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

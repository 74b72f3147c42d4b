package engine

import "math"

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Norm returns the distance of p from the origin (the batter).
func Norm(p Point2D) float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// NormalizeAngle wraps a degree angle into the range [-180, 180).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg+180.0, 360.0)
	if a < 0 {
		a += 360.0
	}
	return a - 180.0
}

// SegmentHit is the result of projecting a point onto a segment.
type SegmentHit struct {
	Dist    float64 // perpendicular distance from the point to the segment
	Closest Point2D // closest point on the segment
	T       float64 // normalized position along the segment, clamped to [0, 1]
}

// PointToSegment returns the shortest distance from p to segment a-b along
// with the closest point and its parameter. A zero-length segment degrades
// to distance-to-endpoint with T = 0.
func PointToSegment(p, a, b Point2D) SegmentHit {
	dx := b.X - a.X
	dy := b.Y - a.Y

	lengthSq := dx*dx + dy*dy
	if lengthSq < 1e-10 {
		return SegmentHit{Dist: Distance(p, a), Closest: a, T: 0}
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lengthSq
	t = clamp(t, 0, 1)

	closest := Point2D{X: a.X + t*dx, Y: a.Y + t*dy}
	return SegmentHit{Dist: Distance(p, closest), Closest: closest, T: t}
}

// InBallPath reports whether a fielder is positioned in the general direction
// of the shot. Fielders behind the batter relative to the shot direction are
// out of contention, except within NearFielderRadius of the bat where a
// mildly negative dot product is still allowed (close catchers stay relevant
// to edges). The asymmetric near tolerance is a tunable heuristic, not a
// physical law.
func InBallPath(f Fielder, landing Point2D, p Params) bool {
	shotLen := Norm(landing)
	if shotLen < p.MinShotLength {
		return false
	}

	dirX := landing.X / shotLen
	dirY := landing.Y / shotLen

	dot := f.X*dirX + f.Y*dirY
	if Norm(Point2D{X: f.X, Y: f.Y}) < p.NearFielderRadius {
		return dot > p.NearFielderDotLimit
	}
	return dot > 0
}

// BoundaryIntersection scales the landing vector out to the boundary circle.
// A degenerate landing point at the batter maps to straight behind the
// batter, the same default direction ComputeTrajectory uses.
func BoundaryIntersection(landing Point2D, boundaryDist float64, p Params) Point2D {
	dist := Norm(landing)
	if dist < p.MinShotLength {
		return Point2D{X: 0, Y: -boundaryDist}
	}
	scale := boundaryDist / dist
	return Point2D{X: landing.X * scale, Y: landing.Y * scale}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

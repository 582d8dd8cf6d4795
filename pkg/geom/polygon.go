package geom

import (
	"math"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// NewellNormal returns the (unnormalized) normal of a vertex loop by
// Newell's method. For loops wound counter-clockwise when viewed from the
// front, the result points toward the viewer. Robust for quads and larger
// loops where a single edge cross product can degenerate.
func NewellNormal(loop []v3.Vec) v3.Vec {
	var n v3.Vec
	for i := range loop {
		a := loop[i]
		b := loop[(i+1)%len(loop)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}

// Area returns the area of a planar loop.
func Area(loop []v3.Vec) float64 {
	if len(loop) < 3 {
		return 0
	}
	return NewellNormal(loop).Length() / 2
}

// Centroid returns the mean of the loop's vertices.
func Centroid(loop []v3.Vec) v3.Vec {
	var c v3.Vec
	for _, p := range loop {
		c = c.Add(p)
	}
	return c.DivScalar(float64(len(loop)))
}

// basis returns two unit vectors spanning the plane perpendicular to n.
func basis(n v3.Vec) (u, v v3.Vec) {
	// Cross against the axis n is least aligned with.
	axis := v3.Vec{X: 1}
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	if ay <= ax && ay <= az {
		axis = v3.Vec{Y: 1}
	} else if az <= ax && az <= ay {
		axis = v3.Vec{Z: 1}
	}
	u = n.Cross(axis).Normalize()
	v = n.Cross(u)
	return u, v
}

// SortLoop orders an unordered set of coplanar points into a convex loop
// by angle around their centroid, in the plane perpendicular to normal.
// The input slice is not modified.
func SortLoop(points []v3.Vec, normal v3.Vec) []v3.Vec {
	out := make([]v3.Vec, len(points))
	copy(out, points)
	if len(out) < 3 {
		return out
	}
	c := Centroid(out)
	u, v := basis(normal)
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i].Sub(c)
		dj := out[j].Sub(c)
		return math.Atan2(di.Dot(v), di.Dot(u)) < math.Atan2(dj.Dot(v), dj.Dot(u))
	})
	return out
}

// WindClockwise orients loop clockwise as seen from the front side of
// outward (the VMF face winding). Reverses in place when needed and
// returns the loop.
func WindClockwise(loop []v3.Vec, outward v3.Vec) []v3.Vec {
	if NewellNormal(loop).Dot(outward) > 0 {
		for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
			loop[i], loop[j] = loop[j], loop[i]
		}
	}
	return loop
}

// IsPlanar reports whether every vertex of the loop lies within tol of the
// plane spanned by the loop's own normal through its first vertex.
func IsPlanar(loop []v3.Vec, tol float64) bool {
	if len(loop) <= 3 {
		return true
	}
	n := NewellNormal(loop)
	if n.Length() < collinearEps {
		return false
	}
	n = n.Normalize()
	for _, p := range loop[1:] {
		if math.Abs(p.Sub(loop[0]).Dot(n)) > tol {
			return false
		}
	}
	return true
}

// Dedup removes points that coincide with an earlier point within tol,
// preserving first-seen order.
func Dedup(points []v3.Vec, tol float64) []v3.Vec {
	var out []v3.Vec
	for _, p := range points {
		dup := false
		for _, q := range out {
			if p.Equals(q, tol) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

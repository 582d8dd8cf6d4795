package geom

import (
	"errors"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrDegeneratePlane reports a point triple that defines no plane.
var ErrDegeneratePlane = errors.New("geom: collinear points define no plane")

// collinearEps bounds the cross product magnitude below which a point
// triple is treated as collinear. Brush coordinates are in map units, so
// this is far below any real face.
const collinearEps = 1e-8

// Plane is an infinite plane in normal·x = dist form. For brush faces the
// normal points out of the solid.
type Plane struct {
	Normal v3.Vec
	Dist   float64
}

// PlaneFromPoints builds the plane through a, b, c. The points wind
// clockwise when viewed from the front of the plane (the VMF convention),
// which makes (a-b)×(c-b) the front-facing normal.
func PlaneFromPoints(a, b, c v3.Vec) (Plane, error) {
	n := a.Sub(b).Cross(c.Sub(b))
	if n.Length() < collinearEps {
		return Plane{}, ErrDegeneratePlane
	}
	n = n.Normalize()
	return Plane{Normal: n, Dist: n.Dot(b)}, nil
}

// Flipped returns the same plane facing the other way.
func (p Plane) Flipped() Plane {
	return Plane{Normal: p.Normal.Neg(), Dist: -p.Dist}
}

// DistanceTo returns the signed distance from pt to the plane, positive on
// the normal side.
func (p Plane) DistanceTo(pt v3.Vec) float64 {
	return p.Normal.Dot(pt) - p.Dist
}

// IntersectPlanes returns the single point shared by three planes, if any.
// The determinant of the system is the scalar triple product of the three
// normals; a magnitude below eps means the planes are near-parallel or
// meet in a line rather than a point, and no vertex is reported.
func IntersectPlanes(p1, p2, p3 Plane, eps float64) (v3.Vec, bool) {
	n23 := p2.Normal.Cross(p3.Normal)
	det := p1.Normal.Dot(n23)
	if math.Abs(det) < eps {
		return v3.Vec{}, false
	}
	n31 := p3.Normal.Cross(p1.Normal)
	n12 := p1.Normal.Cross(p2.Normal)
	pt := n23.MulScalar(p1.Dist).
		Add(n31.MulScalar(p2.Dist)).
		Add(n12.MulScalar(p3.Dist)).
		DivScalar(det)
	return pt, true
}

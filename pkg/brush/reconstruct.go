package brush

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/autotrig/pkg/geom"
)

// Reconstruct computes the vertex loop and outward plane of every face of
// the solid. Faces with a precise vertices_plus loop keep it (after a
// planarity check); the rest get the standard convex-polyhedron-from-
// half-spaces construction: intersect the face plane with every pair of
// other face planes and keep the points inside all half-spaces.
//
// Failures are per-face: an unusable face gets a non-nil Err and the rest
// of the solid still reconstructs.
func Reconstruct(s *Solid, tol Tolerances) {
	planes := facePlanes(s)

	for i := range s.Faces {
		f := &s.Faces[i]
		if f.Err != nil {
			continue
		}
		if f.Precise {
			if !geom.IsPlanar(f.Loop, tol.Planar) {
				f.Err = fmt.Errorf("%w: side %d: vertices_plus loop is not planar", ErrUnrecoverableFace, f.ID)
			}
			continue
		}
		loop, err := reconstructLoop(planes, i, tol)
		if err != nil {
			f.Err = err
			continue
		}
		f.Loop = loop
	}

	orientOutward(s, planes)
}

// facePlanes derives a provisional plane per face, marking faces whose
// point triple is degenerate.
func facePlanes(s *Solid) []geom.Plane {
	planes := make([]geom.Plane, len(s.Faces))
	for i := range s.Faces {
		f := &s.Faces[i]
		if f.Err != nil {
			continue
		}
		p, err := geom.PlaneFromPoints(f.PlanePoints[0], f.PlanePoints[1], f.PlanePoints[2])
		if err != nil {
			if f.Precise {
				// The exact loop can still stand on its own.
				p, err = planeFromLoop(f.Loop)
			}
			if err != nil {
				f.Err = fmt.Errorf("%w: side %d: %v", ErrUnrecoverableFace, f.ID, err)
				continue
			}
		}
		planes[i] = p
	}
	return planes
}

// planeFromLoop derives a plane from a vertex loop via its Newell normal.
func planeFromLoop(loop []v3.Vec) (geom.Plane, error) {
	n := geom.NewellNormal(loop)
	if n.Length() == 0 {
		return geom.Plane{}, geom.ErrDegeneratePlane
	}
	n = n.Normalize()
	return geom.Plane{Normal: n, Dist: n.Dot(loop[0])}, nil
}

// reconstructLoop intersects face i's plane against every pair of the
// solid's other planes, keeping intersection points that lie on or inside
// all half-spaces, then orders them into a convex loop.
func reconstructLoop(planes []geom.Plane, i int, tol Tolerances) ([]v3.Vec, error) {
	self := planes[i]
	var candidates []v3.Vec
	for j := range planes {
		if j == i || planes[j].Normal == (v3.Vec{}) {
			continue
		}
		for k := j + 1; k < len(planes); k++ {
			if k == i || planes[k].Normal == (v3.Vec{}) {
				continue
			}
			pt, ok := geom.IntersectPlanes(self, planes[j], planes[k], tol.PlaneEps)
			if !ok {
				continue // near-parallel triple, not a vertex
			}
			if insideAll(planes, pt, tol.Point) {
				candidates = append(candidates, pt)
			}
		}
	}

	candidates = geom.Dedup(candidates, tol.Point)
	if len(candidates) < 3 {
		return nil, fmt.Errorf("%w: only %d vertices after plane intersection", ErrUnrecoverableFace, len(candidates))
	}
	loop := geom.SortLoop(candidates, self.Normal)
	return geom.WindClockwise(loop, self.Normal), nil
}

// insideAll reports whether pt is on or behind every valid plane, within
// tol. Outward normals put the solid interior on the negative side.
func insideAll(planes []geom.Plane, pt v3.Vec, tol float64) bool {
	for _, p := range planes {
		if p.Normal == (v3.Vec{}) {
			continue
		}
		if p.DistanceTo(pt) > tol {
			return false
		}
	}
	return true
}

// orientOutward flips any face plane that points at the solid's interior,
// and re-winds its loop to match. The VMF point order convention already
// yields outward normals on well-formed input; this guards against
// editor-exported geometry where the two definition paths disagree.
func orientOutward(s *Solid, planes []geom.Plane) {
	center := s.Center()
	for i := range s.Faces {
		f := &s.Faces[i]
		if f.Err != nil || len(f.Loop) < 3 {
			continue
		}
		f.Plane = planes[i]
		toFace := geom.Centroid(f.Loop).Sub(center)
		if f.Plane.Normal.Dot(toFace) < -0.1 {
			f.Plane = f.Plane.Flipped()
		}
		geom.WindClockwise(f.Loop, f.Plane.Normal)
	}
}

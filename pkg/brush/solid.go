package brush

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/autotrig/pkg/geom"
	"github.com/chazu/autotrig/pkg/vmf"
)

// ErrUnrecoverableFace flags a face whose geometry cannot be used: a
// collinear plane definition, or too few vertices after reconstruction.
// Such faces are skipped with a warning, never a fatal error.
var ErrUnrecoverableFace = errors.New("brush: unrecoverable face")

// Face is one planar boundary of a solid. Keys this package does not
// interpret (uaxis, vaxis, lightmapscale, ...) stay untouched on Node.
type Face struct {
	ID          int
	Material    string
	PlanePoints [3]v3.Vec
	Plane       geom.Plane // outward-facing; valid once reconstructed
	Loop        []v3.Vec   // ordered vertex loop, clockwise from outside
	Precise     bool       // Loop came from a vertices_plus block
	Node        *vmf.Node  // originating side block
	Err         error      // non-nil marks the face unrecoverable
}

// Solid is a convex polyhedron: an identifier plus its bounding faces.
type Solid struct {
	ID    int
	Faces []Face
	Node  *vmf.Node // originating solid block
}

// CollectSolids walks the document and builds a Solid for every solid
// block, both directly under world and inside entity blocks. The document
// is not modified.
func CollectSolids(root *vmf.Node) []*Solid {
	var solids []*Solid
	if world := root.FirstChild("world"); world != nil {
		for _, sn := range world.ChildrenNamed("solid") {
			solids = append(solids, buildSolid(sn))
		}
	}
	for _, ent := range root.ChildrenNamed("entity") {
		for _, sn := range ent.ChildrenNamed("solid") {
			solids = append(solids, buildSolid(sn))
		}
	}
	return solids
}

func buildSolid(node *vmf.Node) *Solid {
	s := &Solid{
		ID:   atoi(node.Get("id")),
		Node: node,
	}
	for _, sn := range node.ChildrenNamed("side") {
		s.Faces = append(s.Faces, buildFace(sn))
	}
	return s
}

func buildFace(node *vmf.Node) Face {
	f := Face{
		ID:       atoi(node.Get("id")),
		Material: node.Get("material"),
		Node:     node,
	}

	planeStr, hasPlane := node.Lookup("plane")
	if hasPlane {
		pts, err := geom.ParsePlanePoints(planeStr)
		if err != nil {
			f.Err = fmt.Errorf("%w: %v", ErrUnrecoverableFace, err)
		} else {
			f.PlanePoints = pts
		}
	}

	// vertices_plus (Hammer++) carries the exact loop and wins over
	// plane-intersection reconstruction.
	if vp := node.FirstChild("vertices_plus"); vp != nil {
		var loop []v3.Vec
		ok := true
		for _, vs := range vp.Values("v") {
			v, err := geom.ParseVec(vs)
			if err != nil {
				ok = false
				break
			}
			loop = append(loop, v)
		}
		if ok && len(loop) >= 3 {
			f.Loop = loop
			f.Precise = true
			f.Err = nil
		}
	}

	if !hasPlane && !f.Precise {
		f.Err = fmt.Errorf("%w: side %d has neither plane nor vertices_plus", ErrUnrecoverableFace, f.ID)
	}
	return f
}

// Center returns the mean of every known vertex of the solid, falling back
// to plane points for faces without a loop. Used to orient face normals
// outward.
func (s *Solid) Center() v3.Vec {
	var sum v3.Vec
	n := 0
	for i := range s.Faces {
		f := &s.Faces[i]
		pts := f.Loop
		if len(pts) == 0 && f.Err == nil {
			pts = f.PlanePoints[:]
		}
		for _, p := range pts {
			sum = sum.Add(p)
			n++
		}
	}
	if n == 0 {
		return v3.Vec{}
	}
	return sum.DivScalar(float64(n))
}

// Materials returns the sorted set of materials used across solids.
func Materials(solids []*Solid) []string {
	seen := map[string]bool{}
	for _, s := range solids {
		for i := range s.Faces {
			if m := s.Faces[i].Material; m != "" {
				seen[m] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

package trigger

import (
	"strconv"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/autotrig/pkg/brush"
	"github.com/chazu/autotrig/pkg/geom"
	"github.com/chazu/autotrig/pkg/vmf"
)

// Fixed keyvalues for generated geometry, matching what Hammer writes for
// a fresh trigger brush.
const (
	triggerMaterial  = "TOOLS/TOOLSTRIGGER"
	triggerClassname = "trigger_multiple"
	editorColor      = "220 30 220"
)

// Build synthesizes a trigger_multiple entity over the face: the face's
// vertex loop is the base polygon, a translated copy offset units along
// the outward normal is the lid, and quads connect the two. Sloped faces
// therefore get matching wedges, not axis-aligned boxes. All identifiers
// come from alloc; name becomes the entity's targetname.
func Build(f *brush.Face, offset float64, alloc *Allocator, name string) *vmf.Node {
	base := f.Loop
	lid := translated(base, f.Plane.Normal.MulScalar(offset))

	loops := make([][]v3.Vec, 0, len(base)+2)
	loops = append(loops, reversed(base)) // seals against the source face
	loops = append(loops, lid)
	for i := range base {
		j := (i + 1) % len(base)
		loops = append(loops, []v3.Vec{base[i], base[j], lid[j], lid[i]})
	}

	solid := &vmf.Node{Name: "solid"}
	solid.Add("id", itoa(alloc.Next()))
	for _, loop := range loops {
		solid.AddChild(sideNode(loop, alloc.Next()))
	}
	solid.AddChild(editorNode())

	ent := &vmf.Node{Name: "entity"}
	ent.Add("id", itoa(alloc.Next()))
	ent.Add("classname", triggerClassname)
	ent.Add("targetname", name)
	ent.Add("spawnflags", "1")
	ent.Add("StartDisabled", "0")
	ent.Add("wait", "0")
	ent.AddChild(solid)
	ent.AddChild(editorNode())
	return ent
}

// sideNode emits one generated face. The plane is derived from the loop's
// first three vertices; the full loop rides along as vertices_plus so
// Hammer++ keeps the exact geometry.
func sideNode(loop []v3.Vec, id int) *vmf.Node {
	side := &vmf.Node{Name: "side"}
	side.Add("id", itoa(id))
	side.Add("plane", geom.FormatPlanePoints(loop[0], loop[1], loop[2]))
	side.Add("material", triggerMaterial)
	side.Add("uaxis", "[1 0 0 0] 0.25")
	side.Add("vaxis", "[0 -1 0 0] 0.25")
	side.Add("rotation", "0")
	side.Add("lightmapscale", "16")
	side.Add("smoothing_groups", "0")

	vp := &vmf.Node{Name: "vertices_plus"}
	for _, v := range loop {
		vp.Add("v", geom.FormatVec(v))
	}
	side.AddChild(vp)
	return side
}

func editorNode() *vmf.Node {
	ed := &vmf.Node{Name: "editor"}
	ed.Add("color", editorColor)
	ed.Add("visgroupshown", "1")
	ed.Add("visgroupautoshown", "1")
	return ed
}

func translated(loop []v3.Vec, by v3.Vec) []v3.Vec {
	out := make([]v3.Vec, len(loop))
	for i, p := range loop {
		out[i] = p.Add(by)
	}
	return out
}

func reversed(loop []v3.Vec) []v3.Vec {
	out := make([]v3.Vec, len(loop))
	for i, p := range loop {
		out[len(loop)-1-i] = p
	}
	return out
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

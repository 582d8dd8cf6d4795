package brush_test

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/autotrig/pkg/brush"
	"github.com/chazu/autotrig/pkg/geom"
)

func vec(x, y, z float64) v3.Vec { return v3.Vec{X: x, Y: y, Z: z} }

// containsVec reports whether loop holds p within tol.
func containsVec(loop []v3.Vec, p v3.Vec, tol float64) bool {
	for _, q := range loop {
		if q.Equals(p, tol) {
			return true
		}
	}
	return false
}

func TestReconstructCube(t *testing.T) {
	solids := brush.CollectSolids(parseDoc(t, cubeDoc))
	cube := solids[0]
	brush.Reconstruct(cube, brush.DefaultTolerances())

	wantNormals := []v3.Vec{
		vec(0, 0, 1), vec(0, 0, -1), vec(-1, 0, 0),
		vec(1, 0, 0), vec(0, 1, 0), vec(0, -1, 0),
	}
	for i := range cube.Faces {
		f := &cube.Faces[i]
		require.NoError(t, f.Err, "face %d", i)
		require.Len(t, f.Loop, 4, "face %d", i)
		assert.True(t, f.Plane.Normal.Equals(wantNormals[i], 1e-9),
			"face %d normal = %v, want %v", i, f.Plane.Normal, wantNormals[i])

		// Every vertex is a cube corner on the face's own plane.
		for _, p := range f.Loop {
			assert.InDelta(t, 0, f.Plane.DistanceTo(p), 1e-4)
		}
		// Winding is clockwise from outside.
		assert.Less(t, geom.NewellNormal(f.Loop).Dot(f.Plane.Normal), 0.0, "face %d", i)
	}

	top := cube.Faces[0].Loop
	for _, corner := range []v3.Vec{
		vec(0, 0, 64), vec(64, 0, 64), vec(64, 64, 64), vec(0, 64, 64),
	} {
		assert.True(t, containsVec(top, corner, 1e-4), "top face missing corner %v", corner)
	}
	assert.InDelta(t, 64.0*64.0, geom.Area(top), 1e-6)
}

// wedgeDoc is a triangular prism: the slope rises from x=0,z=0 to
// x=64,z=64, so its outward normal is (-1,0,1)/sqrt(2).
const wedgeDoc = `world
{
	"id" "1"
	solid
	{
		"id" "2"
		side
		{
			"id" "3"
			"plane" "(0 0 0) (0 64 0) (64 64 64)"
			"material" "DEV/DEV_MEASUREGENERIC01"
		}
		side
		{
			"id" "4"
			"plane" "(0 0 0) (64 0 0) (64 64 0)"
			"material" "TOOLS/TOOLSNODRAW"
		}
		side
		{
			"id" "5"
			"plane" "(64 64 0) (64 0 0) (64 0 64)"
			"material" "TOOLS/TOOLSNODRAW"
		}
		side
		{
			"id" "6"
			"plane" "(0 64 0) (64 64 0) (64 64 64)"
			"material" "TOOLS/TOOLSNODRAW"
		}
		side
		{
			"id" "7"
			"plane" "(64 0 0) (0 0 0) (0 0 64)"
			"material" "TOOLS/TOOLSNODRAW"
		}
	}
}
`

func TestReconstructWedge(t *testing.T) {
	solids := brush.CollectSolids(parseDoc(t, wedgeDoc))
	wedge := solids[0]
	brush.Reconstruct(wedge, brush.DefaultTolerances())

	slope := &wedge.Faces[0]
	require.NoError(t, slope.Err)
	require.Len(t, slope.Loop, 4)

	inv := 1 / 1.4142135623730951
	assert.True(t, slope.Plane.Normal.Equals(vec(-inv, 0, inv), 1e-9),
		"slope normal = %v", slope.Plane.Normal)

	for _, corner := range []v3.Vec{
		vec(0, 0, 0), vec(0, 64, 0), vec(64, 64, 64), vec(64, 0, 64),
	} {
		assert.True(t, containsVec(slope.Loop, corner, 1e-4), "slope missing %v", corner)
	}

	// End caps are triangles.
	for _, i := range []int{3, 4} {
		f := &wedge.Faces[i]
		require.NoError(t, f.Err, "face %d", i)
		assert.Len(t, f.Loop, 3, "face %d", i)
	}
}

func TestReconstructCollinearSide(t *testing.T) {
	// A seventh side with a collinear plane is unrecoverable, but the
	// cube's six real faces still reconstruct.
	root := parseDoc(t, `world
{
	"id" "1"
	solid
	{
		"id" "2"
		side
		{
			"id" "3"
			"plane" "(0 64 64) (64 64 64) (64 0 64)"
			"material" "TOOLS/TOOLSNODRAW"
		}
		side
		{
			"id" "4"
			"plane" "(0 0 0) (64 0 0) (64 64 0)"
			"material" "TOOLS/TOOLSNODRAW"
		}
		side
		{
			"id" "5"
			"plane" "(0 0 0) (0 64 0) (0 64 64)"
			"material" "TOOLS/TOOLSNODRAW"
		}
		side
		{
			"id" "6"
			"plane" "(64 64 0) (64 0 0) (64 0 64)"
			"material" "TOOLS/TOOLSNODRAW"
		}
		side
		{
			"id" "7"
			"plane" "(0 64 0) (64 64 0) (64 64 64)"
			"material" "TOOLS/TOOLSNODRAW"
		}
		side
		{
			"id" "8"
			"plane" "(64 0 0) (0 0 0) (0 0 64)"
			"material" "TOOLS/TOOLSNODRAW"
		}
		side
		{
			"id" "9"
			"plane" "(0 0 0) (1 0 0) (2 0 0)"
			"material" "TOOLS/TOOLSNODRAW"
		}
	}
}
`)
	s := brush.CollectSolids(root)[0]
	brush.Reconstruct(s, brush.DefaultTolerances())

	bad := 0
	for i := range s.Faces {
		if s.Faces[i].Err != nil {
			assert.ErrorIs(t, s.Faces[i].Err, brush.ErrUnrecoverableFace)
			bad++
		} else {
			assert.GreaterOrEqual(t, len(s.Faces[i].Loop), 3, "face %d", i)
		}
	}
	assert.Equal(t, 1, bad, "exactly the collinear side fails")
}

func TestReconstructPreciseLoopPlanarity(t *testing.T) {
	root := parseDoc(t, `world
{
	"id" "1"
	solid
	{
		"id" "2"
		side
		{
			"id" "3"
			"plane" "(0 64 64) (64 64 64) (64 0 64)"
			"material" "X"
			vertices_plus
			{
				"v" "0 0 64"
				"v" "0 64 64"
				"v" "64 64 64"
				"v" "64 0 90"
			}
		}
	}
}
`)
	s := brush.CollectSolids(root)[0]
	brush.Reconstruct(s, brush.DefaultTolerances())
	assert.ErrorIs(t, s.Faces[0].Err, brush.ErrUnrecoverableFace)
}

func TestReconstructTooFewPlanes(t *testing.T) {
	// Two planes cannot bound a polygon; the faces fail individually.
	root := parseDoc(t, `world
{
	"id" "1"
	solid
	{
		"id" "2"
		side
		{
			"id" "3"
			"plane" "(0 64 64) (64 64 64) (64 0 64)"
			"material" "X"
		}
		side
		{
			"id" "4"
			"plane" "(0 0 0) (64 0 0) (64 64 0)"
			"material" "X"
		}
	}
}
`)
	s := brush.CollectSolids(root)[0]
	brush.Reconstruct(s, brush.DefaultTolerances())
	for i := range s.Faces {
		assert.ErrorIs(t, s.Faces[i].Err, brush.ErrUnrecoverableFace, "face %d", i)
	}
}

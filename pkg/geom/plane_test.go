package geom_test

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/autotrig/pkg/geom"
)

func vec(x, y, z float64) v3.Vec { return v3.Vec{X: x, Y: y, Z: z} }

func TestPlaneFromPoints(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c    v3.Vec
		wantNormal v3.Vec
		wantDist   float64
	}{
		{
			// Top face of a 64-unit cube, VMF point order.
			name: "cube top",
			a:    vec(0, 64, 64), b: vec(64, 64, 64), c: vec(64, 0, 64),
			wantNormal: vec(0, 0, 1), wantDist: 64,
		},
		{
			name: "cube bottom",
			a:    vec(0, 0, 0), b: vec(64, 0, 0), c: vec(64, 64, 0),
			wantNormal: vec(0, 0, -1), wantDist: 0,
		},
		{
			name: "cube west",
			a:    vec(0, 0, 0), b: vec(0, 64, 0), c: vec(0, 64, 64),
			wantNormal: vec(-1, 0, 0), wantDist: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := geom.PlaneFromPoints(tt.a, tt.b, tt.c)
			require.NoError(t, err)
			assert.True(t, p.Normal.Equals(tt.wantNormal, 1e-9), "normal = %v", p.Normal)
			assert.InDelta(t, tt.wantDist, p.Dist, 1e-9)
		})
	}
}

func TestPlaneFromCollinearPoints(t *testing.T) {
	_, err := geom.PlaneFromPoints(vec(0, 0, 0), vec(1, 0, 0), vec(2, 0, 0))
	require.ErrorIs(t, err, geom.ErrDegeneratePlane)
}

func TestPlaneDistanceTo(t *testing.T) {
	p, err := geom.PlaneFromPoints(vec(0, 64, 64), vec(64, 64, 64), vec(64, 0, 64))
	require.NoError(t, err)

	assert.InDelta(t, 8.0, p.DistanceTo(vec(10, 10, 72)), 1e-9, "above the plane")
	assert.InDelta(t, -64.0, p.DistanceTo(vec(10, 10, 0)), 1e-9, "inside the solid")

	f := p.Flipped()
	assert.InDelta(t, -8.0, f.DistanceTo(vec(10, 10, 72)), 1e-9)
}

func TestIntersectPlanes(t *testing.T) {
	top, err := geom.PlaneFromPoints(vec(0, 64, 64), vec(64, 64, 64), vec(64, 0, 64))
	require.NoError(t, err)
	east, err := geom.PlaneFromPoints(vec(64, 64, 0), vec(64, 0, 0), vec(64, 0, 64))
	require.NoError(t, err)
	north, err := geom.PlaneFromPoints(vec(0, 64, 0), vec(64, 64, 0), vec(64, 64, 64))
	require.NoError(t, err)

	pt, ok := geom.IntersectPlanes(top, east, north, 1e-6)
	require.True(t, ok)
	assert.True(t, pt.Equals(vec(64, 64, 64), 1e-9), "pt = %v", pt)
}

func TestIntersectParallelPlanes(t *testing.T) {
	top, err := geom.PlaneFromPoints(vec(0, 64, 64), vec(64, 64, 64), vec(64, 0, 64))
	require.NoError(t, err)
	bottom, err := geom.PlaneFromPoints(vec(0, 0, 0), vec(64, 0, 0), vec(64, 64, 0))
	require.NoError(t, err)
	east, err := geom.PlaneFromPoints(vec(64, 64, 0), vec(64, 0, 0), vec(64, 0, 64))
	require.NoError(t, err)

	_, ok := geom.IntersectPlanes(top, bottom, east, 1e-6)
	assert.False(t, ok, "parallel planes must not report a vertex")
}

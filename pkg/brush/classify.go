package brush

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// SurfaceCategory buckets a face by how steep it is.
type SurfaceCategory int

const (
	CategoryWall SurfaceCategory = iota
	CategoryFloor
	CategorySteepSlope
	CategoryRamp
	CategoryGentleSlope
)

func (c SurfaceCategory) String() string {
	switch c {
	case CategoryWall:
		return "wall"
	case CategoryFloor:
		return "floor"
	case CategorySteepSlope:
		return "steep_slope"
	case CategoryRamp:
		return "ramp"
	case CategoryGentleSlope:
		return "gentle_slope"
	default:
		return "unknown"
	}
}

// ParseCategory maps a category name (as used on the command line) back to
// its SurfaceCategory.
func ParseCategory(s string) (SurfaceCategory, error) {
	for _, c := range []SurfaceCategory{
		CategoryWall, CategoryFloor, CategorySteepSlope, CategoryRamp, CategoryGentleSlope,
	} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("brush: unknown surface category %q", s)
}

// classifyPrecision quantizes the normal z component before bucketing so
// identical surfaces always classify identically regardless of the
// floating point path that produced them.
const classifyPrecision = 1e-6

// Classify buckets a unit normal by the magnitude of its z component.
// Ceiling-side variants use the same buckets; downward reports the face
// pointing below the horizon. The intervals are half-open with the lower
// bound inclusive, so a boundary value lands in the steeper bucket:
//
//	wall          |z| < 0.01    (~90° from horizontal)
//	gentle slope  [0.01, 0.3)   (73°–89°)
//	ramp          [0.3, 0.7)    (45°–73°)
//	steep slope   [0.7, 0.985)  (10°–45°)
//	floor         [0.985, 1]    (< 10°)
func Classify(normal v3.Vec) (cat SurfaceCategory, downward bool) {
	z := math.Round(normal.Z/classifyPrecision) * classifyPrecision
	downward = z < 0
	az := math.Abs(z)
	switch {
	case az < 0.01:
		return CategoryWall, false
	case az >= 0.985:
		return CategoryFloor, downward
	case az >= 0.7:
		return CategorySteepSlope, downward
	case az >= 0.3:
		return CategoryRamp, downward
	default:
		return CategoryGentleSlope, downward
	}
}

// AngleFromHorizontal returns the face's tilt from horizontal in degrees:
// 0 for a flat floor, 90 for a wall.
func AngleFromHorizontal(normal v3.Vec) float64 {
	az := math.Min(1, math.Abs(normal.Z))
	return math.Acos(az) * 180 / math.Pi
}

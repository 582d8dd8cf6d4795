package brush

// Tolerances centralizes every numeric cutoff the pipeline uses, so
// behavior is auditable in one place instead of scattered per call site.
// The zero value is not useful; start from DefaultTolerances.
type Tolerances struct {
	// PlaneEps is the determinant cutoff below which a plane triple is
	// treated as not meeting in a point.
	PlaneEps float64 `yaml:"plane_epsilon"`
	// Point is the tolerance for half-space inclusion and vertex
	// deduplication, in map units.
	Point float64 `yaml:"point_tolerance"`
	// Planar bounds how far a vertices_plus vertex may sit off the face
	// plane before the loop is rejected.
	Planar float64 `yaml:"planar_tolerance"`
	// MinArea is the smallest face footprint, in square units, that still
	// produces a trigger. Slivers below it are skipped silently.
	MinArea float64 `yaml:"min_trigger_area"`
}

// DefaultTolerances returns the cutoffs the tool ships with.
func DefaultTolerances() Tolerances {
	return Tolerances{
		PlaneEps: 1e-6,
		Point:    1e-4,
		Planar:   1.0,
		MinArea:  1.0,
	}
}

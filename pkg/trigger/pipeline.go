package trigger

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"sync"

	"github.com/chazu/autotrig/pkg/brush"
	"github.com/chazu/autotrig/pkg/geom"
	"github.com/chazu/autotrig/pkg/rules"
	"github.com/chazu/autotrig/pkg/vmf"
)

// DefaultOffset is the extrusion distance, in map units, used when the
// caller does not set one.
const DefaultOffset = 4.0

// DefaultPrefix is the targetname prefix for generated triggers.
const DefaultPrefix = "autotrigger"

// Options configures one Generate run.
type Options struct {
	// Materials holds case-insensitive substring filters; a face matches
	// when any filter occurs in its material path. Empty matches nothing,
	// which turns Generate into a pure round-trip.
	Materials []string
	// Offset is the extrusion distance along the outward normal.
	// Zero means DefaultOffset; negative is an error.
	Offset float64
	// Categories selects which surface categories produce triggers.
	// Nil means every category except wall; walls never qualify.
	Categories map[brush.SurfaceCategory]bool
	// UpwardOnly drops ceiling-side faces (outward normal pointing down).
	UpwardOnly bool
	// Prefix for generated targetnames: <prefix>_<n>.
	Prefix string
	// Rules is an optional scripted predicate consulted after the
	// material and category checks.
	Rules *rules.Filter
	// Verbose logs one line per matching face.
	Verbose bool

	Tolerances brush.Tolerances
}

// Stats summarizes a run for the caller's report.
type Stats struct {
	Solids        int            // solids parsed
	Faces         int            // faces seen
	ByCategory    map[string]int // classified faces per category
	Matched       int            // faces passing the material filter
	Walls         int            // matching faces skipped as walls
	Unrecoverable int            // faces with unusable geometry
	Degenerate    int            // eligible faces below the area cutoff
	Triggers      int            // entities generated
}

// DefaultCategories enables every category that can carry a player.
func DefaultCategories() map[brush.SurfaceCategory]bool {
	return map[brush.SurfaceCategory]bool{
		brush.CategoryFloor:       true,
		brush.CategorySteepSlope:  true,
		brush.CategoryRamp:        true,
		brush.CategoryGentleSlope: true,
	}
}

// Generate is the pipeline entry point: parse the document, rebuild face
// geometry, classify, and append a trigger_multiple entity over every
// eligible face. The returned text is the whole document with the new
// entities appended; everything original is preserved. Per-face geometry
// problems are counted, not fatal; only a malformed document or a failing
// rules script aborts the run.
func Generate(input string, opts Options) (string, *Stats, error) {
	opts = opts.withDefaults()
	if opts.Offset < 0 {
		return "", nil, fmt.Errorf("trigger: offset must be positive, got %v", opts.Offset)
	}

	root, err := vmf.ParseString(input)
	if err != nil {
		return "", nil, err
	}

	solids := brush.CollectSolids(root)
	reconstructAll(solids, opts.Tolerances)

	stats := &Stats{
		Solids:     len(solids),
		ByCategory: make(map[string]int),
	}
	alloc := NewAllocator(root)
	n := 0

	// Serial emission keeps trigger order deterministic: document solid
	// order, then face order.
	for _, s := range solids {
		for i := range s.Faces {
			f := &s.Faces[i]
			stats.Faces++
			if f.Err != nil {
				stats.Unrecoverable++
				log.Printf("trigger: solid %d: %v", s.ID, f.Err)
				continue
			}
			cat, down := brush.Classify(f.Plane.Normal)
			stats.ByCategory[categoryKey(cat, down)]++

			if !materialMatches(f.Material, opts.Materials) {
				continue
			}
			stats.Matched++
			if opts.Verbose {
				log.Printf("solid %d side %d: %s %s normal.z=%.3f angle=%.1f°",
					s.ID, f.ID, f.Material, categoryKey(cat, down),
					f.Plane.Normal.Z, brush.AngleFromHorizontal(f.Plane.Normal))
			}
			if cat == brush.CategoryWall {
				stats.Walls++
				continue
			}
			if !opts.Categories[cat] {
				continue
			}
			if opts.UpwardOnly && down {
				continue
			}
			if opts.Rules != nil {
				ok, err := opts.Rules.Eligible(f.Material, cat.String(), f.Plane.Normal.Z)
				if err != nil {
					return "", nil, err
				}
				if !ok {
					continue
				}
			}
			if geom.Area(f.Loop) < opts.Tolerances.MinArea {
				stats.Degenerate++
				continue
			}

			n++
			root.AddChild(Build(f, opts.Offset, alloc, fmt.Sprintf("%s_%d", opts.Prefix, n)))
			stats.Triggers++
		}
	}

	return vmf.SerializeString(root), stats, nil
}

func (o Options) withDefaults() Options {
	if o.Offset == 0 {
		o.Offset = DefaultOffset
	}
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.Tolerances == (brush.Tolerances{}) {
		o.Tolerances = brush.DefaultTolerances()
	}
	if o.Categories == nil {
		o.Categories = DefaultCategories()
	}
	return o
}

// reconstructAll fans per-solid reconstruction out over a bounded worker
// pool. Solids are independent, so only the fan-in ordering matters, and
// that is fixed by the solids slice itself.
func reconstructAll(solids []*brush.Solid, tol brush.Tolerances) {
	workers := runtime.NumCPU()
	if workers > len(solids) {
		workers = len(solids)
	}
	if workers <= 1 {
		for _, s := range solids {
			brush.Reconstruct(s, tol)
		}
		return
	}

	jobs := make(chan *brush.Solid)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				brush.Reconstruct(s, tol)
			}
		}()
	}
	for _, s := range solids {
		jobs <- s
	}
	close(jobs)
	wg.Wait()
}

func materialMatches(material string, filters []string) bool {
	if material == "" {
		return false
	}
	m := strings.ToLower(material)
	for _, f := range filters {
		if f != "" && strings.Contains(m, strings.ToLower(f)) {
			return true
		}
	}
	return false
}

// categoryKey names a classified face for stats, keeping the ceiling-side
// names the report has always used.
func categoryKey(cat brush.SurfaceCategory, down bool) string {
	if !down {
		return cat.String()
	}
	switch cat {
	case brush.CategoryFloor:
		return "ceiling"
	case brush.CategorySteepSlope:
		return "steep_ceiling_slope"
	case brush.CategoryRamp:
		return "ceiling_ramp"
	case brush.CategoryGentleSlope:
		return "gentle_ceiling_slope"
	default:
		return cat.String()
	}
}

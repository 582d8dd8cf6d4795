package geom

import (
	"fmt"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ParseVec parses a whitespace-separated "x y z" coordinate triple.
func ParseVec(s string) (v3.Vec, error) {
	f := strings.Fields(s)
	if len(f) != 3 {
		return v3.Vec{}, fmt.Errorf("geom: expected 3 coordinates in %q", s)
	}
	var out [3]float64
	for i, tok := range f {
		x, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return v3.Vec{}, fmt.Errorf("geom: bad coordinate %q in %q", tok, s)
		}
		out[i] = x
	}
	return v3.Vec{X: out[0], Y: out[1], Z: out[2]}, nil
}

// FormatVec renders a vector as "x y z" with minimal digits, the way
// Hammer writes coordinates.
func FormatVec(v v3.Vec) string {
	return formatFloat(v.X) + " " + formatFloat(v.Y) + " " + formatFloat(v.Z)
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// ParsePlanePoints parses a VMF plane value of the form
// "(x y z) (x y z) (x y z)" into its three defining points.
func ParsePlanePoints(s string) ([3]v3.Vec, error) {
	var pts [3]v3.Vec
	rest := s
	for i := 0; i < 3; i++ {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return pts, fmt.Errorf("geom: plane %q: expected 3 point groups", s)
		}
		close := strings.IndexByte(rest[open:], ')')
		if close < 0 {
			return pts, fmt.Errorf("geom: plane %q: unclosed point group", s)
		}
		v, err := ParseVec(rest[open+1 : open+close])
		if err != nil {
			return pts, fmt.Errorf("geom: plane %q: %w", s, err)
		}
		pts[i] = v
		rest = rest[open+close+1:]
	}
	return pts, nil
}

// FormatPlanePoints renders three points in VMF plane form.
func FormatPlanePoints(a, b, c v3.Vec) string {
	return "(" + FormatVec(a) + ") (" + FormatVec(b) + ") (" + FormatVec(c) + ")"
}

// Package brush builds a typed solid/face model from parsed VMF blocks,
// reconstructs face polygons from plane intersections, and classifies
// surfaces by slope. It reads the document tree but never mutates it.
package brush

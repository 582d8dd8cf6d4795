// Package geom provides the plane and polygon math used to rebuild brush
// geometry: plane construction from point triples, triple-plane
// intersection, and convex loop ordering. Vectors are sdfx v3.Vec values.
package geom

// Package geometry models the shapes that SPH bodies are built from.
//
// A Region is anything that can answer a point-containment query and
// report an axis-aligned bounding box. Two families of regions are
// provided:
//
//   - PolygonRegion: a 2D shape assembled from closed polygonal contours
//     combined with ordered add/subtract boolean operations, the way
//     planar simulation cases describe tanks, walls and fluid blocks.
//   - Shape2 and Solid: 2D and 3D regions backed by signed distance
//     fields from github.com/deadsy/sdfx, for cases built from geometric
//     primitives rather than explicit contours.
//
// Regions are frozen before use: a PolygonRegion accepts contours until
// Finalize is called and is read-only afterwards, so it can be shared
// across concurrent particle generation passes. SDF-backed shapes are
// immutable from construction.
//
// Containment follows the closed-region convention: a point exactly on
// the boundary of the final shape is inside. For a PolygonRegion this
// means points on an additive contour edge count as contained, and a
// subtracted contour carves only its strict interior, so points on the
// carved edge remain part of the region.
package geometry

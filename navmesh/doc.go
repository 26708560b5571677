// Package navmesh turns a scanned triangle mesh into a 2D walkability grid.
//
// What:
//
//	Build rasterizes every face of a mesh onto a top-down grid sampled at a
//	caller-chosen resolution (cells per meter), then cleans the result up in
//	four passes:
//
//	  1. collapse: average obstacle weight per cell decides obstacle vs floor;
//	  2. hole fill: unscanned cells reachable from the border are "outer
//	     holes" (outside the structure), enclosed gaps become floor;
//	  3. wall expansion: floor touching an obstacle or outer hole (8-neighbour)
//	     is dropped, leaving a safety margin along walls;
//	  4. region isolation: only the largest 4-connected floor region survives.
//
//	Alongside walkability, Build samples a steepness grid (face slope in
//	degrees) and a height grid (floor Y) with identical dimensions.
//
// Weights:
//
//	A face's obstacle weight is 1-|n.y| for its unit normal n: 0 for floors,
//	1 for walls. Faces entirely below LowIgnoreHeight or entirely above
//	HighIgnoreHeight (measured from the mesh's minimum Y) still mark cells as
//	occupied but add no weight, so low clutter and ceilings never block.
//
// Complexity:
//
//   - Time:   O(T·A + X·Z), T = triangles, A = cells covered per triangle.
//   - Memory: O(X·Z).
//
// Build is a pure function of (mesh, options) and may run on any goroutine.
//
// Errors:
//
//   - ErrEmptyMesh: mesh has no triangles or a zero-extent footprint.
//   - ErrOptionViolation: invalid resolution or thresholds.
package navmesh

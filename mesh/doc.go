// Package mesh holds the raw triangle geometry a navmesh is built from.
//
// What:
//
//   - Mesh: vertex positions plus an optional index buffer. Without indices,
//     vertices are consumed three at a time.
//   - Triangle: face helpers (normal, centroid, slope, vertical ray hit).
//   - Bounds: axis-aligned bounding box of the mesh.
//   - LoadOBJ / LoadOBJFile: read Wavefront OBJ geometry ("v" and "f" records).
//
// A Mesh is read-only input; nothing in this package mutates it after
// construction.
//
// Errors:
//
//   - ErrEmptyMesh: no triangles, or zero X/Z extent.
//   - ErrIncompleteTriangle: vertex/index count is not a multiple of three.
//   - ErrIndexOutOfRange: an index does not address a vertex.
//   - ErrBadOBJ: malformed OBJ record.
package mesh

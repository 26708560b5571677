package mesh

import "errors"

var (
	// ErrEmptyMesh indicates the mesh has no triangles or a zero-extent footprint.
	ErrEmptyMesh = errors.New("mesh: empty mesh")
	// ErrIncompleteTriangle indicates a trailing vertex/index group shorter than three.
	ErrIncompleteTriangle = errors.New("mesh: vertex or index count is not a multiple of 3")
	// ErrIndexOutOfRange indicates an index that does not address a vertex.
	ErrIndexOutOfRange = errors.New("mesh: index out of range")
	// ErrNonFiniteVertex indicates a NaN or infinite vertex coordinate.
	ErrNonFiniteVertex = errors.New("mesh: non-finite vertex coordinate")
	// ErrBadOBJ indicates a malformed OBJ record.
	ErrBadOBJ = errors.New("mesh: malformed OBJ data")
)

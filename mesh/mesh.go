package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is an indexed (or unindexed) triangle list.
type Mesh struct {
	Vertices []mgl64.Vec3
	// Indices, when non-empty, lists vertex indices three per triangle.
	Indices []int
}

// New returns a mesh over the given vertices and optional indices.
func New(vertices []mgl64.Vec3, indices ...int) *Mesh {
	return &Mesh{Vertices: vertices, Indices: indices}
}

// FromFloats builds a mesh from a flat xyz position buffer, the layout
// scene loaders hand over.
func FromFloats(positions []float64, indices ...int) (*Mesh, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("%w: %d position components", ErrIncompleteTriangle, len(positions))
	}
	verts := make([]mgl64.Vec3, len(positions)/3)
	for i := range verts {
		verts[i] = mgl64.Vec3{positions[3*i], positions[3*i+1], positions[3*i+2]}
	}
	return New(verts, indices...), nil
}

// TriangleCount returns the number of complete triangles.
func (m *Mesh) TriangleCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Vertices) / 3
}

// Triangle returns triangle t. It does not validate indices; call Validate first.
func (m *Mesh) Triangle(t int) Triangle {
	if len(m.Indices) > 0 {
		return Triangle{m.Vertices[m.Indices[3*t]], m.Vertices[m.Indices[3*t+1]], m.Vertices[m.Indices[3*t+2]]}
	}
	return Triangle{m.Vertices[3*t], m.Vertices[3*t+1], m.Vertices[3*t+2]}
}

// Triangles returns every triangle of the mesh.
func (m *Mesh) Triangles() []Triangle {
	out := make([]Triangle, m.TriangleCount())
	for t := range out {
		out[t] = m.Triangle(t)
	}
	return out
}

// Validate checks that the mesh forms at least one triangle, that every
// index addresses a vertex, that every coordinate is finite, and that the
// footprint has non-zero X and Z extent.
func (m *Mesh) Validate() error {
	if m == nil {
		return ErrEmptyMesh
	}
	if len(m.Indices) > 0 {
		if len(m.Indices)%3 != 0 {
			return fmt.Errorf("%w: %d indices", ErrIncompleteTriangle, len(m.Indices))
		}
		for i, idx := range m.Indices {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("%w: indices[%d]=%d, %d vertices", ErrIndexOutOfRange, i, idx, len(m.Vertices))
			}
		}
	} else if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d vertices", ErrIncompleteTriangle, len(m.Vertices))
	}
	if m.TriangleCount() == 0 {
		return fmt.Errorf("%w: no triangles", ErrEmptyMesh)
	}
	for i, v := range m.Vertices {
		if !Finite(v) {
			return fmt.Errorf("%w: vertices[%d]=%v", ErrNonFiniteVertex, i, v)
		}
	}
	b := m.Bounds()
	if b.Max.X()-b.Min.X() <= 0 || b.Max.Z()-b.Min.Z() <= 0 {
		return fmt.Errorf("%w: zero-extent footprint %v", ErrEmptyMesh, b)
	}
	return nil
}

// Bounds computes the axis-aligned bounding box over every referenced vertex.
// An empty mesh yields the zero Bounds.
func (m *Mesh) Bounds() Bounds {
	var b Bounds
	first := true
	grow := func(v mgl64.Vec3) {
		if first {
			b.Min, b.Max = v, v
			first = false
			return
		}
		for k := 0; k < 3; k++ {
			b.Min[k] = math.Min(b.Min[k], v[k])
			b.Max[k] = math.Max(b.Max[k], v[k])
		}
	}
	if len(m.Indices) > 0 {
		for _, idx := range m.Indices {
			grow(m.Vertices[idx])
		}
	} else {
		for _, v := range m.Vertices {
			grow(v)
		}
	}
	return b
}

// Finite reports whether every component of v is a finite number.
func Finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max mgl64.Vec3
}

// Size returns the box extent along each axis.
func (b Bounds) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%.3f %.3f %.3f]-[%.3f %.3f %.3f]",
		b.Min.X(), b.Min.Y(), b.Min.Z(), b.Max.X(), b.Max.Y(), b.Max.Z())
}

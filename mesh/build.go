package mesh

import "github.com/go-gl/mathgl/mgl64"

// AddTriangle appends one face, keeping the mesh's indexed or unindexed layout.
func (m *Mesh) AddTriangle(a, b, c mgl64.Vec3) {
	if len(m.Indices) > 0 {
		base := len(m.Vertices)
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	m.Vertices = append(m.Vertices, a, b, c)
}

// AddQuad appends the planar quad a-b-c-d as the two faces a-b-c and a-c-d.
func (m *Mesh) AddQuad(a, b, c, d mgl64.Vec3) {
	m.AddTriangle(a, b, c)
	m.AddTriangle(a, c, d)
}

// AddFloor appends an upward-facing rectangle at height y spanning [x0,x1]×[z0,z1].
func (m *Mesh) AddFloor(x0, z0, x1, z1, y float64) {
	m.AddQuad(
		mgl64.Vec3{x0, y, z0},
		mgl64.Vec3{x0, y, z1},
		mgl64.Vec3{x1, y, z1},
		mgl64.Vec3{x1, y, z0},
	)
}

// AddWallX appends a vertical rectangle in the plane x = const, spanning
// [z0,z1] horizontally and [y0,y1] vertically.
func (m *Mesh) AddWallX(x, z0, z1, y0, y1 float64) {
	m.AddQuad(
		mgl64.Vec3{x, y0, z0},
		mgl64.Vec3{x, y1, z0},
		mgl64.Vec3{x, y1, z1},
		mgl64.Vec3{x, y0, z1},
	)
}

// AddWallZ appends a vertical rectangle in the plane z = const, spanning
// [x0,x1] horizontally and [y0,y1] vertically.
func (m *Mesh) AddWallZ(z, x0, x1, y0, y1 float64) {
	m.AddQuad(
		mgl64.Vec3{x0, y0, z},
		mgl64.Vec3{x0, y1, z},
		mgl64.Vec3{x1, y1, z},
		mgl64.Vec3{x1, y0, z},
	)
}

package navmesh

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/mesh"
)

// NavMesh is the result of Build. All three grids are indexed [x][z] and
// share the same dimensions; z runs top-down (z=0 is the mesh's max Z).
type NavMesh struct {
	Walkable  [][]bool    `msgpack:"walkable"`
	Steepness [][]float64 `msgpack:"steepness"`
	Height    [][]float64 `msgpack:"height"`

	Bounds      mesh.Bounds `msgpack:"bounds"`
	Resolution  float64     `msgpack:"resolution"`
	FloorOffset float64     `msgpack:"floorOffset"`
}

// Dims returns the grid size as (xLength, zLength).
func (nm *NavMesh) Dims() (int, int) {
	if len(nm.Walkable) == 0 {
		return 0, 0
	}
	return len(nm.Walkable), len(nm.Walkable[0])
}

// CellSize is the edge length of one cell in meters.
func (nm *NavMesh) CellSize() float64 {
	return 1 / nm.Resolution
}

// CellAt maps a mesh-space position to its grid cell. Points on the max
// edge of the bounds belong to the last cell. ok is false outside the grid.
func (nm *NavMesh) CellAt(x, z float64) (i, j int, ok bool) {
	xl, zl := nm.Dims()
	fi := (x - nm.Bounds.Min.X()) * nm.Resolution
	fj := (nm.Bounds.Max.Z() - z) * nm.Resolution
	// range-check in float space: huge values would wrap on conversion
	if !(fi >= 0 && fj >= 0 && fi <= float64(xl) && fj <= float64(zl)) {
		return 0, 0, false
	}
	i, j = int(math.Floor(fi)), int(math.Floor(fj))
	if i == xl && x <= nm.Bounds.Max.X() {
		i--
	}
	if j == zl && z >= nm.Bounds.Min.Z() {
		j--
	}
	if i >= xl || j >= zl {
		return 0, 0, false
	}
	return i, j, true
}

// CellCenter returns the mesh-space center of cell (i,j) at its sampled floor height.
func (nm *NavMesh) CellCenter(i, j int) mgl64.Vec3 {
	cs := nm.CellSize()
	return mgl64.Vec3{
		nm.Bounds.Min.X() + (float64(i)+0.5)*cs,
		nm.Height[i][j],
		nm.Bounds.Max.Z() - (float64(j)+0.5)*cs,
	}
}

// WalkableCount returns how many cells are walkable.
func (nm *NavMesh) WalkableCount() int {
	n := 0
	for _, col := range nm.Walkable {
		for _, w := range col {
			if w {
				n++
			}
		}
	}
	return n
}

// String renders the walkability grid top-down, one row per z:
// '.' walkable, '#' blocked.
func (nm *NavMesh) String() string {
	xl, zl := nm.Dims()
	var sb strings.Builder
	sb.Grow((xl + 1) * zl)
	for j := 0; j < zl; j++ {
		for i := 0; i < xl; i++ {
			if nm.Walkable[i][j] {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Export is the wire form handed to consumers.
type Export struct {
	Grid        [][]int `json:"grid"`
	MinX        float64 `json:"minX"`
	MaxX        float64 `json:"maxX"`
	MinY        float64 `json:"minY"`
	MaxY        float64 `json:"maxY"`
	MinZ        float64 `json:"minZ"`
	MaxZ        float64 `json:"maxZ"`
	FloorOffset float64 `json:"floorOffset"`
}

// Export converts the navmesh to its wire form (walkability as 0/1).
func (nm *NavMesh) Export() Export {
	grid := make([][]int, len(nm.Walkable))
	for i, col := range nm.Walkable {
		grid[i] = make([]int, len(col))
		for j, w := range col {
			if w {
				grid[i][j] = 1
			}
		}
	}
	b := nm.Bounds
	return Export{
		Grid: grid,
		MinX: b.Min.X(), MaxX: b.Max.X(),
		MinY: b.Min.Y(), MaxY: b.Max.Y(),
		MinZ: b.Min.Z(), MaxZ: b.Max.Z(),
		FloorOffset: nm.FloorOffset,
	}
}

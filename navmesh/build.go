package navmesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/gridgraph"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/mesh"
)

// noSampleSlope is the steepness of cells no face ever touched.
const noSampleSlope = 90.0

// Build rasterizes m into a NavMesh, applying any number of functional Options.
//
// Returns ErrOptionViolation for invalid options and ErrEmptyMesh (wrapping
// the mesh package's reason) for degenerate input. On error no grid is
// returned.
func Build(m *mesh.Mesh, opts ...Option) (*NavMesh, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		if errors.Is(err, mesh.ErrEmptyMesh) || errors.Is(err, mesh.ErrNonFiniteVertex) {
			return nil, fmt.Errorf("%w: %w", ErrEmptyMesh, err)
		}
		return nil, fmt.Errorf("navmesh: invalid mesh: %w", err)
	}
	if err := checkGridSize(m.Bounds(), o); err != nil {
		return nil, err
	}

	b := newBuilder(m, o)
	b.accumulate()
	classified := b.collapse()
	if err := b.fillHoles(classified); err != nil {
		return nil, err
	}
	walkable, err := b.expandWalls(classified)
	if err != nil {
		return nil, err
	}
	walkable, err = largestRegion(walkable)
	if err != nil {
		return nil, err
	}

	return &NavMesh{
		Walkable:    walkable,
		Steepness:   b.slope,
		Height:      b.height,
		Bounds:      b.bounds,
		Resolution:  o.Resolution,
		FloorOffset: b.floorOffset(),
	}, nil
}

// builder holds the per-pass grids of a single Build call.
type builder struct {
	mesh   *mesh.Mesh
	opts   Options
	bounds mesh.Bounds
	xLen   int
	zLen   int

	weight   [][]float64 // summed obstacle weight of contributing faces
	count    [][]int     // number of contributing faces
	occupied [][]bool    // any face, ignorable or not, covered the cell

	// floor sample: lowest face centroid seen per cell
	height  [][]float64
	slope   [][]float64
	sampled [][]bool

	steepest [][]float64 // steepest contributing face, valid where count > 0
}

// checkGridSize rejects resolutions whose grid would exceed MaxCells.
// Dimensions are compared as floats so huge values cannot overflow int.
func checkGridSize(bounds mesh.Bounds, o Options) error {
	size := bounds.Size()
	xl := math.Ceil(size.X() * o.Resolution)
	zl := math.Ceil(size.Z() * o.Resolution)
	if xl*zl > float64(o.MaxCells) {
		return fmt.Errorf("%w: %.0f×%.0f cells at resolution %g exceeds the %d cell limit",
			ErrOptionViolation, xl, zl, o.Resolution, o.MaxCells)
	}
	return nil
}

func newBuilder(m *mesh.Mesh, o Options) *builder {
	bounds := m.Bounds()
	size := bounds.Size()
	b := &builder{
		mesh:   m,
		opts:   o,
		bounds: bounds,
		xLen:   int(math.Ceil(size.X() * o.Resolution)),
		zLen:   int(math.Ceil(size.Z() * o.Resolution)),
	}
	b.weight = newGrid[float64](b.xLen, b.zLen)
	b.count = newGrid[int](b.xLen, b.zLen)
	b.occupied = newGrid[bool](b.xLen, b.zLen)
	b.height = newGrid[float64](b.xLen, b.zLen)
	b.slope = newGrid[float64](b.xLen, b.zLen)
	b.sampled = newGrid[bool](b.xLen, b.zLen)
	b.steepest = newGrid[float64](b.xLen, b.zLen)
	return b
}

func newGrid[T any](xLen, zLen int) [][]T {
	g := make([][]T, xLen)
	for x := range g {
		g[x] = make([]T, zLen)
	}
	return g
}

// ignorable reports whether tri lies entirely below knee height or entirely
// above door height, relative to the mesh floor.
func (b *builder) ignorable(tri mesh.Triangle) bool {
	floor := b.bounds.Min.Y()
	allLow, allHigh := true, true
	for _, v := range tri {
		h := v.Y() - floor
		allLow = allLow && h < b.opts.LowIgnoreHeight
		allHigh = allHigh && h > b.opts.HighIgnoreHeight
	}
	return allLow || allHigh
}

// accumulate rasterizes every face into the accumulator grids.
func (b *builder) accumulate() {
	for t := 0; t < b.mesh.TriangleCount(); t++ {
		tri := b.mesh.Triangle(t)
		ignorable := b.ignorable(tri)
		weight := 1 - math.Abs(tri.Normal().Y())
		slope := tri.SlopeDegrees()
		centroidY := tri.Centroid().Y()

		proj := [3]gridPoint{b.project(tri[0]), b.project(tri[1]), b.project(tri[2])}
		if ignorable {
			b.rasterize(proj, func(x, z int) {
				b.occupied[x][z] = true
				b.sample(x, z, centroidY, slope)
			})
			continue
		}
		b.rasterize(proj, func(x, z int) {
			b.weight[x][z] += weight
			b.count[x][z]++
			b.occupied[x][z] = true
			b.sample(x, z, centroidY, slope)
			b.steepest[x][z] = math.Max(b.steepest[x][z], slope)
		})
	}
	for x := 0; x < b.xLen; x++ {
		for z := 0; z < b.zLen; z++ {
			switch {
			case !b.sampled[x][z]:
				// untouched: floor level, unpathable slope
				b.height[x][z] = b.bounds.Min.Y()
				b.slope[x][z] = noSampleSlope
			case b.count[x][z] > 0:
				// faces in the blocking band outrank the floor under them
				b.slope[x][z] = b.steepest[x][z]
			}
		}
	}
}

func (b *builder) sample(x, z int, y, slope float64) {
	if b.sampled[x][z] && b.height[x][z] <= y {
		return
	}
	b.height[x][z] = y
	b.slope[x][z] = slope
	b.sampled[x][z] = true
}

// collapse turns the accumulators into a classification grid.
func (b *builder) collapse() [][]int {
	classified := newGrid[int](b.xLen, b.zLen)
	for x := 0; x < b.xLen; x++ {
		for z := 0; z < b.zLen; z++ {
			var avg float64
			if b.count[x][z] > 0 {
				avg = b.weight[x][z] / float64(b.count[x][z])
			}
			switch {
			case avg >= b.opts.NormalCutoff && b.count[x][z] > 0:
				classified[x][z] = int(classObstacle)
			case b.occupied[x][z]:
				classified[x][z] = int(classWalkable)
			default:
				classified[x][z] = int(classHole)
			}
		}
	}
	return classified
}

// fillHoles flood-fills holes from the border: reached holes are outside
// the structure, the rest are enclosed gaps and become walkable.
func (b *builder) fillHoles(classified [][]int) error {
	gg, err := gridgraph.From2D(classified, gridgraph.Conn4)
	if err != nil {
		return fmt.Errorf("navmesh: hole fill: %w", err)
	}
	outer := gg.FloodFromBorder(func(v int) bool { return cellClass(v) == classHole })
	for x, col := range classified {
		for z, v := range col {
			if cellClass(v) != classHole {
				continue
			}
			if outer[x][z] {
				col[z] = int(classOuterHole)
			} else {
				col[z] = int(classWalkable)
			}
		}
	}
	return nil
}

// expandWalls drops every walkable cell with an obstacle or outer hole
// among its 8 neighbours. Neighbours are read from classified, so the
// margin is exactly one cell wide.
func (b *builder) expandWalls(classified [][]int) ([][]bool, error) {
	gg, err := gridgraph.From2D(classified, gridgraph.Conn8)
	if err != nil {
		return nil, fmt.Errorf("navmesh: wall expansion: %w", err)
	}
	walkable := newGrid[bool](b.xLen, b.zLen)
	for x, col := range classified {
		for z, v := range col {
			walkable[x][z] = cellClass(v) == classWalkable && !gg.TouchesAny(x, z, isBlocked)
		}
	}
	return walkable, nil
}

// largestRegion keeps only the largest 4-connected walkable region.
func largestRegion(walkable [][]bool) ([][]bool, error) {
	gg, err := gridgraph.FromMask(walkable, gridgraph.Conn4)
	if err != nil {
		return nil, fmt.Errorf("navmesh: region isolation: %w", err)
	}
	return gg.Mask(gg.LargestComponent()), nil
}

// floorOffset casts vertical rays from the origin. The closest face below
// wins, then the closest above, then the mesh floor.
func (b *builder) floorOffset() float64 {
	p := b.mesh.ProbeVertical(mgl64.Vec3{})
	switch {
	case p.HasBelow:
		return p.Below
	case p.HasAbove:
		return p.Above
	default:
		return b.bounds.Min.Y()
	}
}

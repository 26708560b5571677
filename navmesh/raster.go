package navmesh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// gridPoint is a projected vertex in grid space. Coordinates are whole
// cells but kept as floats for the slope arithmetic.
type gridPoint struct {
	x, z float64
}

// project floor-divides a mesh position into grid space, flipping Z so the
// grid reads top-down, and clamps onto the grid.
func (b *builder) project(v mgl64.Vec3) gridPoint {
	gx := math.Floor((v.X() - b.bounds.Min.X()) * b.opts.Resolution)
	gz := math.Floor((b.bounds.Max.Z() - v.Z()) * b.opts.Resolution)
	return gridPoint{
		x: mgl64.Clamp(gx, 0, float64(b.xLen-1)),
		z: mgl64.Clamp(gz, 0, float64(b.zLen-1)),
	}
}

// rasterize calls visit once for every cell covered by the projected
// triangle. The triangle is split at its middle vertex (by z) into a
// flat-bottom upper half and a flat-top lower half; the split row belongs
// to the upper half only.
func (b *builder) rasterize(tri [3]gridPoint, visit func(x, z int)) {
	v := tri[:]
	sort.Slice(v, func(i, j int) bool { return v[i].z < v[j].z })
	v0, v1, v2 := v[0], v[1], v[2]

	switch {
	case v0.z == v2.z:
		lo := math.Min(v0.x, math.Min(v1.x, v2.x))
		hi := math.Max(v0.x, math.Max(v1.x, v2.x))
		b.span(int(v0.z), lo, hi, visit)
	case v1.z == v2.z:
		b.fillFlatBottom(v0, v1, v2, int(v0.z), int(v2.z), visit)
	case v0.z == v1.z:
		b.fillFlatTop(v0, v1, v2, int(v0.z), int(v2.z), visit)
	default:
		split := gridPoint{
			x: v0.x + (v1.z-v0.z)/(v2.z-v0.z)*(v2.x-v0.x),
			z: v1.z,
		}
		b.fillFlatBottom(v0, v1, split, int(v0.z), int(v1.z), visit)
		b.fillFlatTop(v1, split, v2, int(v1.z)+1, int(v2.z), visit)
	}
}

// fillFlatBottom covers rows [from,to] of a triangle whose apex is top and
// whose base l-r lies on one row below it.
func (b *builder) fillFlatBottom(top, l, r gridPoint, from, to int, visit func(x, z int)) {
	invSlope1 := (l.x - top.x) / (l.z - top.z)
	invSlope2 := (r.x - top.x) / (r.z - top.z)
	for z := from; z <= to; z++ {
		dz := float64(z) - top.z
		b.span(z, top.x+invSlope1*dz, top.x+invSlope2*dz, visit)
	}
}

// fillFlatTop covers rows [from,to] of a triangle whose edge l-r lies on one
// row above its apex bottom.
func (b *builder) fillFlatTop(l, r, bottom gridPoint, from, to int, visit func(x, z int)) {
	invSlope1 := (bottom.x - l.x) / (bottom.z - l.z)
	invSlope2 := (bottom.x - r.x) / (bottom.z - r.z)
	for z := from; z <= to; z++ {
		b.span(z, l.x+invSlope1*(float64(z)-l.z), r.x+invSlope2*(float64(z)-r.z), visit)
	}
}

// span visits the cells of row z between x1 and x2 (either order), rounded
// to whole cells and clamped to the grid.
func (b *builder) span(z int, x1, x2 float64, visit func(x, z int)) {
	if z < 0 || z >= b.zLen {
		return
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	lo := max(int(math.Round(x1)), 0)
	hi := min(int(math.Round(x2)), b.xLen-1)
	for x := lo; x <= hi; x++ {
		visit(x, z)
	}
}

package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is a single face given by its three corner positions.
type Triangle [3]mgl64.Vec3

// Normal returns the unit face normal (right-hand winding), or the zero
// vector for a degenerate face.
func (t Triangle) Normal() mgl64.Vec3 {
	n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// Centroid returns the average of the three corners.
func (t Triangle) Centroid() mgl64.Vec3 {
	return t[0].Add(t[1]).Add(t[2]).Mul(1.0 / 3.0)
}

// SlopeDegrees is the angle between the face and the horizontal plane,
// 0 for floors and 90 for walls. Degenerate faces report 90.
func (t Triangle) SlopeDegrees() float64 {
	n := t.Normal()
	if n.Len() == 0 {
		return 90
	}
	return mgl64.RadToDeg(math.Acos(mgl64.Clamp(math.Abs(n.Y()), 0, 1)))
}

// MinY and MaxY return the lowest and highest corner heights.
func (t Triangle) MinY() float64 {
	return math.Min(t[0].Y(), math.Min(t[1].Y(), t[2].Y()))
}

func (t Triangle) MaxY() float64 {
	return math.Max(t[0].Y(), math.Max(t[1].Y(), t[2].Y()))
}

// HeightAt intersects the vertical line through (x, z) with the face plane.
// ok is false when (x, z) falls outside the face's XZ projection or the face
// is vertical (zero projected area).
func (t Triangle) HeightAt(x, z float64) (y float64, ok bool) {
	ax, az := t[0].X(), t[0].Z()
	bx, bz := t[1].X(), t[1].Z()
	cx, cz := t[2].X(), t[2].Z()
	den := (bz-cz)*(ax-cx) + (cx-bx)*(az-cz)
	if den == 0 {
		return 0, false
	}
	w0 := ((bz-cz)*(x-cx) + (cx-bx)*(z-cz)) / den
	w1 := ((cz-az)*(x-cx) + (ax-cx)*(z-cz)) / den
	w2 := 1 - w0 - w1
	const eps = 1e-9
	if w0 < -eps || w1 < -eps || w2 < -eps {
		return 0, false
	}
	return w0*t[0].Y() + w1*t[1].Y() + w2*t[2].Y(), true
}

// Probe is the result of casting a vertical ray both ways from a point.
type Probe struct {
	Below, Above       float64
	HasBelow, HasAbove bool
}

// ProbeVertical casts a ray straight down and straight up from origin against
// every face and records the closest hit in each direction. Hits exactly at
// origin height count as below.
func (m *Mesh) ProbeVertical(origin mgl64.Vec3) Probe {
	var p Probe
	for t := 0; t < m.TriangleCount(); t++ {
		y, ok := m.Triangle(t).HeightAt(origin.X(), origin.Z())
		if !ok {
			continue
		}
		if y <= origin.Y() {
			if !p.HasBelow || y > p.Below {
				p.Below, p.HasBelow = y, true
			}
		} else if !p.HasAbove || y < p.Above {
			p.Above, p.HasAbove = y, true
		}
	}
	return p
}

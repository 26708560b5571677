package gridgraph

// ConnectedComponents finds all contiguous regions (“islands”) of land cells
// (CellValues[x][y] ≥ LandThreshold), according to gg.Conn connectivity.
// Returns a slice of components in scan order (x-major); each component is a
// slice of cell-indices in BFS order.
//
// To convert an index back to (x,y), use Coordinate(idx).
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (gg *GridGraph) ConnectedComponents() [][]int {
	seen := make([]bool, gg.Width*gg.Height)
	var comps [][]int

	for x := 0; x < gg.Width; x++ {
		for y := 0; y < gg.Height; y++ {
			if !gg.IsLand(x, y) {
				continue // water
			}
			i0 := gg.index(x, y)
			if seen[i0] {
				continue
			}
			// BFS to collect component
			queue := []int{i0}
			seen[i0] = true

			for qi := 0; qi < len(queue); qi++ {
				ux, uy := gg.Coordinate(queue[qi])
				for _, d := range gg.offsets {
					vx, vy := ux+d[0], uy+d[1]
					if !gg.IsLand(vx, vy) {
						continue
					}
					vi := gg.index(vx, vy)
					if !seen[vi] {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			comps = append(comps, queue)
		}
	}
	return comps
}

// LargestComponent returns the biggest island found by ConnectedComponents.
// Ties go to the island discovered first in scan order. Returns nil when
// the grid holds no land at all.
func (gg *GridGraph) LargestComponent() []int {
	var best []int
	for _, comp := range gg.ConnectedComponents() {
		if len(comp) > len(best) {
			best = comp
		}
	}
	return best
}

// Mask expands a list of cell indices into a [x][y] boolean mask of the grid's size.
func (gg *GridGraph) Mask(cells []int) [][]bool {
	mask := make([][]bool, gg.Width)
	for x := range mask {
		mask[x] = make([]bool, gg.Height)
	}
	for _, idx := range cells {
		x, y := gg.Coordinate(idx)
		mask[x][y] = true
	}
	return mask
}

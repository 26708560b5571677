package gridgraph

// NewGridGraph constructs a GridGraph from a non-empty, rectangular 2D slice
// indexed values[x][y]. It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if grid has no columns or no rows,
// ErrNonRectangular if any column length differs.
// Algorithmic complexity: O(W×H) time and memory.
func NewGridGraph(values [][]int, opts GridOptions) (*GridGraph, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w, h := len(values), len(values[0])
	for _, col := range values {
		if len(col) != h {
			return nil, ErrNonRectangular
		}
	}
	// Deep copy to prevent external mutation
	cells := make([][]int, w)
	for x := 0; x < w; x++ {
		cells[x] = make([]int, h)
		copy(cells[x], values[x])
	}

	return &GridGraph{
		Width:         w,
		Height:        h,
		CellValues:    cells,
		Conn:          opts.Conn,
		LandThreshold: opts.LandThreshold,
		offsets:       Offsets(opts.Conn),
	}, nil
}

// From2D is shorthand for NewGridGraph with the default LandThreshold and the given connectivity.
func From2D(values [][]int, conn Connectivity) (*GridGraph, error) {
	opts := DefaultGridOptions()
	opts.Conn = conn
	return NewGridGraph(values, opts)
}

// FromMask builds a GridGraph where true cells have value 1 and false cells 0.
func FromMask(mask [][]bool, conn Connectivity) (*GridGraph, error) {
	values := make([][]int, len(mask))
	for x, col := range mask {
		values[x] = make([]int, len(col))
		for y, v := range col {
			if v {
				values[x][y] = 1
			}
		}
	}
	return From2D(values, conn)
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

// IsLand reports whether the cell at (x,y) is in bounds and at least LandThreshold.
func (gg *GridGraph) IsLand(x, y int) bool {
	return gg.InBounds(x, y) && gg.CellValues[x][y] >= gg.LandThreshold
}

// index maps (x,y) to a column-major index: x*Height + y.
// Complexity: O(1).
func (gg *GridGraph) index(x, y int) int {
	return x*gg.Height + y
}

// Coordinate converts a column-major index back to (x,y).
// Complexity: O(1).
func (gg *GridGraph) Coordinate(idx int) (x, y int) {
	return idx / gg.Height, idx % gg.Height
}

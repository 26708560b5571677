package gridgraph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/gridgraph"
)

//----------------------------------------------------------------------------//
// NewGridGraph and InBounds Tests
//----------------------------------------------------------------------------//

// TestNewGridGraph_Errors verifies that NewGridGraph rejects empty or ragged inputs.
func TestNewGridGraph_Errors(t *testing.T) {
	cases := []struct {
		name string
		grid [][]int
		opts gridgraph.GridOptions
		err  error
	}{
		{"EmptyColumns", [][]int{}, gridgraph.DefaultGridOptions(), gridgraph.ErrEmptyGrid},
		{"EmptyRows", [][]int{{}}, gridgraph.DefaultGridOptions(), gridgraph.ErrEmptyGrid},
		{"NonRectangular", [][]int{{1, 2}, {3}}, gridgraph.DefaultGridOptions(), gridgraph.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gridgraph.NewGridGraph(tc.grid, tc.opts)
			if !errors.Is(err, tc.err) {
				t.Errorf("NewGridGraph(%v) error = %v; want %v", tc.grid, err, tc.err)
			}
		})
	}
}

// TestNewGridGraph_DeepCopy ensures later edits to the input do not leak in.
func TestNewGridGraph_DeepCopy(t *testing.T) {
	grid := [][]int{{1, 0}, {0, 1}}
	gg, err := gridgraph.From2D(grid, gridgraph.Conn4)
	assert.NoError(t, err)
	grid[0][0] = 0
	assert.Equal(t, 1, gg.CellValues[0][0])
}

// TestInBounds checks InBounds on a 3×2 grid (3 columns, 2 rows) under Conn4.
func TestInBounds(t *testing.T) {
	grid := [][]int{
		{0, 1},
		{1, 0},
		{0, 1},
	}
	gg, err := gridgraph.From2D(grid, gridgraph.Conn4)
	if err != nil {
		t.Fatalf("From2D error: %v", err)
	}
	assert.Equal(t, 3, gg.Width)
	assert.Equal(t, 2, gg.Height)

	valid := [][2]int{{0, 0}, {2, 1}, {1, 1}}
	for _, xy := range valid {
		if !gg.InBounds(xy[0], xy[1]) {
			t.Errorf("InBounds(%d,%d)=false; want true", xy[0], xy[1])
		}
	}
	invalid := [][2]int{{-1, 0}, {3, 0}, {1, 2}, {2, -1}}
	for _, xy := range invalid {
		if gg.InBounds(xy[0], xy[1]) {
			t.Errorf("InBounds(%d,%d)=true; want false", xy[0], xy[1])
		}
	}
}

// TestCoordinateRoundTrip checks that component indices decode to land cells.
func TestCoordinateRoundTrip(t *testing.T) {
	gg, _ := gridgraph.From2D([][]int{{0, 0, 1}, {0, 0, 0}}, gridgraph.Conn4)
	comps := gg.ConnectedComponents()
	if assert.Len(t, comps, 1) {
		x, y := gg.Coordinate(comps[0][0])
		assert.Equal(t, [2]int{0, 2}, [2]int{x, y})
	}
}

// TestFromMask converts booleans to 0/1 cells.
func TestFromMask(t *testing.T) {
	gg, err := gridgraph.FromMask([][]bool{{true, false}, {false, true}}, gridgraph.Conn8)
	assert.NoError(t, err)
	assert.Equal(t, [][]int{{1, 0}, {0, 1}}, gg.CellValues)
	assert.Len(t, gg.ConnectedComponents(), 1, "diagonal cells join under Conn8")
	assert.True(t, gg.IsLand(1, 1))
	assert.False(t, gg.IsLand(2, 2))
}

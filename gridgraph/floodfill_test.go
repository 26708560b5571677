package gridgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ring is a 5×5 grid: a closed wall of land around a single enclosed water cell.
var ring = [][]int{
	{0, 0, 0, 0, 0},
	{0, 1, 1, 1, 0},
	{0, 1, 0, 1, 0},
	{0, 1, 1, 1, 0},
	{0, 0, 0, 0, 0},
}

func countTrue(mask [][]bool) int {
	n := 0
	for _, col := range mask {
		for _, v := range col {
			if v {
				n++
			}
		}
	}
	return n
}

func TestFloodFromBorder_EnclosedCellUnreached(t *testing.T) {
	gg, err := From2D(ring, Conn4)
	require.NoError(t, err)

	reached := gg.FloodFromBorder(func(v int) bool { return v == 0 })
	assert.Equal(t, 16, countTrue(reached), "all border water cells")
	assert.False(t, reached[2][2], "enclosed cell must not be reached")
	assert.False(t, reached[1][1], "land is never reached")
	assert.True(t, reached[0][0])
}

func TestFloodFromBorder_Conn8LeaksThroughCorners(t *testing.T) {
	grid := [][]int{
		{1, 0, 1},
		{0, 1, 0},
		{1, 0, 1},
	}
	water := func(v int) bool { return v == 1 }

	gg4, _ := From2D(grid, Conn4)
	gg8, _ := From2D(grid, Conn8)
	// every "1" sits on the border except the centre
	assert.False(t, gg4.FloodFromBorder(water)[1][1])
	assert.True(t, gg8.FloodFromBorder(water)[1][1])
}

func TestFloodFromBorder_NoMatch(t *testing.T) {
	gg, _ := From2D(ring, Conn4)
	reached := gg.FloodFromBorder(func(v int) bool { return v == 7 })
	assert.Zero(t, countTrue(reached))
	assert.Len(t, reached, 5)
}

func TestTouchesAny(t *testing.T) {
	gg, _ := From2D(ring, Conn8)
	isWater := func(v int) bool { return v == 0 }
	assert.True(t, gg.TouchesAny(1, 1, isWater))
	assert.True(t, gg.TouchesAny(2, 1, isWater), "diagonal/orthogonal water around ring cell")

	gg4, _ := From2D(ring, Conn4)
	isLand := func(v int) bool { return v == 1 }
	assert.True(t, gg4.TouchesAny(2, 2, isLand))
	assert.False(t, gg4.TouchesAny(0, 0, isLand), "corner has only water orthogonal neighbours")
}

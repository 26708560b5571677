package gridgraph

// FloodFromBorder marks every cell reachable from the grid border through
// cells accepted by match, using gg.Conn connectivity. Seeds are all border
// cells accepted by match. The returned mask is indexed [x][y].
//
// The fill uses an explicit stack, so very large open regions cannot
// exhaust the goroutine stack.
//
// Time:   O(W·H·d).
// Memory: O(W·H).
func (gg *GridGraph) FloodFromBorder(match func(v int) bool) [][]bool {
	reached := make([][]bool, gg.Width)
	for x := range reached {
		reached[x] = make([]bool, gg.Height)
	}

	var stack [][2]int
	push := func(x, y int) {
		if !gg.InBounds(x, y) || reached[x][y] || !match(gg.CellValues[x][y]) {
			return
		}
		reached[x][y] = true
		stack = append(stack, [2]int{x, y})
	}

	for x := 0; x < gg.Width; x++ {
		push(x, 0)
		push(x, gg.Height-1)
	}
	for y := 0; y < gg.Height; y++ {
		push(0, y)
		push(gg.Width-1, y)
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range gg.offsets {
			push(top[0]+d[0], top[1]+d[1])
		}
	}
	return reached
}

// TouchesAny reports whether any Conn neighbor of (x,y) satisfies pred.
// Out-of-bounds neighbors are ignored.
func (gg *GridGraph) TouchesAny(x, y int, pred func(v int) bool) bool {
	for _, d := range gg.offsets {
		nx, ny := x+d[0], y+d[1]
		if gg.InBounds(nx, ny) && pred(gg.CellValues[nx][ny]) {
			return true
		}
	}
	return false
}

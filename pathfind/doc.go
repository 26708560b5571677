// Package pathfind runs a weighted A* search over a steepness grid.
//
// What:
//
//	FindPath searches an [i][j] grid of slope angles (degrees) for a route
//	between two cells. A cell is passable when its steepness lies inside the
//	configured SteepnessRange; walkability is not consulted.
//
// Cost model:
//
//   - step cost (g): +10 orthogonal, +14 diagonal (integer octile weights).
//   - estimate (h):  14·min(di,dj) + 10·|di−dj| to the goal.
//   - priority (f):  0.6·g + 0.4·h.
//
//	The blend weights g above h, so the search behaves like A* with a
//	heuristic scaled by 2/3: paths are shortest in octile cost while fewer
//	cells are expanded than with plain Dijkstra. When a cheaper route to an
//	open cell is found its priority is lowered in place; the open set is a
//	binary heap ordered by f, ties broken by h.
//
//	Result.Length reuses the cost units: goal.FCost / 10 · cellSize.
//
// Complexity:
//
//   - Time:   O(N log N), N = cells with steepness in range.
//   - Memory: O(N).
//
// Errors:
//
//   - ErrEmptyGrid, ErrNonRectangular: malformed steepness grid.
//   - ErrOutOfBounds: start or end outside the grid.
//   - ErrBadSteepnessRange: Min > Max or NaN bounds.
//   - ErrOptionViolation: non-positive cell size.
//   - ErrNoPath: the open set was exhausted; a normal negative result.
package pathfind

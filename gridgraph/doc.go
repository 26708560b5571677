// Package gridgraph treats a 2D grid of cells as a graph, enabling
// flood fills and connected-component analysis over rasterized maps.
//
// What:
//
//   - GridGraph wraps a rectangular [][]int grid (indexed [x][y]) with a tunable LandThreshold.
//   - Identifies connected components (“islands”) of cells with value ≥ LandThreshold.
//   - Picks the largest island, e.g. to drop disconnected false-positive floor.
//   - Flood-fills from the grid border to separate outer regions from enclosed ones.
//
// Complexity:
//
//   - ConnectedComponents: O(W×H×d), Memory: O(W×H)    (d = number of neighbors, 4 or 8).
//   - LargestComponent:    O(W×H×d), Memory: O(W×H).
//   - FloodFromBorder:     O(W×H×d), Memory: O(W×H) explicit stack, no recursion.
//
// Options:
//
//   - GridOptions.LandThreshold: minimum value considered "land".
//   - GridOptions.Conn: Conn4 (4-neighbors) or Conn8 (8-neighbors).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no columns or no rows.
//   - ErrNonRectangular: columns have differing lengths.
package gridgraph

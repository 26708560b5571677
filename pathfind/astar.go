package pathfind

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/gridgraph"
)

// FindPath searches steep for a route from start to end.
//
// Cells whose steepness lies outside the configured range are never entered;
// start itself is not checked. A start equal to end yields a one-node path of
// length 0.
//
// Validation order: options, grid shape, start bounds, end bounds.
// ErrNoPath is wrapped with both endpoints.
func FindPath(steep [][]float64, start, end Cell, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := o.Steepness.Validate(); err != nil {
		return nil, err
	}
	if err := validateGrid(steep); err != nil {
		return nil, err
	}
	if !inBounds(steep, start) {
		return nil, fmt.Errorf("%w: start %v", ErrOutOfBounds, start)
	}
	if !inBounds(steep, end) {
		return nil, fmt.Errorf("%w: end %v", ErrOutOfBounds, end)
	}

	s := newSearch(steep, end, o)
	goal := s.run(start)
	if goal == nil {
		return nil, fmt.Errorf("%w: %v → %v", ErrNoPath, start, end)
	}

	return &Result{
		Path:   reconstruct(goal),
		Length: goal.f / 10 * o.CellSize,
	}, nil
}

func validateGrid(steep [][]float64) error {
	if len(steep) == 0 || len(steep[0]) == 0 {
		return ErrEmptyGrid
	}
	h := len(steep[0])
	for i, col := range steep {
		if len(col) != h {
			return fmt.Errorf("%w: column %d has %d rows, want %d", ErrNonRectangular, i, len(col), h)
		}
	}
	return nil
}

func inBounds(steep [][]float64, c Cell) bool {
	return c.I >= 0 && c.I < len(steep) && c.J >= 0 && c.J < len(steep[0])
}

// heuristic is the octile estimate from c to goal.
func heuristic(c, goal Cell) int {
	di, dj := abs(c.I-goal.I), abs(c.J-goal.J)
	return DiagonalCost*min(di, dj) + OrthogonalCost*abs(di-dj)
}

// fCost blends g and h. Working in integer tenths keeps equal blends
// bit-identical, so heap ties are exact.
func fCost(g, h int) float64 {
	return float64(gWeight*g+hWeight*h) / weightScale
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// search holds the mutable state of a single FindPath call.
type search struct {
	steep  [][]float64
	goal   Cell
	opts   Options
	nodes  [][]*node // discovered nodes; nil until first reached
	closed [][]bool
	open   nodePQ
}

func newSearch(steep [][]float64, goal Cell, o Options) *search {
	s := &search{
		steep:  steep,
		goal:   goal,
		opts:   o,
		nodes:  make([][]*node, len(steep)),
		closed: make([][]bool, len(steep)),
	}
	for i := range steep {
		s.nodes[i] = make([]*node, len(steep[i]))
		s.closed[i] = make([]bool, len(steep[i]))
	}
	return s
}

// run pops nodes until the goal comes off the open set. Returns nil when the
// open set runs dry.
func (s *search) run(start Cell) *node {
	h := heuristic(start, s.goal)
	first := &node{Cell: start, h: h, f: fCost(0, h)}
	s.nodes[start.I][start.J] = first
	heap.Push(&s.open, first)

	for s.open.Len() > 0 {
		cur := heap.Pop(&s.open).(*node)
		s.closed[cur.I][cur.J] = true
		if s.opts.OnPop != nil {
			s.opts.OnPop(cur.export())
		}
		if cur.Cell == s.goal {
			return cur
		}
		s.expand(cur)
	}
	return nil
}

// expand discovers or relaxes the 8 neighbours of cur.
func (s *search) expand(cur *node) {
	for _, d := range gridgraph.Offsets(gridgraph.Conn8) {
		c := Cell{I: cur.I + d[0], J: cur.J + d[1]}
		if !inBounds(s.steep, c) || s.closed[c.I][c.J] || !s.opts.Steepness.Contains(s.steep[c.I][c.J]) {
			continue
		}

		step := OrthogonalCost
		if d[0] != 0 && d[1] != 0 {
			step = DiagonalCost
		}
		g := cur.g + step
		h := heuristic(c, s.goal)
		f := fCost(g, h)

		if n := s.nodes[c.I][c.J]; n != nil {
			// still open: every discovered, unclosed node is in the heap
			if f < n.f {
				n.g, n.h, n.f, n.parent = g, h, f, cur
				heap.Fix(&s.open, n.index)
			}
			continue
		}
		n := &node{Cell: c, g: g, h: h, f: f, parent: cur}
		s.nodes[c.I][c.J] = n
		heap.Push(&s.open, n)
	}
}

// reconstruct walks parent links from goal back to the start.
func reconstruct(goal *node) []Node {
	var path []Node
	for n := goal; n != nil; n = n.parent {
		path = append(path, n.export())
	}
	slices.Reverse(path)
	return path
}

// node is a discovered cell with the best costs found so far.
type node struct {
	Cell
	g, h   int
	f      float64
	parent *node
	index  int // position in nodePQ, maintained by Swap/Push
}

func (n *node) export() Node {
	return Node{I: n.I, J: n.J, GCost: n.g, HCost: n.h, FCost: n.f}
}

// nodePQ is a min-heap of *node ordered by f, then h. Unlike a lazy
// queue it tracks each node's index so priorities can be lowered in place
// with heap.Fix.
type nodePQ []*node

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].h < pq[j].h
}

func (pq nodePQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *nodePQ) Push(x interface{}) {
	n := x.(*node)
	n.index = len(*pq)
	*pq = append(*pq, n)
}

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*pq = old[:last]
	return n
}

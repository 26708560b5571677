package pathfind

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by FindPath.
var (
	// ErrEmptyGrid indicates a steepness grid with no columns or no rows.
	ErrEmptyGrid = errors.New("pathfind: steepness grid is empty")

	// ErrNonRectangular indicates columns of differing lengths.
	ErrNonRectangular = errors.New("pathfind: steepness grid is not rectangular")

	// ErrOutOfBounds indicates a start or end cell outside the grid.
	ErrOutOfBounds = errors.New("pathfind: cell out of bounds")

	// ErrBadSteepnessRange indicates Min > Max or a NaN bound.
	ErrBadSteepnessRange = errors.New("pathfind: invalid steepness range")

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("pathfind: invalid option supplied")

	// ErrNoPath indicates that the goal is unreachable within the steepness range.
	ErrNoPath = errors.New("pathfind: no path found")
)

// Cost constants of the search.
const (
	// OrthogonalCost is the g increment for a horizontal or vertical step.
	OrthogonalCost = 10
	// DiagonalCost is the g increment for a diagonal step.
	DiagonalCost = 14

	// gWeight and hWeight are the f blend in tenths: f = (6g + 4h) / 10.
	gWeight     = 6
	hWeight     = 4
	weightScale = 10
)

// Default passable slope band, in degrees.
const (
	DefaultMinSteepness = 0.0
	DefaultMaxSteepness = 25.0
)

// Cell addresses one grid cell.
type Cell struct {
	I int `json:"i"`
	J int `json:"j"`
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.I, c.J) }

// Node is one step of a found path with the costs it was reached at.
type Node struct {
	I     int     `json:"i"`
	J     int     `json:"j"`
	GCost int     `json:"gCost"`
	HCost int     `json:"hCost"`
	FCost float64 `json:"fCost"`
}

// Cell returns the node's grid coordinates.
func (n Node) Cell() Cell { return Cell{I: n.I, J: n.J} }

// Result is a path from start to end, both inclusive.
type Result struct {
	Path   []Node  `json:"path"`
	Length float64 `json:"length"`
}

// Steps is the number of moves along the path.
func (r *Result) Steps() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// Cells returns the path as bare coordinates.
func (r *Result) Cells() []Cell {
	cells := make([]Cell, len(r.Path))
	for k, n := range r.Path {
		cells[k] = n.Cell()
	}
	return cells
}

// SteepnessRange is the inclusive band of slopes (degrees) a cell must lie in
// to be entered.
type SteepnessRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// DefaultSteepnessRange returns [DefaultMinSteepness, DefaultMaxSteepness].
func DefaultSteepnessRange() SteepnessRange {
	return SteepnessRange{Min: DefaultMinSteepness, Max: DefaultMaxSteepness}
}

// Contains reports whether deg lies inside the band.
func (r SteepnessRange) Contains(deg float64) bool {
	return deg >= r.Min && deg <= r.Max
}

// Validate returns ErrBadSteepnessRange for NaN bounds or Min > Max.
func (r SteepnessRange) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Min > r.Max {
		return fmt.Errorf("%w: [%g, %g]", ErrBadSteepnessRange, r.Min, r.Max)
	}
	return nil
}

// Options configures FindPath.
type Options struct {
	// Steepness bounds which cells may be entered.
	Steepness SteepnessRange
	// CellSize converts Result.Length to meters; must be > 0.
	CellSize float64
	// OnPop, if non-nil, is called with every node taken off the open set.
	OnPop func(Node)

	err error
}

// Option configures FindPath via functional arguments.
type Option func(*Options)

// DefaultOptions returns the default steepness band and a cell size of 1.
func DefaultOptions() Options {
	return Options{
		Steepness: DefaultSteepnessRange(),
		CellSize:  1,
	}
}

// WithSteepnessRange sets the passable slope band. An invalid band is
// surfaced as ErrBadSteepnessRange by FindPath.
func WithSteepnessRange(lo, hi float64) Option {
	return func(o *Options) {
		r := SteepnessRange{Min: lo, Max: hi}
		if err := r.Validate(); err != nil {
			o.err = err
			return
		}
		o.Steepness = r
	}
}

// WithCellSize sets the meters per cell used for Result.Length.
func WithCellSize(s float64) Option {
	return func(o *Options) {
		if !(s > 0) {
			o.err = fmt.Errorf("%w: cell size must be positive (%g)", ErrOptionViolation, s)
			return
		}
		o.CellSize = s
	}
}

// WithOnPop registers a hook invoked for each popped node, in pop order.
func WithOnPop(fn func(Node)) Option {
	return func(o *Options) {
		o.OnPop = fn
	}
}

package navmesh

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for navmesh builds.
var (
	// ErrEmptyMesh is returned for degenerate input; no grid is produced.
	ErrEmptyMesh = errors.New("navmesh: empty mesh")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("navmesh: invalid option supplied")
)

// Rasterization defaults.
const (
	// DefaultResolution is the sampling density in cells per meter.
	DefaultResolution = 10.0
	// DefaultLowIgnoreHeight is knee height: faces entirely below it never block.
	DefaultLowIgnoreHeight = 0.5
	// DefaultHighIgnoreHeight is just under door height: faces entirely above it never block.
	DefaultHighIgnoreHeight = 2.0
	// DefaultNormalCutoff is the average obstacle weight at which a cell becomes an obstacle.
	DefaultNormalCutoff = 0.1
	// DefaultMaxCells caps the grid area (about 4096×4096 cells).
	DefaultMaxCells = 1 << 24
)

// Options configures Build.
type Options struct {
	// Resolution is grid cells per meter; must be > 0.
	Resolution float64
	// LowIgnoreHeight and HighIgnoreHeight bound the band (above the mesh
	// floor) in which faces contribute obstacle weight.
	LowIgnoreHeight  float64
	HighIgnoreHeight float64
	// NormalCutoff in [0,1]: cells whose mean weight reaches it are obstacles.
	NormalCutoff float64
	// MaxCells caps xLength·zLength; Build refuses larger grids before
	// allocating them.
	MaxCells int

	// internal error recorded during option parsing
	err error
}

// Option configures Build via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation when Build runs.
type Option func(*Options)

// DefaultOptions returns the rasterization defaults.
func DefaultOptions() Options {
	return Options{
		Resolution:       DefaultResolution,
		LowIgnoreHeight:  DefaultLowIgnoreHeight,
		HighIgnoreHeight: DefaultHighIgnoreHeight,
		NormalCutoff:     DefaultNormalCutoff,
		MaxCells:         DefaultMaxCells,
	}
}

// WithResolution sets the sampling density (cells per meter).
func WithResolution(r float64) Option {
	return func(o *Options) {
		if !positiveFinite(r) {
			o.err = fmt.Errorf("%w: resolution must be positive and finite (%g)", ErrOptionViolation, r)
			return
		}
		o.Resolution = r
	}
}

// WithLowIgnoreHeight sets the knee-height threshold.
func WithLowIgnoreHeight(h float64) Option {
	return func(o *Options) { o.LowIgnoreHeight = h }
}

// WithHighIgnoreHeight sets the door-height threshold.
func WithHighIgnoreHeight(h float64) Option {
	return func(o *Options) { o.HighIgnoreHeight = h }
}

// WithNormalCutoff sets the obstacle cutoff; it must lie in [0,1].
func WithNormalCutoff(c float64) Option {
	return func(o *Options) {
		if !(c >= 0 && c <= 1) {
			o.err = fmt.Errorf("%w: normal cutoff must be in [0,1] (%g)", ErrOptionViolation, c)
			return
		}
		o.NormalCutoff = c
	}
}

// WithMaxCells caps the number of grid cells a Build may allocate.
func WithMaxCells(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: max cells must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxCells = n
	}
}

// ValidateOptions applies opts over the defaults and reports the first
// violation without building anything.
func ValidateOptions(opts ...Option) error {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o.validate()
}

func (o Options) validate() error {
	if o.err != nil {
		return o.err
	}
	if !positiveFinite(o.Resolution) {
		return fmt.Errorf("%w: resolution must be positive and finite (%g)", ErrOptionViolation, o.Resolution)
	}
	if !(o.NormalCutoff >= 0 && o.NormalCutoff <= 1) {
		return fmt.Errorf("%w: normal cutoff must be in [0,1] (%g)", ErrOptionViolation, o.NormalCutoff)
	}
	if o.MaxCells <= 0 {
		return fmt.Errorf("%w: max cells must be positive (%d)", ErrOptionViolation, o.MaxCells)
	}
	if !finite(o.LowIgnoreHeight) || !finite(o.HighIgnoreHeight) {
		return fmt.Errorf("%w: ignore heights must be finite (%g, %g)",
			ErrOptionViolation, o.LowIgnoreHeight, o.HighIgnoreHeight)
	}
	if o.LowIgnoreHeight > o.HighIgnoreHeight {
		return fmt.Errorf("%w: low ignore height %g above high ignore height %g",
			ErrOptionViolation, o.LowIgnoreHeight, o.HighIgnoreHeight)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func positiveFinite(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

// cellClass is the per-cell classification between the collapse pass and
// the final walkability mask.
type cellClass int

const (
	classHole      cellClass = iota // nothing scanned here (yet)
	classWalkable                   // floor
	classObstacle                   // mean weight at or above the cutoff
	classOuterHole                  // unscanned and reachable from the border
)

func isBlocked(v int) bool {
	c := cellClass(v)
	return c == classObstacle || c == classOuterHole
}

package selection

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/pathfind"
)

// Sentinel errors for selection sessions.
var (
	// ErrNilNavMesh indicates NewSession was given no navmesh.
	ErrNilNavMesh = errors.New("selection: navmesh is nil")

	// ErrOutsideGrid indicates a pick that maps to no grid cell.
	ErrOutsideGrid = errors.New("selection: point outside navmesh grid")

	// ErrSteepPoint indicates a pick on a cell outside the steepness range.
	ErrSteepPoint = errors.New("selection: point steepness out of range")

	// ErrMissingPoint indicates Solve was called before both endpoints were picked.
	ErrMissingPoint = errors.New("selection: start or end point not set")

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("selection: invalid option supplied")
)

// PointType is the type tag carried by a pick event. It is informational:
// the session decides which endpoint a pick updates.
type PointType string

const (
	PointStart PointType = "start"
	PointEnd   PointType = "end"
)

// PointEvent is a world-space pick delivered by the host.
type PointEvent struct {
	Type  PointType  `json:"type"`
	Point [3]float64 `json:"point"`
}

// Target names the endpoint a pick updates.
type Target int

const (
	TargetStart Target = iota
	TargetEnd
)

func (t Target) other() Target {
	if t == TargetStart {
		return TargetEnd
	}
	return TargetStart
}

func (t Target) String() string {
	if t == TargetStart {
		return "start"
	}
	return "end"
}

// MarshalText renders the target as "start" or "end".
func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Offset carries what a consumer needs to map grid cells back into its
// own coordinate space.
type Offset struct {
	InverseGroundPlaneMatrix [16]float64 `json:"inverseGroundPlaneMatrix"`
	MinX                     float64     `json:"minX"`
	MinZ                     float64     `json:"minZ"`
	MaxZ                     float64     `json:"maxZ"`
}

// Notification is delivered to the Notifier after a successful Solve.
type Notification struct {
	CellSize   float64         `json:"cellSize"`
	PathArr    []pathfind.Node `json:"pathArr"`
	PathLength float64         `json:"pathLength"`
	Offset     Offset          `json:"offset"`
}

// Notifier receives solved paths.
type Notifier interface {
	NotifyPath(n *Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n *Notification)

// NotifyPath calls f(n).
func (f NotifierFunc) NotifyPath(n *Notification) { f(n) }

// State is a snapshot of a session's picks.
type State struct {
	Start     *pathfind.Cell          `json:"start,omitempty"`
	End       *pathfind.Cell          `json:"end,omitempty"`
	Next      Target                  `json:"next"`
	Locked    bool                    `json:"locked"`
	Steepness pathfind.SteepnessRange `json:"steepness"`
}

// Options configures NewSession.
type Options struct {
	// Notifier receives every solved path; nil discards them.
	Notifier Notifier
	// GroundPlane is the pose of the ground plane in world space. Picks are
	// mapped into mesh space through its inverse.
	GroundPlane mgl64.Mat4
	// Steepness is the initial pickable and passable slope band.
	Steepness pathfind.SteepnessRange

	err error
}

// Option configures NewSession via functional arguments.
type Option func(*Options)

// DefaultOptions returns an identity ground plane and the default steepness band.
func DefaultOptions() Options {
	return Options{
		GroundPlane: mgl64.Ident4(),
		Steepness:   pathfind.DefaultSteepnessRange(),
	}
}

// WithNotifier sets the path consumer.
func WithNotifier(n Notifier) Option {
	return func(o *Options) { o.Notifier = n }
}

// WithGroundPlane sets the ground-plane pose. A singular matrix is rejected.
func WithGroundPlane(m mgl64.Mat4) Option {
	return func(o *Options) {
		if m.Det() == 0 {
			o.err = fmt.Errorf("%w: ground plane matrix is singular", ErrOptionViolation)
			return
		}
		o.GroundPlane = m
	}
}

// WithSteepnessRange sets the initial slope band in degrees.
func WithSteepnessRange(lo, hi float64) Option {
	return func(o *Options) {
		r := pathfind.SteepnessRange{Min: lo, Max: hi}
		if err := r.Validate(); err != nil {
			o.err = fmt.Errorf("%w: %w", ErrOptionViolation, err)
			return
		}
		o.Steepness = r
	}
}

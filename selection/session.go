package selection

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gofiber/fiber/v3/log"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/navmesh"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/pathfind"
)

// Session is one logical picking session over a navmesh.
type Session struct {
	nm       *navmesh.NavMesh
	notifier Notifier
	inverse  mgl64.Mat4

	mu        sync.Mutex
	steepness pathfind.SteepnessRange
	start     *pathfind.Cell
	end       *pathfind.Cell
	picks     int    // accepted picks since the last reset
	last      Target // endpoint updated by the latest accepted pick
	locked    bool
}

// NewSession binds a session to nm.
func NewSession(nm *navmesh.NavMesh, opts ...Option) (*Session, error) {
	if nm == nil {
		return nil, ErrNilNavMesh
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	return &Session{
		nm:        nm,
		notifier:  o.Notifier,
		inverse:   o.GroundPlane.Inv(),
		steepness: o.Steepness,
	}, nil
}

// Reset clears both endpoints and unlocks; the next two picks set start
// then end.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start, s.end = nil, nil
	s.picks = 0
	s.last = TargetStart
	s.locked = false
}

// Lock pins later picks to the last updated endpoint.
func (s *Session) Lock(locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = locked
}

// SetSteepnessRange replaces the slope band used for picks and searches.
func (s *Session) SetSteepnessRange(lo, hi float64) error {
	r := pathfind.SteepnessRange{Min: lo, Max: hi}
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steepness = r
	return nil
}

// Start returns the picked start cell.
func (s *Session) Start() (pathfind.Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.start == nil {
		return pathfind.Cell{}, false
	}
	return *s.start, true
}

// End returns the picked end cell.
func (s *Session) End() (pathfind.Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.end == nil {
		return pathfind.Cell{}, false
	}
	return *s.end, true
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Next:      s.nextTarget(),
		Locked:    s.locked,
		Steepness: s.steepness,
	}
	if s.start != nil {
		c := *s.start
		st.Start = &c
	}
	if s.end != nil {
		c := *s.end
		st.End = &c
	}
	return st
}

// NavMesh returns the navmesh the session picks on.
func (s *Session) NavMesh() *navmesh.NavMesh { return s.nm }

// nextTarget picks the endpoint the next accepted pick updates. Callers hold mu.
func (s *Session) nextTarget() Target {
	switch {
	case s.picks == 0:
		return TargetStart
	case s.picks == 1:
		return TargetEnd
	case s.locked:
		return s.last
	default:
		return s.last.other()
	}
}

// CellFor maps a world-space point to its grid cell.
func (s *Session) CellFor(p [3]float64) (pathfind.Cell, error) {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return pathfind.Cell{}, fmt.Errorf("%w: %v", ErrOutsideGrid, p)
		}
	}
	local := mgl64.TransformCoordinate(mgl64.Vec3(p), s.inverse)
	i, j, ok := s.nm.CellAt(local.X(), local.Z())
	if !ok {
		return pathfind.Cell{}, fmt.Errorf("%w: %v", ErrOutsideGrid, p)
	}
	return pathfind.Cell{I: i, J: j}, nil
}

// SetPoint applies a pick event. A rejected pick leaves the session untouched.
func (s *Session) SetPoint(ev PointEvent) (pathfind.Cell, error) {
	c, err := s.CellFor(ev.Point)
	if err != nil {
		log.Warnf("selection: rejected %s pick: %v", ev.Type, err)
		return pathfind.Cell{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deg := s.nm.Steepness[c.I][c.J]
	if !s.steepness.Contains(deg) {
		err := fmt.Errorf("%w: cell %v is %.1f°, allowed [%g, %g]", ErrSteepPoint, c, deg, s.steepness.Min, s.steepness.Max)
		log.Warnf("selection: rejected %s pick: %v", ev.Type, err)
		return pathfind.Cell{}, err
	}

	target := s.nextTarget()
	if target == TargetStart {
		s.start = &c
	} else {
		s.end = &c
	}
	s.last = target
	s.picks++
	log.Debugf("selection: %s set to %v (tag %q)", target, c, ev.Type)
	return c, nil
}

// Solve searches between the picked endpoints and notifies the consumer.
// ErrMissingPoint and pathfind.ErrNoPath are logged and returned.
func (s *Session) Solve() (*Notification, error) {
	s.mu.Lock()
	if s.start == nil || s.end == nil {
		s.mu.Unlock()
		log.Warnf("selection: %v", ErrMissingPoint)
		return nil, ErrMissingPoint
	}
	start, end, steep := *s.start, *s.end, s.steepness
	s.mu.Unlock()

	res, err := pathfind.FindPath(s.nm.Steepness, start, end,
		pathfind.WithSteepnessRange(steep.Min, steep.Max),
		pathfind.WithCellSize(s.nm.CellSize()),
	)
	if err != nil {
		if errors.Is(err, pathfind.ErrNoPath) {
			log.Warnf("selection: %v", err)
		}
		return nil, err
	}

	n := &Notification{
		CellSize:   s.nm.CellSize(),
		PathArr:    res.Path,
		PathLength: res.Length,
		Offset: Offset{
			InverseGroundPlaneMatrix: [16]float64(s.inverse),
			MinX:                     s.nm.Bounds.Min.X(),
			MinZ:                     s.nm.Bounds.Min.Z(),
			MaxZ:                     s.nm.Bounds.Max.Z(),
		},
	}
	log.Infof("selection: path %v → %v, %d steps, %.2f m", start, end, res.Steps(), res.Length)
	if s.notifier != nil {
		s.notifier.NotifyPath(n)
	}
	return n, nil
}

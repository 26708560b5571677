package selection_test

import (
	"encoding/json"
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/mesh"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/navmesh"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/pathfind"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/selection"
)

// fixture is a 2×2 m navmesh at 10 cells/m: all walkable, flat except
// cell (15,15) which is 30° steep.
func fixture() *navmesh.NavMesh {
	const n = 20
	nm := &navmesh.NavMesh{
		Walkable:   make([][]bool, n),
		Steepness:  make([][]float64, n),
		Height:     make([][]float64, n),
		Bounds:     mesh.Bounds{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 1, 2}},
		Resolution: 10,
	}
	for i := 0; i < n; i++ {
		nm.Walkable[i] = make([]bool, n)
		nm.Steepness[i] = make([]float64, n)
		nm.Height[i] = make([]float64, n)
		for j := range nm.Walkable[i] {
			nm.Walkable[i][j] = true
		}
	}
	nm.Steepness[15][15] = 30
	return nm
}

// at returns the world position of cell (i,j)'s center on the fixture.
func at(i, j int) [3]float64 {
	return [3]float64{(float64(i) + 0.5) / 10, 0, 2 - (float64(j)+0.5)/10}
}

func pick(typ selection.PointType, i, j int) selection.PointEvent {
	return selection.PointEvent{Type: typ, Point: at(i, j)}
}

func newSession(t *testing.T, opts ...selection.Option) *selection.Session {
	t.Helper()
	s, err := selection.NewSession(fixture(), opts...)
	require.NoError(t, err)
	return s
}

func requireEndpoints(t *testing.T, s *selection.Session, start, end *pathfind.Cell) {
	t.Helper()
	st := s.State()
	assert.Equal(t, start, st.Start, "start")
	assert.Equal(t, end, st.End, "end")
}

func cell(i, j int) *pathfind.Cell { return &pathfind.Cell{I: i, J: j} }

func TestNewSession_Errors(t *testing.T) {
	_, err := selection.NewSession(nil)
	assert.ErrorIs(t, err, selection.ErrNilNavMesh)

	_, err = selection.NewSession(fixture(), selection.WithGroundPlane(mgl64.Mat4{}))
	assert.ErrorIs(t, err, selection.ErrOptionViolation)

	_, err = selection.NewSession(fixture(), selection.WithSteepnessRange(40, 10))
	assert.ErrorIs(t, err, selection.ErrOptionViolation)
	assert.ErrorIs(t, err, pathfind.ErrBadSteepnessRange)
}

// After Reset the first two picks are start then end, whatever their tags.
func TestSession_FirstTwoPicksIgnoreTags(t *testing.T) {
	tags := [][2]selection.PointType{
		{selection.PointStart, selection.PointEnd},
		{selection.PointEnd, selection.PointStart},
		{selection.PointEnd, selection.PointEnd},
		{selection.PointStart, selection.PointStart},
	}
	s := newSession(t)
	for _, tc := range tags {
		t.Run(string(tc[0])+"-"+string(tc[1]), func(t *testing.T) {
			_, _ = s.SetPoint(pick(selection.PointStart, 9, 9))
			s.Reset()
			requireEndpoints(t, s, nil, nil)

			_, err := s.SetPoint(pick(tc[0], 1, 2))
			require.NoError(t, err)
			_, err = s.SetPoint(pick(tc[1], 3, 4))
			require.NoError(t, err)
			requireEndpoints(t, s, cell(1, 2), cell(3, 4))
		})
	}
}

func TestSession_LaterPicksAlternate(t *testing.T) {
	s := newSession(t)
	for k, want := range []selection.Target{
		selection.TargetStart, selection.TargetEnd,
		selection.TargetStart, selection.TargetEnd, selection.TargetStart,
	} {
		assert.Equal(t, want, s.State().Next, "pick %d", k)
		c, err := s.SetPoint(pick(selection.PointEnd, k, k))
		require.NoError(t, err)
		assert.Equal(t, pathfind.Cell{I: k, J: k}, c)
	}
	requireEndpoints(t, s, cell(4, 4), cell(3, 3))
}

func TestSession_Lock(t *testing.T) {
	s := newSession(t)
	s.Lock(true)
	for k := 0; k < 2; k++ {
		_, err := s.SetPoint(pick(selection.PointStart, k, 0))
		require.NoError(t, err)
	}
	requireEndpoints(t, s, cell(0, 0), cell(1, 0))

	for k := 2; k < 5; k++ {
		_, err := s.SetPoint(pick(selection.PointStart, k, 0))
		require.NoError(t, err)
		requireEndpoints(t, s, cell(0, 0), cell(k, 0))
	}

	s.Lock(false)
	_, err := s.SetPoint(pick(selection.PointEnd, 7, 7))
	require.NoError(t, err)
	requireEndpoints(t, s, cell(7, 7), cell(4, 0))

	s.Lock(true)
	s.Reset()
	assert.False(t, s.State().Locked)
}

// A 30° pick with the default 25° maximum is rejected without touching state.
func TestSession_RejectsSteepPick(t *testing.T) {
	s := newSession(t)

	_, err := s.SetPoint(pick(selection.PointStart, 15, 15))
	assert.ErrorIs(t, err, selection.ErrSteepPoint)
	requireEndpoints(t, s, nil, nil)
	assert.Equal(t, selection.TargetStart, s.State().Next)

	_, err = s.SetPoint(pick(selection.PointStart, 2, 2))
	require.NoError(t, err)
	_, err = s.SetPoint(pick(selection.PointEnd, 15, 15))
	assert.ErrorIs(t, err, selection.ErrSteepPoint)
	requireEndpoints(t, s, cell(2, 2), nil)
	assert.Equal(t, selection.TargetEnd, s.State().Next)

	require.NoError(t, s.SetSteepnessRange(0, 35))
	_, err = s.SetPoint(pick(selection.PointEnd, 15, 15))
	require.NoError(t, err)
	requireEndpoints(t, s, cell(2, 2), cell(15, 15))

	assert.ErrorIs(t, s.SetSteepnessRange(10, 5), pathfind.ErrBadSteepnessRange)
	assert.Equal(t, pathfind.SteepnessRange{Min: 0, Max: 35}, s.State().Steepness)
}

func TestSession_RejectsOutsideGrid(t *testing.T) {
	s := newSession(t)
	for _, p := range [][3]float64{
		{-0.5, 0, 1},
		{1, 0, 2.5},
		{2.5, 0, 1},
		{1, 0, -0.1},
		{math.NaN(), 0, 1},
		{1, 0, math.Inf(1)},
		{1e300, 0, 1},
		{-1e300, 0, 1},
		{1, 0, -1e300},
	} {
		_, err := s.SetPoint(selection.PointEvent{Type: selection.PointStart, Point: p})
		assert.ErrorIs(t, err, selection.ErrOutsideGrid, "point %v", p)
	}
	requireEndpoints(t, s, nil, nil)
}

func TestSession_GroundPlane(t *testing.T) {
	pose := mgl64.Translate3D(10, 0.5, -5).Mul4(mgl64.HomogRotate3DY(math.Pi / 2))
	s := newSession(t, selection.WithGroundPlane(pose))

	local := at(4, 6)
	world := mgl64.TransformCoordinate(mgl64.Vec3(local), pose)
	c, err := s.SetPoint(selection.PointEvent{Type: selection.PointStart, Point: world})
	require.NoError(t, err)
	assert.Equal(t, pathfind.Cell{I: 4, J: 6}, c)

	_, err = s.SetPoint(selection.PointEvent{Type: selection.PointEnd, Point: local})
	assert.ErrorIs(t, err, selection.ErrOutsideGrid, "untransformed point lands off the grid")
}

func TestSession_SolveMissingPoint(t *testing.T) {
	calls := 0
	s := newSession(t, selection.WithNotifier(selection.NotifierFunc(func(*selection.Notification) { calls++ })))

	_, err := s.Solve()
	assert.ErrorIs(t, err, selection.ErrMissingPoint)

	_, err = s.SetPoint(pick(selection.PointStart, 2, 2))
	require.NoError(t, err)
	_, err = s.Solve()
	assert.ErrorIs(t, err, selection.ErrMissingPoint)
	assert.Zero(t, calls)
}

func TestSession_Solve(t *testing.T) {
	var got []*selection.Notification
	pose := mgl64.Translate3D(1, 2, 3)
	s := newSession(t,
		selection.WithGroundPlane(pose),
		selection.WithNotifier(selection.NotifierFunc(func(n *selection.Notification) { got = append(got, n) })),
	)
	for _, c := range [][2]int{{2, 2}, {2, 10}} {
		p := mgl64.TransformCoordinate(mgl64.Vec3(at(c[0], c[1])), pose)
		_, err := s.SetPoint(selection.PointEvent{Type: selection.PointStart, Point: p})
		require.NoError(t, err)
	}

	n, err := s.Solve()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Same(t, n, got[0])

	assert.InDelta(t, 0.1, n.CellSize, 1e-12)
	require.Len(t, n.PathArr, 9)
	assert.Equal(t, pathfind.Node{I: 2, J: 2, HCost: 80, FCost: 32}, n.PathArr[0])
	assert.Equal(t, 80, n.PathArr[8].GCost)
	assert.InDelta(t, 0.48, n.PathLength, 1e-9)
	assert.Equal(t, 0.0, n.Offset.MinX)
	assert.Equal(t, 0.0, n.Offset.MinZ)
	assert.Equal(t, 2.0, n.Offset.MaxZ)
	inv := mgl64.Translate3D(-1, -2, -3)
	assert.InDeltaSlice(t, inv[:], n.Offset.InverseGroundPlaneMatrix[:], 1e-12)

	raw, err := json.Marshal(n)
	require.NoError(t, err)
	var wire map[string]any
	require.NoError(t, json.Unmarshal(raw, &wire))
	for _, k := range []string{"cellSize", "pathArr", "pathLength", "offset"} {
		assert.Contains(t, wire, k)
	}
	step := wire["pathArr"].([]any)[0].(map[string]any)
	for _, k := range []string{"i", "j", "gCost", "hCost", "fCost"} {
		assert.Contains(t, step, k)
	}
	offset := wire["offset"].(map[string]any)
	assert.Len(t, offset["inverseGroundPlaneMatrix"], 16)
	assert.Contains(t, offset, "minX")
	assert.Contains(t, offset, "minZ")
}

func TestSession_SolveNoPath(t *testing.T) {
	nm := fixture()
	for j := range nm.Steepness[10] {
		nm.Steepness[10][j] = 60
	}
	calls := 0
	s, err := selection.NewSession(nm, selection.WithNotifier(selection.NotifierFunc(func(*selection.Notification) { calls++ })))
	require.NoError(t, err)

	_, err = s.SetPoint(pick(selection.PointStart, 2, 2))
	require.NoError(t, err)
	_, err = s.SetPoint(pick(selection.PointEnd, 18, 2))
	require.NoError(t, err)

	_, err = s.Solve()
	assert.ErrorIs(t, err, pathfind.ErrNoPath)
	assert.Zero(t, calls)
	requireEndpoints(t, s, cell(2, 2), cell(18, 2))
}

func TestSession_BuiltMesh(t *testing.T) {
	m := &mesh.Mesh{}
	m.AddFloor(0, 0, 2, 2, 0)
	m.AddWallX(1, 0.4, 2, 0, 1.5)
	nm, err := navmesh.Build(m)
	require.NoError(t, err)

	s, err := selection.NewSession(nm)
	require.NoError(t, err)
	_, err = s.SetPoint(selection.PointEvent{Type: selection.PointStart, Point: [3]float64{0.5, 0, 0.5}})
	require.NoError(t, err)
	_, err = s.SetPoint(selection.PointEvent{Type: selection.PointEnd, Point: [3]float64{1.5, 0, 0.5}})
	require.NoError(t, err)

	n, err := s.Solve()
	require.NoError(t, err)
	first, last := n.PathArr[0], n.PathArr[len(n.PathArr)-1]
	assert.Equal(t, pathfind.Cell{I: 5, J: 15}, first.Cell())
	assert.Equal(t, pathfind.Cell{I: 15, J: 15}, last.Cell())

	// the wall is column 10 from the top edge to about row 16; the path rounds its end
	assert.InDelta(t, 90, nm.Steepness[10][15], 1e-9)
	for _, node := range n.PathArr {
		if node.I == 10 {
			assert.Greater(t, node.J, 15, "path crosses the wall at %v", node.Cell())
		}
	}
}

func TestSession_LargePickLeavesStateAlone(t *testing.T) {
	s := newSession(t)
	_, err := s.SetPoint(pick(selection.PointStart, 2, 2))
	require.NoError(t, err)

	_, err = s.SetPoint(selection.PointEvent{Type: selection.PointEnd, Point: [3]float64{1e300, 0, 1}})
	assert.ErrorIs(t, err, selection.ErrOutsideGrid)
	requireEndpoints(t, s, cell(2, 2), nil)
}

func TestSession_ConcurrentPicks(t *testing.T) {
	s := newSession(t)
	var wg sync.WaitGroup
	for k := 0; k < 32; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			_, err := s.SetPoint(pick(selection.PointStart, k%20, (k*7)%20))
			assert.NoError(t, err)
			_ = s.State()
		}(k)
	}
	wg.Wait()

	st := s.State()
	assert.NotNil(t, st.Start)
	assert.NotNil(t, st.End)
}

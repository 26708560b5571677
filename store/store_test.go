package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/mesh"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/navmesh"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/store"
)

// RepositorySuite runs every test against a fresh database file.
type RepositorySuite struct {
	suite.Suite
	ctx  context.Context
	db   *sql.DB
	repo *store.Repository
	nm   *navmesh.NavMesh
}

func (s *RepositorySuite) SetupSuite() {
	m := &mesh.Mesh{}
	m.AddFloor(0, 0, 2, 2, 0)
	m.AddWallX(1, 0.5, 1.5, 0, 1.5)
	nm, err := navmesh.Build(m)
	require.NoError(s.T(), err)
	s.nm = nm
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	db, err := store.OpenSQLite(filepath.Join(s.T().TempDir(), "nested", "navgrid.db"))
	require.NoError(s.T(), err)
	s.db = db
	s.repo = store.New(db)
	require.NoError(s.T(), s.repo.Init(s.ctx))
}

func (s *RepositorySuite) TearDownTest() {
	s.NoError(s.db.Close())
}

func (s *RepositorySuite) TestSaveAndGet() {
	rec, err := s.repo.Save(s.ctx, "lab", s.nm)
	s.Require().NoError(err)
	_, err = uuid.Parse(rec.ID)
	s.NoError(err)
	s.Equal(20, rec.XLen)
	s.Equal(20, rec.ZLen)
	s.Equal(s.nm.WalkableCount(), rec.Walkable)

	got, err := s.repo.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(rec.Name, got.Name)
	s.True(rec.CreatedAt.Equal(got.CreatedAt))
	s.Equal(s.nm, got.NavMesh)
}

func (s *RepositorySuite) TestInitIsIdempotent() {
	s.NoError(s.repo.Init(s.ctx))
}

func (s *RepositorySuite) TestGetErrors() {
	_, err := s.repo.Get(s.ctx, "not-a-uuid")
	s.ErrorIs(err, store.ErrInvalidID)

	_, err = s.repo.Get(s.ctx, uuid.NewString())
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *RepositorySuite) TestSaveNil() {
	_, err := s.repo.Save(s.ctx, "x", nil)
	s.ErrorIs(err, store.ErrNilNavMesh)
}

func (s *RepositorySuite) TestListAndDelete() {
	recs, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(recs)

	ids := map[string]bool{}
	for _, name := range []string{"a", "b", "c"} {
		rec, err := s.repo.Save(s.ctx, name, s.nm)
		s.Require().NoError(err)
		ids[rec.ID] = true
	}

	recs, err = s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(recs, 3)
	for _, rec := range recs {
		s.True(ids[rec.ID])
		s.Nil(rec.NavMesh)
	}

	victim := recs[0].ID
	s.Require().NoError(s.repo.Delete(s.ctx, victim))
	s.ErrorIs(s.repo.Delete(s.ctx, victim), store.ErrNotFound)
	_, err = s.repo.Get(s.ctx, victim)
	s.ErrorIs(err, store.ErrNotFound)
	s.ErrorIs(s.repo.Delete(s.ctx, "nope"), store.ErrInvalidID)

	recs, err = s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(recs, 2)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

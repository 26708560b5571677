// Package store persists built navmeshes in SQLite. Grids are stored as
// msgpack blobs next to a few summary columns used for listing.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/navmesh"
)

var (
	// ErrNotFound is returned when no navmesh has the requested id.
	ErrNotFound = errors.New("store: navmesh not found")
	// ErrInvalidID is returned for ids that are not UUIDs.
	ErrInvalidID = errors.New("store: invalid navmesh id")
	// ErrNilNavMesh is returned when Save is given no navmesh.
	ErrNilNavMesh = errors.New("store: navmesh is nil")
)

const schema = `
CREATE TABLE IF NOT EXISTS navmeshes (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    created_at  INTEGER NOT NULL,
    resolution  REAL NOT NULL,
    x_len       INTEGER NOT NULL,
    z_len       INTEGER NOT NULL,
    walkable    INTEGER NOT NULL,
    data        BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS navmeshes_created_at ON navmeshes (created_at);
`

// Record is a stored navmesh. NavMesh is nil in List results.
type Record struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	CreatedAt  time.Time        `json:"createdAt"`
	Resolution float64          `json:"resolution"`
	XLen       int              `json:"xLength"`
	ZLen       int              `json:"zLength"`
	Walkable   int              `json:"walkableCells"`
	NavMesh    *navmesh.NavMesh `json:"-"`
}

// Repository persists built navmeshes in SQLite. Safe for concurrent use.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New returns a Repository over db. Call Init before first use.
func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Init creates the schema if missing.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: apply schema: %w", err)
	}
	return nil
}

// Save stores nm under a fresh id.
func (r *Repository) Save(ctx context.Context, name string, nm *navmesh.NavMesh) (*Record, error) {
	if nm == nil {
		return nil, ErrNilNavMesh
	}
	data, err := msgpack.Marshal(nm)
	if err != nil {
		return nil, fmt.Errorf("store: encode navmesh: %w", err)
	}

	xl, zl := nm.Dims()
	rec := &Record{
		ID:         uuid.NewString(),
		Name:       name,
		CreatedAt:  r.now().UTC().Truncate(time.Millisecond),
		Resolution: nm.Resolution,
		XLen:       xl,
		ZLen:       zl,
		Walkable:   nm.WalkableCount(),
		NavMesh:    nm,
	}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO navmeshes (id, name, created_at, resolution, x_len, z_len, walkable, data)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, rec.ID, rec.Name, rec.CreatedAt.UnixMilli(), rec.Resolution, rec.XLen, rec.ZLen, rec.Walkable, data)
	if err != nil {
		return nil, fmt.Errorf("store: insert navmesh: %w", err)
	}
	return rec, nil
}

// Get loads the navmesh stored under id.
func (r *Repository) Get(ctx context.Context, id string) (*Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, created_at, resolution, x_len, z_len, walkable, data
        FROM navmeshes
        WHERE id = ?
    `, id)

	var (
		rec     Record
		created int64
		data    []byte
	)
	if err := row.Scan(&rec.ID, &rec.Name, &created, &rec.Resolution, &rec.XLen, &rec.ZLen, &rec.Walkable, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("store: query navmesh: %w", err)
	}
	rec.CreatedAt = time.UnixMilli(created).UTC()

	nm := new(navmesh.NavMesh)
	if err := msgpack.Unmarshal(data, nm); err != nil {
		return nil, fmt.Errorf("store: decode navmesh %s: %w", id, err)
	}
	rec.NavMesh = nm
	return &rec, nil
}

// List returns summaries of every stored navmesh, newest first.
func (r *Repository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, created_at, resolution, x_len, z_len, walkable
        FROM navmeshes
        ORDER BY created_at DESC, id
    `)
	if err != nil {
		return nil, fmt.Errorf("store: list navmeshes: %w", err)
	}
	defer rows.Close()

	recs := []Record{}
	for rows.Next() {
		var (
			rec     Record
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &created, &rec.Resolution, &rec.XLen, &rec.ZLen, &rec.Walkable); err != nil {
			return nil, fmt.Errorf("store: scan navmesh: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(created).UTC()
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list navmeshes: %w", err)
	}
	return recs, nil
}

// Delete removes the navmesh stored under id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM navmeshes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete navmesh: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete navmesh: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// OpenSQLite opens (creating if needed) the database file at dbPath.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("store: mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

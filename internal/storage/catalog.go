package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/san-kum/qpot/internal/monitoring"
)

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Catalog indexes saved runs in a sqlite database so they can be filtered
// without reading every metadata file.
type Catalog struct {
	db *sql.DB
}

// CatalogEntry is one row of the runs table. ErrMax and ERMS are nil for
// fields without an exact solution.
type CatalogEntry struct {
	ID            string
	Field         string
	NX, NY, K     int
	Accepted      int
	Termination   string
	ErrMax        *float64
	ERMS          *float64
	TwoPointShare float64
	MaxDrop       float64
	CreatedAt     time.Time
}

// OpenCatalog opens (creating if needed) the catalog at path and migrates it
// to the latest schema.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	c := &Catalog{db: db}
	if err := c.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// MigrateUp runs all pending migrations. It is a no-op at the latest version.
func (c *Catalog) MigrateUp() error {
	m, err := c.newMigrate()
	if err != nil {
		return err
	}
	// m is not closed: that would close the shared database handle.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// MigrateVersion returns the current schema version, 0 before any migration.
func (c *Catalog) MigrateVersion() (uint, bool, error) {
	m, err := c.newMigrate()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (c *Catalog) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(c.db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{}
	return m, nil
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	monitoring.Logf("[migrate] "+format, v...)
}

func (migrateLogger) Verbose() bool { return false }

// Record inserts or replaces the catalog row for meta.
func (c *Catalog) Record(meta *RunMetadata) error {
	var errmax, erms sql.NullFloat64
	if meta.Report != nil && meta.Report.Count > 0 {
		errmax = sql.NullFloat64{Float64: meta.Report.ErrMax, Valid: true}
		erms = sql.NullFloat64{Float64: meta.Report.ERMS, Valid: true}
	}
	g := meta.Config.Grid
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO runs
			(id, field, nx, ny, k, accepted, termination, errmax, erms,
			 two_point_share, max_drop, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Field, g.NX, g.NY, meta.Config.Stencil.K,
		meta.Summary.Accepted, meta.Summary.Termination, errmax, erms,
		meta.Metrics["two_point_share"], meta.Metrics["max_drop"],
		meta.Timestamp.UTC().Format(timeLayout),
	)
	return err
}

// Query lists runs newest first. An empty field matches every field; a
// non-positive limit returns all rows.
func (c *Catalog) Query(field string, limit int) ([]CatalogEntry, error) {
	q := `SELECT id, field, nx, ny, k, accepted, termination, errmax, erms,
			two_point_share, max_drop, created_at
		FROM runs WHERE (? = '' OR field = ?) ORDER BY created_at DESC, id`
	args := []any{field, field}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := c.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CatalogEntry
	for rows.Next() {
		var (
			e       CatalogEntry
			errmax  sql.NullFloat64
			erms    sql.NullFloat64
			created string
		)
		if err := rows.Scan(&e.ID, &e.Field, &e.NX, &e.NY, &e.K, &e.Accepted, &e.Termination,
			&errmax, &erms, &e.TwoPointShare, &e.MaxDrop, &created); err != nil {
			return nil, err
		}
		if errmax.Valid {
			e.ErrMax = &errmax.Float64
		}
		if erms.Valid {
			e.ERMS = &erms.Float64
		}
		if e.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("run %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the row for id; a missing row is not an error.
func (c *Catalog) Delete(id string) error {
	_, err := c.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	return err
}

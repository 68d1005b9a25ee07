package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"seriesKernel/internal/domain"
	"seriesKernel/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.SeriesRepository interface using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository: %w", ports.ErrConfigurationError)
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/series.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// A single connection keeps writers serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite database connection established", map[string]interface{}{"path": dbPath})

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS series_points (
		symbol TEXT NOT NULL,
		interval TEXT NOT NULL,
		name TEXT NOT NULL,
		open_time INTEGER NOT NULL, -- unix milliseconds
		value REAL NULL,            -- NULL for unavailable samples
		PRIMARY KEY (symbol, interval, name, open_time)
	);
	CREATE INDEX IF NOT EXISTS idx_series_points_lookup ON series_points (symbol, interval, name);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// SavePoints upserts all points in a single transaction.
func (r *Repository) SavePoints(ctx context.Context, points []domain.SeriesPoint) error {
	if len(points) == 0 {
		return nil
	}
	const query = `
	INSERT INTO series_points (symbol, interval, name, open_time, value)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (symbol, interval, name, open_time) DO UPDATE SET value = excluded.value`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w: %w", ports.ErrDBConnection, err)
	}
	defer tx.Rollback() // No-op after commit

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w: %w", ports.ErrUpdateFailed, err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, p.Symbol, p.Interval, p.Name, p.OpenTime.UnixMilli(), toNullFloat(p.Value)); err != nil {
			return fmt.Errorf("failed to upsert point %s %s at %s: %w: %w",
				p.Symbol, p.Name, p.OpenTime.UTC().Format(time.RFC3339), ports.ErrUpdateFailed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %d points: %w: %w", len(points), ports.ErrUpdateFailed, err)
	}
	r.logger.Debug(ctx, "Series points saved", map[string]interface{}{"count": len(points), "name": points[0].Name})
	return nil
}

// FindSeries returns the stored points of one series ordered by open time.
func (r *Repository) FindSeries(ctx context.Context, symbol, interval, name string) ([]domain.SeriesPoint, error) {
	const query = `
	SELECT symbol, interval, name, open_time, value
	FROM series_points
	WHERE symbol = ? AND interval = ? AND name = ?
	ORDER BY open_time ASC`

	rows, err := r.db.QueryContext(ctx, query, symbol, interval, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query series %s for %s: %w: %w", name, symbol, ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	points := make([]domain.SeriesPoint, 0)
	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan point during FindSeries: %w", err)
		}
		points = append(points, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating series rows: %w", err)
	}
	return points, nil
}

// FindLatest returns the most recent point of a series.
func (r *Repository) FindLatest(ctx context.Context, symbol, interval, name string) (*domain.SeriesPoint, error) {
	const query = `
	SELECT symbol, interval, name, open_time, value
	FROM series_points
	WHERE symbol = ? AND interval = ? AND name = ?
	ORDER BY open_time DESC LIMIT 1`

	p, err := scanPoint(r.db.QueryRowContext(ctx, query, symbol, interval, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug(ctx, "No stored points for series", map[string]interface{}{"symbol": symbol, "name": name})
			return nil, nil // Not an error, just not found
		}
		return nil, fmt.Errorf("failed to query latest point of %s: %w: %w", name, ports.ErrQueryFailed, err)
	}
	return &p, nil
}

// DeleteSeries removes every point of a series.
func (r *Repository) DeleteSeries(ctx context.Context, symbol, interval, name string) (int64, error) {
	const query = `DELETE FROM series_points WHERE symbol = ? AND interval = ? AND name = ?`
	result, err := r.db.ExecContext(ctx, query, symbol, interval, name)
	if err != nil {
		return 0, fmt.Errorf("failed to delete series %s: %w: %w", name, ports.ErrDeleteFailed, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected deleting %s: %w", name, err)
	}
	r.logger.Debug(ctx, "Series deleted", map[string]interface{}{"name": name, "rows": n})
	return n, nil
}

// ListSeries returns the distinct series names stored for a symbol and interval.
func (r *Repository) ListSeries(ctx context.Context, symbol, interval string) ([]string, error) {
	const query = `
	SELECT DISTINCT name FROM series_points
	WHERE symbol = ? AND interval = ?
	ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, symbol, interval)
	if err != nil {
		return nil, fmt.Errorf("failed to list series for %s: %w: %w", symbol, ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan series name: %w", err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating series names: %w", err)
	}
	return names, nil
}

// --- Helper Scan Functions ---

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanPoint scans a row into a domain.SeriesPoint. NULL values read back as NaN.
func scanPoint(s scanner) (domain.SeriesPoint, error) {
	var p domain.SeriesPoint
	var openTime int64
	var value sql.NullFloat64
	if err := s.Scan(&p.Symbol, &p.Interval, &p.Name, &openTime, &value); err != nil {
		return domain.SeriesPoint{}, err // Handle sql.ErrNoRows in the caller
	}
	p.OpenTime = time.UnixMilli(openTime).UTC()
	p.Value = math.NaN()
	if value.Valid {
		p.Value = value.Float64
	}
	return p, nil
}

// toNullFloat maps NaN and infinities to NULL.
func toNullFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

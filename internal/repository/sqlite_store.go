package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"StockPilot/internal/domain/models"
)

// SQLiteStore persists the watchlist, portfolio holdings and translated
// company profiles in a single local database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode keeps reads cheap while the API writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS watchlist (
			ticker   TEXT PRIMARY KEY,
			name     TEXT,
			added_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS portfolio (
			ticker    TEXT PRIMARY KEY,
			shares    REAL NOT NULL,
			avg_price REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS company_cache (
			ticker     TEXT PRIMARY KEY,
			profile    TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// --- WatchlistStore ---

func (s *SQLiteStore) ListWatchlist(ctx context.Context) ([]models.WatchlistEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ticker, name, added_at FROM watchlist ORDER BY added_at`)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	var out []models.WatchlistEntry
	for rows.Next() {
		var e models.WatchlistEntry
		var addedAt int64
		if err := rows.Scan(&e.Ticker, &e.Name, &addedAt); err != nil {
			return nil, fmt.Errorf("scan watchlist: %w", err)
		}
		e.AddedAt = time.Unix(addedAt, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) AddToWatchlist(ctx context.Context, ticker, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO watchlist (ticker, name, added_at) VALUES (?, ?, ?)
		 ON CONFLICT(ticker) DO UPDATE SET name = excluded.name`,
		ticker, name, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("add watchlist %s: %w", ticker, err)
	}
	return nil
}

func (s *SQLiteStore) RemoveFromWatchlist(ctx context.Context, ticker string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM watchlist WHERE ticker = ?`, ticker)
	if err != nil {
		return fmt.Errorf("remove watchlist %s: %w", ticker, err)
	}
	return nil
}

// --- HoldingStore ---

func (s *SQLiteStore) ListHoldings(ctx context.Context) ([]models.Holding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ticker, shares, avg_price FROM portfolio ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}
	defer rows.Close()

	var out []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.Ticker, &h.Shares, &h.AvgPrice); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// UpsertHolding replaces the position for a ticker. Adding the same ticker
// twice overwrites shares and average price rather than accumulating.
func (s *SQLiteStore) UpsertHolding(ctx context.Context, h models.Holding) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO portfolio (ticker, shares, avg_price) VALUES (?, ?, ?)
		 ON CONFLICT(ticker) DO UPDATE SET shares = excluded.shares, avg_price = excluded.avg_price`,
		h.Ticker, h.Shares, h.AvgPrice)
	if err != nil {
		return fmt.Errorf("upsert holding %s: %w", h.Ticker, err)
	}
	return nil
}

func (s *SQLiteStore) RemoveHolding(ctx context.Context, ticker string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM portfolio WHERE ticker = ?`, ticker)
	if err != nil {
		return fmt.Errorf("remove holding %s: %w", ticker, err)
	}
	return nil
}

// --- CompanyCacheStore ---

// Profiles are stored as JSON blobs; the schema does not chase the profile
// field set.
func (s *SQLiteStore) GetCompany(ctx context.Context, ticker string) (models.CompanyProfile, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile FROM company_cache WHERE ticker = ?`, ticker).Scan(&raw)
	if err == sql.ErrNoRows {
		return models.CompanyProfile{}, false, nil
	}
	if err != nil {
		return models.CompanyProfile{}, false, fmt.Errorf("get company %s: %w", ticker, err)
	}

	var p models.CompanyProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return models.CompanyProfile{}, false, fmt.Errorf("decode company %s: %w", ticker, err)
	}
	return p, true, nil
}

func (s *SQLiteStore) PutCompany(ctx context.Context, p models.CompanyProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode company %s: %w", p.Ticker, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO company_cache (ticker, profile, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(ticker) DO UPDATE SET profile = excluded.profile, updated_at = excluded.updated_at`,
		p.Ticker, string(raw), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("put company %s: %w", p.Ticker, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

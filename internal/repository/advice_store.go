package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"StockPilot/internal/domain/models"
	pkgch "StockPilot/pkg/clickhouse"
	applogger "StockPilot/pkg/logger"
)

// adviceSchema is idempotent; InitSchema runs it on startup.
var adviceSchema = []string{
	`CREATE TABLE IF NOT EXISTS advice_snapshots (
		ticker    String,
		ts        DateTime64(3, 'UTC'),
		action    LowCardinality(String),
		score     Int32,
		rsi       Float64,
		trend     LowCardinality(String),
		sentiment Float64
	) ENGINE = MergeTree()
	ORDER BY (ticker, ts)
	TTL toDateTime(ts) + INTERVAL 90 DAY`,
}

// CHAdviceStore persists advice snapshots in ClickHouse and serves the
// consultation history endpoint.
type CHAdviceStore struct {
	db *sql.DB
	ch *pkgch.Client
	l  *applogger.Logger
}

func NewCHAdviceStore(ctx context.Context, ch *pkgch.Client, l *applogger.Logger) (*CHAdviceStore, error) {
	if err := ch.InitSchema(ctx, adviceSchema); err != nil {
		return nil, fmt.Errorf("advice schema: %w", err)
	}
	return &CHAdviceStore{db: ch.DB(), ch: ch, l: l}, nil
}

func (s *CHAdviceStore) SaveAdvice(ctx context.Context, snap models.AdviceSnapshot) error {
	const q = `
        INSERT INTO advice_snapshots (ticker, ts, action, score, rsi, trend, sentiment)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	if _, err := s.db.ExecContext(ctx, q,
		snap.Ticker, ts, snap.Action, int32(snap.Score), snap.RSI, snap.Trend, snap.Sentiment); err != nil {
		s.l.Error("clickhouse save_advice error",
			applogger.String("ticker", snap.Ticker), applogger.Error(err))
		return fmt.Errorf("save advice: %w", err)
	}
	return nil
}

func (s *CHAdviceStore) RecentAdvice(ctx context.Context, ticker string, limit int) ([]models.AdviceSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
        SELECT ticker, ts, action, score, rsi, trend, sentiment
        FROM advice_snapshots
        WHERE ticker = ?
        ORDER BY ts DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, q, ticker, limit)
	if err != nil {
		s.l.Error("clickhouse recent_advice query error",
			applogger.String("ticker", ticker), applogger.Error(err))
		return nil, fmt.Errorf("recent advice: %w", err)
	}
	defer rows.Close()

	out := make([]models.AdviceSnapshot, 0, limit)
	for rows.Next() {
		var snap models.AdviceSnapshot
		var score int32
		if err := rows.Scan(&snap.Ticker, &snap.Timestamp, &snap.Action,
			&score, &snap.RSI, &snap.Trend, &snap.Sentiment); err != nil {
			return nil, fmt.Errorf("scan advice: %w", err)
		}
		snap.Score = int(score)
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *CHAdviceStore) Health(ctx context.Context) error {
	return s.ch.Health(ctx)
}

func (s *CHAdviceStore) Close() error {
	return s.ch.Close()
}

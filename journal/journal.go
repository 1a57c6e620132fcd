package journal

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one sized arbitrage opportunity as it was seen: the route, the
// trade size after the balance clamp, and the simulated profit.
type Entry struct {
	ID            string
	ObservedAt    time.Time
	ArbDenom      string
	RouteContract string
	AmountIn      *big.Int
	Profit        *big.Int
	Executed      bool
}

// Journal persists sized opportunities to SQLite so runs can be audited
// after the fact.
type Journal struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS opportunities (
	id TEXT PRIMARY KEY,
	observed_at INTEGER NOT NULL,
	arb_denom TEXT NOT NULL,
	route_contracts TEXT NOT NULL,
	amount_in TEXT NOT NULL,
	profit TEXT NOT NULL,
	executed INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_opportunities_observed_at ON opportunities(observed_at);
`

// Open opens (creating if necessary) the journal database at path.
func Open(path string) (*Journal, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record writes one opportunity and returns its generated id.
func (j *Journal) Record(ctx context.Context, entry Entry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.ObservedAt.IsZero() {
		entry.ObservedAt = time.Now()
	}
	executed := 0
	if entry.Executed {
		executed = 1
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO opportunities (id, observed_at, arb_denom, route_contracts, amount_in, profit, executed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.ObservedAt.UnixMilli(),
		entry.ArbDenom,
		entry.RouteContract,
		entry.AmountIn.String(),
		entry.Profit.String(),
		executed,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record opportunity: %w", err)
	}
	return entry.ID, nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, observed_at, arb_denom, route_contracts, amount_in, profit, executed
		 FROM opportunities ORDER BY observed_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			observedAt int64
			amountIn   string
			profit     string
			executed   int
		)
		if err := rows.Scan(&entry.ID, &observedAt, &entry.ArbDenom, &entry.RouteContract, &amountIn, &profit, &executed); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		entry.ObservedAt = time.UnixMilli(observedAt)
		entry.AmountIn, _ = new(big.Int).SetString(amountIn, 10)
		entry.Profit, _ = new(big.Int).SetString(profit, 10)
		entry.Executed = executed != 0
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// RouteKey flattens a route's contract addresses into the stored form.
func RouteKey(contracts []string) string {
	return strings.Join(contracts, ">")
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

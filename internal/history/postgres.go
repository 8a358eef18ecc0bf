package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/brainink/arena/internal/model"

	_ "github.com/lib/pq"
)

// migration is applied at startup; the table is small and append-mostly.
const migration = `
CREATE TABLE IF NOT EXISTS wallet_transactions (
	id           TEXT PRIMARY KEY,
	type         TEXT NOT NULL,
	tournament_id BIGINT,
	amount       TEXT,
	status       TEXT NOT NULL,
	tx_hash      TEXT,
	error        TEXT,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS wallet_transactions_created_at_idx ON wallet_transactions (created_at DESC);
`

// PostgresStore persists bookkeeping across restarts. Optional: the service
// falls back to MemoryStore when no DSN is configured.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects, pings and migrates.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history db: %w", err)
	}
	if _, err := db.ExecContext(ctx, migration); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history db: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Record(ctx context.Context, tx *model.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wallet_transactions (id, type, tournament_id, amount, status, tx_hash, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tx.ID, tx.Type, tx.TournamentID, tx.Amount, tx.Status, tx.TxHash, tx.Error, tx.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status model.TransactionStatus, txHash, errMsg string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE wallet_transactions
		SET status = $2, tx_hash = COALESCE(NULLIF($3, ''), tx_hash), error = $4
		WHERE id = $1`,
		id, status, txHash, errMsg)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, req *model.HistoryRequest) ([]model.Transaction, error) {
	// Filters are applied in SQL where cheap, the rest in memory via Matches.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, COALESCE(tournament_id, 0), COALESCE(amount, ''), status,
		       COALESCE(tx_hash, ''), COALESCE(error, ''), created_at
		FROM wallet_transactions
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		if err := rows.Scan(&tx.ID, &tx.Type, &tx.TournamentID, &tx.Amount, &tx.Status, &tx.TxHash, &tx.Error, &tx.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if req == nil || req.Matches(&tx) {
			out = append(out, tx)
		}
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

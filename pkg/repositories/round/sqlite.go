package round

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/db/migrations"
	"github.com/fadedpez/blackjack/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema/*.sql
var schema embed.FS

// Fixed-width UTC layout so completed_at sorts as text
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at dbPath and brings its schema up
// to date
func NewSQLiteRepository(dbPath string, logger *logging.Logger) (*SQLiteRepository, error) {
	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	migrator := migrations.NewMigrator(db, schema, "schema", logger)
	if _, err := migrator.MigrateUp(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating round schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// SaveRound records a finished round
func (r *SQLiteRepository) SaveRound(ctx context.Context, record *entities.RoundRecord) error {
	playerCards, err := json.Marshal(record.PlayerCards)
	if err != nil {
		return fmt.Errorf("error encoding player cards: %w", err)
	}
	dealerCards, err := json.Marshal(record.DealerCards)
	if err != nil {
		return fmt.Errorf("error encoding dealer cards: %w", err)
	}

	completedAt := record.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	query := `
		INSERT INTO rounds (
			id, player_id, player_cards, dealer_cards, player_total, dealer_total,
			status, bet, payout, balance_after, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		record.ID,
		record.PlayerID,
		string(playerCards),
		string(dealerCards),
		record.PlayerTotal,
		record.DealerTotal,
		string(record.Status),
		record.Bet,
		record.Payout,
		record.BalanceAfter,
		completedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("error saving round: %w", err)
	}

	return nil
}

// GetRecentRounds retrieves the most recent rounds for a player
func (r *SQLiteRepository) GetRecentRounds(ctx context.Context, playerID string, limit int) ([]*entities.RoundRecord, error) {
	query := `
		SELECT id, player_id, player_cards, dealer_cards, player_total, dealer_total,
			status, bet, payout, balance_after, completed_at
		FROM rounds
		WHERE player_id = ?
		ORDER BY completed_at DESC, rowid DESC
		LIMIT ?
	`

	// SQLite treats a negative LIMIT as no limit
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying rounds: %w", err)
	}
	defer rows.Close()

	records := make([]*entities.RoundRecord, 0)
	for rows.Next() {
		record, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating round rows: %w", err)
	}

	return records, nil
}

// GetSummary aggregates a player's rounds
func (r *SQLiteRepository) GetSummary(ctx context.Context, playerID string) (*entities.RoundSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(payout - bet), 0)
		FROM rounds
		WHERE player_id = ?
	`

	summary := &entities.RoundSummary{PlayerID: playerID}
	err := r.db.QueryRowContext(ctx, query,
		string(entities.StatusPlayerWon),
		string(entities.StatusDealerWon),
		string(entities.StatusDraw),
		playerID,
	).Scan(&summary.Rounds, &summary.Wins, &summary.Losses, &summary.Pushes, &summary.Net)
	if err != nil {
		return nil, fmt.Errorf("error summarizing rounds: %w", err)
	}

	return summary, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRound(row rowScanner) (*entities.RoundRecord, error) {
	var record entities.RoundRecord
	var playerCards, dealerCards, status, completedAt string

	err := row.Scan(
		&record.ID,
		&record.PlayerID,
		&playerCards,
		&dealerCards,
		&record.PlayerTotal,
		&record.DealerTotal,
		&status,
		&record.Bet,
		&record.Payout,
		&record.BalanceAfter,
		&completedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error scanning round row: %w", err)
	}

	record.Status = entities.GameStatus(status)

	if err := json.Unmarshal([]byte(playerCards), &record.PlayerCards); err != nil {
		return nil, fmt.Errorf("error decoding player cards: %w", err)
	}
	if err := json.Unmarshal([]byte(dealerCards), &record.DealerCards); err != nil {
		return nil, fmt.Errorf("error decoding dealer cards: %w", err)
	}

	record.CompletedAt, err = time.Parse(timestampLayout, completedAt)
	if err != nil {
		return nil, fmt.Errorf("error parsing timestamp '%s': %w", completedAt, err)
	}

	return &record, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

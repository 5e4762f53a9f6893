package round

import (
	"context"

	"github.com/fadedpez/blackjack/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_round

// Repository stores the history of finished rounds
type Repository interface {
	// SaveRound records a finished round
	SaveRound(ctx context.Context, record *entities.RoundRecord) error

	// GetRecentRounds returns up to limit rounds for a player, newest first
	GetRecentRounds(ctx context.Context, playerID string, limit int) ([]*entities.RoundRecord, error)

	// GetSummary aggregates every stored round for a player
	GetSummary(ctx context.Context, playerID string) (*entities.RoundSummary, error)

	// Close closes any resources used by the repository
	Close() error
}

// Summarize folds round records into a summary
func Summarize(playerID string, records []*entities.RoundRecord) *entities.RoundSummary {
	summary := &entities.RoundSummary{PlayerID: playerID}
	for _, record := range records {
		summary.Rounds++
		switch record.Status {
		case entities.StatusPlayerWon:
			summary.Wins++
		case entities.StatusDealerWon:
			summary.Losses++
		case entities.StatusDraw:
			summary.Pushes++
		}
		summary.Net += record.Net()
	}
	return summary
}

package round

import (
	"context"
	"sync"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu sync.RWMutex
	// Map of playerID to rounds in the order they were saved
	rounds map[string][]*entities.RoundRecord
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rounds: make(map[string][]*entities.RoundRecord),
	}
}

// SaveRound stores a copy of the record
func (r *MemoryRepository) SaveRound(ctx context.Context, record *entities.RoundRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recordCopy := *record
	r.rounds[record.PlayerID] = append(r.rounds[record.PlayerID], &recordCopy)
	return nil
}

// GetRecentRounds retrieves the most recent rounds for a player
func (r *MemoryRepository) GetRecentRounds(ctx context.Context, playerID string, limit int) ([]*entities.RoundRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rounds := r.rounds[playerID]
	result := make([]*entities.RoundRecord, 0, len(rounds))
	for i := len(rounds) - 1; i >= 0 && (limit <= 0 || len(result) < limit); i-- {
		recordCopy := *rounds[i]
		result = append(result, &recordCopy)
	}
	return result, nil
}

// GetSummary aggregates a player's rounds
func (r *MemoryRepository) GetSummary(ctx context.Context, playerID string) (*entities.RoundSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Summarize(playerID, r.rounds[playerID]), nil
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}

package blackjack

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/repositories/round"
	engine "github.com/fadedpez/blackjack/pkg/services/blackjack"
	"github.com/fadedpez/blackjack/pkg/services/wallet"
)

// View is a point-in-time copy of a session's table
type View struct {
	PlayerID     string
	RoundID      string
	Status       entities.GameStatus
	PlayerCards  []entities.Card
	DealerCards  []entities.Card // face-down cards included, check FaceUp
	PlayerTotals engine.Totals
	PlayerBust   bool
	DealerTotals engine.Totals
	DealerBust   bool
	Balance      int64
	Bet          int64
	Settlement   *engine.Settlement // nil while the round is being played
}

// Finished reports whether the round in the view has an outcome
func (v *View) Finished() bool {
	return v.Settlement != nil
}

// Session drives one player's rounds and records each finished round
type Session struct {
	playerID string
	game     *engine.Game
	rounds   round.Repository
	logger   *logging.Logger
	now      func() time.Time
	dealt    bool
	mu       sync.Mutex
}

// NewSession creates a session around a fresh engine
func NewSession(playerID string, rng *rand.Rand, settings Settings, rounds round.Repository, logger *logging.Logger) *Session {
	if rounds == nil {
		panic("rounds repository cannot be nil")
	}
	if logger == nil {
		logger = logging.Default
	}
	logger = logger.With("player", playerID)

	ledger := wallet.NewLedger(settings.StartingBalance, settings.Bet)
	return &Session{
		playerID: playerID,
		game:     engine.NewGame(rng, settings.NumberOfDecks, engine.WithLedger(ledger), engine.WithLogger(logger)),
		rounds:   rounds,
		logger:   logger,
		now:      time.Now,
	}
}

// PlayerID returns the owner of the session
func (s *Session) PlayerID() string {
	return s.playerID
}

// Deal starts a new round. A round that is still being played must be
// finished first.
func (s *Session) Deal(ctx context.Context) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inRound() {
		return s.view(), types.NewGameError(types.ErrInvalidTransition, "finish the current round before dealing again")
	}

	s.game.Deal()
	s.dealt = true
	s.logger.Info("round dealt", "round", s.game.RoundID(), "bet", s.game.Bet(), "balance", s.game.AccountBalance())

	return s.afterAction(ctx)
}

// Hit draws a card for the player
func (s *Session) Hit(ctx context.Context) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dealt || s.game.Status() != entities.StatusInProgress {
		return s.view(), types.NewGameError(types.ErrInvalidTransition, fmt.Sprintf("cannot hit while the round is %s", s.describeStatus()))
	}

	s.game.Hit()
	return s.afterAction(ctx)
}

// Stand plays out the dealer and settles the round
func (s *Session) Stand(ctx context.Context) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inRound() {
		return s.view(), types.NewGameError(types.ErrInvalidTransition, fmt.Sprintf("cannot stand while the round is %s", s.describeStatus()))
	}

	s.game.Stand()
	return s.afterAction(ctx)
}

// SetBet changes the wager taken at the next deal
func (s *Session) SetBet(amount int64) error {
	if amount <= 0 {
		return types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("bet must be positive, got %d", amount))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.SetBet(amount)
	return nil
}

// SetBalance overwrites the account balance
func (s *Session) SetBalance(amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.SetAccountBalance(amount)
}

// View returns the current table
func (s *Session) View() *View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view()
}

// Transactions returns the most recent ledger entries, oldest first
func (s *Session) Transactions(limit int) []*entities.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.game.Ledger().Transactions(limit)
}

// History returns the player's most recent finished rounds, newest first
func (s *Session) History(ctx context.Context, limit int) ([]*entities.RoundRecord, error) {
	records, err := s.rounds.GetRecentRounds(ctx, s.playerID, limit)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load round history", err)
	}
	return records, nil
}

// Summary aggregates the player's finished rounds
func (s *Session) Summary(ctx context.Context) (*entities.RoundSummary, error) {
	summary, err := s.rounds.GetSummary(ctx, s.playerID)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to summarize rounds", err)
	}
	return summary, nil
}

// inRound is true between a deal and the round's outcome
func (s *Session) inRound() bool {
	return s.dealt && !s.game.Status().IsTerminal()
}

func (s *Session) describeStatus() string {
	if !s.dealt {
		return "not dealt"
	}
	return s.game.Status().String()
}

// afterAction records the round once it has an outcome. The view is returned
// even when saving fails; the ledger has already been settled.
func (s *Session) afterAction(ctx context.Context) (*View, error) {
	v := s.view()
	if v.Settlement == nil {
		return v, nil
	}

	record := s.record(v)
	s.logger.Info("round finished",
		"round", record.ID, "status", record.Status, "payout", record.Payout, "balance", record.BalanceAfter)

	if err := s.rounds.SaveRound(ctx, record); err != nil {
		gameErr := types.WrapError(types.ErrDatabaseError, "failed to save round", err)
		s.logger.LogError(gameErr)
		return v, gameErr
	}
	return v, nil
}

func (s *Session) record(v *View) *entities.RoundRecord {
	record := &entities.RoundRecord{
		ID:           v.RoundID,
		PlayerID:     s.playerID,
		PlayerCards:  v.PlayerCards,
		DealerCards:  v.DealerCards,
		Status:       v.Status,
		Bet:          v.Settlement.Bet,
		Payout:       v.Settlement.Delta,
		BalanceAfter: v.Balance,
		CompletedAt:  s.now(),
	}
	if !v.PlayerBust {
		record.PlayerTotal = v.PlayerTotals.Best()
	}
	if !v.DealerBust {
		// the total the round was scored on
		record.DealerTotal = v.DealerTotals.Low
	}
	return record
}

func (s *Session) view() *View {
	playerTotals, playerOK := s.game.PlayerTotals()
	dealerTotals, dealerOK := s.game.DealerTotals()

	v := &View{
		PlayerID:     s.playerID,
		RoundID:      s.game.RoundID(),
		Status:       s.game.Status(),
		PlayerCards:  s.game.PlayerHand(),
		DealerCards:  s.game.DealerHand(),
		PlayerTotals: playerTotals,
		PlayerBust:   !playerOK,
		DealerTotals: dealerTotals,
		DealerBust:   !dealerOK,
		Balance:      s.game.AccountBalance(),
		Bet:          s.game.Bet(),
	}
	if settlement, ok := s.game.LastSettlement(); ok {
		v.Settlement = &settlement
	}
	return v
}

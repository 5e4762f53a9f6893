package entities

import "time"

// GameStatus combines the hand classification and the round outcome
type GameStatus string

const (
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusDraw       GameStatus = "DRAW"
	StatusLessThan21 GameStatus = "LESS_THAN_21"
	StatusBust       GameStatus = "BUST"
	StatusBlackjack  GameStatus = "BLACKJACK"
	StatusHas21      GameStatus = "HAS_21"
	StatusDealerWon  GameStatus = "DEALER_WON"
	StatusPlayerWon  GameStatus = "PLAYER_WON"
)

// String returns the string representation of the status
func (s GameStatus) String() string {
	return string(s)
}

// IsTerminal returns true once the round has an outcome
func (s GameStatus) IsTerminal() bool {
	return s == StatusDealerWon || s == StatusPlayerWon || s == StatusDraw
}

// RoundRecord is the stored history entry for a finished round
type RoundRecord struct {
	ID           string
	PlayerID     string
	PlayerCards  []Card
	DealerCards  []Card
	PlayerTotal  int // 0 when bust
	DealerTotal  int // 0 when bust
	Status       GameStatus
	Bet          int64
	Payout       int64 // ledger movement at settlement; negative on loss
	BalanceAfter int64
	CompletedAt  time.Time
}

// Net is what the round did to the balance, counting the bet taken at deal
func (r *RoundRecord) Net() int64 {
	return r.Payout - r.Bet
}

// RoundSummary aggregates a player's round history
type RoundSummary struct {
	PlayerID string
	Rounds   int
	Wins     int
	Losses   int
	Pushes   int
	Net      int64
}

// WinRate calculates the player's win rate as a percentage
func (s *RoundSummary) WinRate() float64 {
	if s.Rounds == 0 {
		return 0.0
	}
	return float64(s.Wins) / float64(s.Rounds) * 100.0
}

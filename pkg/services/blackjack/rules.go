package blackjack

import (
	"github.com/fadedpez/blackjack/pkg/entities"
)

const (
	DefaultDecks   = 1  // Decks in the shoe unless configured otherwise
	DealerStandsAt = 16 // Dealer draws while its best total is below this
)

// Outcome represents how a settled round went for the player
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLose Outcome = "LOSE"
	OutcomePush Outcome = "PUSH"
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}

// Status maps the outcome to its terminal game status
func (o Outcome) Status() entities.GameStatus {
	switch o {
	case OutcomeWin:
		return entities.StatusPlayerWon
	case OutcomePush:
		return entities.StatusDraw
	default:
		return entities.StatusDealerWon
	}
}

// LedgerDelta is the amount settlement moves the account by. The bet was
// already debited at deal, so a win credits twice the bet, a push refunds it
// and a loss debits the bet a second time.
func (o Outcome) LedgerDelta(bet int64) int64 {
	switch o {
	case OutcomeWin:
		return 2 * bet
	case OutcomePush:
		return bet
	default:
		return -bet
	}
}

// NextStatusAfterHit decides the status once the player has taken a card
func NextStatusAfterHit(totals Totals, ok bool) entities.GameStatus {
	switch {
	case !ok:
		return entities.StatusDealerWon
	case totals.IsBlackjackPattern():
		return entities.StatusBlackjack
	case totals.Best() > Target:
		// unreachable while CalculateTotals caps High at 21; kept to mirror
		// the documented hit transitions
		return entities.StatusDealerWon
	default:
		return entities.StatusInProgress
	}
}

// DealerShouldDraw reports whether the dealer takes another card. The draw
// loop reads the dealer's best total.
func DealerShouldDraw(totals Totals, ok bool) bool {
	return ok && totals.Best() < DealerStandsAt
}

// Resolve compares the player's hand with the dealer's once the dealer has
// finished drawing. The player is scored on their best total and the dealer
// on its lowest, so a soft dealer hand counts its aces as 1.
func Resolve(player Totals, playerOK bool, dealer Totals, dealerOK bool) Outcome {
	if !playerOK {
		return OutcomeLose
	}

	if player.IsBlackjackPattern() {
		if dealerOK && dealer.Low == Target {
			return OutcomePush
		}
		return OutcomeWin
	}

	if !dealerOK || dealer.Low > Target {
		return OutcomeWin
	}

	switch {
	case dealer.Low > player.Best():
		return OutcomeLose
	case dealer.Low < player.Best():
		return OutcomeWin
	default:
		return OutcomePush
	}
}

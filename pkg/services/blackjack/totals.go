package blackjack

import (
	"github.com/fadedpez/blackjack/pkg/entities"
)

// Target is the total every hand is trying to reach without going over
const Target = 21

// Evaluation classifies a hand from its totals
type Evaluation string

const (
	EvaluationBust       Evaluation = "BUST"
	EvaluationBlackjack  Evaluation = "BLACKJACK"
	EvaluationHas21      Evaluation = "HAS_21"
	EvaluationLessThan21 Evaluation = "LESS_THAN_21"
)

// Status maps the evaluation onto the shared game status values
func (e Evaluation) Status() entities.GameStatus {
	switch e {
	case EvaluationBust:
		return entities.StatusBust
	case EvaluationBlackjack:
		return entities.StatusBlackjack
	case EvaluationHas21:
		return entities.StatusHas21
	default:
		return entities.StatusLessThan21
	}
}

// Totals holds the valid totals of a hand that is not bust. Low counts every
// ace as 1. High is the best total with aces promoted to 11 where they fit;
// when High == Low the hand has a single total.
type Totals struct {
	Low  int
	High int
}

// HasAlternate reports whether the hand has two distinct totals
func (t Totals) HasAlternate() bool {
	return t.High != t.Low
}

// Best returns the highest valid total
func (t Totals) Best() int {
	return t.High
}

// Values returns the totals in ascending order, one or two entries
func (t Totals) Values() []int {
	if t.HasAlternate() {
		return []int{t.Low, t.High}
	}
	return []int{t.Low}
}

// Contains reports whether n is one of the totals
func (t Totals) Contains(n int) bool {
	return t.Low == n || t.High == n
}

// IsBlackjackPattern is true for two totals where the larger is 21. It does
// not look at the number of cards.
func (t Totals) IsBlackjackPattern() bool {
	return t.HasAlternate() && t.High == Target
}

// HardTotal sums the base card values with every ace as 1
func HardTotal(cards []*entities.Card) int {
	total := 0
	for _, card := range cards {
		total += card.Rank.Value()
	}
	return total
}

// SoftTotal starts from every ace as 11 and drops 10 per ace while the hand
// is over 21
func SoftTotal(cards []*entities.Card) int {
	total := 0
	aces := 0
	for _, card := range cards {
		if card.IsAce() {
			total += 11
			aces++
		} else {
			total += card.Rank.Value()
		}
	}

	for total > Target && aces > 0 {
		total -= 10
		aces--
	}

	return total
}

// CalculateTotals returns the valid totals of a hand. ok is false when the
// hand is bust.
func CalculateTotals(cards []*entities.Card) (totals Totals, ok bool) {
	hard := HardTotal(cards)
	if hard > Target {
		return Totals{}, false
	}
	if hard == Target {
		return Totals{Low: Target, High: Target}, true
	}

	soft := SoftTotal(cards)
	if soft < hard {
		hard, soft = soft, hard
	}
	return Totals{Low: hard, High: soft}, true
}

// Evaluate classifies a hand
func Evaluate(cards []*entities.Card) Evaluation {
	totals, ok := CalculateTotals(cards)
	return EvaluateTotals(totals, ok)
}

// EvaluateTotals classifies already computed totals
func EvaluateTotals(totals Totals, ok bool) Evaluation {
	switch {
	case !ok:
		return EvaluationBust
	case totals.IsBlackjackPattern():
		return EvaluationBlackjack
	case totals.Best() == Target:
		return EvaluationHas21
	default:
		return EvaluationLessThan21
	}
}

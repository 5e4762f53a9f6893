package blackjack

import (
	"testing"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/stretchr/testify/suite"
)

// cards builds a hand from ranks; suits are irrelevant to scoring
func cards(ranks ...entities.Rank) []*entities.Card {
	hand := make([]*entities.Card, 0, len(ranks))
	for _, rank := range ranks {
		hand = append(hand, entities.NewCard(rank, entities.Spades))
	}
	return hand
}

type TotalsTestSuite struct {
	suite.Suite
}

func TestTotalsSuite(t *testing.T) {
	suite.Run(t, new(TotalsTestSuite))
}

func (s *TotalsTestSuite) TestCalculateTotals() {
	testCases := []struct {
		name       string
		hand       []*entities.Card
		bust       bool
		values     []int
		evaluation Evaluation
	}{
		{
			name:       "ace and king",
			hand:       cards(entities.Ace, entities.King),
			values:     []int{11, 21},
			evaluation: EvaluationBlackjack,
		},
		{
			name:       "ten and nine",
			hand:       cards(entities.Ten, entities.Nine),
			values:     []int{19},
			evaluation: EvaluationLessThan21,
		},
		{
			name:       "soft sixteen",
			hand:       cards(entities.Ace, entities.Five),
			values:     []int{6, 16},
			evaluation: EvaluationLessThan21,
		},
		{
			name:       "pair of aces",
			hand:       cards(entities.Ace, entities.Ace),
			values:     []int{2, 12},
			evaluation: EvaluationLessThan21,
		},
		{
			name:       "three card 21 without ace",
			hand:       cards(entities.Ten, entities.Five, entities.Six),
			values:     []int{21},
			evaluation: EvaluationHas21,
		},
		{
			name:       "hard 21 with ace",
			hand:       cards(entities.King, entities.Queen, entities.Ace),
			values:     []int{21},
			evaluation: EvaluationHas21,
		},
		{
			name:       "three card blackjack pattern",
			hand:       cards(entities.Ace, entities.Ace, entities.Nine),
			values:     []int{11, 21},
			evaluation: EvaluationBlackjack,
		},
		{
			name:       "ace that no longer fits high",
			hand:       cards(entities.Ace, entities.Nine, entities.Five),
			values:     []int{15},
			evaluation: EvaluationLessThan21,
		},
		{
			name:       "bust without ace",
			hand:       cards(entities.King, entities.Eight, entities.Six),
			bust:       true,
			evaluation: EvaluationBust,
		},
		{
			name:       "bust with ace",
			hand:       cards(entities.King, entities.Queen, entities.Five, entities.Ace),
			bust:       true,
			evaluation: EvaluationBust,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// Execute
			totals, ok := CalculateTotals(tc.hand)

			// Assert
			s.Equal(!tc.bust, ok, "Bust flag should match")
			if !tc.bust {
				s.Equal(tc.values, totals.Values(), "Totals should match")
			}
			s.Equal(tc.evaluation, Evaluate(tc.hand), "Evaluation should match")
		})
	}
}

func (s *TotalsTestSuite) TestNoAceHandsHaveOneTotal() {
	var nonAces []entities.Rank
	for _, rank := range entities.Ranks {
		if rank != entities.Ace {
			nonAces = append(nonAces, rank)
		}
	}

	for _, a := range nonAces {
		for _, b := range nonAces {
			for _, c := range nonAces {
				hand := cards(a, b, c)
				s.Equal(HardTotal(hand), SoftTotal(hand), "Hard and soft totals should agree for %v", hand)

				totals, ok := CalculateTotals(hand)
				if ok {
					s.Len(totals.Values(), 1, "Hand without aces should have one total: %v", hand)
				}
			}
		}
	}
}

func (s *TotalsTestSuite) TestBustRegardlessOfAces() {
	for aces := 0; aces <= 4; aces++ {
		ranks := []entities.Rank{entities.King, entities.Queen, entities.Two}
		for i := 0; i < aces; i++ {
			ranks = append(ranks, entities.Ace)
		}
		hand := cards(ranks...)

		_, ok := CalculateTotals(hand)
		s.False(ok, "Hard total %d should be bust with %d aces", HardTotal(hand), aces)
		s.Equal(EvaluationBust, Evaluate(hand))
	}
}

func (s *TotalsTestSuite) TestTotalsHelpers() {
	single := Totals{Low: 19, High: 19}
	pair := Totals{Low: 11, High: 21}

	s.False(single.HasAlternate())
	s.True(pair.HasAlternate())
	s.True(pair.IsBlackjackPattern())
	s.False(Totals{Low: 21, High: 21}.IsBlackjackPattern(), "A single 21 is not the blackjack pattern")
	s.True(pair.Contains(21))
	s.False(single.Contains(21))
	s.Equal(21, pair.Best())
}

func (s *TotalsTestSuite) TestEvaluationStatus() {
	s.Equal(entities.StatusBust, EvaluationBust.Status())
	s.Equal(entities.StatusBlackjack, EvaluationBlackjack.Status())
	s.Equal(entities.StatusHas21, EvaluationHas21.Status())
	s.Equal(entities.StatusLessThan21, EvaluationLessThan21.Status())
}

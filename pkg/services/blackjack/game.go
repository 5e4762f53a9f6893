package blackjack

import (
	"errors"
	"math/rand"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/services/wallet"
	"github.com/google/uuid"
)

// Settlement describes how the last round ended
type Settlement struct {
	RoundID string
	Outcome Outcome
	Status  entities.GameStatus
	Bet     int64
	Delta   int64 // ledger movement made at settlement
	// EmptyDeck is set when the round ended because the shoe ran out
	EmptyDeck bool
}

// Game is a single-player blackjack round engine. It is not safe for
// concurrent use; every session owns its own Game.
type Game struct {
	rng           *rand.Rand
	numberOfDecks int
	deck          *entities.Deck
	player        []*entities.Card
	dealer        []*entities.Card
	status        entities.GameStatus
	ledger        *wallet.Ledger
	logger        *logging.Logger

	roundID    string
	roundBet   int64
	settlement *Settlement
}

// Option configures a Game
type Option func(*Game)

// WithLedger uses an existing ledger instead of a fresh 200/5 one
func WithLedger(ledger *wallet.Ledger) Option {
	return func(g *Game) {
		g.ledger = ledger
	}
}

// WithLogger sets the logger used for round events
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// NewGame creates an engine that shuffles with rng and builds shoes of
// numberOfDecks decks. No cards are dealt until Deal.
func NewGame(rng *rand.Rand, numberOfDecks int, opts ...Option) *Game {
	g := &Game{
		rng:           rng,
		numberOfDecks: numberOfDecks,
		status:        entities.StatusInProgress,
		player:        make([]*entities.Card, 0),
		dealer:        make([]*entities.Card, 0),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.ledger == nil {
		g.ledger = wallet.NewDefaultLedger()
	}
	if g.logger == nil {
		g.logger = logging.Default
	}

	return g
}

// NumberOfDecks returns the shoe size fixed at construction
func (g *Game) NumberOfDecks() int {
	return g.numberOfDecks
}

// BuildShuffledDeck replaces the shoe with a freshly shuffled one
func (g *Game) BuildShuffledDeck() {
	g.deck = entities.NewShoe(g.numberOfDecks, g.rng)
}

// CurrentDeck returns the remaining shoe in draw order
func (g *Game) CurrentDeck() []entities.Card {
	if g.deck == nil {
		return []entities.Card{}
	}
	return g.deck.Snapshot()
}

// Deal starts a round: fresh shoe, two cards each dealt player first, and the
// bet debited whatever the balance is
func (g *Game) Deal() {
	g.BuildShuffledDeck()
	g.player = make([]*entities.Card, 0, 2)
	g.dealer = make([]*entities.Card, 0, 2)
	g.roundID = uuid.New().String()
	g.roundBet = g.ledger.Bet()
	g.settlement = nil
	g.status = entities.StatusInProgress

	// player, dealer, player, dealer
	for i := 0; i < 2; i++ {
		if !g.drawInto(&g.player) || !g.drawInto(&g.dealer) {
			break
		}
	}

	if len(g.player) > 0 {
		g.player[0].SetFaceUp()
	}
	if len(g.dealer) > 0 {
		g.dealer[0].SetFaceDown()
	}

	g.ledger.Debit(g.roundBet, entities.TransactionTypeBet, g.roundID)
	g.logger.Debug("dealt round", "round", g.roundID, "bet", g.roundBet, "balance", g.ledger.Balance())

	if g.status == entities.StatusDealerWon {
		// the shoe could not cover the opening deal; the stake is forfeited
		g.recordSettlement(OutcomeLose, 0, true)
	}
}

// drawInto moves the top card onto hand. An empty shoe ends the round for
// the dealer and returns false.
func (g *Game) drawInto(hand *[]*entities.Card) bool {
	card, err := g.deck.Draw()
	if err != nil {
		if errors.Is(err, entities.ErrEmptyDeck) {
			g.logger.Warn("shoe exhausted mid-round", "round", g.roundID)
		}
		g.status = entities.StatusDealerWon
		return false
	}
	*hand = append(*hand, card)
	return true
}

// Hit draws a card for the player. It does nothing unless the round is in
// progress. Busting ends the round without touching the ledger.
func (g *Game) Hit() {
	if g.deck == nil || g.status != entities.StatusInProgress {
		return
	}

	if !g.drawInto(&g.player) {
		g.recordSettlement(OutcomeLose, 0, true)
		return
	}
	g.player[len(g.player)-1].SetFaceUp()

	totals, ok := CalculateTotals(g.player)
	g.status = NextStatusAfterHit(totals, ok)

	if g.status == entities.StatusDealerWon {
		g.recordSettlement(OutcomeLose, 0, false)
		g.logger.Debug("player bust", "round", g.roundID, "cards", len(g.player))
	}
}

// Stand plays out the dealer and settles the bet. Once the round has an
// outcome further calls do nothing, so a round settles exactly once.
func (g *Game) Stand() {
	if g.deck == nil || g.status.IsTerminal() {
		return
	}

	for g.status == entities.StatusInProgress {
		totals, ok := CalculateTotals(g.dealer)
		if !DealerShouldDraw(totals, ok) {
			break
		}
		if !g.drawInto(&g.dealer) {
			break
		}
		g.dealer[len(g.dealer)-1].SetFaceUp()
	}

	if len(g.dealer) > 0 {
		g.dealer[0].SetFaceUp()
	}

	if g.status == entities.StatusDealerWon {
		g.settle(OutcomeLose, true)
		return
	}

	playerTotals, playerOK := CalculateTotals(g.player)
	dealerTotals, dealerOK := CalculateTotals(g.dealer)
	g.settle(Resolve(playerTotals, playerOK, dealerTotals, dealerOK), false)
}

// settle moves the status to the outcome and applies the ledger update
func (g *Game) settle(outcome Outcome, emptyDeck bool) {
	g.status = outcome.Status()
	delta := outcome.LedgerDelta(g.roundBet)

	switch outcome {
	case OutcomeWin:
		g.ledger.Credit(delta, entities.TransactionTypePayout, g.roundID)
	case OutcomePush:
		g.ledger.Credit(delta, entities.TransactionTypePush, g.roundID)
	default:
		g.ledger.Debit(-delta, entities.TransactionTypeLoss, g.roundID)
	}

	g.recordSettlement(outcome, delta, emptyDeck)
	g.logger.Debug("round settled",
		"round", g.roundID, "outcome", outcome, "delta", delta, "balance", g.ledger.Balance())
}

func (g *Game) recordSettlement(outcome Outcome, delta int64, emptyDeck bool) {
	g.settlement = &Settlement{
		RoundID:   g.roundID,
		Outcome:   outcome,
		Status:    g.status,
		Bet:       g.roundBet,
		Delta:     delta,
		EmptyDeck: emptyDeck,
	}
}

// LastSettlement returns how the current round ended, or false while it is
// still being played
func (g *Game) LastSettlement() (Settlement, bool) {
	if g.settlement == nil {
		return Settlement{}, false
	}
	return *g.settlement, true
}

// RoundID identifies the current round; empty before the first deal
func (g *Game) RoundID() string {
	return g.roundID
}

// PlayerHand returns a copy of the player's cards
func (g *Game) PlayerHand() []entities.Card {
	return entities.CopyCards(g.player)
}

// DealerHand returns a copy of the dealer's cards, face-down ones included
func (g *Game) DealerHand() []entities.Card {
	return entities.CopyCards(g.dealer)
}

// PlayerTotals returns the player's totals; ok is false when bust
func (g *Game) PlayerTotals() (Totals, bool) {
	return CalculateTotals(g.player)
}

// DealerTotals returns the dealer's totals; ok is false when bust
func (g *Game) DealerTotals() (Totals, bool) {
	return CalculateTotals(g.dealer)
}

// PlayerEvaluation classifies the player's hand
func (g *Game) PlayerEvaluation() Evaluation {
	return Evaluate(g.player)
}

// DealerEvaluation classifies the dealer's hand
func (g *Game) DealerEvaluation() Evaluation {
	return Evaluate(g.dealer)
}

// Status returns the current game status
func (g *Game) Status() entities.GameStatus {
	return g.status
}

// SetBet sets the wager for the next deal
func (g *Game) SetBet(amount int64) {
	g.ledger.SetBet(amount)
}

// Bet returns the wager for the next deal
func (g *Game) Bet() int64 {
	return g.ledger.Bet()
}

// SetAccountBalance overwrites the account balance
func (g *Game) SetAccountBalance(amount int64) {
	g.ledger.SetBalance(amount)
}

// AccountBalance returns the account balance
func (g *Game) AccountBalance() int64 {
	return g.ledger.Balance()
}

// Ledger exposes the account ledger for reading its journal
func (g *Game) Ledger() *wallet.Ledger {
	return g.ledger
}

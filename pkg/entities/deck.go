package entities

import (
	"errors"
	"math/rand"
)

// ErrEmptyDeck is returned when drawing from an exhausted shoe
var ErrEmptyDeck = errors.New("deck is empty")

// CardsPerDeck is the size of a single standard deck
const CardsPerDeck = 52

type Deck struct {
	Cards []*Card
}

// NewDeck creates numberOfDecks copies of the 52-card set in a fixed order:
// deck by deck, suit by suit, rank by rank
func NewDeck(numberOfDecks int) *Deck {
	if numberOfDecks < 0 {
		numberOfDecks = 0
	}
	cards := make([]*Card, 0, CardsPerDeck*numberOfDecks)

	for i := 0; i < numberOfDecks; i++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				cards = append(cards, NewCard(rank, suit))
			}
		}
	}

	return &Deck{Cards: cards}
}

// NewShoe builds an ordered shoe and shuffles it with rng
func NewShoe(numberOfDecks int, rng *rand.Rand) *Deck {
	deck := NewDeck(numberOfDecks)
	deck.Shuffle(rng)
	return deck
}

// Shuffle shuffles the deck using the caller's random source so shuffles can
// be reproduced from a seed
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (*Card, error) {
	if len(d.Cards) == 0 {
		return nil, ErrEmptyDeck
	}
	card := d.Cards[0]
	d.Cards = d.Cards[1:]
	return card, nil
}

// Remaining returns the number of cards left to draw
func (d *Deck) Remaining() int {
	return len(d.Cards)
}

// Snapshot returns a copy of the remaining cards in draw order
func (d *Deck) Snapshot() []Card {
	return CopyCards(d.Cards)
}

// CopyCards copies cards by value so callers cannot mutate engine state
func CopyCards(cards []*Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = *c
	}
	return out
}

package entities

import "fmt"

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "SPADES"
	Diamonds Suit = "DIAMONDS"
	Hearts   Suit = "HEARTS"
	Clubs    Suit = "CLUBS"
)

// Suits lists the suits in shoe build order
var Suits = []Suit{Spades, Diamonds, Hearts, Clubs}

// Rank represents a card rank
type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

// Ranks lists the ranks in shoe build order
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var rankValues = map[Rank]int{
	Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7, Eight: 8, Nine: 9,
	Ten: 10, Jack: 10, Queen: 10, King: 10,
	Ace: 1,
}

// Value returns the base value of the rank. Aces count as 1 here; the
// evaluator works out the 11 variant.
func (r Rank) Value() int {
	return rankValues[r]
}

// Card represents a playing card. FaceUp only affects display.
type Card struct {
	Rank   Rank
	Suit   Suit
	FaceUp bool
}

// NewCard creates a new face-down card
func NewCard(rank Rank, suit Suit) *Card {
	return &Card{
		Rank: rank,
		Suit: suit,
	}
}

// IsAce reports whether the card is an ace
func (c *Card) IsAce() bool {
	return c.Rank == Ace
}

// SetFaceUp turns the card face up
func (c *Card) SetFaceUp() {
	c.FaceUp = true
}

// SetFaceDown turns the card face down
func (c *Card) SetFaceDown() {
	c.FaceUp = false
}

// String returns the string representation of the card
func (c *Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

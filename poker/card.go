package poker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

type Color int

const (
	Black Color = iota
	Red
)

var allSuits = []Suit{Spades, Hearts, Diamonds, Clubs}

var prettySuits = map[Suit]string{
	Spades:   "♠",
	Hearts:   "❤",
	Diamonds: "♦",
	Clubs:    "♣",
}

var suitNames = map[Suit]string{
	Spades:   "spades",
	Hearts:   "hearts",
	Diamonds: "diamonds",
	Clubs:    "clubs",
}

func AllSuits() []Suit {
	return allSuits
}

// Color is used for display only. Hearts/diamonds are red,
// spades/clubs are black.
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

func (s Suit) Name() string {
	return suitNames[s]
}

func (s Suit) String() string {
	return prettySuits[s]
}

type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

var rankLabels = map[Rank]string{
	Ten:   "T",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

func AllRanks() []Rank {
	ranks := make([]Rank, 0, 13)
	for r := Two; r <= Ace; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

// BaseChips returns the chip value a card of this rank contributes
// when it scores. Face value for 2-10, 10 for J/Q/K, 11 for the ace.
func (r Rank) BaseChips() int {
	switch {
	case r == Ace:
		return 11
	case r >= Jack:
		return 10
	default:
		return int(r)
	}
}

func (r Rank) Label() string {
	if label, ok := rankLabels[r]; ok {
		return label
	}
	return fmt.Sprintf("%d", int(r))
}

func (r Rank) String() string {
	return r.Label()
}

// Card is an immutable (suit, rank) pair with a unique identity.
// Two cards with the same suit and rank are still distinct entities;
// selection and removal always go by ID.
type Card struct {
	ID   uuid.UUID `json:"id"`
	Suit Suit      `json:"suit"`
	Rank Rank      `json:"rank"`
}

func NewCard(suit Suit, rank Rank) Card {
	return Card{
		ID:   uuid.New(),
		Suit: suit,
		Rank: rank,
	}
}

// SameFace reports whether two cards show the same suit and rank,
// ignoring identity.
func (c Card) SameFace(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

func (c Card) BaseChips() int {
	return c.Rank.BaseChips()
}

func (c Card) String() string {
	return c.Rank.Label() + prettySuits[c.Suit]
}

func CardsToString(cards []Card) string {
	var b strings.Builder
	b.Grow(32)
	fmt.Fprintf(&b, "[")
	for _, c := range cards {
		fmt.Fprintf(&b, " %s ", c.String())
	}
	fmt.Fprintf(&b, "]")
	return b.String()
}

func PrintCards(cards []Card) string {
	return CardsToString(cards)
}

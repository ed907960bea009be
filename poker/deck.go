package poker

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Deck is an ordered sequence of cards. A fresh deck holds one card
// for each of the 52 (suit, rank) combinations and shrinks as cards
// are drawn; it is never refilled except by building a new deck.
type Deck struct {
	cards   []Card
	randGen *rand.Rand
}

func newSeed() rand.Source {
	var b [8]byte
	_, err := crypto_rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewDeck returns a full 52-card deck in uniformly random order.
// A nil source seeds from crypto/rand.
func NewDeck(source rand.Source) *Deck {
	if source == nil {
		source = newSeed()
	}
	deck := &Deck{randGen: rand.New(source)}
	deck.cards = fullDeckCards()
	deck.Shuffle()
	return deck
}

func NewDeckNoShuffle() *Deck {
	return &Deck{
		cards:   fullDeckCards(),
		randGen: rand.New(newSeed()),
	}
}

// Shuffle re-randomizes the remaining cards in place (Fisher-Yates,
// every permutation equally likely).
func (deck *Deck) Shuffle() *Deck {
	for i := len(deck.cards) - 1; i > 0; i-- {
		loc := deck.randGen.Intn(i + 1)
		deck.cards[i], deck.cards[loc] = deck.cards[loc], deck.cards[i]
	}
	return deck
}

// Draw removes and returns the top n cards. When fewer than n remain,
// the remainder is returned without error.
func (deck *Deck) Draw(n int) []Card {
	if n > len(deck.cards) {
		n = len(deck.cards)
	}
	cards := make([]Card, n)
	copy(cards, deck.cards[:n])
	deck.cards = deck.cards[n:]
	return cards
}

func (deck *Deck) Size() int {
	return len(deck.cards)
}

func (deck *Deck) Empty() bool {
	return len(deck.cards) == 0
}

// Cards returns a copy of the remaining cards in order, top first.
func (deck *Deck) Cards() []Card {
	cards := make([]Card, len(deck.cards))
	copy(cards, deck.cards)
	return cards
}

// DeckFromCards rebuilds a deck from a saved card order.
func DeckFromCards(cards []Card) *Deck {
	deck := &Deck{randGen: rand.New(newSeed())}
	deck.cards = make([]Card, len(cards))
	copy(deck.cards, cards)
	return deck
}

func (deck *Deck) PrettyPrint() string {
	return CardsToString(deck.cards)
}

func fullDeckCards() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range allSuits {
		for _, rank := range AllRanks() {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

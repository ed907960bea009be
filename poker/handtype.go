package poker

// HandType is the closed, totally ordered set of poker hand types
// this game recognizes. Royal flush is treated as a straight flush.
type HandType int

const (
	HighCard HandType = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var handTypeNames = map[HandType]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

// baseScores holds the fixed (chips, mult) pair each hand type starts
// scoring from.
var baseScores = map[HandType][2]int{
	HighCard:      {5, 1},
	Pair:          {10, 2},
	TwoPair:       {20, 2},
	ThreeOfAKind:  {30, 3},
	Straight:      {30, 4},
	Flush:         {35, 4},
	FullHouse:     {40, 4},
	FourOfAKind:   {60, 7},
	StraightFlush: {100, 8},
}

// containedTypes encodes which lower hand types a higher type
// structurally subsumes: a four of a kind is built out of a three of
// a kind and a pair, but a straight flush's five distinct ranks hold
// no pair. Used by effects that trigger on "hand contains X"
// independent of the winning classification.
var containedTypes = map[HandType][]HandType{
	StraightFlush: {Flush, Straight, HighCard},
	FourOfAKind:   {ThreeOfAKind, Pair, HighCard},
	FullHouse:     {ThreeOfAKind, TwoPair, Pair, HighCard},
	Flush:         {HighCard},
	Straight:      {HighCard},
	ThreeOfAKind:  {Pair, HighCard},
	TwoPair:       {Pair, HighCard},
	Pair:          {HighCard},
	HighCard:      {},
}

func (t HandType) Name() string {
	return handTypeNames[t]
}

func (t HandType) String() string {
	return handTypeNames[t]
}

func (t HandType) BaseChips() int {
	return baseScores[t][0]
}

func (t HandType) BaseMult() int {
	return baseScores[t][1]
}

// Contains reports whether this hand type structurally subsumes
// the other. Every type contains itself.
func (t HandType) Contains(other HandType) bool {
	if t == other {
		return true
	}
	for _, contained := range containedTypes[t] {
		if contained == other {
			return true
		}
	}
	return false
}

// HandEvaluation is the result of classifying a played selection:
// the winning hand type, the cards that score, and the played cards
// that do not (kept for effects that inspect unscored cards).
type HandEvaluation struct {
	HandType     HandType
	ScoringCards []Card
	OtherCards   []Card
}

// BaseChips is the hand type's base chips plus each scoring card's
// chip value.
func (e HandEvaluation) BaseChips() int {
	chips := e.HandType.BaseChips()
	for _, card := range e.ScoringCards {
		chips += card.BaseChips()
	}
	return chips
}

func (e HandEvaluation) BaseMult() int {
	return e.HandType.BaseMult()
}

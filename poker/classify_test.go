package poker

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testSuits = map[byte]Suit{
	's': Spades,
	'h': Hearts,
	'd': Diamonds,
	'c': Clubs,
}

var testRanks = map[byte]Rank{
	'2': Two, '3': Three, '4': Four, '5': Five, '6': Six,
	'7': Seven, '8': Eight, '9': Nine, 'T': Ten,
	'J': Jack, 'Q': Queen, 'K': King, 'A': Ace,
}

// cards builds a hand from two-character descriptors like "As" or "Th".
func cards(descs ...string) []Card {
	built := make([]Card, 0, len(descs))
	for _, d := range descs {
		built = append(built, NewCard(testSuits[d[1]], testRanks[d[0]]))
	}
	return built
}

func faces(cs []Card) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, string(c.Rank.Label()[0])+string(suitNames[c.Suit][0]))
	}
	sort.Strings(out)
	return out
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name         string
		in           []string
		minRun       int
		blur         bool
		expectedType HandType
		expectedWin  []string
	}{
		{
			name:         "royal straight flush",
			in:           []string{"As", "Ks", "Qs", "Js", "Ts"},
			minRun:       5,
			expectedType: StraightFlush,
			expectedWin:  []string{"As", "Js", "Ks", "Qs", "Ts"},
		},
		{
			name:         "wheel straight not flush",
			in:           []string{"As", "2h", "3d", "4c", "5s"},
			minRun:       5,
			expectedType: Straight,
			expectedWin:  []string{"2h", "3d", "4c", "5s", "As"},
		},
		{
			name:         "full house",
			in:           []string{"7h", "7d", "7s", "2c", "2d"},
			minRun:       5,
			expectedType: FullHouse,
			expectedWin:  []string{"2c", "2d", "7d", "7h", "7s"},
		},
		{
			name:         "four of a kind ignores kicker",
			in:           []string{"9h", "9d", "9s", "9c", "Ks"},
			minRun:       5,
			expectedType: FourOfAKind,
			expectedWin:  []string{"9c", "9d", "9h", "9s"},
		},
		{
			name:         "flush scores every suited card",
			in:           []string{"2h", "5h", "9h", "Jh", "Kh"},
			minRun:       5,
			expectedType: Flush,
			expectedWin:  []string{"2h", "5h", "9h", "Jh", "Kh"},
		},
		{
			name:         "four card flush with modifier",
			in:           []string{"2h", "5h", "9h", "Jh", "Ks"},
			minRun:       4,
			expectedType: Flush,
			expectedWin:  []string{"2h", "5h", "9h", "Jh"},
		},
		{
			name:         "blurred suits not enough for four card flush",
			in:           []string{"2h", "5h", "9d", "9c", "Ks"},
			minRun:       4,
			blur:         true,
			expectedType: Pair,
			expectedWin:  []string{"9c", "9d"},
		},
		{
			name:         "blurred suits make a red flush",
			in:           []string{"2h", "5h", "9d", "Jd", "Kh"},
			minRun:       5,
			blur:         true,
			expectedType: Flush,
			expectedWin:  []string{"2h", "5h", "9d", "Jd", "Kh"},
		},
		{
			name:         "four card wheel straight",
			in:           []string{"As", "2h", "3d", "4c", "Kh"},
			minRun:       4,
			expectedType: Straight,
			expectedWin:  []string{"2h", "3d", "4c", "As"},
		},
		{
			name:         "straight run picks highest window",
			in:           []string{"9h", "8d", "7s", "6c", "5h"},
			minRun:       4,
			expectedType: Straight,
			expectedWin:  []string{"6c", "7s", "8d", "9h"},
		},
		{
			name:         "three of a kind",
			in:           []string{"Qh", "Qd", "Qs", "2c", "9d"},
			minRun:       5,
			expectedType: ThreeOfAKind,
			expectedWin:  []string{"Qd", "Qh", "Qs"},
		},
		{
			name:         "two pair keeps the two highest pairs",
			in:           []string{"Qh", "Qd", "2s", "2c", "9d"},
			minRun:       5,
			expectedType: TwoPair,
			expectedWin:  []string{"2c", "2s", "Qd", "Qh"},
		},
		{
			name:         "pair",
			in:           []string{"Qh", "Qd", "4s", "2c", "9d"},
			minRun:       5,
			expectedType: Pair,
			expectedWin:  []string{"Qd", "Qh"},
		},
		{
			name:         "high card scores everything",
			in:           []string{"Qh", "8d", "4s", "2c", "9d"},
			minRun:       5,
			expectedType: HighCard,
			expectedWin:  []string{"2c", "4s", "8d", "9d", "Qh"},
		},
	}

	for _, tc := range testCases {
		hand := cards(tc.in...)
		eval := Classify(hand, tc.minRun, tc.blur)
		if eval.HandType != tc.expectedType {
			t.Errorf("Test case [%s] expected type %s, actual %s", tc.name, tc.expectedType, eval.HandType)
			continue
		}
		if !cmp.Equal(faces(eval.ScoringCards), tc.expectedWin) {
			t.Errorf("Test case [%s] expected scoring %v, actual %v", tc.name, tc.expectedWin, faces(eval.ScoringCards))
		}
		if len(eval.ScoringCards)+len(eval.OtherCards) != len(hand) {
			t.Errorf("Test case [%s] scoring+other should cover all played cards", tc.name)
		}
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	eval := Classify(nil, DefaultMinRunLength, false)
	if eval.HandType != HighCard {
		t.Errorf("empty input expected HighCard, actual %s", eval.HandType)
	}
	if len(eval.ScoringCards) != 0 || len(eval.OtherCards) != 0 {
		t.Errorf("empty input should yield empty partitions")
	}
}

func TestClassifyOrderInvariant(t *testing.T) {
	hand := cards("7h", "7d", "7s", "2c", "2d")
	permutations := [][]int{
		{0, 1, 2, 3, 4},
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{3, 4, 0, 2, 1},
	}
	for _, perm := range permutations {
		shuffled := make([]Card, len(hand))
		for i, p := range perm {
			shuffled[i] = hand[p]
		}
		eval := Classify(shuffled, DefaultMinRunLength, false)
		if eval.HandType != FullHouse {
			t.Errorf("permutation %v expected FullHouse, actual %s", perm, eval.HandType)
		}
		if !cmp.Equal(faces(eval.ScoringCards), []string{"2c", "2d", "7d", "7h", "7s"}) {
			t.Errorf("permutation %v scoring set changed: %v", perm, faces(eval.ScoringCards))
		}
	}
}

func TestClassifyStraightFlushOnlyScoresTheRun(t *testing.T) {
	hand := cards("9s", "8s", "7s", "6s", "5s", "2s")
	eval := Classify(hand, DefaultMinRunLength, false)
	if eval.HandType != StraightFlush {
		t.Fatalf("expected StraightFlush, actual %s", eval.HandType)
	}
	if !cmp.Equal(faces(eval.ScoringCards), []string{"5s", "6s", "7s", "8s", "9s"}) {
		t.Errorf("expected only the run to score, actual %v", faces(eval.ScoringCards))
	}
	if !cmp.Equal(faces(eval.OtherCards), []string{"2s"}) {
		t.Errorf("expected 2s left out, actual %v", faces(eval.OtherCards))
	}
}

func TestContainedRankTypes(t *testing.T) {
	testCases := []struct {
		name     string
		in       []string
		expected []HandType
	}{
		{
			name:     "quads contain everything rank based",
			in:       []string{"9h", "9d", "9s", "9c", "Ks"},
			expected: []HandType{HighCard, Pair, ThreeOfAKind, FourOfAKind},
		},
		{
			name:     "full house by counts",
			in:       []string{"7h", "7d", "7s", "2c", "2d"},
			expected: []HandType{HighCard, Pair, TwoPair, ThreeOfAKind, FullHouse},
		},
		{
			name:     "straight has no rank pairs",
			in:       []string{"9h", "8d", "7s", "6c", "5h"},
			expected: []HandType{HighCard},
		},
	}

	for _, tc := range testCases {
		got := ContainedRankTypes(cards(tc.in...))
		want := make(map[HandType]bool)
		for _, ht := range tc.expected {
			want[ht] = true
		}
		if !cmp.Equal(got, want) {
			t.Errorf("Test case [%s] expected %v, actual %v", tc.name, want, got)
		}
	}
}

func TestHandTypeContains(t *testing.T) {
	testCases := []struct {
		hand     HandType
		other    HandType
		expected bool
	}{
		{FourOfAKind, Pair, true},
		{FourOfAKind, ThreeOfAKind, true},
		{FourOfAKind, Straight, false},
		{FourOfAKind, Flush, false},
		{StraightFlush, Pair, false},
		{StraightFlush, Flush, true},
		{StraightFlush, Straight, true},
		{FullHouse, TwoPair, true},
		{FullHouse, ThreeOfAKind, true},
		{TwoPair, Pair, true},
		{Pair, HighCard, true},
		{Straight, Pair, false},
		{Flush, Pair, false},
		{Pair, Pair, true},
	}

	for _, tc := range testCases {
		if got := tc.hand.Contains(tc.other); got != tc.expected {
			t.Errorf("%s.Contains(%s) expected %v, actual %v", tc.hand, tc.other, tc.expected, got)
		}
	}
}

package poker

import (
	"sort"

	"github.com/google/uuid"
)

// DefaultMinRunLength is the card count needed for straights and
// flushes under standard rules. Certain modifiers lower it to 4.
const DefaultMinRunLength = 5

// effectiveSuit maps a card's suit to its equivalence class. When
// blurSuits is set, hearts/diamonds collapse into one class and
// spades/clubs into the other; flush detection only, never used for
// exact-card checks.
func effectiveSuit(suit Suit, blurSuits bool) Suit {
	if !blurSuits {
		return suit
	}
	switch suit {
	case Diamonds:
		return Hearts
	case Clubs:
		return Spades
	}
	return suit
}

// ClassifyDefault classifies under standard rules (5-card runs, no
// suit blurring).
func ClassifyDefault(cards []Card) HandEvaluation {
	return Classify(cards, DefaultMinRunLength, false)
}

// Classify determines the best hand type for the played cards and
// partitions them into scoring and non-scoring sets. minRunLength is
// the minimum card count for straights and flushes; blurSuits merges
// red suits and black suits for flush detection. The result depends
// only on the multiset of cards, not their order.
func Classify(cards []Card, minRunLength int, blurSuits bool) HandEvaluation {
	if len(cards) == 0 {
		return HandEvaluation{HandType: HighCard, ScoringCards: []Card{}, OtherCards: []Card{}}
	}

	sorted := sortByRankDesc(cards)

	rankCounts := make(map[Rank]int)
	for _, card := range cards {
		rankCounts[card.Rank]++
	}

	suitCounts := make(map[Suit]int)
	for _, card := range cards {
		suitCounts[effectiveSuit(card.Suit, blurSuits)]++
	}

	var flushSuit Suit
	isFlush := false
	for _, suit := range allSuits {
		if suitCounts[suit] >= minRunLength {
			flushSuit = suit
			isFlush = true
			break
		}
	}

	straightCards, isStraight := findStraight(sorted, minRunLength)

	var flushCards []Card
	if isFlush {
		for _, card := range sorted {
			if effectiveSuit(card.Suit, blurSuits) == flushSuit {
				flushCards = append(flushCards, card)
			}
		}
	}

	// 1. Straight flush: the run must exist within the flush suit
	// class itself. Only the run scores, not the whole flush.
	if isFlush && isStraight {
		if run, ok := findStraight(flushCards, minRunLength); ok {
			return partition(sorted, run, StraightFlush)
		}
	}

	// 2. Four of a kind. Unaffected by minRunLength.
	if rank, ok := bestRankWithCount(rankCounts, 4); ok {
		scoring := takeByRank(sorted, rank, 4)
		return partition(sorted, scoring, FourOfAKind)
	}

	// 3. Full house: a triple plus a pair of a different rank.
	if threeRank, ok := bestRankWithCount(rankCounts, 3); ok {
		if twoRank, ok := bestOtherRankWithCount(rankCounts, 2, threeRank); ok {
			scoring := append(takeByRank(sorted, threeRank, 3), takeByRank(sorted, twoRank, 2)...)
			return partition(sorted, scoring, FullHouse)
		}
	}

	// 4. Flush: every card of the suit class scores, even beyond
	// minRunLength.
	if isFlush {
		return partition(sorted, flushCards, Flush)
	}

	// 5. Straight.
	if isStraight {
		return partition(sorted, straightCards, Straight)
	}

	// 6. Three of a kind.
	if rank, ok := bestRankWithCount(rankCounts, 3); ok {
		scoring := takeByRank(sorted, rank, 3)
		return partition(sorted, scoring, ThreeOfAKind)
	}

	// 7. Two pair: the two highest pairs score.
	if pairRanks := ranksWithCount(rankCounts, 2); len(pairRanks) >= 2 {
		scoring := append(takeByRank(sorted, pairRanks[0], 2), takeByRank(sorted, pairRanks[1], 2)...)
		return partition(sorted, scoring, TwoPair)
	}

	// 8. Pair.
	if rank, ok := bestRankWithCount(rankCounts, 2); ok {
		scoring := takeByRank(sorted, rank, 2)
		return partition(sorted, scoring, Pair)
	}

	// 9. High card: everything played scores.
	return HandEvaluation{HandType: HighCard, ScoringCards: sorted, OtherCards: []Card{}}
}

// ContainedRankTypes analyzes the played cards by rank counts alone
// (suits ignored) and reports every rank-based hand type present.
// Effects that trigger on "contains a pair" etc. consult this in
// addition to the winning type's containment table.
func ContainedRankTypes(cards []Card) map[HandType]bool {
	types := map[HandType]bool{HighCard: true}

	counts := make(map[Rank]int)
	for _, card := range cards {
		counts[card.Rank]++
	}

	pairs, trips, quads := 0, 0, 0
	for _, n := range counts {
		if n >= 2 {
			pairs++
		}
		if n >= 3 {
			trips++
		}
		if n >= 4 {
			quads++
		}
	}

	if pairs >= 1 {
		types[Pair] = true
	}
	if pairs >= 2 {
		types[TwoPair] = true
	}
	if trips >= 1 {
		types[ThreeOfAKind] = true
	}
	if quads >= 1 {
		types[FourOfAKind] = true
	}
	if trips >= 1 && pairs >= 2 {
		types[FullHouse] = true
	}

	return types
}

// findStraight looks for a contiguous descending run of at least
// minRunLength distinct ranks, returning one card per rank of the
// run. The ace-low wheel is recognized: A-5-4-3-2 for runs of 5,
// A-4-3-2 for runs of 4.
func findStraight(sorted []Card, minRunLength int) ([]Card, bool) {
	unique := uniqueByRank(sorted)
	if len(unique) < minRunLength {
		return nil, false
	}

	for i := 0; i+minRunLength <= len(unique); i++ {
		window := unique[i : i+minRunLength]
		contiguous := true
		for k := 0; k < len(window)-1; k++ {
			if window[k].Rank-window[k+1].Rank != 1 {
				contiguous = false
				break
			}
		}
		if contiguous {
			run := make([]Card, minRunLength)
			copy(run, window)
			return run, true
		}
	}

	// Wheel: ace counts as rank 1 below the bottom run.
	var wheelRanks []Rank
	switch minRunLength {
	case 5:
		wheelRanks = []Rank{Ace, Five, Four, Three, Two}
	case 4:
		wheelRanks = []Rank{Ace, Four, Three, Two}
	default:
		return nil, false
	}
	run := make([]Card, 0, len(wheelRanks))
	for _, want := range wheelRanks {
		found := false
		for _, card := range unique {
			if card.Rank == want {
				run = append(run, card)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return run, true
}

func sortByRankDesc(cards []Card) []Card {
	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})
	return sorted
}

// uniqueByRank keeps the first card seen for each rank. Input must
// already be sorted by descending rank.
func uniqueByRank(sorted []Card) []Card {
	unique := make([]Card, 0, len(sorted))
	seen := make(map[Rank]bool)
	for _, card := range sorted {
		if !seen[card.Rank] {
			seen[card.Rank] = true
			unique = append(unique, card)
		}
	}
	return unique
}

// bestRankWithCount returns the highest rank appearing at least
// min times.
func bestRankWithCount(counts map[Rank]int, min int) (Rank, bool) {
	best, found := Rank(0), false
	for rank, n := range counts {
		if n >= min && rank > best {
			best = rank
			found = true
		}
	}
	return best, found
}

func bestOtherRankWithCount(counts map[Rank]int, min int, exclude Rank) (Rank, bool) {
	best, found := Rank(0), false
	for rank, n := range counts {
		if rank != exclude && n >= min && rank > best {
			best = rank
			found = true
		}
	}
	return best, found
}

// ranksWithCount returns the ranks with at least min cards, highest
// first.
func ranksWithCount(counts map[Rank]int, min int) []Rank {
	var ranks []Rank
	for rank, n := range counts {
		if n >= min {
			ranks = append(ranks, rank)
		}
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
	return ranks
}

// takeByRank returns the first n cards of the given rank in the
// sorted order.
func takeByRank(sorted []Card, rank Rank, n int) []Card {
	taken := make([]Card, 0, n)
	for _, card := range sorted {
		if card.Rank == rank {
			taken = append(taken, card)
			if len(taken) == n {
				break
			}
		}
	}
	return taken
}

// partition splits the sorted played cards into the scoring set and
// the rest, preserving order.
func partition(sorted []Card, scoring []Card, handType HandType) HandEvaluation {
	inScoring := make(map[uuid.UUID]bool, len(scoring))
	for _, card := range scoring {
		inScoring[card.ID] = true
	}
	others := make([]Card, 0, len(sorted)-len(scoring))
	for _, card := range sorted {
		if !inScoring[card.ID] {
			others = append(others, card)
		}
	}
	return HandEvaluation{HandType: handType, ScoringCards: scoring, OtherCards: others}
}

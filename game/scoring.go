package game

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/jokerdeck/server/gamerules"
	"github.com/jokerdeck/server/poker"
)

// BaseScore is the (chips, mult) pair a hand type starts from.
type BaseScore struct {
	Chips int
	Mult  int
}

// ScoreTable maps every hand type to its base score. A nil table
// falls back to the standard values.
type ScoreTable map[poker.HandType]BaseScore

func DefaultScoreTable() ScoreTable {
	table := make(ScoreTable)
	for ht := poker.HighCard; ht <= poker.StraightFlush; ht++ {
		table[ht] = BaseScore{Chips: ht.BaseChips(), Mult: ht.BaseMult()}
	}
	return table
}

// ScoreTableFromRules overlays the rules' hand-score overrides on the
// standard table.
func ScoreTableFromRules(rules *gamerules.Rules) (ScoreTable, error) {
	table := DefaultScoreTable()
	for _, hs := range rules.HandScores {
		ht, ok := handTypesByName[hs.Hand]
		if !ok {
			return nil, errors.Errorf("hand score override names unknown hand [%s]", hs.Hand)
		}
		table[ht] = BaseScore{Chips: hs.Chips, Mult: hs.Mult}
	}
	return table, nil
}

// ScoreStep is one externally observable state of the scoring fold:
// the accumulators after a step and a description of what moved them.
type ScoreStep struct {
	Chips       int    `json:"chips"`
	Mult        int    `json:"mult"`
	Total       int    `json:"total"`
	Description string `json:"description"`
}

type ScoreResult struct {
	Chips int         `json:"chips"`
	Mult  int         `json:"mult"`
	Total int         `json:"total"`
	Trace []ScoreStep `json:"trace"`
}

// Score folds the active jokers, in acquisition order, over the base
// score of an evaluated hand. The trace records the base step, every
// triggering joker, and the final total; jokers that do not trigger
// leave the accumulators untouched and add no step. Pure function.
func Score(eval poker.HandEvaluation, jokers []Joker, table ScoreTable) ScoreResult {
	if table == nil {
		table = DefaultScoreTable()
	}

	base := table[eval.HandType]
	chips := base.Chips
	for _, card := range eval.ScoringCards {
		chips += card.BaseChips()
	}
	mult := base.Mult

	trace := []ScoreStep{{
		Chips:       chips,
		Mult:        mult,
		Total:       chips * mult,
		Description: eval.HandType.Name(),
	}}

	played := append(append([]poker.Card{}, eval.ScoringCards...), eval.OtherCards...)
	containedTypes := poker.ContainedRankTypes(played)

	for _, joker := range jokers {
		triggered := false
		var description string

		switch joker.Effect.Kind {
		case EffectGlobalMult:
			mult += joker.Effect.Value
			description = fmt.Sprintf("%s: + %d Mult", joker.Name, joker.Effect.Value)
			triggered = true

		case EffectSuitChips:
			// Matches the card's printed suit; suit blurring is a
			// flush-detection concept and never applies here.
			for _, card := range eval.ScoringCards {
				if card.Suit == joker.Effect.Suit {
					triggered = true
					break
				}
			}
			if triggered {
				chips += joker.Effect.Value
				description = fmt.Sprintf("%s: + %d Chips", joker.Name, joker.Effect.Value)
			}

		case EffectTypeMult:
			if eval.HandType.Contains(joker.Effect.Hand) || containedTypes[joker.Effect.Hand] {
				mult += joker.Effect.Value
				description = fmt.Sprintf("%s: + %d Mult", joker.Name, joker.Effect.Value)
				triggered = true
			}

		case EffectTypeChips:
			if eval.HandType.Contains(joker.Effect.Hand) || containedTypes[joker.Effect.Hand] {
				chips += joker.Effect.Value
				description = fmt.Sprintf("%s: + %d Chips", joker.Name, joker.Effect.Value)
				triggered = true
			}

		case EffectFourCardHands, EffectBlurredSuits:
			// Passive. Consumed as classifier configuration before
			// scoring starts.
		}

		if triggered {
			trace = append(trace, ScoreStep{
				Chips:       chips,
				Mult:        mult,
				Total:       chips * mult,
				Description: description,
			})
		}
	}

	total := chips * mult
	trace = append(trace, ScoreStep{
		Chips:       chips,
		Mult:        mult,
		Total:       total,
		Description: "Total",
	})

	return ScoreResult{
		Chips: chips,
		Mult:  mult,
		Total: total,
		Trace: trace,
	}
}

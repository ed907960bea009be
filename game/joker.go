package game

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jokerdeck/server/gamerules"
	"github.com/jokerdeck/server/poker"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

type EffectKind int

const (
	EffectGlobalMult EffectKind = iota + 1
	EffectSuitChips
	EffectTypeMult
	EffectTypeChips
	EffectFourCardHands
	EffectBlurredSuits
)

// JokerEffect is a closed tagged union: Kind selects the variant and
// only that variant's parameter fields are meaningful. The scoring
// fold switches over Kind exhaustively.
type JokerEffect struct {
	Kind  EffectKind     `json:"kind"`
	Suit  poker.Suit     `json:"suit,omitempty"`
	Hand  poker.HandType `json:"hand,omitempty"`
	Value int            `json:"value,omitempty"`
}

func GlobalMult(value int) JokerEffect {
	return JokerEffect{Kind: EffectGlobalMult, Value: value}
}

func SuitChips(suit poker.Suit, value int) JokerEffect {
	return JokerEffect{Kind: EffectSuitChips, Suit: suit, Value: value}
}

func TypeMult(hand poker.HandType, value int) JokerEffect {
	return JokerEffect{Kind: EffectTypeMult, Hand: hand, Value: value}
}

func TypeChips(hand poker.HandType, value int) JokerEffect {
	return JokerEffect{Kind: EffectTypeChips, Hand: hand, Value: value}
}

func FourCardHands() JokerEffect {
	return JokerEffect{Kind: EffectFourCardHands}
}

func BlurredSuits() JokerEffect {
	return JokerEffect{Kind: EffectBlurredSuits}
}

// Joker is a passive modifier owned by the player. Immutable once
// created except for identity reassignment when a copy is offered or
// acquired.
type Joker struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Effect      JokerEffect `json:"effect"`
	Cost        int         `json:"cost"`
	Rarity      Rarity      `json:"rarity"`
}

// withNewID returns a copy carrying a fresh identity. Shop offers and
// acquisitions always hand out new identities so two purchases of the
// same catalog entry stay distinguishable.
func (j Joker) withNewID() Joker {
	j.ID = uuid.New()
	return j
}

var suitsByName = map[string]poker.Suit{
	"spades":   poker.Spades,
	"hearts":   poker.Hearts,
	"diamonds": poker.Diamonds,
	"clubs":    poker.Clubs,
}

var handTypesByName = map[string]poker.HandType{
	"High Card":       poker.HighCard,
	"Pair":            poker.Pair,
	"Two Pair":        poker.TwoPair,
	"Three of a Kind": poker.ThreeOfAKind,
	"Straight":        poker.Straight,
	"Flush":           poker.Flush,
	"Full House":      poker.FullHouse,
	"Four of a Kind":  poker.FourOfAKind,
	"Straight Flush":  poker.StraightFlush,
}

// BuildCatalog turns the rules catalog into live jokers. The rules
// are expected to be validated already; unknown names still come back
// as errors rather than panics.
func BuildCatalog(rules *gamerules.Rules) ([]Joker, error) {
	catalog := make([]Joker, 0, len(rules.Catalog))
	for _, spec := range rules.Catalog {
		effect, err := effectFromSpec(spec)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad catalog entry [%s]", spec.Name)
		}
		catalog = append(catalog, Joker{
			ID:          uuid.New(),
			Name:        spec.Name,
			Description: spec.Description,
			Effect:      effect,
			Cost:        spec.Cost,
			Rarity:      Rarity(spec.Rarity),
		})
	}
	return catalog, nil
}

func effectFromSpec(spec gamerules.JokerSpec) (JokerEffect, error) {
	switch spec.Effect {
	case gamerules.EffectGlobalMult:
		return GlobalMult(spec.Value), nil
	case gamerules.EffectSuitChips:
		suit, ok := suitsByName[spec.Suit]
		if !ok {
			return JokerEffect{}, errors.Errorf("unknown suit [%s]", spec.Suit)
		}
		return SuitChips(suit, spec.Value), nil
	case gamerules.EffectTypeMult:
		hand, ok := handTypesByName[spec.Hand]
		if !ok {
			return JokerEffect{}, errors.Errorf("unknown hand [%s]", spec.Hand)
		}
		return TypeMult(hand, spec.Value), nil
	case gamerules.EffectTypeChips:
		hand, ok := handTypesByName[spec.Hand]
		if !ok {
			return JokerEffect{}, errors.Errorf("unknown hand [%s]", spec.Hand)
		}
		return TypeChips(hand, spec.Value), nil
	case gamerules.EffectFourCardHands:
		return FourCardHands(), nil
	case gamerules.EffectBlurredSuits:
		return BlurredSuits(), nil
	}
	return JokerEffect{}, errors.Errorf("unknown effect [%s]", spec.Effect)
}

// ClassifierConfig derives the classifier settings from the active
// jokers: a four-card-hands joker lowers the run length to 4, a
// blurred-suits joker merges red and black suits for flushes.
func ClassifierConfig(jokers []Joker) (minRunLength int, blurSuits bool) {
	minRunLength = poker.DefaultMinRunLength
	for _, joker := range jokers {
		switch joker.Effect.Kind {
		case EffectFourCardHands:
			minRunLength = 4
		case EffectBlurredSuits:
			blurSuits = true
		}
	}
	return minRunLength, blurSuits
}

package gamerules

import (
	"io/ioutil"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Rules contains everything tunable about a run: round structure,
// economy, hand-type base scores and the joker catalog. The zero
// value is not usable; start from DefaultRules or ReadRules.
type Rules struct {
	Round      Round       `yaml:"round"`
	Economy    Economy     `yaml:"economy"`
	HandScores []HandScore `yaml:"hand-scores"`
	Catalog    []JokerSpec `yaml:"jokers"`
}

type Round struct {
	Hands         int     `yaml:"hands"`
	Discards      int     `yaml:"discards"`
	HandSize      int     `yaml:"hand-size"`
	SelectionMax  int     `yaml:"selection-max"`
	InitialTarget int     `yaml:"initial-target"`
	Growth        float64 `yaml:"growth"`
}

type Economy struct {
	BaseReward      int `yaml:"base-reward"`
	InterestDivisor int `yaml:"interest-divisor"`
	InterestCap     int `yaml:"interest-cap"`
	ShopSlots       int `yaml:"shop-slots"`
	PackSize        int `yaml:"pack-size"`
	PackCost        int `yaml:"pack-cost"`
	MaxJokers       int `yaml:"max-jokers"`
}

// HandScore overrides the base (chips, mult) pair for one hand type.
type HandScore struct {
	Hand  string `yaml:"hand"`
	Chips int    `yaml:"chips"`
	Mult  int    `yaml:"mult"`
}

// JokerSpec describes one catalog entry as plain data. The game
// package turns these into live jokers.
type JokerSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Effect      string `yaml:"effect"`
	Suit        string `yaml:"suit,omitempty"`
	Hand        string `yaml:"hand,omitempty"`
	Value       int    `yaml:"value,omitempty"`
	Cost        int    `yaml:"cost"`
	Rarity      string `yaml:"rarity"`
}

const (
	EffectGlobalMult    = "global-mult"
	EffectSuitChips     = "suit-chips"
	EffectTypeMult      = "type-mult"
	EffectTypeChips     = "type-chips"
	EffectFourCardHands = "four-card-hands"
	EffectBlurredSuits  = "blurred-suits"
)

var validEffects = mapset.NewSet(
	EffectGlobalMult,
	EffectSuitChips,
	EffectTypeMult,
	EffectTypeChips,
	EffectFourCardHands,
	EffectBlurredSuits,
)

var validRarities = mapset.NewSet("common", "uncommon", "rare", "legendary")

var validSuits = mapset.NewSet("spades", "hearts", "diamonds", "clubs")

var validHands = mapset.NewSet(
	"High Card", "Pair", "Two Pair", "Three of a Kind", "Straight",
	"Flush", "Full House", "Four of a Kind", "Straight Flush",
)

// DefaultRules returns the built-in rule set: standard round shape
// (4 hands, 3 discards, 8-card hand, 5-card selection, target 300
// growing 1.5x) and the stock ten-joker catalog.
func DefaultRules() *Rules {
	return &Rules{
		Round: Round{
			Hands:         4,
			Discards:      3,
			HandSize:      8,
			SelectionMax:  5,
			InitialTarget: 300,
			Growth:        1.5,
		},
		Economy: Economy{
			BaseReward:      4,
			InterestDivisor: 5,
			InterestCap:     5,
			ShopSlots:       2,
			PackSize:        3,
			PackCost:        4,
			MaxJokers:       5,
		},
		Catalog: []JokerSpec{
			{Name: "Joker", Description: "+4 Mult", Effect: EffectGlobalMult, Value: 4, Cost: 2, Rarity: "common"},
			{Name: "Greedy Joker", Description: "Played hearts give +50 Chips", Effect: EffectSuitChips, Suit: "hearts", Value: 50, Cost: 3, Rarity: "common"},
			{Name: "Lusty Joker", Description: "Played diamonds give +50 Chips", Effect: EffectSuitChips, Suit: "diamonds", Value: 50, Cost: 3, Rarity: "common"},
			{Name: "Wrathful Joker", Description: "Played spades give +50 Chips", Effect: EffectSuitChips, Suit: "spades", Value: 50, Cost: 3, Rarity: "common"},
			{Name: "Gluttonous Joker", Description: "Played clubs give +50 Chips", Effect: EffectSuitChips, Suit: "clubs", Value: 50, Cost: 3, Rarity: "common"},
			{Name: "The Duo", Description: "+10 Mult if played hand contains a Pair", Effect: EffectTypeMult, Hand: "Pair", Value: 10, Cost: 4, Rarity: "uncommon"},
			{Name: "The Trio", Description: "+300 Chips if played hand contains a Three of a Kind", Effect: EffectTypeChips, Hand: "Three of a Kind", Value: 300, Cost: 6, Rarity: "uncommon"},
			{Name: "The Family", Description: "+50 Mult if played hand contains a Four of a Kind", Effect: EffectTypeMult, Hand: "Four of a Kind", Value: 50, Cost: 8, Rarity: "rare"},
			{Name: "Four Fingers", Description: "All Flushes and Straights can be made with 4 cards", Effect: EffectFourCardHands, Cost: 10, Rarity: "rare"},
			{Name: "Smeared Joker", Description: "Hearts and Diamonds count as the same suit, Spades and Clubs count as the same suit", Effect: EffectBlurredSuits, Cost: 10, Rarity: "rare"},
		},
	}
}

// ReadRules loads a rules file and overlays it on the defaults, so a
// file only needs to name what it changes.
func ReadRules(fileName string) (*Rules, error) {
	bytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading rules file [%s]", fileName)
	}

	rules := DefaultRules()
	err = yaml.Unmarshal(bytes, rules)
	if err != nil {
		return nil, errors.Wrapf(err, "Error parsing YAML file [%s]", fileName)
	}

	err = rules.Validate()
	if err != nil {
		return nil, errors.Wrapf(err, "Error validating rules file [%s]", fileName)
	}

	return rules, nil
}

func (r *Rules) Validate() error {
	if r.Round.Hands < 1 {
		return errors.New("round must allow at least one hand play")
	}
	if r.Round.HandSize < r.Round.SelectionMax {
		return errors.Errorf("hand size %d cannot be below selection max %d", r.Round.HandSize, r.Round.SelectionMax)
	}
	if r.Round.InitialTarget < 1 {
		return errors.New("initial target must be positive")
	}
	if r.Round.Growth <= 1.0 {
		return errors.New("target growth must be greater than 1")
	}
	if r.Economy.PackSize < 1 || r.Economy.ShopSlots < 1 {
		return errors.New("shop must offer at least one joker and one pack slot")
	}

	names := mapset.NewSet()
	for _, spec := range r.Catalog {
		if spec.Name == "" {
			return errors.New("joker without a name in catalog")
		}
		if !names.Add(spec.Name) {
			return errors.Errorf("duplicate joker name [%s]", spec.Name)
		}
		if !validEffects.Contains(spec.Effect) {
			return errors.Errorf("joker [%s] has unknown effect [%s]", spec.Name, spec.Effect)
		}
		if !validRarities.Contains(spec.Rarity) {
			return errors.Errorf("joker [%s] has unknown rarity [%s]", spec.Name, spec.Rarity)
		}
		if spec.Effect == EffectSuitChips && !validSuits.Contains(spec.Suit) {
			return errors.Errorf("joker [%s] has unknown suit [%s]", spec.Name, spec.Suit)
		}
		if (spec.Effect == EffectTypeMult || spec.Effect == EffectTypeChips) && !validHands.Contains(spec.Hand) {
			return errors.Errorf("joker [%s] has unknown hand [%s]", spec.Name, spec.Hand)
		}
	}

	for _, hs := range r.HandScores {
		if !validHands.Contains(hs.Hand) {
			return errors.Errorf("hand score override names unknown hand [%s]", hs.Hand)
		}
		if hs.Chips < 0 || hs.Mult < 1 {
			return errors.Errorf("hand score override for [%s] is out of range", hs.Hand)
		}
	}

	return nil
}

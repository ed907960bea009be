package game

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jokerdeck/server/logging"
)

var shopLogger = log.With().Str("logger_name", "game::shop").Logger()

// BoosterPack is a purchasable bundle offering a single pick from its
// contents.
type BoosterPack struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Cost     int       `json:"cost"`
	Contents []Joker   `json:"contents"`
}

// generateShop builds the shop inventory for a won round: a row of
// jokers sampled from the common/uncommon pool (excluding names the
// player already owns) and one booster pack sampled from the full
// catalog, rares included.
func (g *GameState) generateShop() {
	g.ShopJokers = nil

	owned := make(map[string]bool, len(g.Jokers))
	for _, joker := range g.Jokers {
		owned[joker.Name] = true
	}

	pool := make([]Joker, 0, len(g.catalog))
	for _, joker := range g.catalog {
		if joker.Rarity == RarityRare || joker.Rarity == RarityLegendary {
			continue
		}
		if owned[joker.Name] {
			continue
		}
		pool = append(pool, joker)
	}

	// Sampling without replacement: shuffle the eligible pool and
	// take from the top.
	g.randGen.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	slots := g.rules.Economy.ShopSlots
	if slots > len(pool) {
		slots = len(pool)
	}
	for i := 0; i < slots; i++ {
		g.ShopJokers = append(g.ShopJokers, pool[i].withNewID())
	}

	g.generateBoosterPack()
}

func (g *GameState) generateBoosterPack() {
	pool := make([]Joker, len(g.catalog))
	copy(pool, g.catalog)
	g.randGen.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	size := g.rules.Economy.PackSize
	if size > len(pool) {
		size = len(pool)
	}
	contents := make([]Joker, 0, size)
	for i := 0; i < size; i++ {
		contents = append(contents, pool[i].withNewID())
	}

	g.Pack = &BoosterPack{
		ID:       uuid.New(),
		Name:     "Standard Pack",
		Cost:     g.rules.Economy.PackCost,
		Contents: contents,
	}
}

// BuyJoker purchases a shop joker by identity. No-op when the joker
// is not offered, money is short, or the joker slots are full.
func (g *GameState) BuyJoker(jokerID uuid.UUID) bool {
	if g.CurrentPhase != PhaseShopping {
		return false
	}

	index := -1
	for i, joker := range g.ShopJokers {
		if joker.ID == jokerID {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}

	joker := g.ShopJokers[index]
	if g.Money < joker.Cost || len(g.Jokers) >= g.rules.Economy.MaxJokers {
		return false
	}

	g.Money -= joker.Cost
	g.Jokers = append(g.Jokers, joker)
	g.ShopJokers = append(g.ShopJokers[:index], g.ShopJokers[index+1:]...)

	shopLogger.Info().
		Str(logging.JokerNameKey, joker.Name).
		Int("cost", joker.Cost).
		Int("money", g.Money).
		Msg("Joker bought")
	return true
}

// SellJoker removes an owned joker and refunds half its cost, floored
// at 1.
func (g *GameState) SellJoker(jokerID uuid.UUID) bool {
	index := -1
	for i, joker := range g.Jokers {
		if joker.ID == jokerID {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}

	joker := g.Jokers[index]
	refund := joker.Cost / 2
	if refund < 1 {
		refund = 1
	}
	g.Jokers = append(g.Jokers[:index], g.Jokers[index+1:]...)
	g.Money += refund

	shopLogger.Info().
		Str(logging.JokerNameKey, joker.Name).
		Int("refund", refund).
		Int("money", g.Money).
		Msg("Joker sold")
	return true
}

// BuyBoosterPack pays for the offered pack and opens it for a single
// pick. No-op without a pack or without the money.
func (g *GameState) BuyBoosterPack() bool {
	if g.CurrentPhase != PhaseShopping {
		return false
	}
	if g.Pack == nil || g.Money < g.Pack.Cost {
		return false
	}

	g.Money -= g.Pack.Cost
	g.PackChoices = g.Pack.Contents
	g.Pack = nil
	return true
}

// PickFromPack takes one joker out of an opened pack. Picking while
// already at the joker limit is rejected and the pack stays open, so
// the player can sell first and pick again.
func (g *GameState) PickFromPack(jokerID uuid.UUID) bool {
	if g.PackChoices == nil {
		return false
	}

	index := -1
	for i, joker := range g.PackChoices {
		if joker.ID == jokerID {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}

	if len(g.Jokers) >= g.rules.Economy.MaxJokers {
		return false
	}

	g.Jokers = append(g.Jokers, g.PackChoices[index].withNewID())
	g.PackChoices = nil
	return true
}

// SkipPack closes an opened pack without taking anything.
func (g *GameState) SkipPack() bool {
	if g.PackChoices == nil {
		return false
	}
	g.PackChoices = nil
	return true
}

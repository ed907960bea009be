package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// winRound drives a started game into the shopping phase.
func winRound(t *testing.T, g *GameState) {
	t.Helper()
	g.CurrentScore = g.TargetScore
	forceHand(g, cards("7h", "7d"))
	_, ok := g.Play()
	require.True(t, ok)
	require.Equal(t, PhaseShopping, g.CurrentPhase)
}

func TestGenerateShopInventory(t *testing.T) {
	g := newTestGame(t)
	g.StartNewGame()
	winRound(t, g)

	require.Len(t, g.ShopJokers, 2)
	for _, joker := range g.ShopJokers {
		assert.NotEqual(t, RarityRare, joker.Rarity)
		assert.NotEqual(t, RarityLegendary, joker.Rarity)
	}
	assert.NotEqual(t, g.ShopJokers[0].Name, g.ShopJokers[1].Name)

	require.NotNil(t, g.Pack)
	assert.Equal(t, 4, g.Pack.Cost)
	require.Len(t, g.Pack.Contents, 3)
	seen := make(map[string]bool)
	for _, joker := range g.Pack.Contents {
		assert.False(t, seen[joker.Name], "pack sampled with replacement")
		seen[joker.Name] = true
	}
}

func TestGenerateShopExcludesOwnedNames(t *testing.T) {
	g := newTestGame(t)
	g.StartNewGame()

	// Own every common/uncommon except one; the shop can only offer
	// the leftover.
	for _, joker := range g.catalog {
		if joker.Rarity == RarityRare || joker.Rarity == RarityLegendary {
			continue
		}
		if joker.Name == "The Duo" {
			continue
		}
		g.Jokers = append(g.Jokers, joker.withNewID())
	}
	g.rules.Economy.MaxJokers = 99

	winRound(t, g)

	require.Len(t, g.ShopJokers, 1)
	assert.Equal(t, "The Duo", g.ShopJokers[0].Name)
}

func TestBuyJoker(t *testing.T) {
	g := newTestGame(t)
	g.StartNewGame()
	g.Money = 20
	winRound(t, g)

	moneyBefore := g.Money
	offered := g.ShopJokers[0]
	require.True(t, g.BuyJoker(offered.ID))

	assert.Equal(t, moneyBefore-offered.Cost, g.Money)
	require.Len(t, g.Jokers, 1)
	assert.Equal(t, offered.Name, g.Jokers[0].Name)
	assert.Len(t, g.ShopJokers, 1)

	// Same joker cannot be bought twice.
	assert.False(t, g.BuyJoker(offered.ID))
}

func TestBuyJokerGuards(t *testing.T) {
	g := newTestGame(t)
	g.StartNewGame()
	winRound(t, g)

	// Too poor.
	g.Money = 0
	offered := g.ShopJokers[0]
	assert.False(t, g.BuyJoker(offered.ID))
	assert.Len(t, g.Jokers, 0)
	assert.Len(t, g.ShopJokers, 2)

	// Joker slots full.
	g.Money = 100
	for i := 0; i < g.rules.Economy.MaxJokers; i++ {
		g.Jokers = append(g.Jokers, namedJoker("Filler", GlobalMult(1)))
	}
	assert.False(t, g.BuyJoker(offered.ID))

	// Unknown identity.
	g.Jokers = nil
	assert.False(t, g.BuyJoker(uuid.New()))
}

func TestSellJokerRefundsHalfFlooredAtOne(t *testing.T) {
	g := newTestGame(t)
	g.StartNewGame()

	cheap := namedJoker("Bargain", GlobalMult(1))
	cheap.Cost = 1
	pricey := namedJoker("Investment", GlobalMult(1))
	pricey.Cost = 9
	g.Jokers = []Joker{cheap, pricey}

	require.True(t, g.SellJoker(cheap.ID))
	assert.Equal(t, 1, g.Money)

	require.True(t, g.SellJoker(pricey.ID))
	assert.Equal(t, 5, g.Money)
	assert.Empty(t, g.Jokers)

	assert.False(t, g.SellJoker(pricey.ID))
}

func TestBoosterPackFlow(t *testing.T) {
	g := newTestGame(t)
	g.StartNewGame()
	g.Money = 20
	winRound(t, g)

	moneyBefore := g.Money
	packCost := g.Pack.Cost
	contents := g.Pack.Contents

	require.True(t, g.BuyBoosterPack())
	assert.Equal(t, moneyBefore-packCost, g.Money)
	assert.Nil(t, g.Pack)
	require.Len(t, g.PackChoices, 3)

	picked := contents[1]
	require.True(t, g.PickFromPack(picked.ID))
	require.Len(t, g.Jokers, 1)
	assert.Equal(t, picked.Name, g.Jokers[0].Name)
	// Acquisition reassigns identity.
	assert.NotEqual(t, picked.ID, g.Jokers[0].ID)
	assert.Nil(t, g.PackChoices)

	// No pack left to buy or pick from.
	assert.False(t, g.BuyBoosterPack())
	assert.False(t, g.PickFromPack(picked.ID))
}

func TestBoosterPackPickRejectedAtCapacity(t *testing.T) {
	g := newTestGame(t)
	g.StartNewGame()
	g.Money = 20
	winRound(t, g)

	for i := 0; i < g.rules.Economy.MaxJokers; i++ {
		g.Jokers = append(g.Jokers, namedJoker("Filler", GlobalMult(1)))
	}

	require.True(t, g.BuyBoosterPack())
	picked := g.PackChoices[0]

	// At capacity the pick is rejected but the pack stays open, so
	// the player can sell something and try again.
	assert.False(t, g.PickFromPack(picked.ID))
	require.Len(t, g.PackChoices, 3)

	require.True(t, g.SellJoker(g.Jokers[0].ID))
	assert.True(t, g.PickFromPack(picked.ID))
	assert.Nil(t, g.PackChoices)
}

func TestNextRoundClearsPendingShopState(t *testing.T) {
	g := newTestGame(t)
	g.StartNewGame()
	g.Money = 20
	winRound(t, g)

	// Buy the pack but leave it unresolved, then move on.
	require.True(t, g.BuyBoosterPack())
	pending := g.PackChoices[0]
	require.True(t, g.NextRound())

	assert.Equal(t, PhasePlaying, g.CurrentPhase)
	assert.Empty(t, g.ShopJokers)
	assert.Nil(t, g.Pack)
	assert.Nil(t, g.PackChoices)

	// The abandoned pick is gone for good.
	assert.False(t, g.PickFromPack(pending.ID))
	assert.Empty(t, g.Jokers)
}

func TestSkipPack(t *testing.T) {
	g := newTestGame(t)
	g.StartNewGame()
	g.Money = 20
	winRound(t, g)

	require.True(t, g.BuyBoosterPack())
	require.True(t, g.SkipPack())
	assert.Nil(t, g.PackChoices)
	assert.Empty(t, g.Jokers)

	assert.False(t, g.SkipPack())
}

func TestBuyBoosterPackTooPoor(t *testing.T) {
	g := newTestGame(t)
	g.StartNewGame()
	winRound(t, g)

	g.Money = 0
	assert.False(t, g.BuyBoosterPack())
	assert.NotNil(t, g.Pack)
	assert.Nil(t, g.PackChoices)
}

package game

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHighScoreStoreDefaultsToZero(t *testing.T) {
	store := NewMemoryHighScoreStore()

	value, err := store.Get(HighScoreMaxRoundKey)
	require.NoError(t, err)
	assert.Equal(t, 0, value)

	require.NoError(t, store.Set(HighScoreMaxRoundKey, 7))
	value, err = store.Get(HighScoreMaxRoundKey)
	require.NoError(t, err)
	assert.Equal(t, 7, value)
}

func TestGameStateSnapshotRoundTrip(t *testing.T) {
	tracker := NewMemoryGameStateTracker()

	g := newTestGame(t)
	g.StartNewGame()
	g.Money = 12
	g.Jokers = []Joker{namedJoker("Joker", GlobalMult(4))}
	g.ToggleSelect(g.Hand[2].ID)
	g.ToggleSelect(g.Hand[4].ID)

	require.NoError(t, tracker.Save("ABC123", g.Snapshot()))

	loaded, err := tracker.Load("ABC123")
	require.NoError(t, err)

	restored, err := RestoreGameState(nil, nil, nil, loaded)
	require.NoError(t, err)

	assert.Equal(t, g.CurrentPhase, restored.CurrentPhase)
	assert.Equal(t, g.Money, restored.Money)
	assert.Equal(t, g.Round, restored.Round)
	assert.Equal(t, g.TargetScore, restored.TargetScore)
	assert.Equal(t, g.HandsRemaining, restored.HandsRemaining)
	assert.Equal(t, g.DiscardsRemaining, restored.DiscardsRemaining)
	assert.Equal(t, g.Hand, restored.Hand)
	assert.Equal(t, g.DeckSize(), restored.DeckSize())
	assert.Equal(t, g.Selection(), restored.Selection())
	require.Len(t, restored.Jokers, 1)
	assert.Equal(t, "Joker", restored.Jokers[0].Name)
	assert.Equal(t, EffectGlobalMult, restored.Jokers[0].Effect.Kind)

	// The restored session keeps playing: the drawn cards must be
	// the saved deck's cards, in order.
	expectedTop := loaded.Deck[0]
	restored.ToggleSelect(restored.Hand[0].ID)
	require.True(t, restored.Discard())
	assert.Equal(t, expectedTop.ID, restored.Hand[len(restored.Hand)-1].ID)
}

func TestMemoryGameStateTrackerMissAndRemove(t *testing.T) {
	tracker := NewMemoryGameStateTracker()

	_, err := tracker.Load("missing")
	assert.Error(t, err)

	g := newTestGame(t)
	g.StartNewGame()
	require.NoError(t, tracker.Save("GONE", g.Snapshot()))
	require.NoError(t, tracker.Remove("GONE"))
	_, err = tracker.Load("GONE")
	assert.Error(t, err)
}

func TestMemoryStoresAreSafeForConcurrentSessions(t *testing.T) {
	store := NewMemoryHighScoreStore()
	tracker := NewMemoryGameStateTracker()

	g := newTestGame(t)
	g.StartNewGame()
	snapshot := g.Snapshot()

	// One store instance is shared across every session. Hammer both
	// stores from several goroutines, each acting as its own session.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			gameCode := fmt.Sprintf("GAME%d", i)
			for j := 0; j < 50; j++ {
				assert.NoError(t, store.Set(HighScoreMaxRoundKey, j))
				_, err := store.Get(HighScoreMaxTargetKey)
				assert.NoError(t, err)
				assert.NoError(t, tracker.Save(gameCode, snapshot))
				_, err = tracker.Load(gameCode)
				assert.NoError(t, err)
			}
			assert.NoError(t, tracker.Remove(gameCode))
		}(i)
	}
	wg.Wait()
}

func TestSnapshotIsolatedFromLiveState(t *testing.T) {
	tracker := NewMemoryGameStateTracker()

	g := newTestGame(t)
	g.StartNewGame()
	require.NoError(t, tracker.Save("ISO", g.Snapshot()))

	// Mutations after the save are invisible to the stored snapshot.
	g.Money = 999
	g.Hand = nil

	loaded, err := tracker.Load("ISO")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Money)
	assert.Len(t, loaded.Hand, 8)
}

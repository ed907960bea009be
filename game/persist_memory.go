package game

import (
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// MemoryHighScoreStore keeps high scores in process memory. Used by
// tests and by runs without Redis configured. One instance is shared
// across sessions, so access is locked.
type MemoryHighScoreStore struct {
	lock   sync.RWMutex
	values map[string]int
}

func NewMemoryHighScoreStore() *MemoryHighScoreStore {
	return &MemoryHighScoreStore{values: make(map[string]int)}
}

func (m *MemoryHighScoreStore) Get(key string) (int, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.values[key], nil
}

func (m *MemoryHighScoreStore) Set(key string, value int) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.values[key] = value
	return nil
}

// MemoryGameStateTracker stores session snapshots in process memory.
// Snapshots are kept serialized so loads hand back independent
// copies, never aliases of live state. Shared across sessions, so
// access is locked.
type MemoryGameStateTracker struct {
	lock   sync.RWMutex
	states map[string][]byte
}

func NewMemoryGameStateTracker() *MemoryGameStateTracker {
	return &MemoryGameStateTracker{states: make(map[string][]byte)}
}

func (m *MemoryGameStateTracker) Load(gameCode string) (*GameStateSnapshot, error) {
	m.lock.RLock()
	stateBytes, ok := m.states[gameCode]
	m.lock.RUnlock()
	if !ok {
		return nil, errors.Errorf("Game state for Game: %s is not found", gameCode)
	}
	snapshot := &GameStateSnapshot{}
	err := jsoniter.Unmarshal(stateBytes, snapshot)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (m *MemoryGameStateTracker) Save(gameCode string, snapshot *GameStateSnapshot) error {
	stateBytes, err := jsoniter.Marshal(snapshot)
	if err != nil {
		return err
	}
	m.lock.Lock()
	m.states[gameCode] = stateBytes
	m.lock.Unlock()
	return nil
}

func (m *MemoryGameStateTracker) Remove(gameCode string) error {
	m.lock.Lock()
	delete(m.states, gameCode)
	m.lock.Unlock()
	return nil
}

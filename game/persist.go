package game

import (
	"github.com/google/uuid"

	"github.com/jokerdeck/server/poker"
)

// High-score store keys. Both values only move on a round win, and
// only upward.
const (
	HighScoreMaxRoundKey  = "highscore:max-round"
	HighScoreMaxTargetKey = "highscore:max-target"
)

// HighScoreStore is the persistent integer key/value collaborator.
// Get returns 0 for a key never written.
type HighScoreStore interface {
	Get(key string) (int, error)
	Set(key string, value int) error
}

// GameStateSnapshot is the full serializable form of a session,
// including deck order, so a saved session resumes exactly where it
// stopped.
type GameStateSnapshot struct {
	Phase             GamePhase    `json:"phase"`
	Money             int          `json:"money"`
	Round             int          `json:"round"`
	TargetScore       int          `json:"targetScore"`
	CurrentScore      int          `json:"currentScore"`
	HandsRemaining    int          `json:"handsRemaining"`
	DiscardsRemaining int          `json:"discardsRemaining"`
	Deck              []poker.Card `json:"deck"`
	Hand              []poker.Card `json:"hand"`
	Selection         []uuid.UUID  `json:"selection"`
	Jokers            []Joker      `json:"jokers"`
	ShopJokers        []Joker      `json:"shopJokers"`
	BoosterPack       *BoosterPack `json:"boosterPack,omitempty"`
	PackChoices       []Joker      `json:"packChoices,omitempty"`
}

// PersistGameState stores session snapshots keyed by game code.
type PersistGameState interface {
	Load(gameCode string) (*GameStateSnapshot, error)
	Save(gameCode string, snapshot *GameStateSnapshot) error
	Remove(gameCode string) error
}

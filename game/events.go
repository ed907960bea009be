package game

// Feedback event tags. A receiver may map these to sounds, haptics or
// nothing at all; the engine never depends on what a receiver does
// with them.
const (
	EventCardSelected = "card-selected"
	EventChipTally    = "chip-tally"
	EventScoreTally   = "score-tally"
	EventRoundWon     = "round-won"
	EventRoundLost    = "round-lost"
	EventShuffle      = "shuffle"
)

// EventReceiver consumes feedback events and score-trace steps as
// they occur. Implementations must not block; the engine calls them
// inline from transitions.
type EventReceiver interface {
	GameEvent(tag string)
	ScoreUpdate(step ScoreStep)
}

// NoopReceiver discards everything. Default receiver for tests and
// headless runs.
type NoopReceiver struct{}

func (NoopReceiver) GameEvent(tag string) {}

func (NoopReceiver) ScoreUpdate(step ScoreStep) {}

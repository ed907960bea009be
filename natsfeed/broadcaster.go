package natsfeed

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jokerdeck/server/game"
	"github.com/jokerdeck/server/logging"
)

var natsLogger = log.With().Str("logger_name", "natsfeed::broadcaster").Logger()

const DefaultNatsURL = "nats://localhost:4222"

/**
For each game session, two subjects carry the feedback stream:
game.<code>.events : abstract feedback tags (card-selected, chip-tally,
                     round-won, round-lost, shuffle)
game.<code>.score  : ordered scoring-trace steps of the last play

A presentation layer subscribes and maps these to sounds, haptics or
animation pacing; the engine never waits on any subscriber.
*/

// Broadcaster publishes engine feedback to NATS. It implements
// game.EventReceiver; publishing is fire-and-forget and publish
// failures are logged, never surfaced to the engine.
type Broadcaster struct {
	gameCode      string
	eventsSubject string
	scoreSubject  string
	nc            *natsgo.Conn
}

type eventMessage struct {
	GameCode string `json:"gameCode"`
	Tag      string `json:"tag"`
}

func NewBroadcaster(natsURL string, gameCode string) (*Broadcaster, error) {
	if natsURL == "" {
		natsURL = DefaultNatsURL
	}
	nc, err := natsgo.Connect(natsURL)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to connect to nats server [%s]", natsURL)
	}

	return &Broadcaster{
		gameCode:      gameCode,
		eventsSubject: fmt.Sprintf("game.%s.events", gameCode),
		scoreSubject:  fmt.Sprintf("game.%s.score", gameCode),
		nc:            nc,
	}, nil
}

func (b *Broadcaster) GameEvent(tag string) {
	data, err := jsoniter.Marshal(eventMessage{GameCode: b.gameCode, Tag: tag})
	if err != nil {
		natsLogger.Error().Msgf("Failed to marshal event message: %v", err)
		return
	}
	if err := b.nc.Publish(b.eventsSubject, data); err != nil {
		natsLogger.Error().Str(logging.EventTagKey, tag).
			Msgf("Failed to publish to %s: %v", b.eventsSubject, err)
	}
}

func (b *Broadcaster) ScoreUpdate(step game.ScoreStep) {
	data, err := jsoniter.Marshal(step)
	if err != nil {
		natsLogger.Error().Msgf("Failed to marshal score step: %v", err)
		return
	}
	if err := b.nc.Publish(b.scoreSubject, data); err != nil {
		natsLogger.Error().Msgf("Failed to publish to %s: %v", b.scoreSubject, err)
	}
}

func (b *Broadcaster) Close() {
	b.nc.Close()
}

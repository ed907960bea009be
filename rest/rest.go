package rest

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jokerdeck/server/game"
	"github.com/jokerdeck/server/gamerules"
	"github.com/jokerdeck/server/logging"
)

var restLogger = log.With().Str("logger_name", "rest::rest").Logger()

//
// APP error definition
//
type appError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ReceiverFactory builds a feedback receiver for a new session; nil
// receivers are replaced by a no-op.
type ReceiverFactory func(gameCode string) game.EventReceiver

// Sessions owns every live game session. Each session is guarded by
// its own lock so transitions are serialized per game, matching the
// engine's single-writer contract.
type Sessions struct {
	rules      *gamerules.Rules
	highScores game.HighScoreStore
	tracker    game.PersistGameState
	receivers  ReceiverFactory

	lock  sync.Mutex
	games map[string]*session
}

type session struct {
	lock  sync.Mutex
	state *game.GameState
}

func NewSessions(rules *gamerules.Rules, highScores game.HighScoreStore, tracker game.PersistGameState, receivers ReceiverFactory) *Sessions {
	return &Sessions{
		rules:      rules,
		highScores: highScores,
		tracker:    tracker,
		receivers:  receivers,
		games:      make(map[string]*session),
	}
}

func newGameCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

func (s *Sessions) create() (string, error) {
	gameCode := newGameCode()

	var receiver game.EventReceiver
	if s.receivers != nil {
		receiver = s.receivers(gameCode)
	}
	state, err := game.NewGameState(s.rules, s.highScores, receiver)
	if err != nil {
		return "", err
	}

	s.lock.Lock()
	s.games[gameCode] = &session{state: state}
	s.lock.Unlock()
	return gameCode, nil
}

func (s *Sessions) get(gameCode string) *session {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.games[gameCode]
}

// gameView is the snapshot the presentation layer consumes. Deck
// contents stay hidden; only the count is exposed.
type gameView struct {
	GameCode          string            `json:"gameCode"`
	Phase             string            `json:"phase"`
	Money             int               `json:"money"`
	Round             int               `json:"round"`
	TargetScore       int               `json:"targetScore"`
	CurrentScore      int               `json:"currentScore"`
	HandsRemaining    int               `json:"handsRemaining"`
	DiscardsRemaining int               `json:"discardsRemaining"`
	DeckSize          int               `json:"deckSize"`
	Hand              []cardView        `json:"hand"`
	Selection         []string          `json:"selection"`
	Jokers            []game.Joker      `json:"jokers"`
	ShopJokers        []game.Joker      `json:"shopJokers"`
	BoosterPack       *game.BoosterPack `json:"boosterPack,omitempty"`
	PackChoices       []game.Joker      `json:"packChoices,omitempty"`
	LastScore         *game.ScoreResult `json:"lastScore,omitempty"`
	HighScoreRound    int               `json:"highScoreRound"`
	HighScoreTarget   int               `json:"highScoreTarget"`
}

type cardView struct {
	ID    string `json:"id"`
	Suit  string `json:"suit"`
	Rank  string `json:"rank"`
	Chips int    `json:"chips"`
}

func viewOf(gameCode string, state *game.GameState) gameView {
	hand := make([]cardView, 0, len(state.Hand))
	for _, card := range state.Hand {
		hand = append(hand, cardView{
			ID:    card.ID.String(),
			Suit:  card.Suit.Name(),
			Rank:  card.Rank.Label(),
			Chips: card.BaseChips(),
		})
	}
	selection := make([]string, 0)
	for _, id := range state.Selection() {
		selection = append(selection, id.String())
	}
	maxRound, maxTarget := state.HighScores()

	return gameView{
		GameCode:          gameCode,
		Phase:             state.CurrentPhase.String(),
		Money:             state.Money,
		Round:             state.Round,
		TargetScore:       state.TargetScore,
		CurrentScore:      state.CurrentScore,
		HandsRemaining:    state.HandsRemaining,
		DiscardsRemaining: state.DiscardsRemaining,
		DeckSize:          state.DeckSize(),
		Hand:              hand,
		Selection:         selection,
		Jokers:            state.Jokers,
		ShopJokers:        state.ShopJokers,
		BoosterPack:       state.Pack,
		PackChoices:       state.PackChoices,
		LastScore:         state.LastScore,
		HighScoreRound:    maxRound,
		HighScoreTarget:   maxTarget,
	}
}

// SetupRouter wires every user intent onto the engine's transitions.
func (s *Sessions) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/games", s.newGame)
	r.GET("/games/:code", s.getGame)
	r.POST("/games/:code/start", s.transition(func(g *game.GameState, c *gin.Context) bool {
		g.StartNewGame()
		return true
	}))
	r.POST("/games/:code/select/:cardID", s.transition(func(g *game.GameState, c *gin.Context) bool {
		cardID, err := uuid.Parse(c.Param("cardID"))
		if err != nil {
			return false
		}
		return g.ToggleSelect(cardID)
	}))
	r.POST("/games/:code/discard", s.transition(func(g *game.GameState, c *gin.Context) bool {
		return g.Discard()
	}))
	r.POST("/games/:code/play", s.transition(func(g *game.GameState, c *gin.Context) bool {
		_, ok := g.Play()
		return ok
	}))
	r.POST("/games/:code/next-round", s.transition(func(g *game.GameState, c *gin.Context) bool {
		return g.NextRound()
	}))
	r.POST("/games/:code/shop/buy/:jokerID", s.transition(func(g *game.GameState, c *gin.Context) bool {
		jokerID, err := uuid.Parse(c.Param("jokerID"))
		if err != nil {
			return false
		}
		return g.BuyJoker(jokerID)
	}))
	r.POST("/games/:code/shop/sell/:jokerID", s.transition(func(g *game.GameState, c *gin.Context) bool {
		jokerID, err := uuid.Parse(c.Param("jokerID"))
		if err != nil {
			return false
		}
		return g.SellJoker(jokerID)
	}))
	r.POST("/games/:code/shop/pack/buy", s.transition(func(g *game.GameState, c *gin.Context) bool {
		return g.BuyBoosterPack()
	}))
	r.POST("/games/:code/shop/pack/pick/:jokerID", s.transition(func(g *game.GameState, c *gin.Context) bool {
		jokerID, err := uuid.Parse(c.Param("jokerID"))
		if err != nil {
			return false
		}
		return g.PickFromPack(jokerID)
	}))
	r.POST("/games/:code/shop/pack/skip", s.transition(func(g *game.GameState, c *gin.Context) bool {
		return g.SkipPack()
	}))
	r.POST("/games/:code/replay", s.transition(func(g *game.GameState, c *gin.Context) bool {
		return g.Replay()
	}))
	r.POST("/games/:code/menu", s.transition(func(g *game.GameState, c *gin.Context) bool {
		return g.ToMenu()
	}))

	return r
}

// RunRestServer blocks serving the API.
func RunRestServer(sessions *Sessions, port int) {
	r := sessions.SetupRouter()
	r.Run(fmt.Sprintf(":%d", port))
}

func (s *Sessions) newGame(c *gin.Context) {
	gameCode, err := s.create()
	if err != nil {
		restLogger.Error().Msgf("Unable to create game: %s", err)
		c.JSON(http.StatusInternalServerError, appError{
			Code:    http.StatusInternalServerError,
			Message: "Unable to create game",
		})
		return
	}
	restLogger.Info().Str(logging.GameCodeKey, gameCode).Msg("New game created")
	c.JSON(http.StatusOK, gin.H{"gameCode": gameCode})
}

func (s *Sessions) getGame(c *gin.Context) {
	gameCode := c.Param("code")
	sess := s.get(gameCode)
	if sess == nil {
		c.JSON(http.StatusNotFound, appError{
			Code:    http.StatusNotFound,
			Message: fmt.Sprintf("Game %s is not found", gameCode),
		})
		return
	}
	sess.lock.Lock()
	defer sess.lock.Unlock()
	c.JSON(http.StatusOK, viewOf(gameCode, sess.state))
}

// transition adapts a guarded engine transition to an endpoint:
// rejected guards come back as 409 with the state unchanged, accepted
// ones answer with the fresh snapshot and persist it.
func (s *Sessions) transition(apply func(*game.GameState, *gin.Context) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameCode := c.Param("code")
		sess := s.get(gameCode)
		if sess == nil {
			c.JSON(http.StatusNotFound, appError{
				Code:    http.StatusNotFound,
				Message: fmt.Sprintf("Game %s is not found", gameCode),
			})
			return
		}

		sess.lock.Lock()
		defer sess.lock.Unlock()

		if !apply(sess.state, c) {
			restLogger.Info().
				Str(logging.GameCodeKey, gameCode).
				Str(logging.PhaseKey, sess.state.CurrentPhase.String()).
				Msgf("Rejected transition %s", c.FullPath())
			c.JSON(http.StatusConflict, appError{
				Code:    http.StatusConflict,
				Message: "Transition rejected",
			})
			return
		}

		if s.tracker != nil {
			if err := s.tracker.Save(gameCode, sess.state.Snapshot()); err != nil {
				restLogger.Error().Str(logging.GameCodeKey, gameCode).Msgf("Unable to persist game state: %s", err)
			}
		}
		c.JSON(http.StatusOK, viewOf(gameCode, sess.state))
	}
}

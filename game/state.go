package game

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jokerdeck/server/gamerules"
	"github.com/jokerdeck/server/logging"
	"github.com/jokerdeck/server/poker"
)

var gameStateLogger = log.With().Str("logger_name", "game::state").Logger()

type GamePhase int

const (
	PhaseMenu GamePhase = iota + 1
	PhasePlaying
	PhaseShopping
	PhaseGameOver
)

var phaseNames = map[GamePhase]string{
	PhaseMenu:     "menu",
	PhasePlaying:  "playing",
	PhaseShopping: "shopping",
	PhaseGameOver: "gameOver",
}

func (p GamePhase) String() string {
	return phaseNames[p]
}

// GameState is the single owned state object for one session. It is
// not internally synchronized: exactly one caller drives transitions
// at a time, and every transition runs to completion before the next
// is accepted. Guard failures are no-ops that return false.
type GameState struct {
	CurrentPhase      GamePhase
	Money             int
	Round             int
	TargetScore       int
	CurrentScore      int
	HandsRemaining    int
	DiscardsRemaining int
	Hand              []poker.Card
	Jokers            []Joker
	ShopJokers        []Joker
	Pack              *BoosterPack
	PackChoices       []Joker
	LastScore         *ScoreResult

	deck       *poker.Deck
	selection  map[uuid.UUID]bool
	rules      *gamerules.Rules
	catalog    []Joker
	scoreTable ScoreTable
	receiver   EventReceiver
	highScores HighScoreStore
	randGen    *rand.Rand
}

func newStateSeed() rand.Source {
	var b [8]byte
	_, err := crypto_rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewGameState builds a session at the menu phase. A nil rules object
// uses the built-in defaults, a nil store keeps high scores in
// memory, a nil receiver discards feedback events.
func NewGameState(rules *gamerules.Rules, highScores HighScoreStore, receiver EventReceiver) (*GameState, error) {
	if rules == nil {
		rules = gamerules.DefaultRules()
	}
	if highScores == nil {
		highScores = NewMemoryHighScoreStore()
	}
	if receiver == nil {
		receiver = NoopReceiver{}
	}

	catalog, err := BuildCatalog(rules)
	if err != nil {
		return nil, err
	}
	scoreTable, err := ScoreTableFromRules(rules)
	if err != nil {
		return nil, err
	}

	return &GameState{
		CurrentPhase: PhaseMenu,
		selection:    make(map[uuid.UUID]bool),
		rules:        rules,
		catalog:      catalog,
		scoreTable:   scoreTable,
		receiver:     receiver,
		highScores:   highScores,
		randGen:      rand.New(newStateSeed()),
	}, nil
}

func (g *GameState) Rules() *gamerules.Rules {
	return g.rules
}

// StartNewGame resets the whole run and enters the playing phase.
func (g *GameState) StartNewGame() {
	g.Money = 0
	g.Jokers = nil
	g.Round = 1
	g.resetRound(g.rules.Round.InitialTarget)
	g.CurrentPhase = PhasePlaying
}

// resetRound rebuilds the deck and hand for a fresh round at the
// given target score.
func (g *GameState) resetRound(target int) {
	g.TargetScore = target
	g.CurrentScore = 0
	g.HandsRemaining = g.rules.Round.Hands
	g.DiscardsRemaining = g.rules.Round.Discards
	g.LastScore = nil

	// Unsold shop rows and an open pack do not carry into the round.
	g.ShopJokers = nil
	g.Pack = nil
	g.PackChoices = nil

	g.deck = poker.NewDeck(nil)
	g.Hand = g.deck.Draw(g.rules.Round.HandSize)
	g.selection = make(map[uuid.UUID]bool)
	g.receiver.GameEvent(EventShuffle)

	gameStateLogger.Info().
		Int(logging.RoundKey, g.Round).
		Int("target", target).
		Msg("Round reset")
}

// ToggleSelect flips a card's selection. Selecting fails when the
// card is not in hand or the selection is already at the limit.
func (g *GameState) ToggleSelect(cardID uuid.UUID) bool {
	if g.CurrentPhase != PhasePlaying {
		return false
	}

	if g.selection[cardID] {
		delete(g.selection, cardID)
		g.receiver.GameEvent(EventCardSelected)
		return true
	}

	if len(g.selection) >= g.rules.Round.SelectionMax {
		return false
	}
	inHand := false
	for _, card := range g.Hand {
		if card.ID == cardID {
			inHand = true
			break
		}
	}
	if !inHand {
		return false
	}

	g.selection[cardID] = true
	g.receiver.GameEvent(EventCardSelected)
	return true
}

// Selection returns the selected card IDs in hand order.
func (g *GameState) Selection() []uuid.UUID {
	selected := make([]uuid.UUID, 0, len(g.selection))
	for _, card := range g.Hand {
		if g.selection[card.ID] {
			selected = append(selected, card.ID)
		}
	}
	return selected
}

// SelectedCards returns the selected cards in hand order.
func (g *GameState) SelectedCards() []poker.Card {
	selected := make([]poker.Card, 0, len(g.selection))
	for _, card := range g.Hand {
		if g.selection[card.ID] {
			selected = append(selected, card)
		}
	}
	return selected
}

func (g *GameState) DeckSize() int {
	if g.deck == nil {
		return 0
	}
	return g.deck.Size()
}

// Discard throws away the selected cards and redraws. No-op unless
// playing with discards left and a non-empty selection.
func (g *GameState) Discard() bool {
	if g.CurrentPhase != PhasePlaying {
		return false
	}
	if g.DiscardsRemaining < 1 || len(g.selection) == 0 {
		return false
	}

	g.removeSelectedFromHand()
	g.refillHand()
	g.DiscardsRemaining--
	g.selection = make(map[uuid.UUID]bool)
	g.receiver.GameEvent(EventShuffle)
	return true
}

// Play classifies and scores the selected cards, adds the total to
// the round score, consumes a hand play and evaluates the round end.
// No-op unless playing with hand plays left and a non-empty
// selection.
func (g *GameState) Play() (*ScoreResult, bool) {
	if g.CurrentPhase != PhasePlaying {
		return nil, false
	}
	if g.HandsRemaining < 1 || len(g.selection) == 0 {
		return nil, false
	}

	played := g.SelectedCards()
	minRunLength, blurSuits := ClassifierConfig(g.Jokers)
	eval := poker.Classify(played, minRunLength, blurSuits)
	result := Score(eval, g.Jokers, g.scoreTable)

	for _, step := range result.Trace {
		g.receiver.ScoreUpdate(step)
		g.receiver.GameEvent(EventChipTally)
	}
	g.receiver.GameEvent(EventScoreTally)

	g.CurrentScore += result.Total
	g.LastScore = &result

	g.removeSelectedFromHand()
	g.refillHand()
	g.HandsRemaining--
	g.selection = make(map[uuid.UUID]bool)

	gameStateLogger.Info().
		Str(logging.HandTypeKey, eval.HandType.Name()).
		Int("total", result.Total).
		Int("score", g.CurrentScore).
		Int("target", g.TargetScore).
		Msg("Hand played")

	g.checkRoundEnd()
	return &result, true
}

// checkRoundEnd runs after every play: reaching the target wins the
// round (reward, high scores, shop); running out of hand plays short
// of it ends the run.
func (g *GameState) checkRoundEnd() {
	if g.CurrentScore >= g.TargetScore {
		reward := g.roundReward()
		g.Money += reward
		g.saveHighScores()
		g.generateShop()
		g.CurrentPhase = PhaseShopping
		g.receiver.GameEvent(EventRoundWon)

		gameStateLogger.Info().
			Int(logging.RoundKey, g.Round).
			Int("reward", reward).
			Int("money", g.Money).
			Msg("Round won")
		return
	}

	if g.HandsRemaining == 0 {
		g.CurrentPhase = PhaseGameOver
		g.receiver.GameEvent(EventRoundLost)

		gameStateLogger.Info().
			Int(logging.RoundKey, g.Round).
			Int("score", g.CurrentScore).
			Int("target", g.TargetScore).
			Msg("Game over")
	}
}

// roundReward is the deterministic win payout: base, plus one per
// unused hand play, plus capped interest on held money.
func (g *GameState) roundReward() int {
	economy := g.rules.Economy
	interest := g.Money / economy.InterestDivisor
	if interest > economy.InterestCap {
		interest = economy.InterestCap
	}
	return economy.BaseReward + g.HandsRemaining + interest
}

// NextRound leaves the shop for the next, harder round. The target
// grows by the configured factor, integer-truncated.
func (g *GameState) NextRound() bool {
	if g.CurrentPhase != PhaseShopping {
		return false
	}

	g.TargetScore = int(float64(g.TargetScore) * g.rules.Round.Growth)
	g.Round++
	g.resetRound(g.TargetScore)
	g.CurrentPhase = PhasePlaying
	return true
}

// Replay starts a fresh run from the game-over screen.
func (g *GameState) Replay() bool {
	if g.CurrentPhase != PhaseGameOver {
		return false
	}
	g.StartNewGame()
	return true
}

func (g *GameState) ToMenu() bool {
	if g.CurrentPhase != PhaseGameOver {
		return false
	}
	g.CurrentPhase = PhaseMenu
	return true
}

// HighScores reads the stored maxima: highest round reached and
// highest target score beaten.
func (g *GameState) HighScores() (maxRound int, maxTarget int) {
	maxRound, err := g.highScores.Get(HighScoreMaxRoundKey)
	if err != nil {
		gameStateLogger.Error().Msgf("Unable to read high score: %s", err)
	}
	maxTarget, err = g.highScores.Get(HighScoreMaxTargetKey)
	if err != nil {
		gameStateLogger.Error().Msgf("Unable to read high score: %s", err)
	}
	return maxRound, maxTarget
}

// saveHighScores records run maxima, each only when strictly beaten,
// and only on a round win.
func (g *GameState) saveHighScores() {
	savedRound, err := g.highScores.Get(HighScoreMaxRoundKey)
	if err != nil {
		gameStateLogger.Error().Msgf("Unable to read high score: %s", err)
	} else if g.Round > savedRound {
		if err := g.highScores.Set(HighScoreMaxRoundKey, g.Round); err != nil {
			gameStateLogger.Error().Msgf("Unable to save high score: %s", err)
		}
	}

	savedTarget, err := g.highScores.Get(HighScoreMaxTargetKey)
	if err != nil {
		gameStateLogger.Error().Msgf("Unable to read high score: %s", err)
	} else if g.TargetScore > savedTarget {
		if err := g.highScores.Set(HighScoreMaxTargetKey, g.TargetScore); err != nil {
			gameStateLogger.Error().Msgf("Unable to save high score: %s", err)
		}
	}
}

func (g *GameState) removeSelectedFromHand() {
	kept := make([]poker.Card, 0, len(g.Hand))
	for _, card := range g.Hand {
		if !g.selection[card.ID] {
			kept = append(kept, card)
		}
	}
	g.Hand = kept
}

// refillHand draws back up to the hand size; an exhausted deck just
// leaves the hand short.
func (g *GameState) refillHand() {
	needed := g.rules.Round.HandSize - len(g.Hand)
	if needed > 0 {
		g.Hand = append(g.Hand, g.deck.Draw(needed)...)
	}
}

// Snapshot captures the full session, deck order included, for
// persistence.
func (g *GameState) Snapshot() *GameStateSnapshot {
	var deckCards []poker.Card
	if g.deck != nil {
		deckCards = g.deck.Cards()
	}
	return &GameStateSnapshot{
		Phase:             g.CurrentPhase,
		Money:             g.Money,
		Round:             g.Round,
		TargetScore:       g.TargetScore,
		CurrentScore:      g.CurrentScore,
		HandsRemaining:    g.HandsRemaining,
		DiscardsRemaining: g.DiscardsRemaining,
		Deck:              deckCards,
		Hand:              g.Hand,
		Selection:         g.Selection(),
		Jokers:            g.Jokers,
		ShopJokers:        g.ShopJokers,
		BoosterPack:       g.Pack,
		PackChoices:       g.PackChoices,
	}
}

// RestoreGameState rebuilds a session from a snapshot.
func RestoreGameState(rules *gamerules.Rules, highScores HighScoreStore, receiver EventReceiver, snapshot *GameStateSnapshot) (*GameState, error) {
	g, err := NewGameState(rules, highScores, receiver)
	if err != nil {
		return nil, err
	}

	g.CurrentPhase = snapshot.Phase
	g.Money = snapshot.Money
	g.Round = snapshot.Round
	g.TargetScore = snapshot.TargetScore
	g.CurrentScore = snapshot.CurrentScore
	g.HandsRemaining = snapshot.HandsRemaining
	g.DiscardsRemaining = snapshot.DiscardsRemaining
	g.deck = poker.DeckFromCards(snapshot.Deck)
	g.Hand = snapshot.Hand
	g.Jokers = snapshot.Jokers
	g.ShopJokers = snapshot.ShopJokers
	g.Pack = snapshot.BoosterPack
	g.PackChoices = snapshot.PackChoices
	for _, cardID := range snapshot.Selection {
		g.selection[cardID] = true
	}
	return g, nil
}

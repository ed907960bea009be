package main

import (
	"flag"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jokerdeck/server/game"
	"github.com/jokerdeck/server/gamerules"
	"github.com/jokerdeck/server/logging"
	"github.com/jokerdeck/server/natsfeed"
	"github.com/jokerdeck/server/rest"
	"github.com/jokerdeck/server/util"
)

var mainLogger = logging.GetZeroLogger("main::main", nil)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var rulesFile = flag.String("rules", "", "rules YAML file overriding the built-in defaults")
	var apiPort = flag.Int("port", 0, "API port (overrides API_PORT)")
	flag.Parse()

	rules, err := loadRules(*rulesFile)
	if err != nil {
		mainLogger.Fatal().Msgf("Unable to load rules: %s", err)
	}

	highScores, tracker := buildStores()
	receivers := buildReceiverFactory()

	port := *apiPort
	if port == 0 {
		port = util.GameServerEnvironment.GetAPIPort()
	}

	sessions := rest.NewSessions(rules, highScores, tracker, receivers)
	mainLogger.Info().Msgf("Starting API server on port %d", port)
	rest.RunRestServer(sessions, port)
}

func loadRules(rulesFile string) (*gamerules.Rules, error) {
	if rulesFile == "" {
		rulesFile = util.GameServerEnvironment.GetRulesFile()
	}
	if rulesFile == "" {
		return gamerules.DefaultRules(), nil
	}
	mainLogger.Info().Msgf("Loading rules from %s", rulesFile)
	return gamerules.ReadRules(rulesFile)
}

func buildStores() (game.HighScoreStore, game.PersistGameState) {
	if !util.GameServerEnvironment.IsRedisEnabled() {
		mainLogger.Info().Msg("Using in-memory persistence")
		return game.NewMemoryHighScoreStore(), game.NewMemoryGameStateTracker()
	}

	redisURL := fmt.Sprintf("%s:%d",
		util.GameServerEnvironment.GetRedisHost(),
		util.GameServerEnvironment.GetRedisPort())
	redisPW := util.GameServerEnvironment.GetRedisPW()
	redisDB := util.GameServerEnvironment.GetRedisDB()
	mainLogger.Info().Msgf("Using Redis persistence at %s", redisURL)
	return game.NewRedisHighScoreStore(redisURL, redisPW, redisDB),
		game.NewRedisGameStateTracker(redisURL, redisPW, redisDB)
}

func buildReceiverFactory() rest.ReceiverFactory {
	natsURL := util.GameServerEnvironment.GetNatsURL()
	if natsURL == "" {
		return nil
	}
	return func(gameCode string) game.EventReceiver {
		broadcaster, err := natsfeed.NewBroadcaster(natsURL, gameCode)
		if err != nil {
			mainLogger.Error().Msgf("Unable to connect feedback feed for game %s: %s", gameCode, err)
			return nil
		}
		return broadcaster
	}
}

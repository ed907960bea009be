package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type gameServerEnvironment struct {
	APIPort   string
	RulesFile string
	NatsURL   string
	RedisHost string
	RedisPort string
	RedisPW   string
	RedisDB   string
}

// GameServerEnvironment is a helper object for accessing environment variables.
var GameServerEnvironment = &gameServerEnvironment{
	APIPort:   "API_PORT",
	RulesFile: "RULES_FILE",
	NatsURL:   "NATS_URL",
	RedisHost: "REDIS_HOST",
	RedisPort: "REDIS_PORT",
	RedisPW:   "REDIS_PW",
	RedisDB:   "REDIS_DB",
}

func (g *gameServerEnvironment) GetAPIPort() int {
	portStr := os.Getenv(g.APIPort)
	if portStr == "" {
		return 8080
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid API port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

// GetRulesFile returns the rules file override, empty for built-in defaults.
func (g *gameServerEnvironment) GetRulesFile() string {
	return os.Getenv(g.RulesFile)
}

// GetNatsURL returns the NATS server URL, empty when the feed is disabled.
func (g *gameServerEnvironment) GetNatsURL() string {
	return os.Getenv(g.NatsURL)
}

// IsRedisEnabled reports whether state should be persisted to Redis
// instead of process memory.
func (g *gameServerEnvironment) IsRedisEnabled() bool {
	return os.Getenv(g.RedisHost) != ""
}

func (g *gameServerEnvironment) GetRedisHost() string {
	host := os.Getenv(g.RedisHost)
	if host == "" {
		msg := fmt.Sprintf("%s is not defined", g.RedisHost)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return host
}

func (g *gameServerEnvironment) GetRedisPort() int {
	portStr := os.Getenv(g.RedisPort)
	if portStr == "" {
		msg := fmt.Sprintf("%s is not defined", g.RedisPort)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (g *gameServerEnvironment) GetRedisPW() string {
	return os.Getenv(g.RedisPW)
}

func (g *gameServerEnvironment) GetRedisDB() int {
	dbStr := os.Getenv(g.RedisDB)
	if dbStr == "" {
		return 0
	}
	dbNum, err := strconv.Atoi(dbStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis db %s", dbStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return dbNum
}

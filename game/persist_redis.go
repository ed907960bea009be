package game

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
)

// RedisHighScoreStore persists high scores in Redis so they survive
// process restarts. Missing keys read as 0.
type RedisHighScoreStore struct {
	rdclient *redis.Client
}

func NewRedisHighScoreStore(redisURL string, redisPW string, redisDB int) *RedisHighScoreStore {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisHighScoreStore{
		rdclient: rdclient,
	}
}

func (r *RedisHighScoreStore) Get(key string) (int, error) {
	valueStr, err := r.rdclient.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (r *RedisHighScoreStore) Set(key string, value int) error {
	return r.rdclient.Set(context.Background(), key, value, 0).Err()
}

// RedisGameStateTracker stores session snapshots in Redis, keyed by
// game code.
type RedisGameStateTracker struct {
	rdclient *redis.Client
}

func NewRedisGameStateTracker(redisURL string, redisPW string, redisDB int) *RedisGameStateTracker {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisGameStateTracker{
		rdclient: rdclient,
	}
}

func (r *RedisGameStateTracker) Load(gameCode string) (*GameStateSnapshot, error) {
	stateBytes, err := r.rdclient.Get(context.Background(), r.key(gameCode)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("Game state for Game: %s is not found", gameCode)
	} else if err != nil {
		return nil, err
	}
	snapshot := &GameStateSnapshot{}
	err = jsoniter.Unmarshal([]byte(stateBytes), snapshot)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *RedisGameStateTracker) Save(gameCode string, snapshot *GameStateSnapshot) error {
	stateBytes, err := jsoniter.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.rdclient.Set(context.Background(), r.key(gameCode), stateBytes, 0).Err()
}

func (r *RedisGameStateTracker) Remove(gameCode string) error {
	return r.rdclient.Del(context.Background(), r.key(gameCode)).Err()
}

func (r *RedisGameStateTracker) key(gameCode string) string {
	return "gamestate|" + gameCode
}

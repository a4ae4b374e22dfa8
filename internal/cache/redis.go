package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/utils"
)

// redisStore backs the display cache with Redis. Tracked owner sets live in
// Redis too (SADD/SMEMBERS) and carry their own TTL so abandoned indexes
// eventually fall out.
type redisStore struct {
	log *logger.Logger
	rdb *goredis.Client
}

const trackedSetTTL = 7 * 24 * time.Hour

func NewRedisStore(log *logger.Logger) (Store, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "localhost:6379", log))
	password := utils.GetEnv("REDIS_PASSWORD", "", log)
	db := utils.GetEnvAsInt("REDIS_DB", 0, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisStore{log: log.With("component", "RedisCache"), rdb: rdb}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false
	}
	if err != nil {
		s.log.Warn("cache get failed", "key", key, "error", err)
		return nil, false
	}
	return raw, true
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		s.log.Warn("cache set failed", "key", key, "error", err)
	}
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn("cache delete failed", "keys", keys, "error", err)
	}
}

func (s *redisStore) Track(ctx context.Context, owner, key string) {
	pipe := s.rdb.TxPipeline()
	pipe.SAdd(ctx, owner, key)
	pipe.Expire(ctx, owner, trackedSetTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn("cache track failed", "owner", owner, "key", key, "error", err)
	}
}

func (s *redisStore) Tracked(ctx context.Context, owner string) []string {
	members, err := s.rdb.SMembers(ctx, owner).Result()
	if err != nil {
		s.log.Warn("cache tracked lookup failed", "owner", owner, "error", err)
		return nil
	}
	return members
}

func (s *redisStore) DropTracked(ctx context.Context, owner string) {
	if err := s.rdb.Del(ctx, owner).Err(); err != nil {
		s.log.Warn("cache index drop failed", "owner", owner, "error", err)
	}
}

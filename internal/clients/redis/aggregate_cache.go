package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pathwise/pathwise-backend/internal/domain"
	"github.com/pathwise/pathwise-backend/internal/platform/envutil"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
)

// AggregateCache holds recently computed behavioral aggregates so that a
// profile refresh and a diagnostics read within the same short window do
// not recompute from raw rows.
type AggregateCache interface {
	Get(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.BehavioralAggregate, error)
	Set(ctx context.Context, agg *domain.BehavioralAggregate) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
	Close() error
}

type aggregateCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewAggregateCache connects to REDIS_ADDR. Callers treat a nil cache as
// "no caching"; use NewAggregateCacheFromEnv for that behavior.
func NewAggregateCache(log *logger.Logger) (AggregateCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := time.Duration(envutil.Int("AGGREGATE_CACHE_TTL_SECONDS", 300)) * time.Second

	return &aggregateCache{
		log: log.With("service", "RedisAggregateCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

// NewAggregateCacheFromEnv returns nil, nil when REDIS_ADDR is unset.
func NewAggregateCacheFromEnv(log *logger.Logger) (AggregateCache, error) {
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) == "" {
		log.Info("REDIS_ADDR not set; aggregate caching disabled")
		return nil, nil
	}
	return NewAggregateCache(log)
}

func aggregateKey(userID uuid.UUID, windowDays int) string {
	return fmt.Sprintf("aggregate:%s:%d", userID, windowDays)
}

func (c *aggregateCache) Get(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.BehavioralAggregate, error) {
	if c == nil || c.rdb == nil {
		return nil, nil
	}
	raw, err := c.rdb.Get(ctx, aggregateKey(userID, windowDays)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var agg domain.BehavioralAggregate
	if err := json.Unmarshal(raw, &agg); err != nil {
		// Stale or corrupted entry; drop it and recompute.
		_ = c.rdb.Del(ctx, aggregateKey(userID, windowDays)).Err()
		return nil, nil
	}
	return &agg, nil
}

func (c *aggregateCache) Set(ctx context.Context, agg *domain.BehavioralAggregate) error {
	if c == nil || c.rdb == nil || agg == nil {
		return nil
	}
	raw, err := json.Marshal(agg)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, aggregateKey(agg.UserID, agg.WindowDays), raw, c.ttl).Err()
}

func (c *aggregateCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, fmt.Sprintf("aggregate:%s:*", userID), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *aggregateCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

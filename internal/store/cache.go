package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fragcat/pkg/errors"
)

const seenSetKey = "fragcat:seen_urls"

// Cache is the redis-backed scrape registry: pages already scraped in a
// previous run are skipped unless the run forces a re-scrape.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewCache(cfg CacheConfig, logger *zap.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &Cache{client: client, logger: logger}, nil
}

func (c *Cache) IsSeen(ctx context.Context, url string) (bool, error) {
	seen, err := c.client.SIsMember(ctx, seenSetKey, url).Result()
	if err != nil {
		return false, errors.NewCacheError("seen lookup failed", "sismember", url, err)
	}
	return seen, nil
}

func (c *Cache) MarkSeen(ctx context.Context, url string) error {
	if err := c.client.SAdd(ctx, seenSetKey, url).Err(); err != nil {
		return errors.NewCacheError("seen registration failed", "sadd", url, err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

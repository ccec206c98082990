package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/transito-cc/backend-go/internal/config"
	"github.com/transito-cc/backend-go/internal/domain"
)

const (
	reportKeyPrefix  = "report:dataset"
	scanBatchSize    = 100
	defaultReportTTL = 20 * time.Minute
)

// ReportCache holds fetched+classified datasets keyed by date window.
// Treated as read-only once stored; invalidation is wholesale.
type ReportCache interface {
	GetDataset(ctx context.Context, from, to time.Time) (*domain.ReportDataset, bool, error)
	SetDataset(ctx context.Context, dataset *domain.ReportDataset) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.ReportTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultReportTTL
	}

	return &redisReportCache{client: client, ttl: ttl}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetDataset(ctx context.Context, from, to time.Time) (*domain.ReportDataset, bool, error) {
	key := buildDatasetKey(from, to)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var dataset domain.ReportDataset
	if err := json.Unmarshal(payload, &dataset); err != nil {
		return nil, false, fmt.Errorf("decode report dataset cache: %w", err)
	}

	return &dataset, true, nil
}

func (c *redisReportCache) SetDataset(ctx context.Context, dataset *domain.ReportDataset) error {
	key := buildDatasetKey(dataset.From, dataset.To)
	payload, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("encode report dataset cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, reportKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopReportCache) GetDataset(ctx context.Context, from, to time.Time) (*domain.ReportDataset, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetDataset(ctx context.Context, dataset *domain.ReportDataset) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildDatasetKey(from, to time.Time) string {
	raw := from.Format("2006-01-02") + "|" + to.Format("2006-01-02")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", reportKeyPrefix, hex.EncodeToString(hash[:]))
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ranki5/ranki5-go/internal/model"
)

// ListCacheTTL matches the client-side freshness window so both layers agree
// on how stale a listing may get.
const ListCacheTTL = 60 * time.Second

const listKeyPrefix = "channels:"

// CacheService is a Redis cache-aside layer for channel listings, keyed by
// the (search, filter, country) tuple.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService connects to Redis. If redisURL is empty or the connection
// fails, caching silently degrades to no-ops and the store stays the
// source of truth.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// NewCacheServiceWithClient wraps an existing client (tests).
func NewCacheServiceWithClient(rdb *redis.Client) *CacheService {
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client for health checks. May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

func listKey(q model.ChannelQuery) string {
	return fmt.Sprintf("%s%s|%s|%s", listKeyPrefix, q.Search, q.Filter, q.Country)
}

// GetList returns the cached listing for a query tuple, or nil on miss or
// when caching is disabled.
func (c *CacheService) GetList(ctx context.Context, q model.ChannelQuery) ([]model.Channel, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, listKey(q)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var channels []model.Channel
	if err := json.Unmarshal(data, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// SetList stores a listing under its query tuple.
func (c *CacheService) SetList(ctx context.Context, q model.ChannelQuery, channels []model.Channel) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(channels)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(q), b, ListCacheTTL).Err()
}

// InvalidateLists drops every cached listing. Called after submissions,
// votes and refreshes, which can change any tuple's result.
func (c *CacheService) InvalidateLists(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}

	iter := c.rdb.Scan(ctx, 0, listKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

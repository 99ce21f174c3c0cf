package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// BooksCacheKeyPrefix prefixes every cache key owned by this service.
	BooksCacheKeyPrefix = "books:"
	// BooksCacheKeyAll is the aggregate key holding the full list result.
	BooksCacheKeyAll = BooksCacheKeyPrefix + "all"
)

type redisBookCache struct {
	logger *zap.Logger
	client *redis.Client
	ttl    time.Duration
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		Username:     config.Redis.Username,
		Password:     config.Redis.Password,
	})

	// test connection. The failed client pool is released right away since
	// the caller falls back to the no-op cache without it.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// NewRedisBookCache provides an instance of redis-based book cache. Every
// failure on the cache path is absorbed here: a broken cache behaves like
// an empty one and the callers never see an error.
func NewRedisBookCache(logger *zap.Logger, client *redis.Client, ttl time.Duration) BookCache {
	return &redisBookCache{
		logger: logger,
		client: client,
		ttl:    ttl,
	}
}

func bookCacheKey(id int64) string {
	return BooksCacheKeyPrefix + strconv.FormatInt(id, 10)
}

// GetOne retrieves a cached book by its ID. A missing key, an unreachable
// server or a malformed payload are all reported as a miss.
func (rc *redisBookCache) GetOne(ctx context.Context, id int64) (Book, bool) {
	var book Book
	payload, err := rc.client.Get(ctx, bookCacheKey(id)).Result()
	if err == redis.Nil {
		return book, false
	}
	if err != nil {
		rc.logger.Warn("cache: failed to get book", zap.Int64("book.id", id), zap.Error(err))
		return book, false
	}
	if err = json.Unmarshal([]byte(payload), &book); err != nil {
		rc.logger.Warn("cache: malformed cached book", zap.Int64("book.id", id), zap.Error(err))
		return book, false
	}
	return book, true
}

// GetAll retrieves the cached full list result.
func (rc *redisBookCache) GetAll(ctx context.Context) ([]Book, bool) {
	payload, err := rc.client.Get(ctx, BooksCacheKeyAll).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		rc.logger.Warn("cache: failed to get books list", zap.Error(err))
		return nil, false
	}
	var books []Book
	if err = json.Unmarshal([]byte(payload), &books); err != nil {
		rc.logger.Warn("cache: malformed cached books list", zap.Error(err))
		return nil, false
	}
	return books, true
}

// SetOne stores a book under its per-entity key with the configured expiry.
func (rc *redisBookCache) SetOne(ctx context.Context, book Book) {
	payload, err := json.Marshal(book)
	if err != nil {
		rc.logger.Warn("cache: failed to encode book", zap.Int64("book.id", book.ID), zap.Error(err))
		return
	}
	if err = rc.client.SetEx(ctx, bookCacheKey(book.ID), payload, rc.ttl).Err(); err != nil {
		rc.logger.Warn("cache: failed to set book", zap.Int64("book.id", book.ID), zap.Error(err))
	}
}

// SetAll stores the full list result under the aggregate key.
func (rc *redisBookCache) SetAll(ctx context.Context, books []Book) {
	payload, err := json.Marshal(books)
	if err != nil {
		rc.logger.Warn("cache: failed to encode books list", zap.Error(err))
		return
	}
	if err = rc.client.SetEx(ctx, BooksCacheKeyAll, payload, rc.ttl).Err(); err != nil {
		rc.logger.Warn("cache: failed to set books list", zap.Error(err))
	}
}

// Invalidate removes every per-entity key plus the aggregate key. The flush
// is deliberately coarse: any single write clears all cached books so no
// stale per-entity entry can outlive a write.
func (rc *redisBookCache) Invalidate(ctx context.Context) {
	keys, err := rc.client.Keys(ctx, BooksCacheKeyPrefix+"*").Result()
	if err != nil {
		rc.logger.Warn("cache: failed to list keys to invalidate", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err = rc.client.Del(ctx, keys...).Err(); err != nil {
			rc.logger.Warn("cache: failed to delete keys", zap.Error(err))
		}
	}
	if err = rc.client.Del(ctx, BooksCacheKeyAll).Err(); err != nil {
		rc.logger.Warn("cache: failed to delete books list key", zap.Error(err))
	}
}

// Available reports whether the cache server currently answers to pings.
func (rc *redisBookCache) Available(ctx context.Context) bool {
	return rc.client.Ping(ctx).Err() == nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"xraynews/internal/model"
)

// RedisStore is the primary BriefStore backend. Brief expiry rides on
// native Redis TTLs.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis connects to the Redis at redisURL and verifies the
// connection with a ping.
func OpenRedis(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) GetBrief(ctx context.Context, slug string) (model.Brief, error) {
	raw, err := s.client.Get(ctx, BriefKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Brief{}, ErrNotFound
	}
	if err != nil {
		return model.Brief{}, fmt.Errorf("get brief %s: %w", slug, err)
	}
	var brief model.Brief
	if err := json.Unmarshal(raw, &brief); err != nil {
		return model.Brief{}, fmt.Errorf("decode brief %s: %w", slug, err)
	}
	return brief, nil
}

func (s *RedisStore) PutBrief(ctx context.Context, brief model.Brief, ttl time.Duration) error {
	raw, err := json.Marshal(brief)
	if err != nil {
		return fmt.Errorf("encode brief %s: %w", brief.Slug, err)
	}
	if err := s.client.Set(ctx, BriefKey(brief.Slug), raw, ttl).Err(); err != nil {
		return fmt.Errorf("put brief %s: %w", brief.Slug, err)
	}
	return nil
}

func (s *RedisStore) GetIndex(ctx context.Context) (model.FeedIndex, error) {
	raw, err := s.client.Get(ctx, IndexKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.FeedIndex{Items: []model.FeedIndexItem{}}, nil
	}
	if err != nil {
		return model.FeedIndex{}, fmt.Errorf("get feed index: %w", err)
	}
	var index model.FeedIndex
	if err := json.Unmarshal(raw, &index); err != nil {
		return model.FeedIndex{}, fmt.Errorf("decode feed index: %w", err)
	}
	if index.Items == nil {
		index.Items = []model.FeedIndexItem{}
	}
	return index, nil
}

func (s *RedisStore) PutIndex(ctx context.Context, index model.FeedIndex) error {
	raw, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encode feed index: %w", err)
	}
	if err := s.client.Set(ctx, IndexKey(), raw, 0).Err(); err != nil {
		return fmt.Errorf("put feed index: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

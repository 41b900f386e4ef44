package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"previsit-intake/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "previsit:question:"

// RedisQuestionCache remembers the question issued for a booking at a given
// answer count, so repeated polls see the same question.
type RedisQuestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisQuestionCache(client *redis.Client, ttl time.Duration) shared.QuestionCache {
	return &RedisQuestionCache{client: client, ttl: ttl}
}

func questionKey(bookingID string, count int) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, bookingID, count)
}

func (c *RedisQuestionCache) Get(ctx context.Context, bookingID string, count int) (string, bool, error) {
	question, err := c.client.Get(ctx, questionKey(bookingID, count)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get question from cache: %w", err)
	}
	return question, true, nil
}

func (c *RedisQuestionCache) Set(ctx context.Context, bookingID string, count int, question string) error {
	if err := c.client.Set(ctx, questionKey(bookingID, count), question, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set question in cache: %w", err)
	}
	return nil
}

// NopQuestionCache never hits.
type NopQuestionCache struct{}

func (NopQuestionCache) Get(context.Context, string, int) (string, bool, error) {
	return "", false, nil
}

func (NopQuestionCache) Set(context.Context, string, int, string) error {
	return nil
}

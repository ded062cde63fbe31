package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"solar-projects-backend/config"
)

// Provider implements a fixed one-minute window per client key backed
// by redis, so the limit holds across instances.
type Provider interface {
	Allow(ctx context.Context, key string) (bool, error)
}

var Instance Provider

func NewHandler(client *redis.Client) {
	Instance = impl{
		client: client,
	}
}

type impl struct {
	client *redis.Client
}

func (i impl) Allow(ctx context.Context, key string) (bool, error) {
	limit := config.Conf.RateLimit.RequestsPerMinute
	if limit <= 0 {
		return true, nil
	}
	window := time.Now().Unix() / 60
	redisKey := fmt.Sprintf("rate:%s:%d", key, window)

	count, err := i.client.Incr(ctx, redisKey).Result()
	if err != nil {
		// Redis being down must not take the API down with it.
		log.WithError(err).Warn("rate limit check failed, allowing request")
		return true, nil
	}
	if count == 1 {
		err = i.client.Expire(ctx, redisKey, 2*time.Minute).Err()
		if err != nil {
			log.WithError(err).Warn("rate limit key expire failed")
		}
	}
	return count <= int64(limit), nil
}

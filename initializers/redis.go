package initializers

import (
	"context"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"solar-projects-backend/config"
	ratelimit "solar-projects-backend/lib/rate-limit"
)

func InitRedis(ctx context.Context) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Conf.Redis.Addr,
		Password: config.Conf.Redis.Password,
		DB:       config.Conf.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis is not reachable, rate limiting runs fail-open")
	}
	ratelimit.NewHandler(client)
}

package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisClient *redis.Client
)

// NewRedis starts the suite-wide miniredis server once and returns a
// client pointed at it.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		srv, err := miniredis.Run()
		if err != nil {
			panic("failed to start miniredis: " + err.Error())
		}
		redisClient = redis.NewClient(&redis.Options{
			Addr: srv.Addr(),
		})
	})
	return redisClient
}

// FlushRedis drops every key so scenarios cannot see each other's
// cached statistics.
func FlushRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}

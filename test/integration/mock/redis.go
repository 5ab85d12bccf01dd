//go:build integration

package mock

import (
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisServer *miniredis.Miniredis
var redisConn *redis.Client

// NewRedis starts a shared miniredis server and returns a client for it.
func NewRedis() (*miniredis.Miniredis, *redis.Client) {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
		redisConn = redis.NewClient(&redis.Options{
			Addr: server.Addr(),
		})
	})
	return redisServer, redisConn
}

// ClearRedis drops every key.
func ClearRedis(server *miniredis.Miniredis) {
	server.FlushAll()
}

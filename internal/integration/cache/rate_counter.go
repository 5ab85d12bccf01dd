package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateKeyPrefix = "avecbanker:rate:"

// hitScript increments the counter and starts the window on the first hit.
var hitScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RateCounter counts hits per key in fixed windows shared by every API instance.
type RateCounter struct {
	client *redis.Client
	window time.Duration
}

// NewRateCounter creates a counter with the given window length.
func NewRateCounter(client *redis.Client, window time.Duration) *RateCounter {
	return &RateCounter{
		client: client,
		window: window,
	}
}

// Hit records one hit for key and returns the number of hits in the current window.
func (c *RateCounter) Hit(ctx context.Context, key string) (int64, error) {
	count, err := hitScript.Run(ctx, c.client, []string{rateKeyPrefix + key}, c.window.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to count request: %w", err)
	}
	return count, nil
}

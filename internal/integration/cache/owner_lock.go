package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/avecbanker/backend/internal/application/adapter"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

const lockKeyPrefix = "avecbanker:planning-lock:"

// releaseScript deletes the key only if it still holds our token, so a lock that
// expired and was taken by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ownerLock implements adapter.OwnerLock with SET NX PX.
type ownerLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOwnerLock creates a lock whose keys expire after ttl if never released.
func NewOwnerLock(client *redis.Client, ttl time.Duration) adapter.OwnerLock {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ownerLock{
		client: client,
		ttl:    ttl,
	}
}

// Acquire takes the planning lock of an owner.
func (l *ownerLock) Acquire(ctx context.Context, ownerID uuid.UUID) (func(context.Context) error, error) {
	key := lockKeyPrefix + ownerID.String()
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire planning lock: %w", err)
	}
	if !ok {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeRebalanceInProgress,
			"another goal change is in progress for this owner",
			domainerror.ErrRebalanceInProgress,
		)
	}

	released := false
	return func(ctx context.Context) error {
		if released {
			return nil
		}
		released = true
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release planning lock: %w", err)
		}
		return nil
	}, nil
}

package goal

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avecbanker/backend/internal/application/adapter"
)

// withOwnerLock runs fn while holding the owner's planning lock, so goal writes never
// interleave with a rebalance or with each other. A nil lock runs fn unguarded.
func withOwnerLock(ctx context.Context, lock adapter.OwnerLock, ownerID uuid.UUID, fn func() error) error {
	if lock == nil {
		return fn()
	}

	release, err := lock.Acquire(ctx, ownerID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := release(context.WithoutCancel(ctx)); releaseErr != nil {
			slog.Warn("Failed to release planning lock", "user_id", ownerID, "error", releaseErr)
		}
	}()

	return fn()
}

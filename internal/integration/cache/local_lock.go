package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/avecbanker/backend/internal/application/adapter"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

// localOwnerLock is the single-process fallback used when Redis is not configured.
type localOwnerLock struct {
	mu   sync.Mutex
	held map[uuid.UUID]struct{}
}

// NewLocalOwnerLock creates an in-memory owner lock.
func NewLocalOwnerLock() adapter.OwnerLock {
	return &localOwnerLock{
		held: make(map[uuid.UUID]struct{}),
	}
}

// Acquire takes the planning lock of an owner.
func (l *localOwnerLock) Acquire(_ context.Context, ownerID uuid.UUID) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[ownerID]; busy {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeRebalanceInProgress,
			"another goal change is in progress for this owner",
			domainerror.ErrRebalanceInProgress,
		)
	}
	l.held[ownerID] = struct{}{}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, ownerID)
			l.mu.Unlock()
		})
		return nil
	}, nil
}

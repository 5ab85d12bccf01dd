// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// OwnerLock serializes goal and planning writes per owner.
type OwnerLock interface {
	// Acquire takes the lock for the owner. It returns domainerror.ErrRebalanceInProgress
	// when another holder has it. The returned release func is safe to call once.
	Acquire(ctx context.Context, ownerID uuid.UUID) (release func(context.Context) error, err error)
}

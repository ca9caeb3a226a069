package service

import (
	"context"
	"time"
)

// Clock supplies the wall-clock instant for the deadline gate.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func NewSystemClock() Clock { return systemClock{} }

// Sequencer supplies the monotonically increasing marker recorded as a
// wish's created_at.
type Sequencer interface {
	Next(ctx context.Context) (uint64, error)
}

// Authorizer verifies that the current invocation was approved by the
// given principal. The service demands self-approval for additions and
// admin approval for admin operations; any verification failure aborts
// the operation as ErrUnauthorized.
type Authorizer interface {
	Authorize(ctx context.Context, principal string) error
}

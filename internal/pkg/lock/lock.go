package lock

import (
	"context"
	"errors"
)

// ErrNotObtained is returned when the key stays held by someone else past the
// retry budget, or at once by TryLock.
var ErrNotObtained = errors.New("lock not obtained")

// Locker serializes work on one key, for example one advance id.
type Locker interface {
	// Lock blocks until key is held or ctx is done. Call the returned func to release.
	Lock(ctx context.Context, key string) (func(), error)

	// TryLock takes key only if it is free right now, otherwise it returns ErrNotObtained.
	TryLock(ctx context.Context, key string) (func(), error)
}

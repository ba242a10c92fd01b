// Package cache provides the session cache: a read-through key/value layer
// holding denormalized account snapshots so token validation avoids a
// database round trip.
package cache

import (
	"context"
	"errors"

	"github.com/clearlens/camwatch/pkg/api"
)

// ErrMiss reports that the key is not present in the cache.
var ErrMiss = errors.New("cache: miss")

// Cache is the session cache interface. Implementations must return ErrMiss
// for absent keys and reserve other errors for infrastructure faults.
type Cache interface {
	// GetAccount fetches the cached account snapshot for a user id.
	GetAccount(ctx context.Context, userID string) (api.Account, error)

	// SetAccount stores an account snapshot under the user's key.
	SetAccount(ctx context.Context, acct api.Account) error

	// DeleteAccount evicts a user's snapshot.
	DeleteAccount(ctx context.Context, userID string) error

	// Ping verifies the cache connection is alive.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// internal/domain/cart/store.go
package cart

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Store when no value exists under the key
var ErrNotFound = errors.New("cart: key not found")

// Store is the opaque key-value persistence boundary the cart writes its
// whole-snapshot value through. The Redis adapter implements it in
// production; tests use an in-memory map.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

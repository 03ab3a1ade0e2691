// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/jewelry-storefront/internal/domain/product"
)

// Service handles cart business logic over the persisted snapshot
type Service struct {
	store Store
	ttl   time.Duration
	log   *logrus.Logger
}

// NewService creates a new cart service
func NewService(store Store, ttl time.Duration, log *logrus.Logger) *Service {
	return &Service{
		store: store,
		ttl:   ttl,
		log:   log,
	}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Get retrieves the cart for a session. Absent or corrupt snapshots are read
// as an empty cart; corruption is logged, never surfaced to the caller.
func (s *Service) Get(ctx context.Context, sessionID string) ([]Item, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for cart")
	}

	raw, err := s.store.Get(ctx, cartKey(sessionID))
	if errors.Is(err, ErrNotFound) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	var items snapshot
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Stored cart snapshot is corrupt, treating as empty")
		return []Item{}, nil
	}

	// Coerce malformed quantities defensively
	for i := range items {
		if items[i].Quantity < 1 {
			items[i].Quantity = 1
		}
	}

	return items, nil
}

// Add adds a product snapshot to the cart. Out-of-stock products are a
// silent no-op. Adding an id already in the cart increments its quantity
// instead of appending a duplicate line.
func (s *Service) Add(ctx context.Context, sessionID string, p *product.Product, quantity int) ([]Item, error) {
	if p.OutOfStock {
		return s.Get(ctx, sessionID)
	}
	if quantity < 1 {
		quantity = 1
	}

	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range items {
		if items[i].ID == p.ID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, Item{Product: *p, Quantity: quantity})
	}

	if err := s.save(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets the quantity of a line item; zero removes the line
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) ([]Item, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if string(items[i].ID) == productID {
			if quantity == 0 {
				items = append(items[:i], items[i+1:]...)
			} else {
				items[i].Quantity = quantity
			}
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("item not found in cart")
	}

	if err := s.save(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove deletes a line item from the cart
func (s *Service) Remove(ctx context.Context, sessionID, productID string) ([]Item, error) {
	return s.UpdateQuantity(ctx, sessionID, productID, 0)
}

// Count returns the sum of quantities across all lines, for the badge
func (s *Service) Count(ctx context.Context, sessionID string) (int, error) {
	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total, nil
}

// Clear empties the cart; invoked after a successful order placement
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Del(ctx, cartKey(sessionID))
}

func (s *Service) save(ctx context.Context, sessionID string, items []Item) error {
	data, err := json.Marshal(snapshot(items))
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}
	return s.store.Set(ctx, cartKey(sessionID), string(data), s.ttl)
}

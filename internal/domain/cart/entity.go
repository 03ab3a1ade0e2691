// internal/domain/cart/entity.go
package cart

import (
	"github.com/your-org/jewelry-storefront/internal/domain/product"
)

// Item is a snapshot of a product at add-time plus the selected quantity.
// The snapshot keeps the cart renderable when the catalog is unreachable;
// checkout never trusts its price field once fresh data is available.
type Item struct {
	product.Product
	Quantity int `json:"quantity"`
}

// snapshot is the persisted whole-cart value stored under a single key,
// insertion order preserved as display order
type snapshot []Item

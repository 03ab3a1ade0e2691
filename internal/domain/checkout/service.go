// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/jewelry-storefront/internal/config"
	"github.com/your-org/jewelry-storefront/internal/domain/cart"
	"github.com/your-org/jewelry-storefront/internal/domain/catalog"
	"github.com/your-org/jewelry-storefront/internal/domain/pricing"
	"github.com/your-org/jewelry-storefront/internal/domain/product"
)

// CatalogLoader fetches the current pricing config and product catalog
type CatalogLoader interface {
	Load(ctx context.Context) (pricing.Config, []product.Product, error)
}

// Service reconciles the persisted cart against fresh catalog data and
// produces authoritative checkout totals
type Service struct {
	loader   CatalogLoader
	carts    *cart.Service
	checkout config.CheckoutConfig
	log      *logrus.Logger
}

// NewService creates a new checkout service
func NewService(loader CatalogLoader, carts *cart.Service, cfg config.CheckoutConfig, log *logrus.Logger) *Service {
	return &Service{
		loader:   loader,
		carts:    carts,
		checkout: cfg,
		log:      log,
	}
}

// Summary re-resolves the session cart against freshly fetched catalog data
// and computes totals for the selected tax jurisdiction. When the refresh
// fetch fails the persisted snapshot is used as-is: degraded but available
// beats blocking checkout.
func (s *Service) Summary(ctx context.Context, sessionID, state string) (*Summary, error) {
	items, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	degraded := false
	if len(items) > 0 {
		cfg, products, err := s.loader.Load(ctx)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"session_id": sessionID,
				"error":      err.Error(),
			}).Warn("Catalog refresh failed, checking out against stale cart data")
			degraded = true
		} else {
			items = RefreshItems(items, catalog.New(products, cfg), s.log)
		}
	}

	return &Summary{
		Items:    items,
		Totals:   ComputeTotals(items, state, s.checkout.TaxRates, s.checkout.ShippingCost),
		State:    strings.ToUpper(strings.TrimSpace(state)),
		Degraded: degraded,
	}, nil
}

// ConfirmOrder clears the cart after a confirmed payment capture
func (s *Service) ConfirmOrder(ctx context.Context, sessionID string) error {
	return s.carts.Clear(ctx, sessionID)
}

// RefreshItems re-resolves persisted cart lines against the fresh priced
// catalog. Lines whose product no longer exists are dropped rather than
// failing the whole checkout, and every surviving price is recomputed;
// persisted prices are never trusted when fresh data is available.
func RefreshItems(items []cart.Item, store *catalog.Store, log *logrus.Logger) []cart.Item {
	refreshed := make([]cart.Item, 0, len(items))
	for _, item := range items {
		current, ok := store.FindByID(string(item.ID))
		if !ok {
			log.WithFields(logrus.Fields{
				"product_id": string(item.ID),
				"name":       item.Name,
			}).Warn("Cart line dropped, product no longer in catalog")
			continue
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		refreshed = append(refreshed, cart.Item{Product: *current, Quantity: quantity})
	}
	return refreshed
}

// ComputeTotals computes the checkout pricing breakdown. It is pure and
// idempotent so the presentation layer can recompute on every jurisdiction
// change. Tax applies to the taxable partition only; shipping is a flat cost
// on any non-empty cart.
func ComputeTotals(items []cart.Item, state string, taxRates map[string]decimal.Decimal, shippingCost decimal.Decimal) Totals {
	subtotal := decimal.Zero
	taxable := decimal.Zero
	exempt := decimal.Zero

	for _, item := range items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		lineTotal := decimal.NewFromInt(item.Price).Mul(decimal.NewFromInt(int64(quantity)))

		subtotal = subtotal.Add(lineTotal)
		if IsExempt(&item.Product) {
			exempt = exempt.Add(lineTotal)
		} else {
			taxable = taxable.Add(lineTotal)
		}
	}

	rate, ok := taxRates[strings.ToUpper(strings.TrimSpace(state))]
	if !ok {
		rate = decimal.Zero
	}
	tax := taxable.Mul(rate).Round(2)

	shipping := decimal.Zero
	if len(items) > 0 {
		shipping = shippingCost
	}

	return Totals{
		Subtotal:      subtotal,
		TaxableAmount: taxable,
		ExemptAmount:  exempt,
		TaxRate:       rate,
		TaxAmount:     tax,
		ShippingCost:  shipping,
		GrandTotal:    subtotal.Add(tax).Add(shipping),
	}
}

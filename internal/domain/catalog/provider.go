// internal/domain/catalog/provider.go
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/jewelry-storefront/internal/domain/pricing"
	"github.com/your-org/jewelry-storefront/internal/domain/product"
)

// Loader fetches the current pricing config and raw product catalog
type Loader interface {
	Load(ctx context.Context) (pricing.Config, []product.Product, error)
}

// Provider owns the catalog for the session. The store is built (and priced)
// once per successful load; a failed load leaves no partial catalog and the
// next request retries, so a user reload recovers naturally.
type Provider struct {
	loader Loader
	log    *logrus.Logger

	mu    sync.Mutex
	store *Store
}

// NewProvider creates a new catalog provider
func NewProvider(loader Loader, log *logrus.Logger) *Provider {
	return &Provider{
		loader: loader,
		log:    log,
	}
}

// Store returns the priced catalog, loading it on first use
func (p *Provider) Store(ctx context.Context) (*Store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.store != nil {
		return p.store, nil
	}
	return p.loadLocked(ctx)
}

// Reload discards the cached catalog and fetches fresh data
func (p *Provider) Reload(ctx context.Context) (*Store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.store = nil
	return p.loadLocked(ctx)
}

func (p *Provider) loadLocked(ctx context.Context) (*Store, error) {
	cfg, products, err := p.loader.Load(ctx)
	if err != nil {
		p.log.WithField("error", err.Error()).Error("Catalog load failed")
		return nil, fmt.Errorf("catalog unavailable: %w", err)
	}

	p.store = New(products, cfg)
	return p.store, nil
}

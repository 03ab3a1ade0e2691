// internal/infrastructure/feed/client.go
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/jewelry-storefront/internal/config"
	"github.com/your-org/jewelry-storefront/internal/domain/pricing"
	"github.com/your-org/jewelry-storefront/internal/domain/product"
)

// Client fetches the read-only pricing and product JSON documents the
// storefront is driven by. Documents are fetched with cache-busting so spot
// prices are never served from an intermediary cache.
type Client struct {
	pricingURL  string
	productURLs []string
	httpClient  *http.Client
	log         *logrus.Logger
}

// NewClient creates a new feed client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		pricingURL:  cfg.Feed.PricingURL,
		productURLs: cfg.Feed.ProductURLs,
		httpClient: &http.Client{
			Timeout: cfg.Feed.Timeout,
		},
		log: log,
	}
}

// envelope is the wrapped product document shape; some documents are bare
// arrays instead
type envelope struct {
	ProductsList []product.Product `json:"products_list"`
}

// Load fetches the pricing config and all product documents in parallel and
// joins all-or-nothing: if any fetch fails the whole load fails and no
// partial catalog is returned. Product documents are concatenated in
// configured order.
func (c *Client) Load(ctx context.Context) (pricing.Config, []product.Product, error) {
	var (
		wg      sync.WaitGroup
		cfg     pricing.Config
		cfgErr  error
		docs    = make([][]product.Product, len(c.productURLs))
		docErrs = make([]error, len(c.productURLs))
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		cfg, cfgErr = c.fetchPricing(ctx)
	}()

	for i, url := range c.productURLs {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			docs[i], docErrs[i] = c.fetchProducts(ctx, url)
		}(i, url)
	}

	wg.Wait()

	if cfgErr != nil {
		return pricing.Config{}, nil, fmt.Errorf("unable to load storefront data: %w", cfgErr)
	}
	for _, err := range docErrs {
		if err != nil {
			return pricing.Config{}, nil, fmt.Errorf("unable to load storefront data: %w", err)
		}
	}

	var products []product.Product
	for _, doc := range docs {
		products = append(products, doc...)
	}

	c.log.WithFields(logrus.Fields{
		"products":  len(products),
		"documents": len(c.productURLs),
	}).Info("Storefront data loaded")

	return cfg, products, nil
}

func (c *Client) fetchPricing(ctx context.Context) (pricing.Config, error) {
	body, err := c.fetch(ctx, c.pricingURL)
	if err != nil {
		return pricing.Config{}, err
	}

	var cfg pricing.Config
	if err := json.Unmarshal(body, &cfg); err != nil {
		return pricing.Config{}, fmt.Errorf("failed to parse pricing document: %w", err)
	}
	return cfg, nil
}

// fetchProducts decodes a product document, accepting both the
// {products_list: [...]} envelope and a bare array
func (c *Client) fetchProducts(ctx context.Context, url string) ([]product.Product, error) {
	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var products []product.Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("failed to parse product document %s: %w", url, err)
		}
		return products, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("failed to parse product document %s: %w", url, err)
	}
	return env.ProductsList, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cacheBust(url), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch of %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return body, nil
}

// cacheBust appends a timestamp query parameter, matching how the documents
// are published
func cacheBust(url string) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%st=%d", url, sep, time.Now().UnixMilli())
}

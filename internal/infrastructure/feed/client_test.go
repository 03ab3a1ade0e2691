package feed

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/jewelry-storefront/internal/config"
	"github.com/your-org/jewelry-storefront/internal/domain/product"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(pricingURL string, productURLs ...string) *Client {
	cfg := &config.Config{}
	cfg.Feed = config.FeedConfig{
		PricingURL:  pricingURL,
		ProductURLs: productURLs,
		Timeout:     5 * time.Second,
	}
	return NewClient(cfg, testLogger())
}

const pricingDoc = `{"spotPrice24kOunce": 2400, "silverPriceOunce": 30, "gramsPerOunce": 30}`

func TestLoadConcatenatesDocumentsInOrder(t *testing.T) {
	pricing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pricingDoc))
	}))
	defer pricing.Close()

	// First document is an envelope, second a bare array
	docA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products_list": [{"id": "A-1", "name": "First", "weight": "N/A", "isDynamic": false}]}`))
	}))
	defer docA.Close()

	docB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "B-1", "name": "Second", "weight": 5, "isDynamic": true}]`))
	}))
	defer docB.Close()

	client := newTestClient(pricing.URL, docA.URL, docB.URL)

	cfg, products, err := client.Load(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 2400, cfg.SpotPrice24kOunce, 1e-9)
	require.Len(t, products, 2)
	assert.Equal(t, product.FlexID("A-1"), products[0].ID)
	assert.Equal(t, product.FlexID("B-1"), products[1].ID)
	assert.True(t, products[1].Weight.IsNumeric())
}

func TestLoadFailsWhenAnyDocumentFails(t *testing.T) {
	pricing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pricingDoc))
	}))
	defer pricing.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	client := newTestClient(pricing.URL, good.URL, bad.URL)

	_, _, err := client.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to load storefront data")
}

func TestLoadFailsWhenPricingFails(t *testing.T) {
	pricing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer pricing.Close()

	products := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer products.Close()

	client := newTestClient(pricing.URL, products.URL)

	_, _, err := client.Load(context.Background())
	assert.Error(t, err)
}

func TestFetchAppendsCacheBuster(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(pricingDoc))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)

	_, err := client.fetchPricing(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^t=\d+$`, gotQuery)
}

func TestCacheBustPreservesExistingQuery(t *testing.T) {
	assert.Regexp(t, `^http://x/data\.json\?t=\d+$`, cacheBust("http://x/data.json"))
	assert.Regexp(t, `^http://x/data\.json\?v=2&t=\d+$`, cacheBust("http://x/data.json?v=2"))
}

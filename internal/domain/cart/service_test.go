package cart

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/jewelry-storefront/internal/domain/product"
)

// memoryStore is an in-memory Store for tests
type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStore) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestService() (*Service, *memoryStore) {
	store := newMemoryStore()
	return NewService(store, time.Hour, testLogger()), store
}

func ring() *product.Product {
	return &product.Product{ID: "R-1", Name: "Gold Ring", Category: "rings", Price: 500}
}

func TestGetEmptySession(t *testing.T) {
	svc, _ := newTestService()

	items, err := svc.Get(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetRequiresSession(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), "")
	assert.Error(t, err)
}

func TestAddMergesQuantities(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "session-1", ring(), 1)
	require.NoError(t, err)

	items, err := svc.Add(ctx, "session-1", ring(), 2)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddOutOfStockIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	gone := ring()
	gone.OutOfStock = true

	items, err := svc.Add(ctx, "session-1", gone, 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = svc.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddCoercesQuantity(t *testing.T) {
	svc, _ := newTestService()

	items, err := svc.Add(context.Background(), "session-1", ring(), -5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartSurvivesRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	necklace := &product.Product{ID: "N-1", Name: "Gold Necklace", Price: 1200}
	_, err := svc.Add(ctx, "session-1", ring(), 2)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "session-1", necklace, 1)
	require.NoError(t, err)

	items, err := svc.Get(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, product.FlexID("R-1"), items[0].ID)
	assert.Equal(t, int64(500), items[0].Price)

	count, err := svc.Count(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCorruptSnapshotReadsAsEmpty(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, cartKey("session-1"), "{not json", 0))

	items, err := svc.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStoredQuantityCoercedOnRead(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, cartKey("session-1"),
		`[{"id":"R-1","name":"Gold Ring","weight":"N/A","isDynamic":false,"price":500,"quantity":0}]`, 0))

	items, err := svc.Get(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "session-1", ring(), 1)
	require.NoError(t, err)

	items, err := svc.UpdateQuantity(ctx, "session-1", "R-1", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	// Zero removes the line
	items, err = svc.UpdateQuantity(ctx, "session-1", "R-1", 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateQuantityErrors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.UpdateQuantity(ctx, "session-1", "R-1", -1)
	assert.Error(t, err)

	_, err = svc.UpdateQuantity(ctx, "session-1", "missing", 2)
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "session-1", ring(), 2)
	require.NoError(t, err)

	items, err := svc.Remove(ctx, "session-1", "R-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClear(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "session-1", ring(), 2)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "session-1"))

	items, err := svc.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "session-1", ring(), 1)
	require.NoError(t, err)

	items, err := svc.Get(ctx, "session-2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

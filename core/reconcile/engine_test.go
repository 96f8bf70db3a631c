package reconcile

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAdapter is a simple in-memory adapter.
type mockAdapter struct {
	name            string
	dbIndex         map[string]DBItem
	storageSet      map[string]struct{}
	dbErr           error
	storageErr      error
	dbLoads         atomic.Int32
	storageLoadFunc func(context.Context) (map[string]struct{}, error)
}

func (m *mockAdapter) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

func (m *mockAdapter) LoadDBIndex(ctx context.Context) (map[string]DBItem, error) {
	m.dbLoads.Add(1)
	if m.dbErr != nil {
		return nil, m.dbErr
	}
	return m.dbIndex, nil
}

func (m *mockAdapter) LoadStorageSet(ctx context.Context) (map[string]struct{}, error) {
	if m.storageLoadFunc != nil {
		return m.storageLoadFunc(ctx)
	}
	if m.storageErr != nil {
		return nil, m.storageErr
	}
	return m.storageSet, nil
}

func (m *mockAdapter) GetMetadata(key string, dbItem DBItem) map[string]string {
	if dbItem == nil {
		return nil
	}
	return map[string]string{"owner": fmt.Sprint(dbItem)}
}

func TestBuildCache_ErrorHandling(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		storageErr error
		expectErr  string
	}{
		{name: "DB load error", dbErr: fmt.Errorf("db error"), expectErr: "db error"},
		{name: "Storage load error", storageErr: fmt.Errorf("storage error"), expectErr: "storage error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &mockAdapter{dbErr: tt.dbErr, storageErr: tt.storageErr}
			_, err := BuildCache(context.Background(), &Spec{Adapter: adapter})
			assert.ErrorContains(t, err, tt.expectErr)
		})
	}
}

func TestReconcileAll(t *testing.T) {
	adapter := &mockAdapter{
		dbIndex: map[string]DBItem{
			"listings/a": "listing-1",
			"listings/b": "listing-1",
		},
		storageSet: map[string]struct{}{
			"listings/b": {},
			"listings/c": {},
		},
	}

	results, err := ReconcileAll(context.Background(), &Spec{Adapter: adapter})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "listings/a", results[0].ID)
	assert.True(t, results[0].DBPresent)
	assert.False(t, results[0].StoragePresent)
	assert.Equal(t, "listing-1", results[0].Metadata["owner"])

	assert.True(t, results[1].DBPresent)
	assert.True(t, results[1].StoragePresent)

	assert.False(t, results[2].DBPresent)
	assert.True(t, results[2].StoragePresent)
	assert.Nil(t, results[2].Metadata)
}

func TestReconcileOne(t *testing.T) {
	adapter := &mockAdapter{
		name:       "one",
		dbIndex:    map[string]DBItem{"k": "owner"},
		storageSet: map[string]struct{}{},
	}
	spec := &Spec{Adapter: adapter, CacheTTL: time.Minute}
	t.Cleanup(func() { InvalidateCache(spec) })

	res, err := ReconcileOne(context.Background(), spec, "k")
	require.NoError(t, err)
	assert.True(t, res.DBPresent)
	assert.False(t, res.StoragePresent)

	res, err = ReconcileOne(context.Background(), spec, "unknown")
	require.NoError(t, err)
	assert.False(t, res.DBPresent)
	assert.Equal(t, int32(1), adapter.dbLoads.Load(), "second lookup should hit the cache")
}

func TestGetOrBuildCache_Expiry(t *testing.T) {
	adapter := &mockAdapter{name: "expiry", dbIndex: map[string]DBItem{}, storageSet: map[string]struct{}{}}

	t.Run("DisabledCacheAlwaysRebuilds", func(t *testing.T) {
		spec := &Spec{Adapter: adapter}
		_, err := GetOrBuildCache(context.Background(), spec)
		require.NoError(t, err)
		_, err = GetOrBuildCache(context.Background(), spec)
		require.NoError(t, err)
		assert.Equal(t, int32(2), adapter.dbLoads.Load())
		InvalidateCache(spec)
	})

	t.Run("InvalidateForcesRebuild", func(t *testing.T) {
		adapter.dbLoads.Store(0)
		spec := &Spec{Adapter: adapter, CacheTTL: time.Hour}
		_, err := GetOrBuildCache(context.Background(), spec)
		require.NoError(t, err)
		InvalidateCache(spec)
		_, err = GetOrBuildCache(context.Background(), spec)
		require.NoError(t, err)
		assert.Equal(t, int32(2), adapter.dbLoads.Load())
		InvalidateCache(spec)
	})
}

func TestReconcileCache_IsExpired(t *testing.T) {
	assert.True(t, (&ReconcileCache{}).IsExpired())
	assert.False(t, (&ReconcileCache{Built: time.Now(), TTL: time.Minute}).IsExpired())
	assert.True(t, (&ReconcileCache{Built: time.Now().Add(-2 * time.Minute), TTL: time.Minute}).IsExpired())
}

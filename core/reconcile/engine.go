package reconcile

import (
	"context"
	"sort"
)

// ReconcileAll performs a full reconciliation across all keys, bypassing the cache.
func ReconcileAll(ctx context.Context, spec *Spec) ([]ReconcileResult, error) {
	cache, err := BuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	return reconcileFromCache(cache, spec.Adapter), nil
}

// ReconcileOne reports the state of a single key using the cached indices.
func ReconcileOne(ctx context.Context, spec *Spec, key string) (*ReconcileResult, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	result := buildResult(key, cache.DBIndex, cache.StorageSet, spec.Adapter)
	return &result, nil
}

func reconcileFromCache(cache *ReconcileCache, adapter Adapter) []ReconcileResult {
	union := buildUnion(cache.DBIndex, cache.StorageSet)

	results := make([]ReconcileResult, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, cache.DBIndex, cache.StorageSet, adapter))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})
	return results
}

func buildUnion(dbIndex map[string]DBItem, storageSet map[string]struct{}) map[string]struct{} {
	union := make(map[string]struct{}, len(dbIndex)+len(storageSet))
	for key := range dbIndex {
		union[key] = struct{}{}
	}
	for key := range storageSet {
		union[key] = struct{}{}
	}
	return union
}

func buildResult(key string, dbIndex map[string]DBItem, storageSet map[string]struct{}, adapter Adapter) ReconcileResult {
	dbItem, dbPresent := dbIndex[key]
	_, storagePresent := storageSet[key]

	return ReconcileResult{
		ID:             key,
		DBPresent:      dbPresent,
		StoragePresent: storagePresent,
		Metadata:       adapter.GetMetadata(key, dbItem),
	}
}

// Package reconcile compares two sources of truth, database references and
// storage objects, and plans purge actions for keys present in only one of them.
//
// # Architecture
//
// 1. Engine: builds the union of keys from both sources and reports presence.
//
// 2. Adapter: model-specific loading of the database index and storage set.
//    Adapters that also implement Mutator can execute purge actions.
//
// 3. Cache: TTL-based caching of both indices with stampede protection.
//
// Both indices are loaded concurrently with a single batch query and a single
// paginated listing.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Adapter:  audit.NewMediaAdapter(store, client, cfg.Storage),
//	    CacheTTL: 5 * time.Minute,
//	}
//
//	plan, err := reconcile.ReconcileWithPlan(ctx, spec, reconcile.ReconcileOptions{DoPurge: true})
//	executed, err := reconcile.ApplyPlan(ctx, spec, plan, reconcile.ReconcileOptions{Confirmed: true})
package reconcile

package reconcile

import (
	"context"
	"fmt"
)

// ReconcileWithPlan performs reconciliation and returns a plan with results and actions.
// It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, spec *Spec, opts ReconcileOptions) (*ReconcilePlan, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}

	results := reconcileFromCache(cache, spec.Adapter)
	summary, actions := buildPlanFromResults(results, opts)

	return &ReconcilePlan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the actions in a reconcile plan.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
// A successful apply invalidates the cached indices for spec.
func ApplyPlan(ctx context.Context, spec *Spec, plan *ReconcilePlan, opts ReconcileOptions) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	mutator, ok := spec.Adapter.(Mutator)
	if !ok {
		return 0, fmt.Errorf("adapter %s does not implement Mutator interface", spec.Adapter.Name())
	}

	var deleteDBKeys, deleteStorageKeys []string
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDeleteDB:
			deleteDBKeys = append(deleteDBKeys, action.Key)
		case ActionDeleteStorage:
			deleteStorageKeys = append(deleteStorageKeys, action.Key)
		}
	}

	defer func() {
		if executed > 0 {
			InvalidateCache(spec)
		}
	}()

	if len(deleteDBKeys) > 0 {
		type DBBatchDeleter interface {
			DeleteDBBatch(ctx context.Context, keys []string) error
		}
		if batchDeleter, ok := mutator.(DBBatchDeleter); ok {
			if err := batchDeleter.DeleteDBBatch(ctx, deleteDBKeys); err != nil {
				return executed, fmt.Errorf("failed to batch delete DB keys: %w", err)
			}
			executed += len(deleteDBKeys)
		} else {
			for _, key := range deleteDBKeys {
				if err := mutator.DeleteDB(ctx, key); err != nil {
					return executed, fmt.Errorf("failed to delete DB key %s: %w", key, err)
				}
				executed++
			}
		}
	}

	if len(deleteStorageKeys) > 0 {
		type StorageBatchDeleter interface {
			DeleteStorageBatch(ctx context.Context, keys []string) error
		}
		if batchDeleter, ok := mutator.(StorageBatchDeleter); ok {
			if err := batchDeleter.DeleteStorageBatch(ctx, deleteStorageKeys); err != nil {
				return executed, fmt.Errorf("failed to batch delete storage keys: %w", err)
			}
			executed += len(deleteStorageKeys)
		} else {
			for _, key := range deleteStorageKeys {
				if err := mutator.DeleteStorage(ctx, key); err != nil {
					return executed, fmt.Errorf("failed to delete storage key %s: %w", key, err)
				}
				executed++
			}
		}
	}

	return executed, nil
}

// ReconcileAndApply plans and optionally applies actions.
func ReconcileAndApply(ctx context.Context, spec *Spec, opts ReconcileOptions) (*ReconcilePlan, int, error) {
	plan, err := ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, spec, plan, opts)
	return plan, executed, err
}

func buildPlanFromResults(results []ReconcileResult, opts ReconcileOptions) (PlanSummary, []Action) {
	var summary PlanSummary
	var actions []Action

	summary.TotalItems = len(results)

	for _, result := range results {
		if result.DBPresent && !result.StoragePresent {
			summary.MissingStorage++
			if opts.DoPurge {
				actions = append(actions, Action{
					Type:   ActionDeleteDB,
					Key:    result.ID,
					Reason: "missing in: storage",
				})
				summary.PurgeActions++
			}
		}

		if result.StoragePresent && !result.DBPresent {
			summary.MissingDB++
			if opts.DoPurge {
				actions = append(actions, Action{
					Type:   ActionDeleteStorage,
					Key:    result.ID,
					Reason: "missing in: database",
				})
				summary.PurgeActions++
			}
		}
	}

	return summary, actions
}

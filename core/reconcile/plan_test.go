package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMutator struct {
	mockAdapter
	deletedDB      []string
	deletedStorage []string
	failOn         string
}

func (m *mockMutator) DeleteDB(ctx context.Context, key string) error {
	if key == m.failOn {
		return errors.New("delete failed")
	}
	m.deletedDB = append(m.deletedDB, key)
	return nil
}

func (m *mockMutator) DeleteStorage(ctx context.Context, key string) error {
	if key == m.failOn {
		return errors.New("delete failed")
	}
	m.deletedStorage = append(m.deletedStorage, key)
	return nil
}

type mockBatchMutator struct {
	mockMutator
	batchDBCalls      [][]string
	batchStorageCalls [][]string
}

func (m *mockBatchMutator) DeleteDBBatch(ctx context.Context, keys []string) error {
	m.batchDBCalls = append(m.batchDBCalls, keys)
	return nil
}

func (m *mockBatchMutator) DeleteStorageBatch(ctx context.Context, keys []string) error {
	m.batchStorageCalls = append(m.batchStorageCalls, keys)
	return nil
}

func TestReconcileWithPlan_PurgeActions(t *testing.T) {
	adapter := &mockAdapter{
		dbIndex:    map[string]DBItem{"dangling": "l1", "ok": "l1"},
		storageSet: map[string]struct{}{"ok": {}, "orphan": {}},
	}
	spec := &Spec{Adapter: adapter}

	plan, err := ReconcileWithPlan(context.Background(), spec, ReconcileOptions{DoPurge: true})
	require.NoError(t, err)

	assert.Len(t, plan.Results, 3)
	assert.Equal(t, 3, plan.Summary.TotalItems)
	assert.Equal(t, 1, plan.Summary.MissingStorage)
	assert.Equal(t, 1, plan.Summary.MissingDB)
	assert.Equal(t, 2, plan.Summary.PurgeActions)
	assert.ElementsMatch(t, []Action{
		{Type: ActionDeleteDB, Key: "dangling", Reason: "missing in: storage"},
		{Type: ActionDeleteStorage, Key: "orphan", Reason: "missing in: database"},
	}, plan.Actions)
}

func TestReconcileWithPlan_ReportOnly(t *testing.T) {
	adapter := &mockAdapter{
		dbIndex:    map[string]DBItem{"dangling": "l1"},
		storageSet: map[string]struct{}{"orphan": {}},
	}

	plan, err := ReconcileWithPlan(context.Background(), &Spec{Adapter: adapter}, ReconcileOptions{})
	require.NoError(t, err)

	assert.Empty(t, plan.Actions)
	assert.Zero(t, plan.Summary.PurgeActions)
	assert.Equal(t, 1, plan.Summary.MissingDB)
}

func TestApplyPlan_Guards(t *testing.T) {
	mutator := &mockMutator{}
	spec := &Spec{Adapter: mutator}
	plan := &ReconcilePlan{Actions: []Action{{Type: ActionDeleteDB, Key: "1"}}}

	t.Run("NotConfirmed", func(t *testing.T) {
		executed, err := ApplyPlan(context.Background(), spec, plan, ReconcileOptions{})
		assert.NoError(t, err)
		assert.Zero(t, executed)
	})

	t.Run("DryRun", func(t *testing.T) {
		executed, err := ApplyPlan(context.Background(), spec, plan, ReconcileOptions{Confirmed: true, DryRun: true})
		assert.NoError(t, err)
		assert.Zero(t, executed)
	})

	t.Run("NotMutator", func(t *testing.T) {
		_, err := ApplyPlan(context.Background(), &Spec{Adapter: &mockAdapter{}}, plan, ReconcileOptions{Confirmed: true})
		assert.ErrorContains(t, err, "does not implement Mutator")
	})

	assert.Empty(t, mutator.deletedDB)
}

func TestApplyPlan_UsesBatchDeletion(t *testing.T) {
	mutator := &mockBatchMutator{}
	spec := &Spec{Adapter: mutator}
	plan := &ReconcilePlan{
		Actions: []Action{
			{Type: ActionDeleteDB, Key: "1"},
			{Type: ActionDeleteDB, Key: "2"},
			{Type: ActionDeleteStorage, Key: "20"},
			{Type: ActionDeleteStorage, Key: "21"},
		},
	}

	executed, err := ApplyPlan(context.Background(), spec, plan, ReconcileOptions{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 4, executed)

	require.Len(t, mutator.batchDBCalls, 1)
	assert.Equal(t, []string{"1", "2"}, mutator.batchDBCalls[0])
	assert.Empty(t, mutator.deletedDB)

	require.Len(t, mutator.batchStorageCalls, 1)
	assert.Equal(t, []string{"20", "21"}, mutator.batchStorageCalls[0])
	assert.Empty(t, mutator.deletedStorage)
}

func TestApplyPlan_FallbackToSequential(t *testing.T) {
	mutator := &mockMutator{}
	spec := &Spec{Adapter: mutator}
	plan := &ReconcilePlan{
		Actions: []Action{
			{Type: ActionDeleteDB, Key: "1"},
			{Type: ActionDeleteStorage, Key: "20"},
		},
	}

	executed, err := ApplyPlan(context.Background(), spec, plan, ReconcileOptions{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 2, executed)
	assert.Equal(t, []string{"1"}, mutator.deletedDB)
	assert.Equal(t, []string{"20"}, mutator.deletedStorage)
}

func TestApplyPlan_StopsOnError(t *testing.T) {
	mutator := &mockMutator{failOn: "2"}
	spec := &Spec{Adapter: mutator}
	plan := &ReconcilePlan{
		Actions: []Action{
			{Type: ActionDeleteDB, Key: "1"},
			{Type: ActionDeleteDB, Key: "2"},
			{Type: ActionDeleteStorage, Key: "20"},
		},
	}

	executed, err := ApplyPlan(context.Background(), spec, plan, ReconcileOptions{Confirmed: true})
	assert.ErrorContains(t, err, "failed to delete DB key 2")
	assert.Equal(t, 1, executed)
	assert.Empty(t, mutator.deletedStorage)
}

func TestReconcileAndApply(t *testing.T) {
	mutator := &mockMutator{
		mockAdapter: mockAdapter{
			name:       "apply",
			dbIndex:    map[string]DBItem{"dangling": "l1"},
			storageSet: map[string]struct{}{"orphan": {}},
		},
	}
	spec := &Spec{Adapter: mutator}

	plan, executed, err := ReconcileAndApply(context.Background(), spec, ReconcileOptions{DoPurge: true, Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 2, executed)
	assert.Len(t, plan.Actions, 2)
	assert.Equal(t, []string{"dangling"}, mutator.deletedDB)
	assert.Equal(t, []string{"orphan"}, mutator.deletedStorage)
}

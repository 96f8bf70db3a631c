package reconcile

import "time"

// ReconcileResult represents the reconciliation output for a single key.
type ReconcileResult struct {
	// ID is the unique identifier shared by both sources (e.g., a media public id).
	ID string `json:"id"`

	// DBPresent indicates whether the key is referenced by the database.
	DBPresent bool `json:"db_present"`

	// StoragePresent indicates whether an object exists in storage for the key.
	StoragePresent bool `json:"storage_present"`

	// Metadata contains adapter-specific data (e.g., the owning listing id).
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Spec defines the configuration for a reconciliation operation.
type Spec struct {
	// Adapter provides model-specific loading and mutation.
	Adapter Adapter

	// CacheTTL is the time-to-live for cached indices.
	// If zero, caching is disabled.
	CacheTTL time.Duration
}

// CacheKey returns the key under which indices for this spec are cached.
func (s *Spec) CacheKey() string {
	return s.Adapter.Name()
}

// DBItem represents a database entity. Adapters define the concrete type.
type DBItem any

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionDeleteDB removes the database reference to a key.
	ActionDeleteDB ActionType = "delete_db"
	// ActionDeleteStorage deletes the storage object for a key.
	ActionDeleteStorage ActionType = "delete_storage"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entity identifier.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	// Results contains per-key reconciliation data, sorted by ID.
	Results []ReconcileResult `json:"results"`

	// Actions contains planned mutation operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the total number of unique keys.
	TotalItems int `json:"total_items"`

	// MissingStorage counts keys referenced by the database without a storage object.
	MissingStorage int `json:"missing_storage"`

	// MissingDB counts storage objects no database record references.
	MissingDB int `json:"missing_db"`

	// PurgeActions counts planned purge (delete) actions.
	PurgeActions int `json:"purge_actions"`
}

// ReconcileOptions controls reconcile behavior for purge operations.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoPurge plans deletion of keys missing in either source.
	DoPurge bool

	// Confirmed indicates the caller has confirmed destructive actions.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}

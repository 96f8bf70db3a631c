package audit

import (
	"context"
	"errors"
	"time"

	"estate-manager/core/reconcile"

	"go.uber.org/zap"
)

// ErrNotConfirmed is returned when a purge is requested without confirmation.
var ErrNotConfirmed = errors.New("purge requires confirmation")

// Report is the result of a media audit.
type Report struct {
	Summary reconcile.PlanSummary       `json:"summary"`
	Orphans []string                    `json:"orphans"`
	Missing []reconcile.ReconcileResult `json:"missing"`
	Actions []reconcile.Action          `json:"actions,omitempty"`
	// Deferred lists orphans too recent to purge.
	Deferred []string `json:"deferred"`
	// Executed counts the purge actions that ran.
	Executed int  `json:"executed"`
	DryRun   bool `json:"dry_run"`
}

// settler is implemented by adapters that can tell when a storage object is
// too recent to purge.
type settler interface {
	Settling(key string) bool
}

// Service runs media audits.
type Service struct {
	spec   *reconcile.Spec
	logger *zap.Logger
}

// NewService creates an audit service. Indices are cached for cacheTTL.
func NewService(adapter reconcile.Mutator, cacheTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		spec:   &reconcile.Spec{Adapter: adapter, CacheTTL: cacheTTL},
		logger: logger,
	}
}

// Audit reports orphaned objects and dangling references without changing anything.
func (s *Service) Audit(ctx context.Context) (*Report, error) {
	plan, err := reconcile.ReconcileWithPlan(ctx, s.spec, reconcile.ReconcileOptions{})
	if err != nil {
		return nil, err
	}
	return newReport(plan, s.settling(plan.Results), 0, true), nil
}

// Check reconciles a single public id.
func (s *Service) Check(ctx context.Context, publicID string) (*reconcile.ReconcileResult, error) {
	return reconcile.ReconcileOne(ctx, s.spec, publicID)
}

// Purge plans deletions for every mismatch and executes them unless dryRun is
// set. Without confirmation nothing runs.
func (s *Service) Purge(ctx context.Context, confirmed, dryRun bool) (*Report, error) {
	if !confirmed && !dryRun {
		return nil, ErrNotConfirmed
	}

	// Always plan on fresh indices; a purge must not act on a stale listing.
	reconcile.InvalidateCache(s.spec)

	opts := reconcile.ReconcileOptions{DoPurge: true, DryRun: dryRun, Confirmed: confirmed}
	plan, err := reconcile.ReconcileWithPlan(ctx, s.spec, opts)
	if err != nil {
		return nil, err
	}
	deferred := s.deferSettling(plan)

	executed, err := reconcile.ApplyPlan(ctx, s.spec, plan, opts)
	if err != nil {
		s.logger.Error("Media purge failed", zap.Int("executed", executed), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Media purge finished",
		zap.Int("planned", plan.Summary.PurgeActions),
		zap.Int("executed", executed),
		zap.Int("deferred", len(deferred)),
		zap.Bool("dry_run", dryRun),
	)
	return newReport(plan, deferred, executed, dryRun), nil
}

// deferSettling drops storage deletions of settling objects from plan and
// returns their keys.
func (s *Service) deferSettling(plan *reconcile.ReconcilePlan) []string {
	st, ok := s.spec.Adapter.(settler)
	if !ok {
		return []string{}
	}

	deferred := []string{}
	kept := plan.Actions[:0]
	for _, action := range plan.Actions {
		if action.Type == reconcile.ActionDeleteStorage && st.Settling(action.Key) {
			deferred = append(deferred, action.Key)
			continue
		}
		kept = append(kept, action)
	}
	plan.Actions = kept
	plan.Summary.PurgeActions = len(kept)
	return deferred
}

// settling returns the orphans in results that are too recent to purge.
func (s *Service) settling(results []reconcile.ReconcileResult) []string {
	keys := []string{}
	st, ok := s.spec.Adapter.(settler)
	if !ok {
		return keys
	}
	for _, res := range results {
		if res.StoragePresent && !res.DBPresent && st.Settling(res.ID) {
			keys = append(keys, res.ID)
		}
	}
	return keys
}

func newReport(plan *reconcile.ReconcilePlan, deferred []string, executed int, dryRun bool) *Report {
	r := &Report{
		Summary:  plan.Summary,
		Orphans:  []string{},
		Missing:  []reconcile.ReconcileResult{},
		Actions:  plan.Actions,
		Deferred: deferred,
		Executed: executed,
		DryRun:   dryRun,
	}
	for _, res := range plan.Results {
		switch {
		case res.StoragePresent && !res.DBPresent:
			r.Orphans = append(r.Orphans, res.ID)
		case res.DBPresent && !res.StoragePresent:
			r.Missing = append(r.Missing, res)
		}
	}
	return r
}

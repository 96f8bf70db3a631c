package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"estate-manager/core/config"
	"estate-manager/core/logger"
	"estate-manager/core/reconcile"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	purgeMedia  bool
	dryRunMedia bool
	jsonReport  bool
	yesConfirm  bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile listing media between the database and storage",
}

// mediaReconcileCmd reports orphaned objects and dangling references.
var mediaReconcileCmd = &cobra.Command{
	Use:   "media",
	Short: "Reconcile listing media (report + optionally purge)",
	Long: `Compare the media referenced by listings with the objects in the media bucket.

Objects nobody references are orphans. References without an object are dangling.
With --purge, orphans are deleted from storage and dangling references are
detached from their listing.

Examples:
  # Report only
  reconcile media

  # Purge with interactive confirmation
  reconcile media --purge

  # Purge without prompting
  reconcile media --purge --yes`,
	RunE: runMediaReconcile,
}

func init() {
	reconcileCmd.AddCommand(mediaReconcileCmd)

	mediaReconcileCmd.Flags().BoolVar(&purgeMedia, "purge", false, "Delete orphans and detach dangling references")
	mediaReconcileCmd.Flags().BoolVar(&dryRunMedia, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	mediaReconcileCmd.Flags().BoolVar(&jsonReport, "json", false, "Print the full plan as JSON")
	mediaReconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runMediaReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	svcs, err := bootstrap(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer svcs.close()

	auditSvc := svcs.newAuditService(cfg, l)

	l.Info("Planning media reconciliation...")
	report, err := auditSvc.Purge(ctx, false, true)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	if jsonReport {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	}
	printReconcileReport(l, report.Summary, report.Actions)
	if len(report.Deferred) > 0 {
		l.Info("Skipping recently uploaded objects", zap.Int("count", len(report.Deferred)))
	}

	if !purgeMedia {
		l.Info("No actions requested. Use --purge to delete orphans and detach dangling references.")
		return nil
	}
	if dryRunMedia {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(report.Actions) == 0 {
		l.Info("No actions required.")
		return nil
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Applying actions...")
	report, err = auditSvc.Purge(ctx, true, false)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}

	l.Info("Successfully executed actions", zap.Int("count", report.Executed))
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, s reconcile.PlanSummary, actions []reconcile.Action) {
	l.Info("Reconciliation report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("missing_storage", s.MissingStorage),
		zap.Int("missing_db", s.MissingDB),
	)

	if len(actions) == 0 {
		return
	}
	l.Info("Planned actions", zap.Int("purge_actions", s.PurgeActions))

	maxShow := min(5, len(actions))
	for _, action := range actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}

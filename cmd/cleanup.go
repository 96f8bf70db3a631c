package cmd

import (
	"fmt"
	"time"

	"estate-manager/core/config"
	"estate-manager/core/logger"
	"estate-manager/core/tempfile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var olderThan time.Duration

// cleanupCmd is the parent command for maintenance cleanups.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove leftovers from interrupted requests",
}

// uploadsCleanupCmd removes stale multipart scratch files.
var uploadsCleanupCmd = &cobra.Command{
	Use:   "uploads",
	Short: "Remove stale upload scratch files",
	Long: `Deletes files in the upload directory older than --older-than.
Defaults to upload.max_age_minutes from the configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		dir, err := cfg.Upload.EnsureDir()
		if err != nil {
			return fmt.Errorf("failed to open upload dir: %w", err)
		}

		maxAge := olderThan
		if maxAge <= 0 {
			maxAge = cfg.Upload.MaxAge()
		}

		removed, err := tempfile.Sweep(dir, maxAge, time.Now())
		l.Info("Upload cleanup finished", zap.String("dir", dir), zap.Int("removed", removed), zap.Duration("older_than", maxAge))
		return err
	},
}

func init() {
	uploadsCleanupCmd.Flags().DurationVar(&olderThan, "older-than", 0, "Minimum age of files to remove (e.g. 30m)")
	cleanupCmd.AddCommand(uploadsCleanupCmd)
	RootCmd.AddCommand(cleanupCmd)
}

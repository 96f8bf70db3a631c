package tempfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweep removes regular files in dir whose modification time is older than maxAge.
// A non-positive maxAge means DefaultMaxAge. It returns the number of files removed.
func Sweep(dir string, maxAge time.Duration, now time.Time) (int, error) {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	cutoff := now.Add(-maxAge)
	removed := 0
	var firstErr error

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			if firstErr == nil && !os.IsNotExist(err) {
				firstErr = fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
			}
			continue
		}
		removed++
	}

	return removed, firstErr
}

// Sweeper runs Sweep on a cron schedule.
type Sweeper struct {
	cron   *cron.Cron
	dir    string
	maxAge time.Duration
	logger *zap.Logger
}

// NewSweeper registers a sweep of dir under schedule.
func NewSweeper(schedule, dir string, maxAge time.Duration, logger *zap.Logger) (*Sweeper, error) {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	s := &Sweeper{
		cron:   cron.New(),
		dir:    dir,
		maxAge: maxAge,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Sweeper) run() {
	removed, err := Sweep(s.dir, s.maxAge, time.Now())
	if err != nil {
		s.logger.Warn("Temp sweep incomplete", zap.String("dir", s.dir), zap.Int("removed", removed), zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("Temp sweep removed stale uploads", zap.String("dir", s.dir), zap.Int("removed", removed))
	}
}

// Start begins the schedule in its own goroutine.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

package listing

import (
	"context"
	"fmt"
	"time"

	"estate-manager/core/saga"
	"estate-manager/core/storage"
	"estate-manager/core/tempfile"
	"estate-manager/feature/listing/media"
	"estate-manager/feature/listing/models"

	"go.uber.org/zap"
)

// Options configures the listing service.
type Options struct {
	// Folder is the storage folder media are uploaded to.
	Folder string
	// MaxMedia caps the media of a single listing.
	MaxMedia int
	// MaxFiles caps the files of a single request.
	MaxFiles int
	// MaxFileSize caps the size of each file in bytes.
	MaxFileSize int64
}

// Service coordinates listing updates across the store, the media store and
// the local upload scratch files.
type Service struct {
	store   Store
	media   storage.MediaStore
	cleaner tempfile.Cleaner
	logger  *zap.Logger
	opts    Options
	now     func() time.Time
}

// NewService creates a new listing service.
func NewService(store Store, mediaStore storage.MediaStore, cleaner tempfile.Cleaner, logger *zap.Logger, opts Options) *Service {
	if opts.MaxMedia <= 0 {
		opts.MaxMedia = media.MaxMedia
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = opts.MaxMedia
	}
	return &Service{
		store:   store,
		media:   mediaStore,
		cleaner: cleaner,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
	}
}

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

// UpdateResult summarizes a committed listing update.
type UpdateResult struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	MediaCount int                  `json:"mediaCount"`
	Media      []models.MediaRecord `json:"-"`
	Skipped    []string             `json:"-"`
}

// UpdateListing applies a listing update and reconciles its media. Remote
// uploads are compensated when anything fails before commit, and the request's
// scratch files are removed on every path.
func (s *Service) UpdateListing(ctx context.Context, id string, raw RawUpdate, files []PendingUpload) (*UpdateResult, error) {
	defer s.cleanup(files)

	l := s.logger.With(zap.String("listing_id", id))

	changes, err := s.validateUpdate(id, raw, files)
	if err != nil {
		return nil, err
	}

	ledger := saga.New(l)
	destroyed := make(map[string]struct{})
	var (
		plan  *media.Plan
		saved *models.Listing
	)

	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		listing, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}

		survivors := media.Survivors(listing.Media, changes.RemovedIDs)
		if err := media.CheckCapacity(len(survivors), len(files), s.opts.MaxMedia); err != nil {
			return err
		}

		for _, publicID := range changes.RemovedIDs {
			if _, done := destroyed[publicID]; done || !listing.HasMedia(publicID) {
				continue
			}
			destroyed[publicID] = struct{}{}
			if err := s.media.Destroy(ctx, publicID); err != nil {
				l.Warn("Failed to delete removed media", zap.String("public_id", publicID), zap.Error(err))
			}
		}

		uploaded, err := s.upload(ctx, id, files, ledger)
		if err != nil {
			return err
		}

		plan, err = media.Reconcile(media.Input{
			Existing:   listing.Media,
			Uploaded:   uploaded,
			RemovedIDs: changes.RemovedIDs,
			Order:      changes.Order,
			TempIDs:    changes.TempIDs,
			CoverID:    changes.CoverID,
			MaxTotal:   s.opts.MaxMedia,
			Now:        s.now(),
		})
		if err != nil {
			return err
		}
		for _, tok := range plan.Skipped {
			l.Warn("Skipped media order token", zap.String("token", tok))
		}

		listing.Media = plan.FinalMedia
		changes.Apply(listing)
		listing.UpdatedAt = s.now().UTC()

		if err := models.Validate(listing); err != nil {
			return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
		}
		if err := tx.Save(ctx, listing); err != nil {
			return err
		}
		saved = listing
		return nil
	})
	if err != nil {
		if errs := ledger.Compensate(context.WithoutCancel(ctx)); len(errs) > 0 {
			l.Warn("Some uploads could not be rolled back", zap.Int("failed", len(errs)))
		}
		err = Classify(err)
		l.Info("Listing update failed", zap.Error(err))
		return nil, err
	}
	ledger.Discard()

	var stale []string
	for _, publicID := range plan.IDsToDeleteRemotely {
		if _, done := destroyed[publicID]; !done {
			stale = append(stale, publicID)
		}
	}
	stale = append(stale, plan.DiscardedUploads...)
	s.destroyAll(context.WithoutCancel(ctx), l, stale)

	return &UpdateResult{
		ID:         saved.ID,
		Title:      saved.Title,
		MediaCount: len(saved.Media),
		Media:      saved.Media,
		Skipped:    plan.Skipped,
	}, nil
}

func (s *Service) validateUpdate(id string, raw RawUpdate, files []PendingUpload) (*ChangeSet, error) {
	if !IsValidID(id) {
		return nil, fmt.Errorf("%w: malformed listing id %q", ErrValidation, id)
	}
	if len(files) > s.opts.MaxFiles {
		return nil, fmt.Errorf("%w: at most %d files per request", ErrValidation, s.opts.MaxFiles)
	}
	if s.opts.MaxFileSize > 0 {
		for _, f := range files {
			if f.Size > s.opts.MaxFileSize {
				return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrValidation, f.OriginalName, s.opts.MaxFileSize)
			}
		}
	}
	return Normalize(raw, files)
}

// upload stores each file in order and records a compensating delete for
// every success. The first failure stops the loop.
func (s *Service) upload(ctx context.Context, listingID string, files []PendingUpload, ledger *saga.Ledger) ([]storage.UploadResult, error) {
	stamp := s.now().UnixMilli()
	results := make([]storage.UploadResult, 0, len(files))

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("upload interrupted: %w", err)
		}

		resourceType, _ := storage.ResourceTypeFor(f.MimeType)
		res, err := s.media.Upload(ctx, f.LocalPath, storage.UploadOptions{
			Folder:       s.opts.Folder,
			PublicID:     fmt.Sprintf("listing_%s_%d_%d", listingID, stamp, i),
			ResourceType: resourceType,
			ContentType:  f.MimeType,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("upload interrupted: %w", ctxErr)
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrMediaUpload, f.OriginalName, err)
		}

		publicID := res.PublicID
		ledger.Record("upload "+publicID, func(ctx context.Context) error {
			return s.media.Destroy(ctx, publicID)
		})
		results = append(results, res)
	}
	return results, nil
}

// CreateListing stores a new listing without media.
func (s *Service) CreateListing(ctx context.Context, raw RawUpdate) (*models.Listing, error) {
	changes, err := Normalize(raw, nil)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	listing := &models.Listing{
		ID:        NewID(),
		Amenities: []string{},
		Media:     []models.MediaRecord{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	changes.Apply(listing)

	if err := models.Validate(listing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if err := s.store.Create(ctx, listing); err != nil {
		return nil, Classify(err)
	}
	return listing, nil
}

// GetListing loads a listing by id.
func (s *Service) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	if !IsValidID(id) {
		return nil, fmt.Errorf("%w: malformed listing id %q", ErrValidation, id)
	}
	listing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, Classify(err)
	}
	return listing, nil
}

// DeleteListing removes a listing and then its media.
func (s *Service) DeleteListing(ctx context.Context, id string) error {
	if !IsValidID(id) {
		return fmt.Errorf("%w: malformed listing id %q", ErrValidation, id)
	}

	var mediaIDs []string
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		listing, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		for _, m := range listing.Media {
			mediaIDs = append(mediaIDs, m.PublicID)
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return Classify(err)
	}

	s.destroyAll(context.WithoutCancel(ctx), s.logger.With(zap.String("listing_id", id)), mediaIDs)
	return nil
}

// DetachMedia removes references to publicIDs from a listing without touching
// storage. Order and cover are recomputed from the remaining media.
func (s *Service) DetachMedia(ctx context.Context, listingID string, publicIDs []string) error {
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx Tx) error {
		listing, err := tx.FindByID(ctx, listingID)
		if err != nil {
			return err
		}

		order := make([]string, 0, len(listing.Media))
		coverID := ""
		for _, m := range listing.Media {
			order = append(order, m.PublicID)
			if m.IsCover {
				coverID = m.PublicID
			}
		}

		plan, err := media.Reconcile(media.Input{
			Existing:   listing.Media,
			RemovedIDs: publicIDs,
			Order:      order,
			CoverID:    coverID,
			MaxTotal:   s.opts.MaxMedia,
			Now:        s.now(),
		})
		if err != nil {
			return err
		}

		listing.Media = plan.FinalMedia
		listing.UpdatedAt = s.now().UTC()
		return tx.Save(ctx, listing)
	})
	return Classify(err)
}

func (s *Service) destroyAll(ctx context.Context, l *zap.Logger, publicIDs []string) {
	for _, publicID := range publicIDs {
		if err := s.media.Destroy(ctx, publicID); err != nil {
			l.Warn("Failed to delete media", zap.String("public_id", publicID), zap.Error(err))
		}
	}
}

func (s *Service) cleanup(files []PendingUpload) {
	if len(files) == 0 {
		return
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.LocalPath
	}
	report := s.cleaner.Cleanup(paths)
	if len(report.Failed) > 0 {
		s.logger.Warn("Temp files left behind", zap.Int("failed", len(report.Failed)))
	}
}

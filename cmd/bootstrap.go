package cmd

import (
	"context"
	"fmt"

	"estate-manager/core/config"
	"estate-manager/core/database"
	"estate-manager/core/storage"
	"estate-manager/core/tempfile"
	"estate-manager/feature/audit"
	"estate-manager/feature/listing"

	"go.uber.org/zap"
)

// services holds everything the commands share once configuration is loaded.
type services struct {
	store     listing.Store
	client    storage.Client
	listings  *listing.Service
	uploadDir string
	close     func()
}

// openStore connects the listing store selected by cfg.Driver.
func openStore(ctx context.Context, cfg database.Config, l *zap.Logger) (listing.Store, func(), error) {
	if cfg.IsDocumentStore() {
		client, db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		l.Info("Connected to listing store", zap.String("driver", cfg.Driver), zap.String("database", cfg.Name))
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return listing.NewMongoStore(client, db, cfg.Collection), closeFn, nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	store := listing.NewGormStore(db, cfg.Collection)
	if err := store.Migrate(); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate listings table: %w", err)
	}
	l.Info("Connected to listing store", zap.String("driver", cfg.Driver), zap.String("database", cfg.Name))

	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return store, closeFn, nil
}

// bootstrap connects storage and the listing store and builds the listing service.
func bootstrap(ctx context.Context, cfg *config.Config, l *zap.Logger) (*services, error) {
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		return nil, fmt.Errorf("failed to prepare bucket: %w", err)
	}

	store, closeFn, err := openStore(ctx, cfg.Database, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to listing store: %w", err)
	}

	uploadDir, err := cfg.Upload.EnsureDir()
	if err != nil {
		closeFn()
		return nil, fmt.Errorf("failed to prepare upload dir: %w", err)
	}

	svc := listing.NewService(
		store,
		storage.NewMediaStore(client, cfg.Storage),
		tempfile.NewDiskCleaner(l),
		l,
		listing.Options{
			Folder:      cfg.Storage.Folder,
			MaxFiles:    cfg.Upload.MaxFiles,
			MaxFileSize: cfg.Upload.MaxFileSize(),
		},
	)

	return &services{
		store:     store,
		client:    client,
		listings:  svc,
		uploadDir: uploadDir,
		close:     closeFn,
	}, nil
}

// newAuditService builds the media audit on top of the shared services. An
// update cannot hold an upload longer than its scratch files live, so objects
// younger than the upload max age are never purged.
func (s *services) newAuditService(cfg *config.Config, l *zap.Logger) *audit.Service {
	adapter := audit.NewAdapter(s.store, s.listings, s.client, cfg.Storage.Bucket, cfg.Storage.Folder, cfg.Upload.MaxAge())
	return audit.NewService(adapter, auditCacheTTL, l)
}

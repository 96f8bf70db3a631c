package listing

import (
	"context"
	"errors"
	"fmt"

	"estate-manager/feature/listing/models"

	"gorm.io/gorm"
)

// GormStore keeps listings in a SQL table. Nested values are JSON columns.
type GormStore struct {
	db    *gorm.DB
	table string
}

// NewGormStore creates a store on the given table.
func NewGormStore(db *gorm.DB, table string) *GormStore {
	if table == "" {
		table = "listings"
	}
	return &GormStore{db: db, table: table}
}

// Migrate creates or updates the listings table.
func (s *GormStore) Migrate() error {
	return s.db.Table(s.table).AutoMigrate(&models.Listing{})
}

// WithTransaction implements Store.
func (s *GormStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &gormTx{db: tx, table: s.table})
	})
}

// FindByID implements Store.
func (s *GormStore) FindByID(ctx context.Context, id string) (*models.Listing, error) {
	return (&gormTx{db: s.db.WithContext(ctx), table: s.table}).FindByID(ctx, id)
}

// Create implements Store.
func (s *GormStore) Create(ctx context.Context, l *models.Listing) error {
	if err := s.db.WithContext(ctx).Table(s.table).Create(l).Error; err != nil {
		return fmt.Errorf("failed to insert listing %s: %w", l.ID, err)
	}
	return nil
}

// MediaIndex implements Store.
func (s *GormStore) MediaIndex(ctx context.Context) (map[string]string, error) {
	var rows []models.Listing
	if err := s.db.WithContext(ctx).Table(s.table).Select("id", "media").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query media index: %w", err)
	}

	index := make(map[string]string)
	for _, row := range rows {
		for _, m := range row.Media {
			index[m.PublicID] = row.ID
		}
	}
	return index, nil
}

type gormTx struct {
	db    *gorm.DB
	table string
}

func (t *gormTx) FindByID(ctx context.Context, id string) (*models.Listing, error) {
	var l models.Listing
	err := t.db.WithContext(ctx).Table(t.table).Where("id = ?", id).Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load listing %s: %w", id, err)
	}
	return &l, nil
}

func (t *gormTx) Save(ctx context.Context, l *models.Listing) error {
	if err := t.db.WithContext(ctx).Table(t.table).Save(l).Error; err != nil {
		return fmt.Errorf("failed to save listing %s: %w", l.ID, err)
	}
	return nil
}

func (t *gormTx) Delete(ctx context.Context, id string) error {
	res := t.db.WithContext(ctx).Table(t.table).Where("id = ?", id).Delete(&models.Listing{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete listing %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

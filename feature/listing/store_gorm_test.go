package listing

import (
	"context"
	"errors"
	"testing"

	"estate-manager/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

var listingColumns = []string{
	"id", "title", "description", "property_type", "location", "price",
	"details", "amenities", "media", "created_at", "updated_at",
}

func listingRow(media string) *sqlmock.Rows {
	return sqlmock.NewRows(listingColumns).AddRow(
		testListingID, "Sunny flat", "", "{}", "{}", `{"currency":"EUR"}`,
		"{}", "[]", media, fixedNow, fixedNow,
	)
}

func TestGormStore_FindByID(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	store := NewGormStore(db, "listings")

	sqlMock.ExpectQuery("SELECT \\* FROM `listings` WHERE id = ").
		WillReturnRows(listingRow(`[{"publicId":"a","url":"u","resourceType":"image","bytes":1,"isCover":true,"uploadOrder":1}]`))

	l, err := store.FindByID(context.Background(), testListingID)
	require.NoError(t, err)
	assert.Equal(t, "Sunny flat", l.Title)
	assert.Equal(t, "EUR", l.Price.Currency)
	require.Len(t, l.Media, 1)
	assert.True(t, l.Media[0].IsCover)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestGormStore_FindByID_NotFound(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	store := NewGormStore(db, "listings")

	sqlMock.ExpectQuery("SELECT \\* FROM `listings`").WillReturnRows(sqlmock.NewRows(listingColumns))

	_, err := store.FindByID(context.Background(), testListingID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_MediaIndex(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	store := NewGormStore(db, "listings")

	rows := sqlmock.NewRows([]string{"id", "media"}).
		AddRow("l1", `[{"publicId":"a"},{"publicId":"b"}]`).
		AddRow("l2", `[]`).
		AddRow("l3", `[{"publicId":"c"}]`)
	sqlMock.ExpectQuery("SELECT `id`,`media` FROM `listings`").WillReturnRows(rows)

	index, err := store.MediaIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "l1", "b": "l1", "c": "l3"}, index)
}

func TestGormStore_Delete_NoRows(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	store := NewGormStore(db, "listings")

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("DELETE FROM `listings`").WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectRollback()

	err := store.WithTransaction(context.Background(), func(ctx context.Context, tx Tx) error {
		return tx.Delete(ctx, testListingID)
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestUpdateListing_SaveFailureRollsBack(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	store := NewGormStore(db, "listings")

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery("SELECT \\* FROM `listings`").WillReturnRows(listingRow("[]"))
	sqlMock.ExpectExec("UPDATE `listings`").WillReturnError(errors.New("connection reset"))
	sqlMock.ExpectRollback()

	media := new(mocks.MediaStore)
	expectUpload(media, 0, nil)
	media.On("Destroy", mock.Anything, uploadedID(0)).Return(nil).Once()

	files := pendingFiles(t, 1)
	svc := newTestService(store, media)

	_, err := svc.UpdateListing(context.Background(), testListingID, RawUpdate{Title: strPtr("Changed")}, files)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 500, StatusOf(err))
	assert.Equal(t, "Failed to update listing", MessageOf(err))

	media.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	assertFilesRemoved(t, files)
}

package listing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"estate-manager/core/database"
	"estate-manager/core/storage"
	"estate-manager/core/storage/mocks"
	"estate-manager/core/tempfile"
	"estate-manager/feature/listing/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testListingID = "65a1f0c2e4b0a1b2c3d4e5f6"

var fixedNow = time.UnixMilli(1700000000000)

func setupStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "listings.db"),
	})
	require.NoError(t, err)

	store := NewGormStore(db, "listings")
	require.NoError(t, store.Migrate())
	return store
}

func mediaRecords(ids ...string) []models.MediaRecord {
	out := make([]models.MediaRecord, len(ids))
	for i, id := range ids {
		out[i] = models.MediaRecord{
			PublicID:     id,
			URL:          "https://cdn.example.com/" + id,
			ResourceType: storage.ResourceImage,
			Bytes:        100,
			IsCover:      i == 0,
			UploadOrder:  i + 1,
		}
	}
	return out
}

func seedListing(t *testing.T, store Store, mediaIDs ...string) *models.Listing {
	t.Helper()
	amount := 250000.0
	l := &models.Listing{
		ID:          testListingID,
		Title:       "Sunny flat",
		Description: "Two rooms near the park",
		Price:       models.Price{Amount: &amount, Currency: "EUR"},
		Amenities:   []string{"balcony"},
		Media:       mediaRecords(mediaIDs...),
		CreatedAt:   fixedNow.UTC(),
		UpdatedAt:   fixedNow.UTC(),
	}
	require.NoError(t, store.Create(context.Background(), l))
	return l
}

func newTestService(store Store, mediaStore storage.MediaStore) *Service {
	svc := NewService(store, mediaStore, tempfile.NewDiskCleaner(zap.NewNop()), zap.NewNop(), Options{
		Folder:      "listings",
		MaxFileSize: 1024 * 1024,
	})
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func pendingFiles(t *testing.T, n int) []PendingUpload {
	t.Helper()
	dir := t.TempDir()
	files := make([]PendingUpload, n)
	for i := range files {
		p := filepath.Join(dir, fmt.Sprintf("upload-%d.jpg", i))
		require.NoError(t, os.WriteFile(p, []byte("jpeg"), 0o600))
		files[i] = PendingUpload{LocalPath: p, MimeType: "image/jpeg", OriginalName: fmt.Sprintf("photo-%d.jpg", i), Size: 4}
	}
	return files
}

func uploadedID(i int) string {
	return fmt.Sprintf("listings/listing_%s_%d_%d", testListingID, fixedNow.UnixMilli(), i)
}

func expectUpload(m *mocks.MediaStore, i int, err error) {
	call := m.On("Upload", mockAny, mockAny, uploadOptsFor(i))
	if err != nil {
		call.Return(storage.UploadResult{}, err).Once()
		return
	}
	call.Return(storage.UploadResult{
		PublicID:     uploadedID(i),
		URL:          "https://cdn.example.com/" + uploadedID(i),
		ResourceType: storage.ResourceImage,
		Bytes:        4,
	}, nil).Once()
}

func strPtr(s string) *string { return &s }

var mockAny = mock.Anything

func uploadOptsFor(i int) interface{} {
	return mock.MatchedBy(func(opts storage.UploadOptions) bool {
		return opts.Folder == "listings" &&
			opts.PublicID == fmt.Sprintf("listing_%s_%d_%d", testListingID, fixedNow.UnixMilli(), i) &&
			opts.ResourceType == storage.ResourceImage
	})
}

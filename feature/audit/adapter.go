package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"estate-manager/core/reconcile"
	"estate-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// MediaIndexer lists every media public id referenced by a listing.
type MediaIndexer interface {
	MediaIndex(ctx context.Context) (map[string]string, error)
}

// Detacher removes media references from a listing.
type Detacher interface {
	DetachMedia(ctx context.Context, listingID string, publicIDs []string) error
}

// MediaAdapter implements reconcile.Mutator for listing media. Keys are media
// public ids, which are also the object names in the bucket.
type MediaAdapter struct {
	index    MediaIndexer
	detacher Detacher
	client   storage.Client
	bucket   string
	folder   string
	grace    time.Duration
	now      func() time.Time

	mu       sync.Mutex
	modified map[string]time.Time
}

// NewAdapter creates a media adapter over the objects under folder. Objects
// written less than grace ago are reported as settling: they may belong to a
// listing update that has uploaded but not committed yet.
func NewAdapter(index MediaIndexer, detacher Detacher, client storage.Client, bucket, folder string, grace time.Duration) *MediaAdapter {
	return &MediaAdapter{
		index:    index,
		detacher: detacher,
		client:   client,
		bucket:   bucket,
		folder:   strings.Trim(folder, "/"),
		grace:    grace,
		now:      time.Now,
		modified: make(map[string]time.Time),
	}
}

// Name returns the unique name of this adapter.
func (a *MediaAdapter) Name() string {
	return "media"
}

// LoadDBIndex maps every referenced public id to the id of its listing.
func (a *MediaAdapter) LoadDBIndex(ctx context.Context) (map[string]reconcile.DBItem, error) {
	refs, err := a.index.MediaIndex(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]reconcile.DBItem, len(refs))
	for publicID, listingID := range refs {
		if a.inFolder(publicID) {
			index[publicID] = listingID
		}
	}
	return index, nil
}

// LoadStorageSet lists all media objects under the folder.
func (a *MediaAdapter) LoadStorageSet(ctx context.Context) (map[string]struct{}, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if a.folder != "" {
		opts.Prefix = a.folder + "/"
	}

	set := make(map[string]struct{})
	modified := make(map[string]time.Time)
	for obj := range a.client.ListObjects(ctx, a.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		set[obj.Key] = struct{}{}
		modified[obj.Key] = obj.LastModified
	}

	a.mu.Lock()
	a.modified = modified
	a.mu.Unlock()
	return set, nil
}

// Settling reports whether key was modified within the grace period, as seen
// by the last storage listing. Unknown keys and objects without a
// modification time are not settling.
func (a *MediaAdapter) Settling(key string) bool {
	if a.grace <= 0 {
		return false
	}
	a.mu.Lock()
	mod, ok := a.modified[key]
	a.mu.Unlock()
	if !ok || mod.IsZero() {
		return false
	}
	return a.now().Sub(mod) < a.grace
}

// GetMetadata returns the owning listing of a referenced key.
func (a *MediaAdapter) GetMetadata(key string, dbItem reconcile.DBItem) map[string]string {
	listingID, ok := dbItem.(string)
	if !ok {
		return nil
	}
	return map[string]string{"listing_id": listingID}
}

// DeleteDB detaches key from the listing that references it.
func (a *MediaAdapter) DeleteDB(ctx context.Context, key string) error {
	return a.DeleteDBBatch(ctx, []string{key})
}

// DeleteDBBatch detaches keys with one transaction per owning listing. The
// owners are looked up again so a listing changed since the audit is not
// rewritten from stale data.
func (a *MediaAdapter) DeleteDBBatch(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	refs, err := a.index.MediaIndex(ctx)
	if err != nil {
		return err
	}

	byListing := make(map[string][]string)
	for _, key := range keys {
		if listingID, ok := refs[key]; ok {
			byListing[listingID] = append(byListing[listingID], key)
		}
	}

	listingIDs := make([]string, 0, len(byListing))
	for id := range byListing {
		listingIDs = append(listingIDs, id)
	}
	sort.Strings(listingIDs)

	for _, listingID := range listingIDs {
		if err := a.detacher.DetachMedia(ctx, listingID, byListing[listingID]); err != nil {
			return fmt.Errorf("failed to detach media from listing %s: %w", listingID, err)
		}
	}
	return nil
}

// DeleteStorage removes the object for key.
func (a *MediaAdapter) DeleteStorage(ctx context.Context, key string) error {
	if !a.inFolder(key) {
		return fmt.Errorf("refusing to delete %s outside folder %s", key, a.folder)
	}
	if err := a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// DeleteStorageBatch removes objects with a single RemoveObjects call.
func (a *MediaAdapter) DeleteStorageBatch(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		if !a.inFolder(key) {
			close(objectsCh)
			return fmt.Errorf("refusing to delete %s outside folder %s", key, a.folder)
		}
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var failed []string
	for rerr := range a.client.RemoveObjects(ctx, a.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", rerr.ObjectName, rerr.Err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("batch delete had %d errors: %v", len(failed), failed)
	}
	return nil
}

func (a *MediaAdapter) inFolder(key string) bool {
	return a.folder == "" || strings.HasPrefix(key, a.folder+"/")
}

package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ResourceType classifies a stored media object.
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
)

// ResourceTypeFor maps a MIME type to a resource type. ok is false for anything
// that is neither an image nor a video.
func ResourceTypeFor(mimeType string) (ResourceType, bool) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mt, "image/"):
		return ResourceImage, true
	case strings.HasPrefix(mt, "video/"):
		return ResourceVideo, true
	default:
		return "", false
	}
}

// UploadOptions describes where and how a local file is stored.
type UploadOptions struct {
	// Folder is prefixed to PublicID to form the object key.
	Folder string
	// PublicID is the object id within Folder.
	PublicID string
	// ResourceType is recorded as object metadata.
	ResourceType ResourceType
	// ContentType is sent with the object.
	ContentType string
}

// UploadResult is the remote representation of an uploaded file.
type UploadResult struct {
	PublicID        string
	URL             string
	ResourceType    ResourceType
	Bytes           int64
	DurationSeconds *float64
}

// MediaStore is the remote media-object store used by listings.
type MediaStore interface {
	// Upload stores the file at localPath and returns its remote description.
	Upload(ctx context.Context, localPath string, opts UploadOptions) (UploadResult, error)
	// Destroy removes the object. Removing a missing object is not an error.
	Destroy(ctx context.Context, publicID string) error
}

// ObjectMediaStore implements MediaStore on top of a bucket.
type ObjectMediaStore struct {
	client    Client
	bucket    string
	publicURL string
}

// NewMediaStore creates a media store writing to cfg.Bucket.
func NewMediaStore(client Client, cfg Config) *ObjectMediaStore {
	base := strings.TrimRight(cfg.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, trimScheme(cfg.Endpoint), cfg.Bucket)
	}
	return &ObjectMediaStore{client: client, bucket: cfg.Bucket, publicURL: base}
}

// Upload implements MediaStore.
func (s *ObjectMediaStore) Upload(ctx context.Context, localPath string, opts UploadOptions) (UploadResult, error) {
	publicID := opts.PublicID
	if opts.Folder != "" {
		publicID = path.Join(opts.Folder, opts.PublicID)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	resourceType := opts.ResourceType
	if resourceType == "" {
		resourceType = ResourceImage
	}

	uploaded, err := s.client.PutObject(ctx, s.bucket, publicID, f, info.Size(), minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: map[string]string{"resource-type": string(resourceType)},
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to upload %s: %w", publicID, err)
	}

	size := uploaded.Size
	if size == 0 {
		size = info.Size()
	}

	return UploadResult{
		PublicID:     publicID,
		URL:          s.URL(publicID),
		ResourceType: resourceType,
		Bytes:        size,
	}, nil
}

// Destroy implements MediaStore.
func (s *ObjectMediaStore) Destroy(ctx context.Context, publicID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{})
	if err == nil {
		return nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return nil
	}
	return fmt.Errorf("failed to delete %s: %w", publicID, err)
}

// URL returns the public URL of an object.
func (s *ObjectMediaStore) URL(publicID string) string {
	return s.publicURL + "/" + publicID
}

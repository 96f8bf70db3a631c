// Package storage provides the object storage layer for listing media.
//
// Client abstracts the MinIO Go client so storage interactions can be mocked
// (see core/storage/mocks). It works against AWS S3 and self-hosted MinIO.
//
// MediaStore sits on top of Client and is what the listing coordinator talks to:
//
//   - Upload: stores a local file under Folder/PublicID and returns its URL and size.
//   - Destroy: removes an object by public id. Missing objects are ignored.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil { ... }
//	media := storage.NewMediaStore(client, cfg)
//	res, err := media.Upload(ctx, "/tmp/upload.jpg", storage.UploadOptions{Folder: "listings", PublicID: "listing_1_0"})
package storage

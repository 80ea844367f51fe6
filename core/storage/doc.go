// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations archive uploads need: checking bucket existence, uploading
// files, and listing objects. This abstraction supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (as seen in
// core/storage/mocks).
//
// # Uploader
//
// Uploader is the piece conversions actually use: it pins a bucket and
// streams finished archive files into it under their base names.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	uploader := storage.NewUploader(client, config.Bucket)
//	err = uploader.UploadFile(ctx, "/out/sub-m1_ses-day1.nwb")
package storage

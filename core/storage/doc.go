// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the snapshot
// archive can be exercised against testify mocks (core/storage/mocks) as well as
// AWS S3 or a self-hosted MinIO instance.
//
// # Operations
//
//   - BucketExists / MakeBucket / EnsureBucket: bucket bootstrap and liveness.
//   - PutObject: uploads a raw sync snapshot.
//   - GetObject: reads an archived snapshot back.
//   - ListObjects / RemoveObject: snapshot listing and retention pruning.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage

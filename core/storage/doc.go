// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so callers can be
// tested against core/storage/mocks. It works with AWS S3 and self-hosted
// MinIO alike.
//
// The column sync uses it to read input tables from the bucket
// ("imports/..."), to archive processed inputs and reports ("history/...")
// and to check the bucket layout.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	info, err := client.StatObject(ctx, "structure", "imports/columns.csv", minio.StatObjectOptions{})
//	if storage.IsNotFound(err) {
//	    // missing input
//	}
package storage

// Package cloudwriter buffers exported files and uploads them to object
// storage when closed.
package cloudwriter

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodstore/internal/models"
)

type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(ctx context.Context, bucket, objectPath string) (CloudWriter, error)
}

// NewFactory picks the writer factory for the configured provider.
func NewFactory(ctx context.Context, cfg models.CloudStorageConfig) (CloudWriterFactory, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3WriterFactory(ctx, cfg.Region)
	default:
		return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.Provider)
	}
}

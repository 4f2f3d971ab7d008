package storage

import (
	"context"
	"io"
)

// Object describes a blob to upload.
type Object struct {
	Key         string
	Body        io.Reader
	ContentType string
}

// Service stores company assets in remote object storage.
type Service interface {
	// Put uploads obj and returns the URL it is served from.
	Put(ctx context.Context, obj Object) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

package port

import (
	"context"
	"io"
)

// UploadInput encapsulates the parameters needed to upload an object.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
}

// ObjectStorage abstracts blob storage. Implementations without
// credentials return domain.ErrBackendUnconfigured from every call
// rather than failing at construction time.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) error
	GetPublicURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

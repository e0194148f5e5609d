package storage

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BlobStore interface {
	// Store writes source to the bucket and returns the id of the new blob.
	Store(ctx context.Context, source io.Reader, filename string, contentType string) (primitive.ObjectID, error)
	// Delete removes a blob. Deleting an id that does not exist is a no-op,
	// never an error.
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Download copies the blob payload to w and returns its declared content
	// type.
	Download(ctx context.Context, id primitive.ObjectID, w io.Writer) (contentType string, err error)
	// ValidateID reports whether candidate is structurally a blob id. It
	// performs no existence check.
	ValidateID(candidate string) bool
}

package storage

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/izhanjunaid/mongo-backend/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bucketName = "images"

// GridFSBlobStore stores image blobs in a GridFS bucket. The store is
// constructed unbound and becomes usable once Bind attaches it to a live
// database; operations before that fail with errs.ErrStoreUnavailable
// instead of blocking.
type GridFSBlobStore struct {
	mu     sync.RWMutex
	bucket *gridfs.Bucket
}

func CreateGridFSBlobStore() *GridFSBlobStore {
	return &GridFSBlobStore{}
}

// Bind creates the bucket handle on db. Called once during startup after the
// Mongo connection has been established.
func (s *GridFSBlobStore) Bind(db *mongo.Database) error {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		log.Error().Err(err).Str("component", "Bind").Msg("failed to open GridFS bucket")
		return err
	}

	s.mu.Lock()
	s.bucket = bucket
	s.mu.Unlock()
	return nil
}

func (s *GridFSBlobStore) ready() (*gridfs.Bucket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bucket == nil {
		return nil, errs.ErrStoreUnavailable
	}
	return s.bucket, nil
}

func (s *GridFSBlobStore) Store(ctx context.Context, source io.Reader, filename string, contentType string) (primitive.ObjectID, error) {
	bucket, err := s.ready()
	if err != nil {
		return primitive.NilObjectID, err
	}

	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	id, err := bucket.UploadFromStream(filename, source, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Store").Str("filename", filename).Msg("")
		return primitive.NilObjectID, errs.ErrStorage
	}

	return id, nil
}

func (s *GridFSBlobStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	bucket, err := s.ready()
	if err != nil {
		return err
	}

	err = bucket.Delete(id)
	if err != nil {
		// Already gone counts as deleted.
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "Delete").Str("blob_id", id.Hex()).Msg("")
		return errs.ErrStorage
	}

	return nil
}

func (s *GridFSBlobStore) Download(ctx context.Context, id primitive.ObjectID, w io.Writer) (string, error) {
	bucket, err := s.ready()
	if err != nil {
		return "", err
	}

	stream, err := bucket.OpenDownloadStream(id)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return "", errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "Download").Str("blob_id", id.Hex()).Msg("")
		return "", errs.ErrStorage
	}
	defer stream.Close()

	contentType := "application/octet-stream"
	if file := stream.GetFile(); file != nil && file.Metadata != nil {
		if v, lookupErr := file.Metadata.LookupErr("contentType"); lookupErr == nil {
			if ct, ok := v.StringValueOK(); ok {
				contentType = ct
			}
		}
	}

	if _, err = io.Copy(w, stream); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Download").Str("blob_id", id.Hex()).Msg("")
		return "", errs.ErrStorage
	}

	return contentType, nil
}

func (s *GridFSBlobStore) ValidateID(candidate string) bool {
	return primitive.IsValidObjectID(candidate)
}

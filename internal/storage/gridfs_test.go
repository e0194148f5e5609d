package storage

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/izhanjunaid/mongo-backend/pkg/errs"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUnboundStoreIsUnavailable(t *testing.T) {
	store := CreateGridFSBlobStore()
	ctx := context.Background()

	_, err := store.Store(ctx, strings.NewReader("pixels"), "swatch.png", "image/png")
	assert.True(t, errors.Is(err, errs.ErrStoreUnavailable))

	err = store.Delete(ctx, primitive.NewObjectID())
	assert.True(t, errors.Is(err, errs.ErrStoreUnavailable))

	var buf bytes.Buffer
	_, err = store.Download(ctx, primitive.NewObjectID(), &buf)
	assert.True(t, errors.Is(err, errs.ErrStoreUnavailable))
}

func TestValidateID(t *testing.T) {
	store := CreateGridFSBlobStore()

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{name: "valid object id", candidate: primitive.NewObjectID().Hex(), want: true},
		{name: "empty", candidate: "", want: false},
		{name: "too short", candidate: "abc123", want: false},
		{name: "url", candidate: "https://cdn.example.com/swatch.png", want: false},
		{name: "right length wrong alphabet", candidate: "zzzzzzzzzzzzzzzzzzzzzzzz", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.ValidateID(tt.candidate))
		})
	}
}

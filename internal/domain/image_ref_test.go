package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseImageRef(t *testing.T) {
	id := primitive.NewObjectID()

	tests := []struct {
		name  string
		input string
		want  ImageRef
	}{
		{name: "object id hex becomes blob ref", input: id.Hex(), want: BlobRef(id)},
		{name: "url becomes legacy ref", input: "https://cdn.example.com/a.png", want: LegacyURLRef("https://cdn.example.com/a.png")},
		{name: "arbitrary string becomes legacy ref", input: "swatch-01", want: LegacyURLRef("swatch-01")},
		{name: "empty is zero", input: "", want: ImageRef{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseImageRef(tt.input))
		})
	}
}

func TestImageRefString(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, id.Hex(), BlobRef(id).String())
	assert.Equal(t, "https://cdn.example.com/a.png", LegacyURLRef("https://cdn.example.com/a.png").String())
	assert.Equal(t, "", ImageRef{}.String())
}

func TestImageRefBlob(t *testing.T) {
	id := primitive.NewObjectID()

	got, ok := BlobRef(id).Blob()
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = LegacyURLRef("https://cdn.example.com/a.png").Blob()
	assert.False(t, ok)

	_, ok = ImageRef{}.Blob()
	assert.False(t, ok)
}

func TestOwnedBlobs(t *testing.T) {
	mainID := primitive.NewObjectID()
	shadeID := primitive.NewObjectID()
	mainRef := BlobRef(mainID)

	product := Product{
		MainImage: &mainRef,
		Shades: []Shade{
			{Name: "Ruby", ReferenceImage: BlobRef(shadeID)},
			{Name: "Coral", ReferenceImage: LegacyURLRef("https://cdn.example.com/coral.png")},
			{Name: "Bare"},
		},
	}

	assert.Equal(t, []primitive.ObjectID{mainID, shadeID}, product.OwnedBlobs())

	assert.Empty(t, Product{}.OwnedBlobs())
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryMakeup.Valid())
	assert.True(t, Category("skincare").Valid())
	assert.False(t, Category("gadgets").Valid())
	assert.False(t, Category("").Valid())
}

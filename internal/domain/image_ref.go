package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type ImageRefKind string

const (
	// ImageRefBlob points at a blob held by the image store.
	ImageRefBlob ImageRefKind = "blob"
	// ImageRefLegacyURL carries an external URL from before images were
	// stored in the bucket. The store never owns these.
	ImageRefLegacyURL ImageRefKind = "legacy_url"
)

// ImageRef is a tagged reference to a product or shade image: either the id
// of a stored blob or a legacy URL passed through untouched.
type ImageRef struct {
	Kind   ImageRefKind       `bson:"kind" json:"kind"`
	BlobID primitive.ObjectID `bson:"blob_id,omitempty" json:"blob_id,omitempty"`
	URL    string             `bson:"url,omitempty" json:"url,omitempty"`
}

func BlobRef(id primitive.ObjectID) ImageRef {
	return ImageRef{Kind: ImageRefBlob, BlobID: id}
}

func LegacyURLRef(url string) ImageRef {
	return ImageRef{Kind: ImageRefLegacyURL, URL: url}
}

// ParseImageRef classifies a client-supplied image string. A valid ObjectID
// hex is a stored-blob reference; any other non-empty string is treated as a
// legacy URL. Empty input yields a zero ref.
func ParseImageRef(s string) ImageRef {
	if s == "" {
		return ImageRef{}
	}

	if id, err := primitive.ObjectIDFromHex(s); err == nil {
		return BlobRef(id)
	}

	return LegacyURLRef(s)
}

func (r ImageRef) IsZero() bool {
	return r.Kind == ""
}

// Blob returns the referenced blob id when the ref points at a stored blob.
func (r ImageRef) Blob() (primitive.ObjectID, bool) {
	if r.Kind != ImageRefBlob || r.BlobID.IsZero() {
		return primitive.NilObjectID, false
	}
	return r.BlobID, true
}

func (r ImageRef) String() string {
	switch r.Kind {
	case ImageRefBlob:
		return r.BlobID.Hex()
	case ImageRefLegacyURL:
		return r.URL
	default:
		return ""
	}
}

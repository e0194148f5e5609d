package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategorySkincare  Category = "skincare"
	CategoryMakeup    Category = "makeup"
	CategoryHaircare  Category = "haircare"
	CategoryFragrance Category = "fragrance"
	CategoryBodycare  Category = "bodycare"
	CategoryTools     Category = "tools"
)

var categories = map[Category]struct{}{
	CategorySkincare:  {},
	CategoryMakeup:    {},
	CategoryHaircare:  {},
	CategoryFragrance: {},
	CategoryBodycare:  {},
	CategoryTools:     {},
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    Category           `bson:"category" json:"category"`
	Brand       string             `bson:"brand" json:"brand"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Features    []string           `bson:"features,omitempty" json:"features"`
	Ingredients []string           `bson:"ingredients,omitempty" json:"ingredients"`
	MainImage   *ImageRef          `bson:"main_image,omitempty" json:"main_image,omitempty"`
	Shades      []Shade            `bson:"shades" json:"shades"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type Shade struct {
	Name           string   `bson:"name" json:"name"`
	ColorCode      string   `bson:"color_code" json:"color_code"`
	Quantity       uint64   `bson:"quantity" json:"quantity"`
	Price          *float64 `bson:"price,omitempty" json:"price,omitempty"`
	ReferenceImage ImageRef `bson:"reference_image" json:"reference_image"`
}

// OwnedBlobs lists every blob id the product currently references. Legacy
// URL references are not owned by the image store and are skipped.
func (p Product) OwnedBlobs() []primitive.ObjectID {
	var ids []primitive.ObjectID
	if p.MainImage != nil {
		if id, ok := p.MainImage.Blob(); ok {
			ids = append(ids, id)
		}
	}

	for _, shade := range p.Shades {
		if id, ok := shade.ReferenceImage.Blob(); ok {
			ids = append(ids, id)
		}
	}

	return ids
}

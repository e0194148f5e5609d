package dto

import "io"

type ShadeRequest struct {
	Name      string   `json:"name" form:"name"`
	ColorCode string   `json:"color_code" form:"color_code"`
	Quantity  uint64   `json:"quantity" form:"quantity"`
	Price     *float64 `json:"price,omitempty" form:"price"`
	// ReferenceImage carries a stored blob id or a legacy image URL. It is
	// honored only when no file is uploaded for this shade's slot.
	ReferenceImage string `json:"reference_image" form:"reference_image"`
}

type ProductRequest struct {
	ID          string         `json:"-"`
	Name        string         `json:"name" form:"name"`
	Category    string         `json:"category" form:"category"`
	Brand       string         `json:"brand" form:"brand"`
	Price       float64        `json:"price" form:"price"`
	Description string         `json:"description" form:"description"`
	Features    []string       `json:"features" form:"features"`
	Ingredients []string       `json:"ingredients" form:"ingredients"`
	Shades      []ShadeRequest `json:"shades"`
}

// ImageUpload is a raw image attachment taken off a multipart request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

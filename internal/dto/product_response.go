package dto

import (
	"time"

	"github.com/izhanjunaid/mongo-backend/internal/domain"
)

type ShadeResponse struct {
	Name           string   `json:"name"`
	ColorCode      string   `json:"color_code"`
	Quantity       uint64   `json:"quantity"`
	Price          *float64 `json:"price,omitempty"`
	ReferenceImage string   `json:"reference_image"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	Features    []string        `json:"features"`
	Ingredients []string        `json:"ingredients"`
	MainImage   string          `json:"main_image,omitempty"`
	Shades      []ShadeResponse `json:"shades"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func CreateProductResponse(product domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:          product.ID.Hex(),
		Name:        product.Name,
		Category:    string(product.Category),
		Brand:       product.Brand,
		Price:       product.Price,
		Description: product.Description,
		Features:    product.Features,
		Ingredients: product.Ingredients,
		Shades:      make([]ShadeResponse, 0, len(product.Shades)),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}

	if product.MainImage != nil {
		resp.MainImage = product.MainImage.String()
	}

	for _, shade := range product.Shades {
		resp.Shades = append(resp.Shades, ShadeResponse{
			Name:           shade.Name,
			ColorCode:      shade.ColorCode,
			Quantity:       shade.Quantity,
			Price:          shade.Price,
			ReferenceImage: shade.ReferenceImage.String(),
		})
	}

	return resp
}

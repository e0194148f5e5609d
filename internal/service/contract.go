package service

import (
	"context"
	"io"

	"github.com/izhanjunaid/mongo-backend/internal/dto"
	pkgdto "github.com/izhanjunaid/mongo-backend/pkg/dto"
)

type ProductService interface {
	AddProduct(ctx context.Context, data dto.ProductRequest, mainImage *dto.ImageUpload, shadeImages []dto.ImageUpload) (resp dto.ProductResponse, err error)
	UpdateProduct(ctx context.Context, data dto.ProductRequest, mainImage *dto.ImageUpload, shadeImages []dto.ImageUpload) (resp dto.ProductResponse, err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	GetProductByID(ctx context.Context, id string) (resp dto.ProductResponse, err error)
	GetProducts(ctx context.Context, param pkgdto.Filter) (metadata pkgdto.PaginationMetadata, resp []dto.ProductResponse, err error)
	DownloadImage(ctx context.Context, id string, w io.Writer) (contentType string, err error)
}

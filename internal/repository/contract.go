package repository

import (
	"context"

	"github.com/izhanjunaid/mongo-backend/internal/domain"
	pkgdto "github.com/izhanjunaid/mongo-backend/pkg/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MongoDBProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProducts(ctx context.Context, param pkgdto.Filter) (data []domain.Product, err error)
	CountProducts(ctx context.Context, param pkgdto.Filter) (count uint64, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	ReplaceProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
}

package product

import (
	"context"

	"ecomcart/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, value string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

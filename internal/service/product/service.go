package product

import (
	"context"
	"strings"

	"ecomcart/internal/domain"
	productrepo "ecomcart/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Search matches the value against product name and category,
// case-insensitively. An empty value returns the full catalog.
func (s *Service) Search(ctx context.Context, value string) ([]domain.Product, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, value)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, tenant shared.Tenant, req CreateProductRequest) (*Product, error) {
	if req.BasePriceSqm.IsNegative() {
		return nil, shared.Invalid("base price per sqm must not be negative")
	}

	product := Product{
		OrgID:        tenant.OrgID,
		Name:         req.Name,
		BasePriceSqm: req.BasePriceSqm.Round(2),
	}

	id, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*Product, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if req.BasePriceSqm != nil {
		if req.BasePriceSqm.IsNegative() {
			return nil, shared.Invalid("base price per sqm must not be negative")
		}
		rounded := req.BasePriceSqm.Round(2)
		req.BasePriceSqm = &rounded
	}
	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, tenant shared.Tenant, req ListProductsRequest) ([]Product, int, error) {
	return s.repo.List(ctx, tenant.OrgID, req)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Delete(ctx, id)
}

package partners

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

// Partner names are Turkish; dotted/dotless I casing breaks naive folding,
// so search terms go through a Turkish-aware lowercaser before matching.
var searchFolder = cases.Lower(language.Turkish)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, tenant shared.Tenant, req CreatePartnerRequest) (*Partner, error) {
	partner := Partner{
		OrgID: tenant.OrgID,
		Type:  req.Type,
		Name:  req.Name,
		Email: req.Email,
	}

	id, err := s.repo.Create(ctx, partner)
	if err != nil {
		return nil, fmt.Errorf("create partner: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdatePartnerRequest) (*Partner, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("get partner: %w", err)
	}
	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, fmt.Errorf("update partner: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Partner, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, tenant shared.Tenant, req ListPartnersRequest) ([]Partner, int, error) {
	if req.Search != nil {
		folded := searchFolder.String(*req.Search)
		req.Search = &folded
	}
	return s.repo.List(ctx, tenant.OrgID, req)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Delete(ctx, id)
}

package dashboard

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

// Service serves dashboard aggregates. Results are cached in Redis with a
// versioned key and concurrent cache misses are collapsed to one query.
type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) FinanceSummary(ctx context.Context, tenant shared.Tenant) (*FinanceSummary, error) {
	key, err := s.cache.BuildKey(ctx, keyFinanceSummary(tenant.OrgID))
	if err != nil {
		return nil, err
	}
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		var summary FinanceSummary
		err := s.cache.FetchJSON(ctx, key, &summary, func(ctx context.Context) (interface{}, error) {
			return s.repo.FinanceSummary(ctx, tenant.OrgID)
		})
		if err != nil {
			return nil, err
		}
		return &summary, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*FinanceSummary), nil
}

func (s *Service) OperationsSummary(ctx context.Context, tenant shared.Tenant) (*OperationsSummary, error) {
	key, err := s.cache.BuildKey(ctx, keyOperationsSummary(tenant.OrgID))
	if err != nil {
		return nil, err
	}
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		var summary OperationsSummary
		err := s.cache.FetchJSON(ctx, key, &summary, func(ctx context.Context) (interface{}, error) {
			return s.repo.OperationsSummary(ctx, tenant.OrgID)
		})
		if err != nil {
			return nil, err
		}
		return &summary, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*OperationsSummary), nil
}

// Invalidate bumps the cache version after writes that change the aggregates.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type fakeProductRepo struct {
	products map[uuid.UUID]Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]Product)}
}

func (f *fakeProductRepo) Get(_ context.Context, id uuid.UUID) (*Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, shared.NotFound("product", id)
	}
	return &p, nil
}

func (f *fakeProductRepo) List(_ context.Context, orgID uuid.UUID, _ ListProductsRequest) ([]Product, int, error) {
	var result []Product
	for _, p := range f.products {
		if p.OrgID == orgID {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

func (f *fakeProductRepo) Create(_ context.Context, p Product) (uuid.UUID, error) {
	p.ID = uuid.New()
	f.products[p.ID] = p
	return p.ID, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id uuid.UUID, upd UpdateProductRequest) error {
	p, ok := f.products[id]
	if !ok {
		return shared.NotFound("product", id)
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.BasePriceSqm != nil {
		p.BasePriceSqm = *upd.BasePriceSqm
	}
	f.products[id] = p
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.products[id]; !ok {
		return false, nil
	}
	delete(f.products, id)
	return true, nil
}

func TestProductCreate(t *testing.T) {
	tenant := shared.Tenant{OrgID: uuid.New()}
	service := NewService(newFakeProductRepo())

	t.Run("rate rounds to two places", func(t *testing.T) {
		created, err := service.Create(context.Background(), tenant, CreateProductRequest{
			Name:         "Temperli Cam 8mm",
			BasePriceSqm: decimal.RequireFromString("100.005"),
		})
		require.NoError(t, err)
		assert.True(t, created.BasePriceSqm.Equal(decimal.RequireFromString("100.01")), "rate %s", created.BasePriceSqm)
	})

	t.Run("negative rate rejected", func(t *testing.T) {
		_, err := service.Create(context.Background(), tenant, CreateProductRequest{
			Name:         "Hatalı",
			BasePriceSqm: decimal.RequireFromString("-1"),
		})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestProductUpdate(t *testing.T) {
	tenant := shared.Tenant{OrgID: uuid.New()}
	repo := newFakeProductRepo()
	service := NewService(repo)

	created, err := service.Create(context.Background(), tenant, CreateProductRequest{
		Name:         "Lamine Cam",
		BasePriceSqm: decimal.RequireFromString("250.00"),
	})
	require.NoError(t, err)

	rate := decimal.RequireFromString("275.50")
	updated, err := service.Update(context.Background(), created.ID, UpdateProductRequest{BasePriceSqm: &rate})
	require.NoError(t, err)
	assert.True(t, updated.BasePriceSqm.Equal(rate))
	assert.Equal(t, "Lamine Cam", updated.Name)

	t.Run("unknown product", func(t *testing.T) {
		_, err := service.Update(context.Background(), uuid.New(), UpdateProductRequest{})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

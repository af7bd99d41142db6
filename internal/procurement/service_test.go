package procurement

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camfab-erp/camfab-erp/internal/partners"
	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type fakeSupplierRepo struct {
	partners map[uuid.UUID]partners.Partner
}

func (f *fakeSupplierRepo) Get(_ context.Context, id uuid.UUID) (*partners.Partner, error) {
	p, ok := f.partners[id]
	if !ok {
		return nil, shared.NotFound("partner", id)
	}
	return &p, nil
}

func (f *fakeSupplierRepo) List(context.Context, uuid.UUID, partners.ListPartnersRequest) ([]partners.Partner, int, error) {
	return nil, 0, nil
}

func (f *fakeSupplierRepo) Create(context.Context, partners.Partner) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (f *fakeSupplierRepo) Update(context.Context, uuid.UUID, partners.UpdatePartnerRequest) error {
	return nil
}

func (f *fakeSupplierRepo) Delete(context.Context, uuid.UUID) (bool, error) { return false, nil }

type fakePORepo struct {
	orders map[uuid.UUID]PurchaseOrder
	items  map[uuid.UUID]PurchaseOrderItem
}

func newFakePORepo() *fakePORepo {
	return &fakePORepo{
		orders: make(map[uuid.UUID]PurchaseOrder),
		items:  make(map[uuid.UUID]PurchaseOrderItem),
	}
}

func (f *fakePORepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, f)
}

func (f *fakePORepo) Get(_ context.Context, id uuid.UUID) (*PurchaseOrder, error) {
	po, ok := f.orders[id]
	if !ok {
		return nil, shared.NotFound("purchase order", id)
	}
	for _, item := range f.items {
		if item.PurchaseOrderID == id {
			po.Items = append(po.Items, item)
		}
	}
	return &po, nil
}

func (f *fakePORepo) List(_ context.Context, orgID uuid.UUID, _ ListPurchaseOrdersRequest) ([]PurchaseOrder, int, error) {
	var result []PurchaseOrder
	for _, po := range f.orders {
		if po.OrgID == orgID {
			result = append(result, po)
		}
	}
	return result, len(result), nil
}

func (f *fakePORepo) Insert(_ context.Context, po PurchaseOrder) (uuid.UUID, error) {
	po.ID = uuid.New()
	f.orders[po.ID] = po
	return po.ID, nil
}

func (f *fakePORepo) InsertItem(_ context.Context, item PurchaseOrderItem) (uuid.UUID, error) {
	item.ID = uuid.New()
	f.items[item.ID] = item
	return item.ID, nil
}

func TestPurchaseOrderCreate(t *testing.T) {
	tenant := shared.Tenant{OrgID: uuid.New()}
	supplier := partners.Partner{ID: uuid.New(), OrgID: tenant.OrgID, Type: partners.PartnerTypeSupplier, Name: "Cam Tedarik"}
	supplierRepo := &fakeSupplierRepo{partners: map[uuid.UUID]partners.Partner{supplier.ID: supplier}}
	repo := newFakePORepo()
	service := NewService(repo, supplierRepo)

	t.Run("totals sum the priced lines", func(t *testing.T) {
		po, err := service.Create(context.Background(), tenant, CreatePurchaseOrderRequest{
			PartnerID: supplier.ID,
			Items: []CreatePurchaseOrderItemReq{
				{MaterialName: "Float cam 4mm", Quantity: 10, UnitPrice: decimal.RequireFromString("45.50")},
				{MaterialName: "Butil bant", Quantity: 3, UnitPrice: decimal.RequireFromString("12.00")},
			},
		})
		require.NoError(t, err)
		require.Len(t, po.Items, 2)
		assert.True(t, po.GrandTotal.Equal(decimal.RequireFromString("491.00")), "grand total %s", po.GrandTotal)
	})

	t.Run("unknown supplier writes nothing", func(t *testing.T) {
		before := len(repo.orders)
		_, err := service.Create(context.Background(), tenant, CreatePurchaseOrderRequest{
			PartnerID: uuid.New(),
			Items: []CreatePurchaseOrderItemReq{
				{MaterialName: "Float cam 4mm", Quantity: 1, UnitPrice: decimal.RequireFromString("45.50")},
			},
		})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.Len(t, repo.orders, before)
	})

	t.Run("negative unit price rejected", func(t *testing.T) {
		_, err := service.Create(context.Background(), tenant, CreatePurchaseOrderRequest{
			PartnerID: supplier.ID,
			Items: []CreatePurchaseOrderItemReq{
				{MaterialName: "Float cam 4mm", Quantity: 1, UnitPrice: decimal.RequireFromString("-1.00")},
			},
		})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/camfab-erp/camfab-erp/internal/partners"
	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type Service struct {
	repo        Repository
	partnerRepo partners.Repository
}

func NewService(repo Repository, partnerRepo partners.Repository) *Service {
	return &Service{repo: repo, partnerRepo: partnerRepo}
}

// Create verifies the supplier, prices each line, and inserts the order with
// its items in one transaction.
func (s *Service) Create(ctx context.Context, tenant shared.Tenant, req CreatePurchaseOrderRequest) (*PurchaseOrder, error) {
	if _, err := s.partnerRepo.Get(ctx, req.PartnerID); err != nil {
		return nil, err
	}

	grandTotal := decimal.Zero
	items := make([]PurchaseOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.UnitPrice.IsNegative() {
			return nil, shared.Invalid("unit price must not be negative, got %s", item.UnitPrice)
		}
		total := item.UnitPrice.Mul(decimal.New(int64(item.Quantity), 0)).Round(2)
		grandTotal = grandTotal.Add(total)
		items = append(items, PurchaseOrderItem{
			OrgID:        tenant.OrgID,
			MaterialName: item.MaterialName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   total,
		})
	}

	var id uuid.UUID
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx Repository) error {
		var err error
		id, err = tx.Insert(ctx, PurchaseOrder{
			OrgID:      tenant.OrgID,
			PartnerID:  req.PartnerID,
			GrandTotal: grandTotal,
		})
		if err != nil {
			return err
		}
		for _, item := range items {
			item.PurchaseOrderID = id
			if _, err := tx.InsertItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, tenant shared.Tenant, req ListPurchaseOrdersRequest) ([]PurchaseOrder, shared.Pagination, error) {
	req.Page = req.Page.Normalize()
	result, total, err := s.repo.List(ctx, tenant.OrgID, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return result, shared.NewPagination(req.Page, total), nil
}

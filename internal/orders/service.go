package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/camfab-erp/camfab-erp/internal/catalog"
	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type Service struct {
	repo        Repository
	productRepo catalog.Repository
}

func NewService(repo Repository, productRepo catalog.Repository) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

// priceItems resolves each product and prices the lines. Runs before any
// write, so a missing product surfaces without persistence side effects.
func (s *Service) priceItems(ctx context.Context, tenant shared.Tenant, orderID uuid.UUID, reqs []CreateOrderItemReq) ([]OrderItem, error) {
	items := make([]OrderItem, 0, len(reqs))
	for _, req := range reqs {
		product, err := s.productRepo.Get(ctx, req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("verify product: %w", err)
		}
		unitPrice, totalPrice, err := PriceLineItem(product.BasePriceSqm, req.Width, req.Height, req.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, OrderItem{
			OrgID:      tenant.OrgID,
			OrderID:    orderID,
			ProductID:  req.ProductID,
			Width:      req.Width,
			Height:     req.Height,
			Quantity:   req.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: totalPrice,
		})
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, tenant shared.Tenant, req CreateOrderRequest) (*Order, error) {
	items, err := s.priceItems(ctx, tenant, uuid.Nil, req.Items)
	if err != nil {
		return nil, err
	}
	totalAmount, taxAmount, grandTotal := PriceOrder(items)

	order := Order{
		OrgID:       tenant.OrgID,
		PartnerID:   req.PartnerID,
		Status:      req.Status,
		TotalAmount: totalAmount,
		TaxAmount:   taxAmount,
		GrandTotal:  grandTotal,
	}

	var orderID uuid.UUID
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Insert(ctx, order)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		orderID = id
		for i := range items {
			items[i].OrderID = orderID
			if _, err := repo.InsertItem(ctx, items[i]); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, orderID)
}

// Update patches partner/status fields and, when Items is present, replaces
// the whole item set and recomputes the derived totals. The field update,
// item replacement, and total recomputation commit as one unit.
func (s *Service) Update(ctx context.Context, tenant shared.Tenant, id uuid.UUID, req UpdateOrderRequest) (*Order, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	upd := OrderUpdate{PartnerID: req.PartnerID, Status: req.Status}

	var items []OrderItem
	if req.Items != nil {
		priced, err := s.priceItems(ctx, tenant, id, *req.Items)
		if err != nil {
			return nil, err
		}
		items = priced
		totalAmount, taxAmount, grandTotal := PriceOrder(items)
		upd.TotalAmount = &totalAmount
		upd.TaxAmount = &taxAmount
		upd.GrandTotal = &grandTotal
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Update(ctx, id, upd); err != nil {
			return err
		}
		if req.Items != nil {
			if err := repo.DeleteItems(ctx, id); err != nil {
				return err
			}
			for _, item := range items {
				if _, err := repo.InsertItem(ctx, item); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, tenant shared.Tenant, req ListOrdersRequest) ([]Order, int, error) {
	return s.repo.List(ctx, tenant.OrgID, req)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*OrderItem, error) {
	return s.repo.GetItem(ctx, id)
}

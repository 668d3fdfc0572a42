package service

import (
	"context"
	"fmt"
	"log"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

type OrderService struct {
	orders    OrderStore
	totals    *TotalCalculator
	publisher EventPublisher
}

// NewOrderService wires the order rules. publisher may be nil when no broker
// is configured.
func NewOrderService(orders OrderStore, products productLookup, publisher EventPublisher) *OrderService {
	return &OrderService{
		orders:    orders,
		totals:    NewTotalCalculator(products),
		publisher: publisher,
	}
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.GetAll(ctx)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	return order, nil
}

// Create prices the order from current product prices, stores it and
// announces it. A failed announcement does not fail the order.
func (s *OrderService) Create(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	order, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	if order.Status == "" {
		order.Status = models.StatusPending
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
			log.Printf("⚠️ Failed to publish event: %v", err)
		} else {
			log.Printf("📤 Published order.created event for Order %s", order.ID.Hex())
		}
	}

	log.Printf("✅ Order %s created with total R$%.2f", order.ID.Hex(), order.Total)
	return order, nil
}

// Update replaces the order's date and products and recomputes its total.
func (s *OrderService) Update(ctx context.Context, id string, req models.OrderRequest) (*models.Order, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}

	order, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	order.ID = oid

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	oid, err := models.ParseID(id)
	if err != nil {
		return err
	}
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: invalid status %q", models.ErrValidation, status)
	}
	return s.orders.UpdateStatus(ctx, oid, status)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	oid, err := models.ParseID(id)
	if err != nil {
		return err
	}
	return s.orders.Delete(ctx, oid)
}

func (s *OrderService) build(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", models.ErrValidation)
	}
	if req.Status != "" && !models.ValidStatus(req.Status) {
		return nil, fmt.Errorf("%w: invalid status %q", models.ErrValidation, req.Status)
	}

	productIDs, err := models.ParseIDs(req.ProductIDs)
	if err != nil {
		return nil, err
	}

	total, err := s.totals.Calculate(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	return &models.Order{
		Date:         req.Date.UTC(),
		ProductIDs:   productIDs,
		Total:        total,
		Status:       req.Status,
		CustomerName: req.CustomerName,
	}, nil
}

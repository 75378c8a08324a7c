package service

import (
	"context"
	"strings"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"go.opentelemetry.io/otel"
)

type OrderStore interface {
	FindByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, q model.OrderListQuery) ([]model.Order, int64, error)
	Update(ctx context.Context, id string, changes map[string]any) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	SumTotals(ctx context.Context, since *time.Time) (float64, error)
}

var OrderServiceTracer = otel.Tracer("OrderService")

type OrderService struct {
	orders OrderStore
}

func NewOrderService(orders OrderStore) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) List(ctx context.Context, q model.OrderListQuery) (*model.OrderPage, error) {
	ctx, span := OrderServiceTracer.Start(ctx, "OrderService.List")
	defer span.End()
	logger.Info(ctx, "Service")

	orders, total, err := s.orders.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &model.OrderPage{
		Orders:     orders,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages(total, q.PageSize),
	}, nil
}

// UpdateStatus moves an order through its lifecycle. Reaching delivered
// stamps delivered_at.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status, trackingNumber string) (*model.Order, error) {
	ctx, span := OrderServiceTracer.Start(ctx, "OrderService.UpdateStatus")
	defer span.End()
	logger.Info(ctx, "Service")

	next := model.OrderStatus(status)
	if !next.Valid() {
		return nil, ruleErr("Invalid status. Valid: " + validStatusList())
	}

	changes := map[string]any{"status": next}
	if trackingNumber != "" {
		changes["tracking_number"] = trackingNumber
	}
	if next == model.OrderDelivered {
		changes["delivered_at"] = time.Now().UTC()
	}

	matched, err := s.orders.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, notFound("Order")
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, notFound("Order")
	}
	return order, nil
}

func validStatusList() string {
	statuses := model.OrderStatuses()
	parts := make([]string, 0, len(statuses))
	for _, st := range statuses {
		parts = append(parts, string(st))
	}
	return strings.Join(parts, ", ")
}

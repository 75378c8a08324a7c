package service

import (
	"context"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"go.opentelemetry.io/otel"
)

// Products at or below this inventory quantity count as low stock.
const lowStockThreshold = 10

var DashboardServiceTracer = otel.Tracer("DashboardService")

type DashboardService struct {
	orders    OrderStore
	products  ProductStore
	users     UserStore
	inventory InventoryStore
}

func NewDashboardService(orders OrderStore, products ProductStore, users UserStore, inventory InventoryStore) *DashboardService {
	return &DashboardService{
		orders:    orders,
		products:  products,
		users:     users,
		inventory: inventory,
	}
}

// Stats aggregates the numbers shown on the admin dashboard. "Today"
// starts at UTC midnight.
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	ctx, span := DashboardServiceTracer.Start(ctx, "DashboardService.Stats")
	defer span.End()
	logger.Info(ctx, "Service")

	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	totalOrders, err := s.orders.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalProducts, err := s.products.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	pendingOrders, err := s.orders.CountByStatus(ctx, model.OrderPending)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.inventory.CountLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	ordersToday, err := s.orders.CountCreatedSince(ctx, todayStart)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.orders.SumTotals(ctx, nil)
	if err != nil {
		return nil, err
	}
	revenueToday, err := s.orders.SumTotals(ctx, &todayStart)
	if err != nil {
		return nil, err
	}

	return &model.DashboardStats{
		TotalOrders:      totalOrders,
		TotalRevenue:     totalRevenue,
		TotalProducts:    totalProducts,
		TotalUsers:       totalUsers,
		PendingOrders:    pendingOrders,
		LowStockProducts: lowStock,
		OrdersToday:      ordersToday,
		RevenueToday:     revenueToday,
	}, nil
}

package service

import (
	"context"
	"log/slog"

	"polluxkart-admin/internal/logger"

	"go.opentelemetry.io/otel"
)

type MaintenanceStore interface {
	CollectionCounts(ctx context.Context, names []string) (map[string]int64, error)
	PurgeCollections(ctx context.Context, names []string) (map[string]int64, error)
}

var MaintenanceServiceTracer = otel.Tracer("MaintenanceService")

// MaintenanceService removes development seed data after a deployment
// goes live. User accounts are never touched.
type MaintenanceService struct {
	store MaintenanceStore
}

func NewMaintenanceService(store MaintenanceStore) *MaintenanceService {
	return &MaintenanceService{store: store}
}

// SeedCollections lists the collections the cleanup wipes.
func SeedCollections() []string {
	return []string{
		"products", "categories", "inventory", "reviews",
		"carts", "wishlists", "orders", "payments",
		"stock_movements", "promotions",
	}
}

func (s *MaintenanceService) Counts(ctx context.Context) (map[string]int64, error) {
	ctx, span := MaintenanceServiceTracer.Start(ctx, "MaintenanceService.Counts")
	defer span.End()
	logger.Info(ctx, "Service")

	return s.store.CollectionCounts(ctx, SeedCollections())
}

func (s *MaintenanceService) CleanupSeedData(ctx context.Context) (map[string]int64, error) {
	ctx, span := MaintenanceServiceTracer.Start(ctx, "MaintenanceService.CleanupSeedData")
	defer span.End()
	logger.Info(ctx, "Service")

	deleted, err := s.store.PurgeCollections(ctx, SeedCollections())
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range deleted {
		total += n
	}
	logger.Info(ctx, "Seed data cleanup complete", slog.Int64("documents_deleted", total))

	return deleted, nil
}

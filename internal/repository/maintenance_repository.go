package repository

import (
	"context"

	"polluxkart-admin/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
)

// MaintenanceRepository runs bulk operations across whole collections; it is
// only reached from the seed-data cleanup paths.
type MaintenanceRepository struct {
	db *mongo.Database
}

var MaintenanceRepositoryTracer = otel.Tracer("MaintenanceRepository")

func NewMaintenanceRepository(db *mongo.Database) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) CollectionCounts(ctx context.Context, names []string) (map[string]int64, error) {
	ctx, span := MaintenanceRepositoryTracer.Start(ctx, "MaintenanceRepository.CollectionCounts")
	defer span.End()
	logger.Info(ctx, "Repository")

	counts := make(map[string]int64, len(names))
	for _, name := range names {
		n, err := r.db.Collection(name).CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, nil
}

// PurgeCollections deletes every document in each named collection and
// reports the per-collection deleted counts.
func (r *MaintenanceRepository) PurgeCollections(ctx context.Context, names []string) (map[string]int64, error) {
	ctx, span := MaintenanceRepositoryTracer.Start(ctx, "MaintenanceRepository.PurgeCollections")
	defer span.End()
	logger.Info(ctx, "Repository")

	deleted := make(map[string]int64, len(names))
	for _, name := range names {
		res, err := r.db.Collection(name).DeleteMany(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		deleted[name] = res.DeletedCount
	}
	return deleted, nil
}

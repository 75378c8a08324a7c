package repository

import (
	"context"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
)

// InventoryRepository mirrors product stock into the inventory collection.
type InventoryRepository struct {
	collection *mongo.Collection
}

var InventoryRepositoryTracer = otel.Tracer("InventoryRepository")

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{
		collection: db.Collection("inventory"),
	}
}

func (r *InventoryRepository) Insert(ctx context.Context, inv *model.Inventory) error {
	ctx, span := InventoryRepositoryTracer.Start(ctx, "InventoryRepository.Insert")
	defer span.End()
	logger.Info(ctx, "Repository")

	_, err := r.collection.InsertOne(ctx, inv)
	return err
}

func (r *InventoryRepository) SyncQuantity(ctx context.Context, productID string, quantity int) error {
	ctx, span := InventoryRepositoryTracer.Start(ctx, "InventoryRepository.SyncQuantity")
	defer span.End()
	logger.Info(ctx, "Repository")

	update := bson.M{"$set": bson.M{
		"quantity":     quantity,
		"last_updated": time.Now().UTC(),
	}}

	_, err := r.collection.UpdateOne(ctx, bson.M{"product_id": productID}, update)
	return err
}

func (r *InventoryRepository) DeleteByProduct(ctx context.Context, productID string) error {
	ctx, span := InventoryRepositoryTracer.Start(ctx, "InventoryRepository.DeleteByProduct")
	defer span.End()
	logger.Info(ctx, "Repository")

	_, err := r.collection.DeleteOne(ctx, bson.M{"product_id": productID})
	return err
}

func (r *InventoryRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	ctx, span := InventoryRepositoryTracer.Start(ctx, "InventoryRepository.CountLowStock")
	defer span.End()
	logger.Info(ctx, "Repository")

	return r.collection.CountDocuments(ctx, bson.M{"quantity": bson.M{"$lte": threshold}})
}

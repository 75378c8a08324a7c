package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
)

// OrderRepository reads orders written by the storefront; this service only
// updates their status fields.
type OrderRepository struct {
	collection *mongo.Collection
}

var OrderRepositoryTracer = otel.Tracer("OrderRepository")

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection("orders"),
	}
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	ctx, span := OrderRepositoryTracer.Start(ctx, "OrderRepository.FindByID")
	defer span.End()
	logger.Info(ctx, "Repository")

	var order model.Order
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List pages orders newest first. Search matches the order number or the
// shipping recipient name.
func (r *OrderRepository) List(ctx context.Context, q model.OrderListQuery) ([]model.Order, int64, error) {
	ctx, span := OrderRepositoryTracer.Start(ctx, "OrderRepository.List")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Search != "" {
		pattern := regexp.QuoteMeta(q.Search)
		filter["$or"] = []bson.M{
			{"order_number": bson.M{"$regex": pattern, "$options": "i"}},
			{"shipping_address.full_name": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((q.Page - 1) * q.PageSize)).
		SetLimit(int64(q.PageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	orders := make([]model.Order, 0, q.PageSize)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) Update(ctx context.Context, id string, changes map[string]any) (int64, error) {
	ctx, span := OrderRepositoryTracer.Start(ctx, "OrderRepository.Update")
	defer span.End()
	logger.Info(ctx, "Repository")

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range changes {
		set[k] = v
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *OrderRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, span := OrderRepositoryTracer.Start(ctx, "OrderRepository.CountAll")
	defer span.End()
	logger.Info(ctx, "Repository")

	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *OrderRepository) CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	ctx, span := OrderRepositoryTracer.Start(ctx, "OrderRepository.CountByStatus")
	defer span.End()
	logger.Info(ctx, "Repository")

	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

func (r *OrderRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, span := OrderRepositoryTracer.Start(ctx, "OrderRepository.CountCreatedSince")
	defer span.End()
	logger.Info(ctx, "Repository")

	return r.collection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
}

// SumTotals aggregates order revenue, optionally restricted to orders
// created at or after since.
func (r *OrderRepository) SumTotals(ctx context.Context, since *time.Time) (float64, error) {
	ctx, span := OrderRepositoryTracer.Start(ctx, "OrderRepository.SumTotals")
	defer span.End()
	logger.Info(ctx, "Repository")

	pipeline := mongo.Pipeline{}
	if since != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"created_at": bson.M{"$gte": *since},
		}}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.M{
		"_id":   nil,
		"total": bson.M{"$sum": "$total"},
	}}})

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

package repository

import (
	"context"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

var ReviewRepositoryTracer = otel.Tracer("ReviewRepository")

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		collection: db.Collection("reviews"),
	}
}

func (r *ReviewRepository) Insert(ctx context.Context, review *model.Review) error {
	ctx, span := ReviewRepositoryTracer.Start(ctx, "ReviewRepository.Insert")
	defer span.End()
	logger.Info(ctx, "Repository")

	_, err := r.collection.InsertOne(ctx, review)
	return err
}

func (r *ReviewRepository) FindByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	ctx, span := ReviewRepositoryTracer.Start(ctx, "ReviewRepository.FindByProduct")
	defer span.End()
	logger.Info(ctx, "Repository")

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, err
	}

	reviews := make([]model.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) ExistsByProductAndUser(ctx context.Context, productID, userID string) (bool, error) {
	ctx, span := ReviewRepositoryTracer.Start(ctx, "ReviewRepository.ExistsByProductAndUser")
	defer span.End()
	logger.Info(ctx, "Repository")

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"product_id": productID,
		"user_id":    userID,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RatingSummary aggregates the average rating and review count for a product.
func (r *ReviewRepository) RatingSummary(ctx context.Context, productID string) (float64, int, error) {
	ctx, span := ReviewRepositoryTracer.Start(ctx, "ReviewRepository.RatingSummary")
	defer span.End()
	logger.Info(ctx, "Repository")

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"product_id": productID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"rating": bson.M{"$avg": "$rating"},
			"count":  bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}

	var rows []struct {
		Rating float64 `bson:"rating"`
		Count  int     `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Rating, rows[0].Count, nil
}

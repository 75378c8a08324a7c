package repository

import (
	"context"
	"errors"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
)

type PromotionRepository struct {
	collection *mongo.Collection
}

var PromotionRepositoryTracer = otel.Tracer("PromotionRepository")

func NewPromotionRepository(db *mongo.Database) *PromotionRepository {
	return &PromotionRepository{
		collection: db.Collection("promotions"),
	}
}

func (r *PromotionRepository) Insert(ctx context.Context, promotion *model.Promotion) error {
	ctx, span := PromotionRepositoryTracer.Start(ctx, "PromotionRepository.Insert")
	defer span.End()
	logger.Info(ctx, "Repository")

	_, err := r.collection.InsertOne(ctx, promotion)
	return err
}

func (r *PromotionRepository) FindByID(ctx context.Context, id string) (*model.Promotion, error) {
	ctx, span := PromotionRepositoryTracer.Start(ctx, "PromotionRepository.FindByID")
	defer span.End()
	logger.Info(ctx, "Repository")

	var promotion model.Promotion
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&promotion)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

// FindByCode expects the code already upper-cased.
func (r *PromotionRepository) FindByCode(ctx context.Context, code string) (*model.Promotion, error) {
	ctx, span := PromotionRepositoryTracer.Start(ctx, "PromotionRepository.FindByCode")
	defer span.End()
	logger.Info(ctx, "Repository")

	var promotion model.Promotion
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&promotion)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (r *PromotionRepository) List(ctx context.Context, status string) ([]model.Promotion, error) {
	ctx, span := PromotionRepositoryTracer.Start(ctx, "PromotionRepository.List")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	promotions := make([]model.Promotion, 0)
	if err := cursor.All(ctx, &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (r *PromotionRepository) Update(ctx context.Context, id string, changes map[string]any) (int64, error) {
	ctx, span := PromotionRepositoryTracer.Start(ctx, "PromotionRepository.Update")
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

func (r *PromotionRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctx, span := PromotionRepositoryTracer.Start(ctx, "PromotionRepository.Delete")
	defer span.End()
	logger.Info(ctx, "Repository")

	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

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

type CategoryRepository struct {
	collection *mongo.Collection
}

var CategoryRepositoryTracer = otel.Tracer("CategoryRepository")

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection("categories"),
	}
}

func (r *CategoryRepository) Insert(ctx context.Context, category *model.Category) error {
	ctx, span := CategoryRepositoryTracer.Start(ctx, "CategoryRepository.Insert")
	defer span.End()
	logger.Info(ctx, "Repository")

	_, err := r.collection.InsertOne(ctx, category)
	return err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	ctx, span := CategoryRepositoryTracer.Start(ctx, "CategoryRepository.FindByID")
	defer span.End()
	logger.Info(ctx, "Repository")

	var category model.Category
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	ctx, span := CategoryRepositoryTracer.Start(ctx, "CategoryRepository.FindAll")
	defer span.End()
	logger.Info(ctx, "Repository")

	return r.find(ctx, bson.M{})
}

func (r *CategoryRepository) FindActive(ctx context.Context) ([]model.Category, error) {
	ctx, span := CategoryRepositoryTracer.Start(ctx, "CategoryRepository.FindActive")
	defer span.End()
	logger.Info(ctx, "Repository")

	return r.find(ctx, bson.M{"is_active": true})
}

func (r *CategoryRepository) find(ctx context.Context, filter bson.M) ([]model.Category, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	categories := make([]model.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id string, changes map[string]any) (int64, error) {
	ctx, span := CategoryRepositoryTracer.Start(ctx, "CategoryRepository.Update")
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

func (r *CategoryRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctx, span := CategoryRepositoryTracer.Start(ctx, "CategoryRepository.Delete")
	defer span.End()
	logger.Info(ctx, "Repository")

	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

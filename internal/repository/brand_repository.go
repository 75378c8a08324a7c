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

type BrandRepository struct {
	collection *mongo.Collection
}

var BrandRepositoryTracer = otel.Tracer("BrandRepository")

func NewBrandRepository(db *mongo.Database) *BrandRepository {
	return &BrandRepository{
		collection: db.Collection("brands"),
	}
}

func (r *BrandRepository) Insert(ctx context.Context, brand *model.Brand) error {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.Insert")
	defer span.End()
	logger.Info(ctx, "Repository")

	_, err := r.collection.InsertOne(ctx, brand)
	return err
}

func (r *BrandRepository) FindByID(ctx context.Context, id string) (*model.Brand, error) {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.FindByID")
	defer span.End()
	logger.Info(ctx, "Repository")

	var brand model.Brand
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&brand)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// nameFoldFilter matches a brand name exactly, ignoring case.
func nameFoldFilter(name string) bson.M {
	return bson.M{"name": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(name) + "$",
		"$options": "i",
	}}
}

func (r *BrandRepository) ExistsByNameFold(ctx context.Context, name string) (bool, error) {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.ExistsByNameFold")
	defer span.End()
	logger.Info(ctx, "Repository")

	count, err := r.collection.CountDocuments(ctx, nameFoldFilter(name))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByNameFoldExcept checks name uniqueness while excluding the brand
// being renamed.
func (r *BrandRepository) ExistsByNameFoldExcept(ctx context.Context, name, exceptID string) (bool, error) {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.ExistsByNameFoldExcept")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := nameFoldFilter(name)
	filter["id"] = bson.M{"$ne": exceptID}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BrandRepository) List(ctx context.Context, includeInactive bool) ([]model.Brand, error) {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.List")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{}
	if !includeInactive {
		filter["is_active"] = true
	}

	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	brands := make([]model.Brand, 0)
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *BrandRepository) Update(ctx context.Context, id string, changes map[string]any) (int64, error) {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.Update")
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

func (r *BrandRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctx, span := BrandRepositoryTracer.Start(ctx, "BrandRepository.Delete")
	defer span.End()
	logger.Info(ctx, "Repository")

	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

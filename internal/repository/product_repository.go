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

type ProductRepository struct {
	collection *mongo.Collection
}

var ProductRepositoryTracer = otel.Tracer("ProductRepository")

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

func (r *ProductRepository) Insert(ctx context.Context, product *model.Product) error {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.Insert")
	defer span.End()
	logger.Info(ctx, "Repository")

	_, err := r.collection.InsertOne(ctx, product)
	return err
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()
	logger.Info(ctx, "Repository")

	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List pages products newest first. Search matches name, description and
// brand as a case-insensitive literal.
func (r *ProductRepository) List(ctx context.Context, q model.ProductListQuery) ([]model.Product, int64, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.List")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{}
	if q.CategoryID != "" {
		filter["category_id"] = q.CategoryID
	}
	if q.Brand != "" {
		filter["brand"] = q.Brand
	}
	if q.IsActive != nil {
		filter["is_active"] = *q.IsActive
	}
	if q.Search != "" {
		pattern := regexp.QuoteMeta(q.Search)
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": pattern, "$options": "i"}},
			{"description": bson.M{"$regex": pattern, "$options": "i"}},
			{"brand": bson.M{"$regex": pattern, "$options": "i"}},
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

	products := make([]model.Product, 0, q.PageSize)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, changes map[string]any) (int64, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.Update")
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

func (r *ProductRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()
	logger.Info(ctx, "Repository")

	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *ProductRepository) SetRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.SetRating")
	defer span.End()
	logger.Info(ctx, "Repository")

	update := bson.M{"$set": bson.M{
		"rating":       rating,
		"review_count": reviewCount,
		"updated_at":   time.Now().UTC(),
	}}

	_, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, update)
	return err
}

func (r *ProductRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.CountAll")
	defer span.End()
	logger.Info(ctx, "Repository")

	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.CountByCategory")
	defer span.End()
	logger.Info(ctx, "Repository")

	return r.collection.CountDocuments(ctx, bson.M{"category_id": categoryID})
}

func (r *ProductRepository) CountByBrand(ctx context.Context, brandName string, activeOnly bool) (int64, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.CountByBrand")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{"brand": brandName}
	if activeOnly {
		filter["is_active"] = true
	}
	return r.collection.CountDocuments(ctx, filter)
}

// DistinctBrands lists the distinct non-empty brand strings on products.
func (r *ProductRepository) DistinctBrands(ctx context.Context, activeOnly bool) ([]string, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.DistinctBrands")
	defer span.End()
	logger.Info(ctx, "Repository")

	filter := bson.M{"brand": bson.M{"$ne": nil}}
	if activeOnly {
		filter["is_active"] = true
	}

	values, err := r.collection.Distinct(ctx, "brand", filter)
	if err != nil {
		return nil, err
	}

	brands := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			brands = append(brands, s)
		}
	}
	return brands, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

type CategoryStore interface {
	Insert(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	FindActive(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id string, changes map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

var CategoryServiceTracer = otel.Tracer("CategoryService")

type CategoryService struct {
	categories CategoryStore
	products   ProductStore
}

func NewCategoryService(categories CategoryStore, products ProductStore) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
	}
}

func (s *CategoryService) Create(ctx context.Context, req model.CategoryCreate) (*model.Category, error) {
	ctx, span := CategoryServiceTracer.Start(ctx, "CategoryService.Create")
	defer span.End()
	logger.Info(ctx, "Service")

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := time.Now().UTC()
	category := &model.Category{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		ParentID:     req.ParentID,
		IsActive:     active,
		ProductCount: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.categories.Insert(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// List returns every category with a live product count.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	ctx, span := CategoryServiceTracer.Start(ctx, "CategoryService.List")
	defer span.End()
	logger.Info(ctx, "Service")

	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		count, err := s.products.CountByCategory(ctx, categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].ProductCount = count
	}
	return categories, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, req model.CategoryUpdate) (*model.Category, error) {
	ctx, span := CategoryServiceTracer.Start(ctx, "CategoryService.Update")
	defer span.End()
	logger.Info(ctx, "Service")

	changes := req.Changes()
	if len(changes) > 0 {
		matched, err := s.categories.Update(ctx, id, changes)
		if err != nil {
			return nil, err
		}
		if matched == 0 {
			return nil, notFound("Category")
		}
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, notFound("Category")
	}
	return category, nil
}

// Delete refuses to remove a category that still has products.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	ctx, span := CategoryServiceTracer.Start(ctx, "CategoryService.Delete")
	defer span.End()
	logger.Info(ctx, "Service")

	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ruleErr(fmt.Sprintf("Cannot delete category with %d products", count))
	}

	deleted, err := s.categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFound("Category")
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

type BrandStore interface {
	Insert(ctx context.Context, brand *model.Brand) error
	FindByID(ctx context.Context, id string) (*model.Brand, error)
	ExistsByNameFold(ctx context.Context, name string) (bool, error)
	ExistsByNameFoldExcept(ctx context.Context, name, exceptID string) (bool, error)
	List(ctx context.Context, includeInactive bool) ([]model.Brand, error)
	Update(ctx context.Context, id string, changes map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

var BrandServiceTracer = otel.Tracer("BrandService")

type BrandService struct {
	brands   BrandStore
	products ProductStore
}

func NewBrandService(brands BrandStore, products ProductStore) *BrandService {
	return &BrandService{
		brands:   brands,
		products: products,
	}
}

// Create inserts a brand. Names are unique ignoring case.
func (s *BrandService) Create(ctx context.Context, req model.BrandCreate) (*model.Brand, error) {
	ctx, span := BrandServiceTracer.Start(ctx, "BrandService.Create")
	defer span.End()
	logger.Info(ctx, "Service")

	exists, err := s.brands.ExistsByNameFold(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ruleErr("Brand with this name already exists")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := time.Now().UTC()
	brand := &model.Brand{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Logo:         req.Logo,
		Website:      req.Website,
		IsActive:     active,
		ProductCount: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.brands.Insert(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// List returns brands sorted by name with live counts of their active
// products.
func (s *BrandService) List(ctx context.Context, includeInactive bool) ([]model.Brand, error) {
	ctx, span := BrandServiceTracer.Start(ctx, "BrandService.List")
	defer span.End()
	logger.Info(ctx, "Service")

	brands, err := s.brands.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	for i := range brands {
		count, err := s.products.CountByBrand(ctx, brands[i].Name, true)
		if err != nil {
			return nil, err
		}
		brands[i].ProductCount = count
	}
	return brands, nil
}

func (s *BrandService) Update(ctx context.Context, id string, req model.BrandUpdate) (*model.Brand, error) {
	ctx, span := BrandServiceTracer.Start(ctx, "BrandService.Update")
	defer span.End()
	logger.Info(ctx, "Service")

	changes := req.Changes()
	if len(changes) > 0 {
		if req.Name != nil {
			exists, err := s.brands.ExistsByNameFoldExcept(ctx, *req.Name, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ruleErr("Brand with this name already exists")
			}
		}

		matched, err := s.brands.Update(ctx, id, changes)
		if err != nil {
			return nil, err
		}
		if matched == 0 {
			return nil, notFound("Brand")
		}
	}

	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, notFound("Brand")
	}
	return brand, nil
}

// Delete refuses to remove a brand that still has products under its name.
func (s *BrandService) Delete(ctx context.Context, id string) error {
	ctx, span := BrandServiceTracer.Start(ctx, "BrandService.Delete")
	defer span.End()
	logger.Info(ctx, "Service")

	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if brand == nil {
		return notFound("Brand")
	}

	count, err := s.products.CountByBrand(ctx, brand.Name, false)
	if err != nil {
		return err
	}
	if count > 0 {
		return ruleErr(fmt.Sprintf("Cannot delete brand with %d products. Please reassign products first.", count))
	}

	deleted, err := s.brands.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFound("Brand")
	}
	return nil
}

// Migrate seeds the brands collection from the distinct brand strings
// already present on products. Existing brands are skipped.
func (s *BrandService) Migrate(ctx context.Context) (*model.BrandMigration, error) {
	ctx, span := BrandServiceTracer.Start(ctx, "BrandService.Migrate")
	defer span.End()
	logger.Info(ctx, "Service")

	names, err := s.products.DistinctBrands(ctx, false)
	if err != nil {
		return nil, err
	}

	result := &model.BrandMigration{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		exists, err := s.brands.ExistsByNameFold(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped++
			continue
		}

		now := time.Now().UTC()
		brand := &model.Brand{
			ID:           uuid.NewString(),
			Name:         name,
			IsActive:     true,
			ProductCount: 0,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.brands.Insert(ctx, brand); err != nil {
			return nil, err
		}
		result.Migrated++
	}

	result.TotalBrands = result.Migrated + result.Skipped
	return result, nil
}

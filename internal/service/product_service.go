package service

import (
	"context"
	"strings"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

type ProductStore interface {
	Insert(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, q model.ProductListQuery) ([]model.Product, int64, error)
	Update(ctx context.Context, id string, changes map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	SetRating(ctx context.Context, id string, rating float64, reviewCount int) error
	CountAll(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	CountByBrand(ctx context.Context, brandName string, activeOnly bool) (int64, error)
	DistinctBrands(ctx context.Context, activeOnly bool) ([]string, error)
}

type InventoryStore interface {
	Insert(ctx context.Context, inv *model.Inventory) error
	SyncQuantity(ctx context.Context, productID string, quantity int) error
	DeleteByProduct(ctx context.Context, productID string) error
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

var ProductServiceTracer = otel.Tracer("ProductService")

type ProductService struct {
	products   ProductStore
	inventory  InventoryStore
	categories CategoryStore
}

func NewProductService(products ProductStore, inventory InventoryStore, categories CategoryStore) *ProductService {
	return &ProductService{
		products:   products,
		inventory:  inventory,
		categories: categories,
	}
}

// Create inserts a product and its inventory record. A missing SKU gets
// a generated one.
func (s *ProductService) Create(ctx context.Context, req model.ProductCreate) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Create")
	defer span.End()
	logger.Info(ctx, "Service")

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		sku = "SKU-" + strings.ToUpper(utils.UUIDHex()[:8])
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}
	features := req.Features
	if features == nil {
		features = []string{}
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		CategoryID:    req.CategoryID,
		Brand:         req.Brand,
		SKU:           sku,
		Stock:         req.Stock,
		Images:        images,
		Features:      features,
		Rating:        0,
		ReviewCount:   0,
		IsActive:      active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}

	inv := &model.Inventory{
		ID:          uuid.NewString(),
		ProductID:   product.ID,
		Quantity:    req.Stock,
		Reserved:    0,
		LastUpdated: now,
	}
	if err := s.inventory.Insert(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.joinCategoryName(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Get")
	defer span.End()
	logger.Info(ctx, "Service")

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFound("Product")
	}
	if err := s.joinCategoryName(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, q model.ProductListQuery) (*model.ProductPage, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.List")
	defer span.End()
	logger.Info(ctx, "Service")

	products, total, err := s.products.List(ctx, q)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	for i := range products {
		products[i].CategoryName = names[products[i].CategoryID]
	}

	return &model.ProductPage{
		Products:   products,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages(total, q.PageSize),
	}, nil
}

// Update applies a partial update. An empty payload returns the product
// unchanged. Stock changes flow through to the inventory record.
func (s *ProductService) Update(ctx context.Context, id string, req model.ProductUpdate) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Update")
	defer span.End()
	logger.Info(ctx, "Service")

	changes := req.Changes()
	if len(changes) == 0 {
		return s.Get(ctx, id)
	}

	matched, err := s.products.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, notFound("Product")
	}

	if req.Stock != nil {
		if err := s.inventory.SyncQuantity(ctx, id, *req.Stock); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

// Delete removes a product and its inventory record.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Delete")
	defer span.End()
	logger.Info(ctx, "Service")

	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFound("Product")
	}
	return s.inventory.DeleteByProduct(ctx, id)
}

// Brands returns the distinct non-empty brand names of active products.
func (s *ProductService) Brands(ctx context.Context) ([]string, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Brands")
	defer span.End()
	logger.Info(ctx, "Service")

	return s.products.DistinctBrands(ctx, true)
}

// ActiveCategories backs the public category listing.
func (s *ProductService) ActiveCategories(ctx context.Context) ([]model.Category, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.ActiveCategories")
	defer span.End()
	logger.Info(ctx, "Service")

	return s.categories.FindActive(ctx)
}

func (s *ProductService) joinCategoryName(ctx context.Context, p *model.Product) error {
	if p.CategoryID == "" {
		return nil
	}
	category, err := s.categories.FindByID(ctx, p.CategoryID)
	if err != nil {
		return err
	}
	if category != nil {
		p.CategoryName = category.Name
	}
	return nil
}

func totalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}

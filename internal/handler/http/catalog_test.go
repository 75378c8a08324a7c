package http

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"polluxkart-admin/internal/model"
)

func createCategory(t *testing.T, app *testApp, name string) model.Category {
	t.Helper()
	rr := app.do(t, http.MethodPost, "/api/admin/categories", app.adminToken(t), map[string]any{"name": name})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create category: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var category model.Category
	decodeAs(t, rr, &category)
	return category
}

func createProduct(t *testing.T, app *testApp, body map[string]any) model.Product {
	t.Helper()
	rr := app.do(t, http.MethodPost, "/api/admin/products", app.adminToken(t), body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create product: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var product model.Product
	decodeAs(t, rr, &product)
	return product
}

func TestProductLifecycle(t *testing.T) {
	app := setupApp(t)
	category := createCategory(t, app, "Electronics")

	product := createProduct(t, app, map[string]any{
		"name":        "Wireless Headphones",
		"description": "Over-ear, 30h battery",
		"price":       2999.0,
		"category_id": category.ID,
		"brand":       "Acme",
		"stock":       12,
	})
	if product.ID == "" || !strings.HasPrefix(product.SKU, "SKU-") {
		t.Fatalf("unexpected product %+v", product)
	}
	if !product.IsActive {
		t.Fatal("expected product active by default")
	}
	if product.CategoryName != "Electronics" {
		t.Fatalf("expected joined category name, got %q", product.CategoryName)
	}

	// Public listing, no token.
	rr := app.do(t, http.MethodGet, "/api/products", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var page model.ProductPage
	decodeAs(t, rr, &page)
	if page.Total != 1 || len(page.Products) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Products[0].CategoryName != "Electronics" {
		t.Fatalf("listing lost category name: %+v", page.Products[0])
	}

	rr = app.do(t, http.MethodPut, "/api/admin/products/"+product.ID, app.adminToken(t), map[string]any{
		"price": 2499.0,
		"stock": 5,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var updated model.Product
	decodeAs(t, rr, &updated)
	if updated.Price != 2499 || updated.Stock != 5 {
		t.Fatalf("unexpected update %+v", updated)
	}
	if len(app.inventory.rows) != 1 || app.inventory.rows[0].Quantity != 5 {
		t.Fatalf("inventory not synced: %+v", app.inventory.rows)
	}

	rr = app.do(t, http.MethodDelete, "/api/admin/products/"+product.ID, app.adminToken(t), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var deleted map[string]string
	decodeAs(t, rr, &deleted)
	if deleted["message"] != "Product deleted successfully" {
		t.Fatalf("unexpected message %q", deleted["message"])
	}
	if len(app.inventory.rows) != 0 {
		t.Fatalf("inventory row survived delete: %+v", app.inventory.rows)
	}

	rr = app.do(t, http.MethodGet, "/api/products/"+product.ID, "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "Product not found" {
		t.Fatalf("unexpected details %q", e.Details)
	}
}

func TestProductCreateGuards(t *testing.T) {
	app := setupApp(t)

	body := map[string]any{"name": "Thing", "price": 10.0, "category_id": "cat-1"}
	rr := app.do(t, http.MethodPost, "/api/admin/products", "", body)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	rr = app.do(t, http.MethodPost, "/api/admin/products", app.userToken(t), body)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}

	// Schema violations come back as 422.
	rr = app.do(t, http.MethodPost, "/api/admin/products", app.adminToken(t), map[string]any{
		"price":       10.0,
		"category_id": "cat-1",
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing name, got %d", rr.Code)
	}
	rr = app.do(t, http.MethodPost, "/api/admin/products", app.adminToken(t), map[string]any{
		"name":        "Free",
		"price":       0.0,
		"category_id": "cat-1",
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for zero price, got %d", rr.Code)
	}
}

func TestProductListFilters(t *testing.T) {
	app := setupApp(t)
	category := createCategory(t, app, "Audio")

	createProduct(t, app, map[string]any{
		"name": "Wireless Headphones", "price": 2999.0, "category_id": category.ID, "brand": "Acme",
	})
	createProduct(t, app, map[string]any{
		"name": "Gaming Mouse", "price": 1499.0, "category_id": category.ID, "brand": "Acme",
	})
	createProduct(t, app, map[string]any{
		"name": "Old Keyboard", "price": 999.0, "category_id": category.ID, "brand": "Zen", "is_active": false,
	})

	var page model.ProductPage
	rr := app.do(t, http.MethodGet, "/api/products?is_active=true", "", nil)
	decodeAs(t, rr, &page)
	if page.Total != 2 {
		t.Fatalf("expected 2 active products, got %d", page.Total)
	}

	rr = app.do(t, http.MethodGet, "/api/products?search=mouse", "", nil)
	decodeAs(t, rr, &page)
	if page.Total != 1 || page.Products[0].Name != "Gaming Mouse" {
		t.Fatalf("unexpected search result %+v", page)
	}

	rr = app.do(t, http.MethodGet, "/api/products?page_size=2", "", nil)
	decodeAs(t, rr, &page)
	if page.Total != 3 || page.TotalPages != 2 || len(page.Products) != 2 {
		t.Fatalf("unexpected pagination %+v", page)
	}

	rr = app.do(t, http.MethodGet, "/api/products?is_active=maybe", "", nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "is_active must be a boolean" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	rr = app.do(t, http.MethodGet, "/api/products?page=0", "", nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "page must be >= 1" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	rr = app.do(t, http.MethodGet, "/api/products?page_size=500", "", nil)
	if e := errOf(t, rr); e.Details != "page_size must be between 1 and 100" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	// Active brands only.
	rr = app.do(t, http.MethodGet, "/api/products/brands", "", nil)
	var brands []string
	decodeAs(t, rr, &brands)
	if len(brands) != 1 || brands[0] != "Acme" {
		t.Fatalf("unexpected brands %v", brands)
	}
}

func TestCategoryEndpoints(t *testing.T) {
	app := setupApp(t)
	admin := app.adminToken(t)

	category := createCategory(t, app, "Wearables")
	if !category.IsActive {
		t.Fatal("expected category active by default")
	}
	createProduct(t, app, map[string]any{
		"name": "Band 5", "price": 1999.0, "category_id": category.ID,
	})

	rr := app.do(t, http.MethodGet, "/api/admin/categories", admin, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var categories []model.Category
	decodeAs(t, rr, &categories)
	if len(categories) != 1 || categories[0].ProductCount != 1 {
		t.Fatalf("unexpected categories %+v", categories)
	}

	rr = app.do(t, http.MethodPut, "/api/admin/categories/"+category.ID, admin, map[string]any{
		"name":      "Wearable Tech",
		"is_active": false,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var renamed model.Category
	decodeAs(t, rr, &renamed)
	if renamed.Name != "Wearable Tech" || renamed.IsActive {
		t.Fatalf("unexpected update %+v", renamed)
	}

	// Inactive categories drop off the storefront listing.
	rr = app.do(t, http.MethodGet, "/api/products/categories", "", nil)
	var active []model.Category
	decodeAs(t, rr, &active)
	if len(active) != 0 {
		t.Fatalf("expected no active categories, got %+v", active)
	}

	rr = app.do(t, http.MethodDelete, "/api/admin/categories/"+category.ID, admin, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "Cannot delete category with 1 products" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	app.products.products = nil
	rr = app.do(t, http.MethodDelete, "/api/admin/categories/"+category.ID, admin, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var deleted map[string]string
	decodeAs(t, rr, &deleted)
	if deleted["message"] != "Category deleted successfully" {
		t.Fatalf("unexpected message %q", deleted["message"])
	}
}

func TestBrandEndpoints(t *testing.T) {
	app := setupApp(t)
	admin := app.adminToken(t)

	rr := app.do(t, http.MethodPost, "/api/admin/brands", admin, map[string]any{"name": "Acme"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var acme model.Brand
	decodeAs(t, rr, &acme)

	// Case-insensitive uniqueness.
	rr = app.do(t, http.MethodPost, "/api/admin/brands", admin, map[string]any{"name": "ACME"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "Brand with this name already exists" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	rr = app.do(t, http.MethodGet, "/api/admin/brands?include_inactive=maybe", admin, nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "include_inactive must be a boolean" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	category := createCategory(t, app, "Tools")
	createProduct(t, app, map[string]any{
		"name": "Drill", "price": 4999.0, "category_id": category.ID, "brand": "Acme",
	})

	rr = app.do(t, http.MethodGet, "/api/admin/brands", admin, nil)
	var brands []model.Brand
	decodeAs(t, rr, &brands)
	if len(brands) != 1 || brands[0].ProductCount != 1 {
		t.Fatalf("unexpected brands %+v", brands)
	}

	rr = app.do(t, http.MethodDelete, "/api/admin/brands/"+acme.ID, admin, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "Cannot delete brand with 1 products. Please reassign products first." {
		t.Fatalf("unexpected details %q", e.Details)
	}

	// Migration picks up brand strings that have no brand document yet.
	createProduct(t, app, map[string]any{
		"name": "Lamp", "price": 799.0, "category_id": category.ID, "brand": "Zen",
	})
	rr = app.do(t, http.MethodPost, "/api/admin/brands/migrate", admin, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var migration struct {
		Message string               `json:"message"`
		Details model.BrandMigration `json:"details"`
	}
	decodeAs(t, rr, &migration)
	if migration.Message != "Brand migration completed" {
		t.Fatalf("unexpected message %q", migration.Message)
	}
	if migration.Details.Migrated != 1 || migration.Details.Skipped != 1 || migration.Details.TotalBrands != 2 {
		t.Fatalf("unexpected migration %+v", migration.Details)
	}
}

func TestReviewEndpoints(t *testing.T) {
	app := setupApp(t)
	category := createCategory(t, app, "Audio")
	product := createProduct(t, app, map[string]any{
		"name": "Speaker", "price": 3499.0, "category_id": category.ID,
	})

	reviewPath := fmt.Sprintf("/api/products/%s/reviews", product.ID)

	rr := app.do(t, http.MethodPost, reviewPath, "", map[string]any{"rating": 5})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	rr = app.do(t, http.MethodPost, reviewPath, app.userToken(t), map[string]any{
		"rating":  5,
		"title":   "Great",
		"comment": "Room-filling sound",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var review model.Review
	decodeAs(t, rr, &review)
	if review.UserName != "Priya" || review.Rating != 5 {
		t.Fatalf("unexpected review %+v", review)
	}

	// Product aggregate updates on insert.
	rr = app.do(t, http.MethodGet, "/api/products/"+product.ID, "", nil)
	var rated model.Product
	decodeAs(t, rr, &rated)
	if rated.Rating != 5 || rated.ReviewCount != 1 {
		t.Fatalf("unexpected aggregate %+v", rated)
	}

	rr = app.do(t, http.MethodGet, reviewPath, "", nil)
	var reviews []model.Review
	decodeAs(t, rr, &reviews)
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}

	rr = app.do(t, http.MethodPost, reviewPath, app.userToken(t), map[string]any{"rating": 4})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "You have already reviewed this product" {
		t.Fatalf("unexpected details %q", e.Details)
	}

	rr = app.do(t, http.MethodPost, reviewPath, app.adminToken(t), map[string]any{"rating": 6})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	rr = app.do(t, http.MethodPost, "/api/products/nope/reviews", app.userToken(t), map[string]any{"rating": 3})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if e := errOf(t, rr); e.Details != "Product not found" {
		t.Fatalf("unexpected details %q", e.Details)
	}
}

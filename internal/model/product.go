package model

import "time"

type Product struct {
	ID            string    `json:"id" bson:"id"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	Price         float64   `json:"price" bson:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty" bson:"original_price,omitempty"`
	CategoryID    string    `json:"category_id" bson:"category_id"`
	Brand         string    `json:"brand,omitempty" bson:"brand,omitempty"`
	SKU           string    `json:"sku" bson:"sku"`
	Stock         int       `json:"stock" bson:"stock"`
	Images        []string  `json:"images" bson:"images"`
	Features      []string  `json:"features" bson:"features"`
	Rating        float64   `json:"rating" bson:"rating"`
	ReviewCount   int       `json:"review_count" bson:"review_count"`
	IsActive      bool      `json:"is_active" bson:"is_active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`

	// Joined from the categories collection, never stored.
	CategoryName string `json:"category_name,omitempty" bson:"-"`
}

type ProductCreate struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice *float64 `json:"original_price" validate:"omitempty,gt=0"`
	CategoryID    string   `json:"category_id" validate:"required"`
	Brand         string   `json:"brand"`
	SKU           string   `json:"sku"`
	Stock         int      `json:"stock" validate:"gte=0"`
	Images        []string `json:"images"`
	Features      []string `json:"features"`
	IsActive      *bool    `json:"is_active"`
}

// ProductUpdate carries only the fields to change; nil means untouched.
type ProductUpdate struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice *float64 `json:"original_price" validate:"omitempty,gt=0"`
	CategoryID    *string  `json:"category_id"`
	Brand         *string  `json:"brand"`
	SKU           *string  `json:"sku"`
	Stock         *int     `json:"stock" validate:"omitempty,gte=0"`
	Images        []string `json:"images"`
	Features      []string `json:"features"`
	IsActive      *bool    `json:"is_active"`
}

// Changes maps the set fields to their document keys for a partial update.
func (u *ProductUpdate) Changes() map[string]any {
	c := map[string]any{}
	if u.Name != nil {
		c["name"] = *u.Name
	}
	if u.Description != nil {
		c["description"] = *u.Description
	}
	if u.Price != nil {
		c["price"] = *u.Price
	}
	if u.OriginalPrice != nil {
		c["original_price"] = *u.OriginalPrice
	}
	if u.CategoryID != nil {
		c["category_id"] = *u.CategoryID
	}
	if u.Brand != nil {
		c["brand"] = *u.Brand
	}
	if u.SKU != nil {
		c["sku"] = *u.SKU
	}
	if u.Stock != nil {
		c["stock"] = *u.Stock
	}
	if u.Images != nil {
		c["images"] = u.Images
	}
	if u.Features != nil {
		c["features"] = u.Features
	}
	if u.IsActive != nil {
		c["is_active"] = *u.IsActive
	}
	return c
}

type ProductListQuery struct {
	Page       int
	PageSize   int
	CategoryID string
	Brand      string
	Search     string
	IsActive   *bool
}

type ProductPage struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int64     `json:"total_pages"`
}

// Inventory mirrors product stock; quantity is synced on every product write.
type Inventory struct {
	ID          string    `json:"id" bson:"id"`
	ProductID   string    `json:"product_id" bson:"product_id"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	Reserved    int       `json:"reserved" bson:"reserved"`
	LastUpdated time.Time `json:"last_updated" bson:"last_updated"`
}

package model

import "time"

// Brand names are unique case-insensitively across the collection.
type Brand struct {
	ID           string    `json:"id" bson:"id"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Logo         string    `json:"logo,omitempty" bson:"logo,omitempty"`
	Website      string    `json:"website,omitempty" bson:"website,omitempty"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	ProductCount int64     `json:"product_count" bson:"product_count"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

type BrandCreate struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Website     string `json:"website"`
	IsActive    *bool  `json:"is_active"`
}

type BrandUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Logo        *string `json:"logo"`
	Website     *string `json:"website"`
	IsActive    *bool   `json:"is_active"`
}

func (u *BrandUpdate) Changes() map[string]any {
	c := map[string]any{}
	if u.Name != nil {
		c["name"] = *u.Name
	}
	if u.Description != nil {
		c["description"] = *u.Description
	}
	if u.Logo != nil {
		c["logo"] = *u.Logo
	}
	if u.Website != nil {
		c["website"] = *u.Website
	}
	if u.IsActive != nil {
		c["is_active"] = *u.IsActive
	}
	return c
}

// BrandMigration reports seeding the brands collection from the distinct
// brand strings already present on products.
type BrandMigration struct {
	Migrated    int `json:"migrated"`
	Skipped     int `json:"skipped"`
	TotalBrands int `json:"total_brands"`
}

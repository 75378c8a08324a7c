package model

import "time"

type Category struct {
	ID           string    `json:"id" bson:"id"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Image        string    `json:"image,omitempty" bson:"image,omitempty"`
	ParentID     string    `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	ProductCount int64     `json:"product_count" bson:"product_count"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

type CategoryCreate struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ParentID    string `json:"parent_id"`
	IsActive    *bool  `json:"is_active"`
}

type CategoryUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	ParentID    *string `json:"parent_id"`
	IsActive    *bool   `json:"is_active"`
}

func (u *CategoryUpdate) Changes() map[string]any {
	c := map[string]any{}
	if u.Name != nil {
		c["name"] = *u.Name
	}
	if u.Description != nil {
		c["description"] = *u.Description
	}
	if u.Image != nil {
		c["image"] = *u.Image
	}
	if u.ParentID != nil {
		c["parent_id"] = *u.ParentID
	}
	if u.IsActive != nil {
		c["is_active"] = *u.IsActive
	}
	return c
}

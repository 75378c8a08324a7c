package model

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type PromotionStatus string

const (
	PromotionActive   PromotionStatus = "active"
	PromotionInactive PromotionStatus = "inactive"
	PromotionExpired  PromotionStatus = "expired"
)

// Promotion codes are stored upper-cased and must be unique.
type Promotion struct {
	ID                   string          `json:"id" bson:"id"`
	Code                 string          `json:"code" bson:"code"`
	Description          string          `json:"description,omitempty" bson:"description,omitempty"`
	DiscountType         DiscountType    `json:"discount_type" bson:"discount_type"`
	DiscountValue        float64         `json:"discount_value" bson:"discount_value"`
	MinOrderAmount       *float64        `json:"min_order_amount,omitempty" bson:"min_order_amount,omitempty"`
	MaxDiscount          *float64        `json:"max_discount,omitempty" bson:"max_discount,omitempty"`
	UsageLimit           *int            `json:"usage_limit,omitempty" bson:"usage_limit,omitempty"`
	PerUserLimit         int             `json:"per_user_limit" bson:"per_user_limit"`
	TimesUsed            int             `json:"times_used" bson:"times_used"`
	StartDate            *time.Time      `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate              *time.Time      `json:"end_date,omitempty" bson:"end_date,omitempty"`
	ApplicableCategories []string        `json:"applicable_categories" bson:"applicable_categories"`
	ApplicableProducts   []string        `json:"applicable_products" bson:"applicable_products"`
	Status               PromotionStatus `json:"status" bson:"status"`
	CreatedAt            time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at" bson:"updated_at"`
}

type PromotionCreate struct {
	Code                 string       `json:"code" validate:"required"`
	Description          string       `json:"description"`
	DiscountType         DiscountType `json:"discount_type" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue        float64      `json:"discount_value" validate:"required,gt=0"`
	MinOrderAmount       *float64     `json:"min_order_amount" validate:"omitempty,gte=0"`
	MaxDiscount          *float64     `json:"max_discount" validate:"omitempty,gt=0"`
	UsageLimit           *int         `json:"usage_limit" validate:"omitempty,gt=0"`
	PerUserLimit         *int         `json:"per_user_limit" validate:"omitempty,gte=0"`
	StartDate            *time.Time   `json:"start_date"`
	EndDate              *time.Time   `json:"end_date"`
	ApplicableCategories []string     `json:"applicable_categories"`
	ApplicableProducts   []string     `json:"applicable_products"`
}

type PromotionUpdate struct {
	Description          *string          `json:"description"`
	DiscountType         *DiscountType    `json:"discount_type" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue        *float64         `json:"discount_value" validate:"omitempty,gt=0"`
	MinOrderAmount       *float64         `json:"min_order_amount" validate:"omitempty,gte=0"`
	MaxDiscount          *float64         `json:"max_discount" validate:"omitempty,gt=0"`
	UsageLimit           *int             `json:"usage_limit" validate:"omitempty,gt=0"`
	PerUserLimit         *int             `json:"per_user_limit" validate:"omitempty,gte=0"`
	StartDate            *time.Time       `json:"start_date"`
	EndDate              *time.Time       `json:"end_date"`
	ApplicableCategories []string         `json:"applicable_categories"`
	ApplicableProducts   []string         `json:"applicable_products"`
	Status               *PromotionStatus `json:"status" validate:"omitempty,oneof=active inactive expired"`
}

func (u *PromotionUpdate) Changes() map[string]any {
	c := map[string]any{}
	if u.Description != nil {
		c["description"] = *u.Description
	}
	if u.DiscountType != nil {
		c["discount_type"] = *u.DiscountType
	}
	if u.DiscountValue != nil {
		c["discount_value"] = *u.DiscountValue
	}
	if u.MinOrderAmount != nil {
		c["min_order_amount"] = *u.MinOrderAmount
	}
	if u.MaxDiscount != nil {
		c["max_discount"] = *u.MaxDiscount
	}
	if u.UsageLimit != nil {
		c["usage_limit"] = *u.UsageLimit
	}
	if u.PerUserLimit != nil {
		c["per_user_limit"] = *u.PerUserLimit
	}
	if u.StartDate != nil {
		c["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		c["end_date"] = *u.EndDate
	}
	if u.ApplicableCategories != nil {
		c["applicable_categories"] = u.ApplicableCategories
	}
	if u.ApplicableProducts != nil {
		c["applicable_products"] = u.ApplicableProducts
	}
	if u.Status != nil {
		c["status"] = *u.Status
	}
	return c
}

// PromotionValidation is the outcome of checking a code against an order total.
type PromotionValidation struct {
	PromotionID   string       `json:"promotion_id"`
	Code          string       `json:"code"`
	Discount      float64      `json:"discount"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
}

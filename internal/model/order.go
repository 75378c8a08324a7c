package model

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}
}

type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

type ShippingAddress struct {
	FullName   string `json:"full_name" bson:"full_name"`
	Phone      string `json:"phone,omitempty" bson:"phone,omitempty"`
	Line1      string `json:"line1,omitempty" bson:"line1,omitempty"`
	Line2      string `json:"line2,omitempty" bson:"line2,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	Country    string `json:"country,omitempty" bson:"country,omitempty"`
}

// Order documents are written by the storefront; this service reads them
// and manages status transitions.
type Order struct {
	ID              string          `json:"id" bson:"id"`
	OrderNumber     string          `json:"order_number" bson:"order_number"`
	UserID          string          `json:"user_id" bson:"user_id"`
	Items           []OrderItem     `json:"items" bson:"items"`
	Total           float64         `json:"total" bson:"total"`
	Status          OrderStatus     `json:"status" bson:"status"`
	ShippingAddress ShippingAddress `json:"shipping_address" bson:"shipping_address"`
	TrackingNumber  string          `json:"tracking_number,omitempty" bson:"tracking_number,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" bson:"updated_at"`
}

type OrderListQuery struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

type OrderPage struct {
	Orders     []Order `json:"orders"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int64   `json:"total_pages"`
}

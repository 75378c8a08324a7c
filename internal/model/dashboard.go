package model

type DashboardStats struct {
	TotalOrders      int64   `json:"total_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalProducts    int64   `json:"total_products"`
	TotalUsers       int64   `json:"total_users"`
	PendingOrders    int64   `json:"pending_orders"`
	LowStockProducts int64   `json:"low_stock_products"`
	OrdersToday      int64   `json:"orders_today"`
	RevenueToday     float64 `json:"revenue_today"`
}

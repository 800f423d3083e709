package types

// DashboardStats summarises orders and revenue for the dashboard.
type DashboardStats struct {
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	ShippedOrders   int     `json:"shippedOrders"`
	CompletedOrders int     `json:"completedOrders"`
	CancelledOrders int     `json:"cancelledOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TodayRevenue    float64 `json:"todayRevenue"`
	WeekRevenue     float64 `json:"weekRevenue"`
	MonthRevenue    float64 `json:"monthRevenue"`
	PendingReviews  int     `json:"pendingReviews"`
}

// LowStockProduct is a product whose stock is at or below the threshold.
type LowStockProduct struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Stock     int64  `json:"stock"`
	Threshold int64  `json:"threshold"`
}

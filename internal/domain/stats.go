package domain

// StatsSummary is the admin dashboard aggregate as computed by the backend.
type StatsSummary struct {
	TotalSales     Money               `json:"totalSales"`
	OrderCount     int                 `json:"orderCount"`
	UserCount      int                 `json:"userCount"`
	ItemCount      int                 `json:"itemCount"`
	OpenContacts   int                 `json:"openContacts"`
	PendingOrders  int                 `json:"pendingOrders"`
	LowStockItems  int                 `json:"lowStockItems"`
	SalesByMonth   []SalesPoint        `json:"salesByMonth"`
	OrdersByStatus map[OrderStatus]int `json:"ordersByStatus"`
}

// SalesPoint is a single chart data point.
type SalesPoint struct {
	Label string `json:"label"`
	Value Money  `json:"value"`
}

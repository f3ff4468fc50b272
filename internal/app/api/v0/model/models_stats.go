package model

import "github.com/baglio/shop-portal/internal/domain"

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalSales     int64          `json:"TotalSales"`
	OrderCount     int            `json:"OrderCount"`
	UserCount      int            `json:"UserCount"`
	ItemCount      int            `json:"ItemCount"`
	OpenContacts   int            `json:"OpenContacts"`
	PendingOrders  int            `json:"PendingOrders"`
	LowStockItems  int            `json:"LowStockItems"`
	SalesByMonth   []SalesPoint   `json:"SalesByMonth"`
	OrdersByStatus map[string]int `json:"OrdersByStatus"`
}

// SalesPoint is a single chart data point.
type SalesPoint struct {
	Label string `json:"Label"`
	Value int64  `json:"Value"`
}

func NewStats(src *domain.StatsSummary) Stats {
	points := make([]SalesPoint, len(src.SalesByMonth))
	for i, p := range src.SalesByMonth {
		points[i] = SalesPoint{Label: p.Label, Value: int64(p.Value)}
	}
	byStatus := make(map[string]int, len(src.OrdersByStatus))
	for status, count := range src.OrdersByStatus {
		byStatus[string(status)] = count
	}
	return Stats{
		TotalSales:     int64(src.TotalSales),
		OrderCount:     src.OrderCount,
		UserCount:      src.UserCount,
		ItemCount:      src.ItemCount,
		OpenContacts:   src.OpenContacts,
		PendingOrders:  src.PendingOrders,
		LowStockItems:  src.LowStockItems,
		SalesByMonth:   points,
		OrdersByStatus: byStatus,
	}
}

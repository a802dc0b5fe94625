package dto

import "time"

// SummaryResponse carries the dashboard KPI block.
type SummaryResponse struct {
	TotalAttributedSales float64 `json:"totalAttributedSales"`
	Currency             string  `json:"currency"`
	TotalOrders          int     `json:"totalOrders"`
	AverageOrderValue    float64 `json:"averageOrderValue"`
	PendingAmount        float64 `json:"pendingAmount"`
	OverdueAmount        float64 `json:"overdueAmount"`
	PaidAmount           float64 `json:"paidAmount"`
}

// OrderResponse is one attributed order derived from a checkout event.
type OrderResponse struct {
	EventID   string    `json:"eventId"`
	OrderID   string    `json:"orderId"`
	Timestamp time.Time `json:"timestamp"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	ItemCount int       `json:"itemCount"`
}

// OrderListResponse carries one page of attributed orders.
type OrderListResponse struct {
	Orders     []OrderResponse    `json:"orders"`
	Pagination PaginationResponse `json:"pagination"`
	FetchedAt  time.Time          `json:"fetchedAt"`
}

// RefreshStatsResponse acknowledges a snapshot refresh.
type RefreshStatsResponse struct {
	ShopName   string    `json:"shopName"`
	EventCount int       `json:"eventCount"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

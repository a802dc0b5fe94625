package dto

import "time"

// StepResponse tracks one pipeline step of a sync run.
type StepResponse struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

// SummaryCounters mirrors the completion summary of a sync run.
type SummaryCounters struct {
	TotalProductsFetched   int    `json:"totalProductsFetched"`
	TotalProductsProcessed int    `json:"totalProductsProcessed"`
	PublishableProducts    int    `json:"publishableProducts"`
	NonApparelCount        int    `json:"nonApparelCount"`
	CompletedAt            string `json:"completedAt,omitempty"`
}

// SyncStatusResponse reports the sync state of one shop. NoData marks a shop
// that has never synced; Label and Severity come from the presentation
// mapper so the frontend renders without its own status table.
type SyncStatusResponse struct {
	NoData   bool             `json:"noData"`
	Status   string           `json:"status,omitempty"`
	Stage    string           `json:"stage,omitempty"`
	Progress int              `json:"progress,omitempty"`
	Steps    []StepResponse   `json:"steps,omitempty"`
	Summary  *SummaryCounters `json:"summary,omitempty"`
	Error    string           `json:"error,omitempty"`
	Label    string           `json:"label"`
	Severity string           `json:"severity"`
}

// RoutingResponse tells the frontend where to send the merchant.
type RoutingResponse struct {
	HasSynced bool   `json:"hasSynced"`
	Route     string `json:"route"`
}

// ShopResponse represents a connected shop.
type ShopResponse struct {
	Domain       string     `json:"domain"`
	Platform     string     `json:"platform"`
	Verified     bool       `json:"verified"`
	ConnectedAt  time.Time  `json:"connectedAt"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
}

// ConnectShopRequest finalizes a shop connection.
type ConnectShopRequest struct {
	Domain   string `json:"domain" binding:"required"`
	Platform string `json:"platform" binding:"required"`
}

package handlers

import (
	"context"

	"github.com/konsiyer/dashboard/internal/domain/model"
	"github.com/konsiyer/dashboard/internal/usecase"
)

// InvoiceFacade encapsulates invoice operations exposed via HTTP.
type InvoiceFacade interface {
	Invoices(ctx context.Context, filter usecase.InvoiceFilter) (usecase.Page[model.Invoice], map[model.InvoiceStatus]float64, error)
	Invoice(ctx context.Context, id string) (*model.Invoice, error)
	PayInvoice(ctx context.Context, id string) (*model.Invoice, error)
}

// StatsFacade provides affiliate stats operations.
type StatsFacade interface {
	Summary(ctx context.Context, idToken, shopDomain string) (*model.DashboardSummary, error)
	RefreshStats(ctx context.Context, idToken, shopDomain string) (*model.StatsSnapshot, error)
	OrdersPage(ctx context.Context, idToken, shopDomain string, pageNumber, pageSize int) (usecase.Page[model.OrderEvent], *model.StatsSnapshot, error)
}

// ShopFacade covers shop connections and sync control.
type ShopFacade interface {
	Shops(ctx context.Context) ([]model.Shop, error)
	ConnectShop(ctx context.Context, domain string, platform model.ShopPlatform) (*model.Shop, error)
	SyncStatus(ctx context.Context, shopDomain string) (*model.StatusReport, error)
	StartSync(ctx context.Context, shopDomain, idToken string) error
	Routing(ctx context.Context, shopDomain string) (*usecase.RoutingDecision, error)
}

// DashboardFacade aggregates the full set of operations used across handlers.
type DashboardFacade interface {
	InvoiceFacade
	StatsFacade
	ShopFacade
}

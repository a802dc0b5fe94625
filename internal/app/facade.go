package app

import (
	"context"
	"time"

	"github.com/konsiyer/dashboard/internal/domain/model"
	"github.com/konsiyer/dashboard/internal/usecase"
)

// DashboardFacade aggregates the use cases behind a single surface consumed
// by the HTTP handlers and the status watcher.
type DashboardFacade struct {
	invoices *usecase.InvoiceUseCase
	stats    *usecase.StatsUseCase
	sync     *usecase.SyncUseCase
}

func NewDashboardFacade(invoices *usecase.InvoiceUseCase, stats *usecase.StatsUseCase, sync *usecase.SyncUseCase) *DashboardFacade {
	return &DashboardFacade{invoices: invoices, stats: stats, sync: sync}
}

func (f *DashboardFacade) Invoices(ctx context.Context, filter usecase.InvoiceFilter) (usecase.Page[model.Invoice], map[model.InvoiceStatus]float64, error) {
	return f.invoices.List(ctx, filter)
}

func (f *DashboardFacade) Invoice(ctx context.Context, id string) (*model.Invoice, error) {
	return f.invoices.Get(ctx, id)
}

func (f *DashboardFacade) PayInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	return f.invoices.Pay(ctx, id)
}

// Summary combines the affiliate snapshot with invoice totals into the KPI
// block shown at the top of the dashboard.
func (f *DashboardFacade) Summary(ctx context.Context, idToken, shopDomain string) (*model.DashboardSummary, error) {
	snapshot, err := f.stats.Snapshot(ctx, idToken, shopDomain)
	if err != nil {
		return nil, err
	}

	_, totals, err := f.invoices.List(ctx, usecase.InvoiceFilter{PageNumber: 1, PageSize: 1})
	if err != nil {
		return nil, err
	}

	orders := snapshot.CheckoutEvents()
	sales := usecase.TotalAttributedSales(snapshot)
	summary := &model.DashboardSummary{
		TotalAttributedSales: sales,
		Currency:             usecase.PrimaryCurrency(snapshot),
		TotalOrders:          len(orders),
		PendingAmount:        totals[model.InvoiceStatusPending],
		OverdueAmount:        totals[model.InvoiceStatusOverdue],
		PaidAmount:           totals[model.InvoiceStatusPaid],
	}
	if len(orders) > 0 {
		summary.AverageOrderValue = sales / float64(len(orders))
	}
	return summary, nil
}

func (f *DashboardFacade) RefreshStats(ctx context.Context, idToken, shopDomain string) (*model.StatsSnapshot, error) {
	return f.stats.Refresh(ctx, idToken, shopDomain)
}

func (f *DashboardFacade) OrdersPage(ctx context.Context, idToken, shopDomain string, pageNumber, pageSize int) (usecase.Page[model.OrderEvent], *model.StatsSnapshot, error) {
	return f.stats.Orders(ctx, idToken, shopDomain, pageNumber, pageSize)
}

func (f *DashboardFacade) Shops(ctx context.Context) ([]model.Shop, error) {
	return f.sync.ListShops(ctx)
}

func (f *DashboardFacade) ConnectShop(ctx context.Context, domain string, platform model.ShopPlatform) (*model.Shop, error) {
	return f.sync.ConnectShop(ctx, domain, platform)
}

func (f *DashboardFacade) SyncStatus(ctx context.Context, shopDomain string) (*model.StatusReport, error) {
	return f.sync.FetchStatus(ctx, shopDomain)
}

func (f *DashboardFacade) StartSync(ctx context.Context, shopDomain, idToken string) error {
	return f.sync.StartSync(ctx, shopDomain, idToken)
}

func (f *DashboardFacade) Routing(ctx context.Context, shopDomain string) (*usecase.RoutingDecision, error) {
	return f.sync.Routing(ctx, shopDomain)
}

// ShopsForPolling limits the watcher batch to the first limit verified shops.
func (f *DashboardFacade) ShopsForPolling(ctx context.Context, limit int) ([]model.Shop, error) {
	shops, err := f.sync.ListShops(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(shops) > limit {
		shops = shops[:limit]
	}
	return shops, nil
}

func (f *DashboardFacade) CheckSyncStatus(ctx context.Context, shopDomain string) (*model.StatusReport, error) {
	return f.sync.FetchStatus(ctx, shopDomain)
}

func (f *DashboardFacade) RecordSyncCompleted(ctx context.Context, shopDomain string, completedAt time.Time) error {
	return f.sync.MarkSynced(ctx, shopDomain, completedAt)
}

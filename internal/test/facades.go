package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/konsiyer/dashboard/internal/domain/model"
	"github.com/konsiyer/dashboard/internal/usecase"
)

// InvoiceFacadeStub provides controllable behaviour for invoice endpoints.
type InvoiceFacadeStub struct {
	InvoicesFn func(context.Context, usecase.InvoiceFilter) (usecase.Page[model.Invoice], map[model.InvoiceStatus]float64, error)
	InvoiceFn  func(context.Context, string) (*model.Invoice, error)
	PayFn      func(context.Context, string) (*model.Invoice, error)
}

// Invoices delegates to the provided function or returns one pending invoice.
func (s InvoiceFacadeStub) Invoices(ctx context.Context, filter usecase.InvoiceFilter) (usecase.Page[model.Invoice], map[model.InvoiceStatus]float64, error) {
	if s.InvoicesFn != nil {
		return s.InvoicesFn(ctx, filter)
	}
	invoices := []model.Invoice{{ID: "inv_001", Number: "2025-001", Amount: 1250.50, Currency: "EUR", Status: model.InvoiceStatusPending}}
	return usecase.Paginate(invoices, filter.PageNumber, filter.PageSize), map[model.InvoiceStatus]float64{model.InvoiceStatusPending: 1250.50}, nil
}

// Invoice returns a configured invoice or a default one.
func (s InvoiceFacadeStub) Invoice(ctx context.Context, id string) (*model.Invoice, error) {
	if s.InvoiceFn != nil {
		return s.InvoiceFn(ctx, id)
	}
	return &model.Invoice{ID: id, Number: "2025-001", Amount: 1250.50, Currency: "EUR", Status: model.InvoiceStatusPending}, nil
}

// PayInvoice executes the configured payment handler.
func (s InvoiceFacadeStub) PayInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	if s.PayFn != nil {
		return s.PayFn(ctx, id)
	}
	now := time.Unix(0, 0)
	return &model.Invoice{ID: id, Status: model.InvoiceStatusPaid, PaidDate: &now}, nil
}

// StatsFacadeStub simulates affiliate stats operations.
type StatsFacadeStub struct {
	SummaryFn func(context.Context, string, string) (*model.DashboardSummary, error)
	RefreshFn func(context.Context, string, string) (*model.StatsSnapshot, error)
	OrdersFn  func(context.Context, string, string, int, int) (usecase.Page[model.OrderEvent], *model.StatsSnapshot, error)
}

// Summary returns configured KPIs or defaults.
func (s StatsFacadeStub) Summary(ctx context.Context, idToken, shopDomain string) (*model.DashboardSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, idToken, shopDomain)
	}
	return &model.DashboardSummary{TotalAttributedSales: 130, Currency: "EUR", TotalOrders: 2, AverageOrderValue: 65}, nil
}

// RefreshStats returns a configured snapshot or an empty one.
func (s StatsFacadeStub) RefreshStats(ctx context.Context, idToken, shopDomain string) (*model.StatsSnapshot, error) {
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx, idToken, shopDomain)
	}
	return &model.StatsSnapshot{ShopName: "technova", FetchedAt: time.Unix(0, 0)}, nil
}

// OrdersPage returns a configured page or an empty one.
func (s StatsFacadeStub) OrdersPage(ctx context.Context, idToken, shopDomain string, pageNumber, pageSize int) (usecase.Page[model.OrderEvent], *model.StatsSnapshot, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, idToken, shopDomain, pageNumber, pageSize)
	}
	snapshot := &model.StatsSnapshot{ShopName: "technova", FetchedAt: time.Unix(0, 0)}
	return usecase.Paginate([]model.OrderEvent(nil), pageNumber, pageSize), snapshot, nil
}

// ShopFacadeStub simulates shop connection and sync operations.
type ShopFacadeStub struct {
	ShopsFn      func(context.Context) ([]model.Shop, error)
	ConnectFn    func(context.Context, string, model.ShopPlatform) (*model.Shop, error)
	SyncStatusFn func(context.Context, string) (*model.StatusReport, error)
	StartSyncFn  func(context.Context, string, string) error
	RoutingFn    func(context.Context, string) (*usecase.RoutingDecision, error)
}

// Shops returns configured shops or one verified shop.
func (s ShopFacadeStub) Shops(ctx context.Context) ([]model.Shop, error) {
	if s.ShopsFn != nil {
		return s.ShopsFn(ctx)
	}
	return []model.Shop{{Domain: "technova.myshopify.com", Platform: model.PlatformShopify, Verified: true, ConnectedAt: time.Unix(0, 0)}}, nil
}

// ConnectShop executes the configured handler or echoes a verified shop.
func (s ShopFacadeStub) ConnectShop(ctx context.Context, domain string, platform model.ShopPlatform) (*model.Shop, error) {
	if s.ConnectFn != nil {
		return s.ConnectFn(ctx, domain, platform)
	}
	return &model.Shop{Domain: domain, Platform: platform, Verified: true, ConnectedAt: time.Unix(0, 0)}, nil
}

// SyncStatus returns a configured report or a completed run.
func (s ShopFacadeStub) SyncStatus(ctx context.Context, shopDomain string) (*model.StatusReport, error) {
	if s.SyncStatusFn != nil {
		return s.SyncStatusFn(ctx, shopDomain)
	}
	return &model.StatusReport{Status: &model.SyncStatus{Kind: model.StatusCompleted}}, nil
}

// StartSync executes the configured handler.
func (s ShopFacadeStub) StartSync(ctx context.Context, shopDomain, idToken string) error {
	if s.StartSyncFn != nil {
		return s.StartSyncFn(ctx, shopDomain, idToken)
	}
	return nil
}

// Routing returns a configured decision or the dashboard route.
func (s ShopFacadeStub) Routing(ctx context.Context, shopDomain string) (*usecase.RoutingDecision, error) {
	if s.RoutingFn != nil {
		return s.RoutingFn(ctx, shopDomain)
	}
	return &usecase.RoutingDecision{HasSynced: true, Route: "/dashboard"}, nil
}

// DashboardFacadeStub aggregates all handler facade stubs.
type DashboardFacadeStub struct {
	InvoiceFacadeStub
	StatsFacadeStub
	ShopFacadeStub
}

// SyncCompletion records a RecordSyncCompleted invocation.
type SyncCompletion struct {
	ShopDomain  string
	CompletedAt time.Time
}

// WatcherFacadeStub mimics watcher interactions with the dashboard facade.
type WatcherFacadeStub struct {
	Shops          [][]model.Shop
	ShopsFn        func(context.Context, int) ([]model.Shop, error)
	CheckFn        func(context.Context, string) (*model.StatusReport, error)
	RecordFn       func(context.Context, string, time.Time) error
	Completions    []SyncCompletion
	mu             sync.Mutex
	shopsCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WatcherFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WatcherFacadeStub) Unlock() { s.mu.Unlock() }

// ShopsForPolling returns batches from the configured queue.
func (s *WatcherFacadeStub) ShopsForPolling(ctx context.Context, limit int) ([]model.Shop, error) {
	if s.ShopsFn != nil {
		return s.ShopsFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.shopsCallCount, 1)
	if int(call) <= len(s.Shops) {
		return s.Shops[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckSyncStatus returns configured status data.
func (s *WatcherFacadeStub) CheckSyncStatus(ctx context.Context, shopDomain string) (*model.StatusReport, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, shopDomain)
	}
	return &model.StatusReport{Status: &model.SyncStatus{
		Kind:    model.StatusCompleted,
		Summary: &model.SyncSummary{CompletedAt: "2025-11-03T15:07:25Z"},
	}}, nil
}

// RecordSyncCompleted records completion requests.
func (s *WatcherFacadeStub) RecordSyncCompleted(ctx context.Context, shopDomain string, completedAt time.Time) error {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, shopDomain, completedAt)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Completions = append(s.Completions, SyncCompletion{ShopDomain: shopDomain, CompletedAt: completedAt})
	return nil
}

// StatusClientStub fetches processing status for tests.
type StatusClientStub struct {
	FetchStatusFn func(context.Context, string) (*model.StatusReport, error)
	SyncStateFn   func(context.Context, string) (bool, error)
	StartFn       func(context.Context, string, string) error
}

// FetchProcessingStatus returns the configured response or a completed run.
func (s StatusClientStub) FetchProcessingStatus(ctx context.Context, shopDomain string) (*model.StatusReport, error) {
	if s.FetchStatusFn != nil {
		return s.FetchStatusFn(ctx, shopDomain)
	}
	return &model.StatusReport{Status: &model.SyncStatus{Kind: model.StatusCompleted}}, nil
}

// FetchSyncState returns the configured routing state.
func (s StatusClientStub) FetchSyncState(ctx context.Context, shopDomain string) (bool, error) {
	if s.SyncStateFn != nil {
		return s.SyncStateFn(ctx, shopDomain)
	}
	return true, nil
}

// StartProcessing executes the configured trigger handler.
func (s StatusClientStub) StartProcessing(ctx context.Context, shopDomain, idToken string) error {
	if s.StartFn != nil {
		return s.StartFn(ctx, shopDomain, idToken)
	}
	return nil
}

// AffiliateClientStub fetches stats snapshots for tests.
type AffiliateClientStub struct {
	FetchFn  func(context.Context, string) (*model.StatsSnapshot, error)
	Snapshot *model.StatsSnapshot
	Err      error
}

// FetchStats returns the configured response or an empty snapshot.
func (s AffiliateClientStub) FetchStats(ctx context.Context, idToken string) (*model.StatsSnapshot, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, idToken)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Snapshot != nil {
		return s.Snapshot, nil
	}
	return &model.StatsSnapshot{ShopName: "technova", FetchedAt: time.Unix(0, 0)}, nil
}

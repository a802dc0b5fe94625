package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/konsiyer/dashboard/internal/adapter/affiliate"
	"github.com/konsiyer/dashboard/internal/cache"
	domainErrors "github.com/konsiyer/dashboard/internal/domain/errors"
	"github.com/konsiyer/dashboard/internal/domain/model"
	"github.com/konsiyer/dashboard/internal/pkg/retry"
)

// FallbackCurrency is reported when a snapshot carries no checkout events.
const FallbackCurrency = "USD"

// Page describes one slice of a paginated collection. Pages are 1-indexed;
// an empty collection yields a single empty page rather than an error.
type Page[T any] struct {
	Items      []T
	PageNumber int
	TotalPages int
	TotalItems int
	StartIndex int
	EndIndex   int
}

// Paginate slices items into 1-indexed pages, clamping pageNumber into
// [1, totalPages]. TotalPages is floored at 1 so an empty collection still
// produces a well-formed empty first page.
func Paginate[T any](items []T, pageNumber, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = 10
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > totalPages {
		pageNumber = totalPages
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		PageNumber: pageNumber,
		TotalPages: totalPages,
		TotalItems: len(items),
		StartIndex: start,
		EndIndex:   end,
	}
}

// TotalAttributedSales sums checkout totals over all events, in major units.
// Sums run in minor units and convert once at the end, so amounts that are
// exact in cents stay exact. A nil snapshot yields 0.
func TotalAttributedSales(snapshot *model.StatsSnapshot) float64 {
	if snapshot == nil {
		return 0
	}
	var totalMinor int64
	for _, e := range snapshot.Events {
		if e.Checkout != nil {
			totalMinor += e.Checkout.TotalAmountMinorUnits
		}
	}
	return float64(totalMinor) / 100
}

// PrimaryCurrency returns the currency of the first checkout event, falling
// back to FallbackCurrency when the snapshot has none.
func PrimaryCurrency(snapshot *model.StatsSnapshot) string {
	if snapshot == nil {
		return FallbackCurrency
	}
	for _, e := range snapshot.Events {
		if e.Checkout != nil && e.Checkout.Currency != "" {
			return e.Checkout.Currency
		}
	}
	return FallbackCurrency
}

// TotalByStatus sums invoice amounts per effective status. Overdue is derived
// from the due date before grouping, so a pending invoice past due counts as
// overdue, not pending.
func TotalByStatus(invoices []model.Invoice, now time.Time) map[model.InvoiceStatus]float64 {
	totals := make(map[model.InvoiceStatus]float64, 3)
	for i := range invoices {
		totals[invoices[i].EffectiveStatus(now)] += invoices[i].Amount
	}
	return totals
}

// StatsUseCase fetches affiliate stats snapshots, caching per shop.
type StatsUseCase struct {
	client affiliate.Client
	cache  *cache.SnapshotCache
	policy *retry.Policy
	logger *slog.Logger
}

// NewStatsUseCase constructs StatsUseCase.
func NewStatsUseCase(client affiliate.Client, snapshots *cache.SnapshotCache, policy *retry.Policy, logger *slog.Logger) *StatsUseCase {
	return &StatsUseCase{client: client, cache: snapshots, policy: policy, logger: logger}
}

// Refresh fetches a fresh snapshot, replacing any cached one wholesale.
// Network failures are retried; a missing token or an unparseable body
// fails immediately.
func (u *StatsUseCase) Refresh(ctx context.Context, idToken, shopDomain string) (*model.StatsSnapshot, error) {
	snapshot, err := retry.Do(ctx, u.policy, func(ctx context.Context) (*model.StatsSnapshot, error) {
		s, err := u.client.FetchStats(ctx, idToken)
		if err != nil {
			var malformed *domainErrors.MalformedResponseError
			if errors.Is(err, domainErrors.ErrAuthRequired) || errors.As(err, &malformed) {
				return nil, retry.Permanent(err)
			}
			return nil, err
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}

	if shopDomain == "" {
		shopDomain = snapshot.ShopName
	}
	if shopDomain != "" {
		if cerr := u.cache.SetSnapshot(ctx, shopDomain, snapshot); cerr != nil {
			u.logger.Warn("failed to cache stats snapshot",
				slog.String("shop", shopDomain),
				slog.String("error", cerr.Error()),
			)
		}
	}

	return snapshot, nil
}

// Snapshot returns the cached snapshot for shopDomain, fetching on a miss.
func (u *StatsUseCase) Snapshot(ctx context.Context, idToken, shopDomain string) (*model.StatsSnapshot, error) {
	if shopDomain != "" {
		cached, err := u.cache.GetSnapshot(ctx, shopDomain)
		if err == nil && cached != nil {
			return cached, nil
		}
	}
	return u.Refresh(ctx, idToken, shopDomain)
}

// Orders returns one page of checkout events from the snapshot, newest
// first. The upstream feed carries events in arrival order with no time
// guarantee, so the slice is sorted by timestamp before paginating.
func (u *StatsUseCase) Orders(ctx context.Context, idToken, shopDomain string, pageNumber, pageSize int) (Page[model.OrderEvent], *model.StatsSnapshot, error) {
	snapshot, err := u.Snapshot(ctx, idToken, shopDomain)
	if err != nil {
		return Page[model.OrderEvent]{}, nil, err
	}

	events := snapshot.CheckoutEvents()
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	return Paginate(events, pageNumber, pageSize), snapshot, nil
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/konsiyer/dashboard/internal/adapter/status"
	"github.com/konsiyer/dashboard/internal/cache"
	domainErrors "github.com/konsiyer/dashboard/internal/domain/errors"
	"github.com/konsiyer/dashboard/internal/domain/model"
	"github.com/konsiyer/dashboard/internal/domain/repository"
	"github.com/konsiyer/dashboard/internal/pkg/retry"
	"github.com/konsiyer/dashboard/internal/poller"
)

// SyncUseCase drives shop connections and catalog sync status queries.
type SyncUseCase struct {
	client status.Client
	shops  repository.ShopRepository
	cache  *cache.SnapshotCache
	policy *retry.Policy
	logger *slog.Logger
	now    func() time.Time
}

// NewSyncUseCase constructs SyncUseCase.
func NewSyncUseCase(client status.Client, shops repository.ShopRepository, statuses *cache.SnapshotCache, policy *retry.Policy, logger *slog.Logger) *SyncUseCase {
	return &SyncUseCase{
		client: client,
		shops:  shops,
		cache:  statuses,
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
}

// FetchStatus queries the processing status of one shop, retrying network
// failures. Malformed upstream payloads surface immediately; a 404 comes back
// as a no-data report, not an error.
func (u *SyncUseCase) FetchStatus(ctx context.Context, shopDomain string) (*model.StatusReport, error) {
	report, err := retry.Do(ctx, u.policy, func(ctx context.Context) (*model.StatusReport, error) {
		r, err := u.client.FetchProcessingStatus(ctx, shopDomain)
		if err != nil {
			var malformed *domainErrors.MalformedResponseError
			if errors.As(err, &malformed) {
				return nil, retry.Permanent(err)
			}
			return nil, err
		}
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	if cerr := u.cache.SetStatus(ctx, shopDomain, report); cerr != nil {
		u.logger.Warn("failed to cache sync status",
			slog.String("shop", shopDomain),
			slog.String("error", cerr.Error()),
		)
	}

	return report, nil
}

// CachedStatus returns the last cached report without hitting upstream, or
// nil when nothing is cached.
func (u *SyncUseCase) CachedStatus(ctx context.Context, shopDomain string) (*model.StatusReport, error) {
	return u.cache.GetStatus(ctx, shopDomain)
}

// WatchStatus polls the shop's processing status until it leaves the
// processing state, forwarding each report to onUpdate. Every tick goes
// through FetchStatus, so the status cache stays warm for concurrent
// dashboard reads while a sync run is in flight.
func (u *SyncUseCase) WatchStatus(ctx context.Context, shopDomain string, onUpdate poller.UpdateFunc, interval time.Duration) *poller.Session {
	return poller.Start(ctx, func(ctx context.Context) (*model.StatusReport, error) {
		return u.FetchStatus(ctx, shopDomain)
	}, onUpdate, interval)
}

// RoutingDecision tells the frontend where to send a merchant after login.
type RoutingDecision struct {
	HasSynced bool
	Route     string
}

// Routing decides between onboarding and the dashboard based on whether the
// shop ever completed a sync.
func (u *SyncUseCase) Routing(ctx context.Context, shopDomain string) (*RoutingDecision, error) {
	hasSynced, err := retry.Do(ctx, u.policy, func(ctx context.Context) (bool, error) {
		synced, err := u.client.FetchSyncState(ctx, shopDomain)
		if err != nil {
			var malformed *domainErrors.MalformedResponseError
			if errors.As(err, &malformed) {
				return false, retry.Permanent(err)
			}
			return false, err
		}
		return synced, nil
	})
	if err != nil {
		return nil, err
	}

	route := "/onboarding"
	if hasSynced {
		route = "/dashboard"
	}
	return &RoutingDecision{HasSynced: hasSynced, Route: route}, nil
}

// StartSync triggers catalog processing for a verified shop and invalidates
// any stale cached status so the next poll sees fresh state.
func (u *SyncUseCase) StartSync(ctx context.Context, shopDomain, idToken string) error {
	shop, err := u.shops.GetByDomain(ctx, shopDomain)
	if err != nil {
		return err
	}
	if !shop.Verified {
		return domainErrors.ErrShopNotVerified
	}

	if err := u.client.StartProcessing(ctx, shopDomain, idToken); err != nil {
		return err
	}

	if cerr := u.cache.Invalidate(ctx, shopDomain); cerr != nil {
		u.logger.Warn("failed to invalidate status cache after sync start",
			slog.String("shop", shopDomain),
			slog.String("error", cerr.Error()),
		)
	}

	return nil
}

// ConnectShop finalizes a shop connection idempotently: the connection is
// upserted and the stored record re-queried, so repeating the callback (a
// refreshed page, a replayed redirect) converges on the same verified shop
// instead of failing on a consumed one-time state token.
func (u *SyncUseCase) ConnectShop(ctx context.Context, domain string, platform model.ShopPlatform) (*model.Shop, error) {
	upserted, err := u.shops.Upsert(ctx, model.Shop{
		Domain:      domain,
		Platform:    platform,
		Verified:    true,
		ConnectedAt: u.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	stored, err := u.shops.GetByDomain(ctx, upserted.Domain)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// ListShops returns every verified shop connection.
func (u *SyncUseCase) ListShops(ctx context.Context) ([]model.Shop, error) {
	return u.shops.ListVerified(ctx)
}

// MarkSynced records a completed sync time on the shop.
func (u *SyncUseCase) MarkSynced(ctx context.Context, shopDomain string, syncedAt time.Time) error {
	return u.shops.TouchLastSynced(ctx, shopDomain, syncedAt)
}

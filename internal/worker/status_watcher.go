package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/konsiyer/dashboard/internal/domain/model"
)

// SyncFacade exposes the subset of application functionality required by the watcher.
type SyncFacade interface {
	ShopsForPolling(ctx context.Context, limit int) ([]model.Shop, error)
	CheckSyncStatus(ctx context.Context, shopDomain string) (*model.StatusReport, error)
	RecordSyncCompleted(ctx context.Context, shopDomain string, completedAt time.Time) error
}

// StatusWatcher polls the sync pipeline for every verified shop and records
// completions, keeping the status cache warm for dashboard reads.
type StatusWatcher struct {
	facade       SyncFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Shop
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewStatusWatcher constructs the status watcher worker pool.
func NewStatusWatcher(facade SyncFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *StatusWatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &StatusWatcher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Shop, batchSize*workers),
	}
}

// Start launches background polling.
func (w *StatusWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.worker(runCtx)
	}

	w.wg.Add(1)
	go w.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (w *StatusWatcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *StatusWatcher) dispatch(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.jobs)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.fetchAndDispatch(ctx)
		}
	}
}

func (w *StatusWatcher) fetchAndDispatch(ctx context.Context) {
	shops, err := w.facade.ShopsForPolling(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("fetch shops for polling failed", slog.String("error", err.Error()))
		return
	}
	for _, shop := range shops {
		select {
		case <-ctx.Done():
			return
		case w.jobs <- shop:
		}
	}
}

func (w *StatusWatcher) worker(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case shop, ok := <-w.jobs:
			if !ok {
				return
			}
			w.handleShop(ctx, shop)
		}
	}
}

func (w *StatusWatcher) handleShop(ctx context.Context, shop model.Shop) {
	report, err := w.facade.CheckSyncStatus(ctx, shop.Domain)
	if err != nil {
		w.logger.Error("sync status fetch failed",
			slog.String("shop", shop.Domain),
			slog.String("error", err.Error()),
		)
		return
	}

	if report.NoData || report.Status == nil {
		return
	}

	if report.Status.Kind == model.StatusCompleted {
		completedAt := completionTime(report.Status)
		if err := w.facade.RecordSyncCompleted(ctx, shop.Domain, completedAt); err != nil {
			w.logger.Error("record sync completion failed",
				slog.String("shop", shop.Domain),
				slog.String("error", err.Error()),
			)
		}
	}
}

// completionTime prefers the upstream completion timestamp, falling back to
// the observation time when the summary omits or mangles it.
func completionTime(status *model.SyncStatus) time.Time {
	if status.Summary != nil && status.Summary.CompletedAt != "" {
		if t, err := time.Parse(time.RFC3339, status.Summary.CompletedAt); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

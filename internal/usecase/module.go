package usecase

import (
	"go.uber.org/fx"

	"github.com/konsiyer/dashboard/internal/config"
	"github.com/konsiyer/dashboard/internal/pkg/retry"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newRetryPolicy,
	NewStatsUseCase,
	NewInvoiceUseCase,
	NewSyncUseCase,
)

func newRetryPolicy(cfg *config.Config) *retry.Policy {
	return retry.NewPolicy(cfg.RetryMaxAttempts)
}

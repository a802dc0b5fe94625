package repository

import (
	"context"
	"time"

	"github.com/konsiyer/dashboard/internal/domain/model"
)

// ShopRepository describes persistence operations with shop connections.
type ShopRepository interface {
	ListVerified(ctx context.Context) ([]model.Shop, error)
	GetByDomain(ctx context.Context, domain string) (*model.Shop, error)
	Upsert(ctx context.Context, shop model.Shop) (*model.Shop, error)
	TouchLastSynced(ctx context.Context, domain string, syncedAt time.Time) error
}

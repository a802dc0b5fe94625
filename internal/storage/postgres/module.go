package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/konsiyer/dashboard/internal/config"
	"github.com/konsiyer/dashboard/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.InvoiceRepository { return s.Invoices() },
		func(s *Storage) repository.ShopRepository { return s.Shops() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	storage, err := New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	if p.Config.SeedDemoData {
		if err := storage.SeedDemoData(p.Ctx); err != nil {
			storage.Close()
			return nil, err
		}
	}
	return storage, nil
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}

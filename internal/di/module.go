package di

import (
	"github.com/konsiyer/dashboard/internal/adapter/affiliate"
	"github.com/konsiyer/dashboard/internal/adapter/status"
	"github.com/konsiyer/dashboard/internal/app"
	"github.com/konsiyer/dashboard/internal/cache"
	"github.com/konsiyer/dashboard/internal/config"
	"github.com/konsiyer/dashboard/internal/logger"
	"github.com/konsiyer/dashboard/internal/server/http/handlers"
	"github.com/konsiyer/dashboard/internal/server/http/router"
	"github.com/konsiyer/dashboard/internal/storage/postgres"
	"github.com/konsiyer/dashboard/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		cache.Module,
		postgres.Module,
		status.Module,
		affiliate.Module,
		usecase.Module,
		fx.Provide(func(f *app.DashboardFacade) handlers.DashboardFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/konsiyer/dashboard/internal/server/http/handlers"
	"github.com/konsiyer/dashboard/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.DashboardFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.BearerToken())

	invoiceHandler := handlers.NewInvoiceHandler(facade)
	dashboardHandler := handlers.NewDashboardHandler(facade)
	shopHandler := handlers.NewShopHandler(facade)

	api := engine.Group("/api")

	// Invoice data is local; no identity token needed.
	api.GET("/invoices", invoiceHandler.List)
	api.GET("/invoices/:id", invoiceHandler.Detail)
	api.POST("/invoices/:id/pay", invoiceHandler.Pay)

	api.GET("/shops", shopHandler.List)
	api.POST("/shops", shopHandler.Connect)
	api.GET("/shops/:domain/sync", shopHandler.SyncStatus)
	api.GET("/shops/:domain/routing", shopHandler.Routing)

	// Stats and sync triggers call authenticated cloud endpoints.
	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	authed.GET("/dashboard/summary", dashboardHandler.Summary)
	authed.GET("/orders", dashboardHandler.Orders)
	authed.POST("/stats/refresh", dashboardHandler.Refresh)
	authed.POST("/shops/:domain/sync/start", shopHandler.StartSync)

	return engine
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/konsiyer/dashboard/internal/domain/errors"
	"github.com/konsiyer/dashboard/internal/server/http/dto"
)

// DashboardHandler serves the KPI summary and attributed order endpoints.
type DashboardHandler struct {
	facade StatsFacade
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(facade StatsFacade) *DashboardHandler {
	return &DashboardHandler{facade: facade}
}

// Summary handles GET /api/dashboard/summary.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.facade.Summary(c.Request.Context(), CurrentIDToken(c), c.Query("shop"))
	if err != nil {
		abortWithUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{
		TotalAttributedSales: summary.TotalAttributedSales,
		Currency:             summary.Currency,
		TotalOrders:          summary.TotalOrders,
		AverageOrderValue:    summary.AverageOrderValue,
		PendingAmount:        summary.PendingAmount,
		OverdueAmount:        summary.OverdueAmount,
		PaidAmount:           summary.PaidAmount,
	})
}

// Orders handles GET /api/orders.
func (h *DashboardHandler) Orders(c *gin.Context) {
	pageNumber, pageSize := pageParams(c)
	page, snapshot, err := h.facade.OrdersPage(c.Request.Context(), CurrentIDToken(c), c.Query("shop"), pageNumber, pageSize)
	if err != nil {
		abortWithUpstreamError(c, err)
		return
	}

	resp := dto.OrderListResponse{
		Orders: make([]dto.OrderResponse, 0, len(page.Items)),
		Pagination: dto.PaginationResponse{
			Page:       page.PageNumber,
			TotalPages: page.TotalPages,
			TotalItems: page.TotalItems,
		},
		FetchedAt: snapshot.FetchedAt,
	}
	for _, event := range page.Items {
		resp.Orders = append(resp.Orders, dto.OrderResponse{
			EventID:   event.EventID,
			OrderID:   event.Checkout.OrderID,
			Timestamp: event.Timestamp,
			Amount:    event.Checkout.AmountMajorUnits(),
			Currency:  event.Checkout.Currency,
			ItemCount: event.Checkout.ItemCount,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /api/stats/refresh.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	snapshot, err := h.facade.RefreshStats(c.Request.Context(), CurrentIDToken(c), c.Query("shop"))
	if err != nil {
		abortWithUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshStatsResponse{
		ShopName:   snapshot.ShopName,
		EventCount: len(snapshot.Events),
		FetchedAt:  snapshot.FetchedAt,
	})
}

// abortWithUpstreamError maps stats and sync failures onto HTTP statuses.
func abortWithUpstreamError(c *gin.Context, err error) {
	var netErr *domainErrors.NetworkError
	var malformed *domainErrors.MalformedResponseError
	switch {
	case errors.Is(err, domainErrors.ErrAuthRequired):
		c.Status(http.StatusUnauthorized)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.As(err, &netErr), errors.As(err, &malformed):
		c.Status(http.StatusBadGateway)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

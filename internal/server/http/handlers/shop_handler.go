package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/konsiyer/dashboard/internal/domain/errors"
	"github.com/konsiyer/dashboard/internal/domain/model"
	"github.com/konsiyer/dashboard/internal/server/http/dto"
)

// ShopHandler manages shop connections and sync control endpoints.
type ShopHandler struct {
	facade ShopFacade
}

// NewShopHandler constructs ShopHandler.
func NewShopHandler(facade ShopFacade) *ShopHandler {
	return &ShopHandler{facade: facade}
}

// List handles GET /api/shops.
func (h *ShopHandler) List(c *gin.Context) {
	shops, err := h.facade.Shops(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.ShopResponse, 0, len(shops))
	for _, shop := range shops {
		resp = append(resp, shopResponse(&shop))
	}
	c.JSON(http.StatusOK, resp)
}

// Connect handles POST /api/shops. The endpoint is idempotent: replaying a
// connection callback converges on the stored shop.
func (h *ShopHandler) Connect(c *gin.Context) {
	var req dto.ConnectShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	platform, ok := parsePlatform(req.Platform)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	shop, err := h.facade.ConnectShop(c.Request.Context(), req.Domain, platform)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, shopResponse(shop))
}

// SyncStatus handles GET /api/shops/:domain/sync.
func (h *ShopHandler) SyncStatus(c *gin.Context) {
	report, err := h.facade.SyncStatus(c.Request.Context(), c.Param("domain"))
	if err != nil {
		abortWithUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, syncStatusResponse(report))
}

// StartSync handles POST /api/shops/:domain/sync/start.
func (h *ShopHandler) StartSync(c *gin.Context) {
	err := h.facade.StartSync(c.Request.Context(), c.Param("domain"), CurrentIDToken(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrShopNotVerified):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrAuthRequired):
			c.Status(http.StatusUnauthorized)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			abortWithUpstreamError(c, err)
		}
		return
	}
	c.Status(http.StatusAccepted)
}

// Routing handles GET /api/shops/:domain/routing.
func (h *ShopHandler) Routing(c *gin.Context) {
	decision, err := h.facade.Routing(c.Request.Context(), c.Param("domain"))
	if err != nil {
		abortWithUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RoutingResponse{HasSynced: decision.HasSynced, Route: decision.Route})
}

func parsePlatform(raw string) (model.ShopPlatform, bool) {
	switch model.ShopPlatform(raw) {
	case model.PlatformShopify:
		return model.PlatformShopify, true
	case model.PlatformIkas:
		return model.PlatformIkas, true
	case model.PlatformXML:
		return model.PlatformXML, true
	}
	return "", false
}

func shopResponse(shop *model.Shop) dto.ShopResponse {
	return dto.ShopResponse{
		Domain:       shop.Domain,
		Platform:     string(shop.Platform),
		Verified:     shop.Verified,
		ConnectedAt:  shop.ConnectedAt,
		LastSyncedAt: shop.LastSyncedAt,
	}
}

func syncStatusResponse(report *model.StatusReport) dto.SyncStatusResponse {
	if report.NoData || report.Status == nil {
		descriptor := model.DescribeStatus(model.StatusUnknown)
		return dto.SyncStatusResponse{
			NoData:   true,
			Label:    descriptor.LabelKey,
			Severity: string(descriptor.Severity),
		}
	}

	status := report.Status
	descriptor := model.DescribeStatus(status.Kind)
	resp := dto.SyncStatusResponse{
		Status:   string(status.Kind),
		Stage:    status.Stage,
		Progress: status.Progress,
		Error:    status.ErrorMessage,
		Label:    descriptor.LabelKey,
		Severity: string(descriptor.Severity),
	}
	for _, step := range status.Steps {
		resp.Steps = append(resp.Steps, dto.StepResponse{
			Name:     step.Name,
			Status:   string(step.Status),
			Progress: step.Progress,
		})
	}
	if status.Summary != nil {
		resp.Summary = &dto.SummaryCounters{
			TotalProductsFetched:   status.Summary.TotalProductsFetched,
			TotalProductsProcessed: status.Summary.TotalProductsProcessed,
			PublishableProducts:    status.Summary.PublishableProducts,
			NonApparelCount:        status.Summary.NonApparelCount,
			CompletedAt:            status.Summary.CompletedAt,
		}
	}
	return resp
}

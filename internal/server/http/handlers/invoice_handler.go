package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/konsiyer/dashboard/internal/domain/errors"
	"github.com/konsiyer/dashboard/internal/domain/model"
	"github.com/konsiyer/dashboard/internal/server/http/dto"
	"github.com/konsiyer/dashboard/internal/usecase"
)

// InvoiceHandler manages invoice endpoints.
type InvoiceHandler struct {
	facade InvoiceFacade
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(facade InvoiceFacade) *InvoiceHandler {
	return &InvoiceHandler{facade: facade}
}

// List handles GET /api/invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	filter := usecase.InvoiceFilter{}
	filter.PageNumber, filter.PageSize = pageParams(c)

	if raw := c.Query("status"); raw != "" {
		status, ok := usecase.ParseInvoiceStatus(raw)
		if !ok {
			c.Status(http.StatusBadRequest)
			return
		}
		filter.Status = status
	}

	page, totals, err := h.facade.Invoices(c.Request.Context(), filter)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := dto.InvoiceListResponse{
		Invoices: make([]dto.InvoiceResponse, 0, len(page.Items)),
		Pagination: dto.PaginationResponse{
			Page:       page.PageNumber,
			TotalPages: page.TotalPages,
			TotalItems: page.TotalItems,
		},
		Totals: make(map[string]float64, len(totals)),
	}
	for i := range page.Items {
		resp.Invoices = append(resp.Invoices, invoiceResponse(&page.Items[i], false))
	}
	for status, total := range totals {
		resp.Totals[string(status)] = total
	}

	c.JSON(http.StatusOK, resp)
}

// Detail handles GET /api/invoices/:id.
func (h *InvoiceHandler) Detail(c *gin.Context) {
	invoice, err := h.facade.Invoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse(invoice, true))
}

// Pay handles POST /api/invoices/:id/pay.
func (h *InvoiceHandler) Pay(c *gin.Context) {
	invoice, err := h.facade.PayInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvoiceNotPending):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, invoiceResponse(invoice, true))
}

func invoiceResponse(invoice *model.Invoice, withLineItems bool) dto.InvoiceResponse {
	resp := dto.InvoiceResponse{
		ID:          invoice.ID,
		Number:      invoice.Number,
		IssueDate:   invoice.IssueDate,
		DueDate:     invoice.DueDate,
		PaidDate:    invoice.PaidDate,
		Amount:      invoice.Amount,
		Currency:    invoice.Currency,
		Status:      string(invoice.Status),
		Shop:        invoice.Shop,
		Description: invoice.Description,
	}
	if withLineItems {
		resp.LineItems = make([]dto.LineItemResponse, 0, len(invoice.LineItems))
		for _, item := range invoice.LineItems {
			resp.LineItems = append(resp.LineItems, dto.LineItemResponse{
				ID:          item.ID,
				Description: item.Description,
				Quantity:    item.Quantity,
				Rate:        item.Rate,
				Amount:      item.Amount,
			})
		}
	}
	return resp
}

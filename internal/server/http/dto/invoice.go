package dto

import "time"

// LineItemResponse is one billed position on an invoice.
type LineItemResponse struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// InvoiceResponse represents an invoice in list and detail views. Status is
// the effective display status, so overdue shows as "overdue" even though it
// is never stored.
type InvoiceResponse struct {
	ID          string             `json:"id"`
	Number      string             `json:"number"`
	IssueDate   time.Time          `json:"date"`
	DueDate     time.Time          `json:"dueDate"`
	PaidDate    *time.Time         `json:"paidDate,omitempty"`
	Amount      float64            `json:"amount"`
	Currency    string             `json:"currency"`
	Status      string             `json:"status"`
	Shop        string             `json:"shop"`
	Description string             `json:"description,omitempty"`
	LineItems   []LineItemResponse `json:"lineItems,omitempty"`
}

// InvoiceListResponse carries one invoice page plus per-status totals.
type InvoiceListResponse struct {
	Invoices   []InvoiceResponse  `json:"invoices"`
	Pagination PaginationResponse `json:"pagination"`
	Totals     map[string]float64 `json:"totals"`
}

// PaginationResponse describes the slice returned by a paginated endpoint.
type PaginationResponse struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

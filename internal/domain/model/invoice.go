package model

import "time"

// InvoiceStatus describes the stored payment state of an invoice. Overdue is
// never stored; it is derived from the due date at display time.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// LineItem is one billed position on an invoice.
type LineItem struct {
	ID          int64
	Description string
	Quantity    int
	Rate        float64
	Amount      float64
}

// Invoice is a commission invoice issued to a merchant. Amount is a stored
// fact alongside the line items; LineItemsTotal exposes the derived sum for
// detail views.
type Invoice struct {
	ID          string
	Number      string
	IssueDate   time.Time
	DueDate     time.Time
	PaidDate    *time.Time
	Amount      float64
	Currency    string
	Status      InvoiceStatus
	Shop        string
	Description string
	LineItems   []LineItem
}

// EffectiveStatus returns the display status: a pending invoice past its due
// date reads as overdue.
func (i *Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if i.Status == InvoiceStatusPending && i.DueDate.Before(now) {
		return InvoiceStatusOverdue
	}
	return i.Status
}

// LineItemsTotal sums the line item amounts.
func (i *Invoice) LineItemsTotal() float64 {
	var total float64
	for _, item := range i.LineItems {
		total += item.Amount
	}
	return total
}

package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/konsiyer/dashboard/internal/domain/errors"
	"github.com/konsiyer/dashboard/internal/domain/model"
	"github.com/konsiyer/dashboard/internal/domain/repository"
)

// InvoiceUseCase encapsulates invoice listing and payment logic.
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
	now      func() time.Time
}

// NewInvoiceUseCase constructs InvoiceUseCase.
func NewInvoiceUseCase(invoices repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, now: time.Now}
}

// InvoiceFilter narrows List results. An empty Status matches everything;
// filtering runs against the effective (due-date derived) status.
type InvoiceFilter struct {
	Status     model.InvoiceStatus
	PageNumber int
	PageSize   int
}

// List returns one page of invoices with the overdue status derived. Invoices
// come back in repository order (issue date, newest first).
func (u *InvoiceUseCase) List(ctx context.Context, filter InvoiceFilter) (Page[model.Invoice], map[model.InvoiceStatus]float64, error) {
	all, err := u.invoices.List(ctx)
	if err != nil {
		return Page[model.Invoice]{}, nil, err
	}

	now := u.now().UTC()
	for i := range all {
		all[i].Status = all[i].EffectiveStatus(now)
	}

	totals := TotalByStatus(all, now)

	filtered := all
	if filter.Status != "" {
		filtered = make([]model.Invoice, 0, len(all))
		for i := range all {
			if all[i].Status == filter.Status {
				filtered = append(filtered, all[i])
			}
		}
	}

	return Paginate(filtered, filter.PageNumber, filter.PageSize), totals, nil
}

// Get returns one invoice with its line items and derived status.
func (u *InvoiceUseCase) Get(ctx context.Context, id string) (*model.Invoice, error) {
	invoice, err := u.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.Status = invoice.EffectiveStatus(u.now().UTC())
	return invoice, nil
}

// Pay marks a pending (or overdue) invoice as paid. Paid invoices reject a
// second payment.
func (u *InvoiceUseCase) Pay(ctx context.Context, id string) (*model.Invoice, error) {
	invoice, err := u.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != model.InvoiceStatusPending {
		return nil, domainErrors.ErrInvoiceNotPending
	}

	paid, err := u.invoices.MarkPaid(ctx, id, u.now().UTC())
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// ParseInvoiceStatus validates a status filter value from a request.
func ParseInvoiceStatus(raw string) (model.InvoiceStatus, bool) {
	switch model.InvoiceStatus(strings.ToLower(raw)) {
	case model.InvoiceStatusPending:
		return model.InvoiceStatusPending, true
	case model.InvoiceStatusPaid:
		return model.InvoiceStatusPaid, true
	case model.InvoiceStatusOverdue:
		return model.InvoiceStatusOverdue, true
	}
	return "", false
}

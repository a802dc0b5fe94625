package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/konsiyer/dashboard/internal/domain/errors"
	"github.com/konsiyer/dashboard/internal/domain/model"
)

type stubInvoiceRepository struct {
	listFn     func(context.Context) ([]model.Invoice, error)
	getFn      func(context.Context, string) (*model.Invoice, error)
	markPaidFn func(context.Context, string, time.Time) (*model.Invoice, error)
}

func (s stubInvoiceRepository) List(ctx context.Context) ([]model.Invoice, error) {
	return s.listFn(ctx)
}

func (s stubInvoiceRepository) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	return s.getFn(ctx, id)
}

func (s stubInvoiceRepository) MarkPaid(ctx context.Context, id string, paidDate time.Time) (*model.Invoice, error) {
	return s.markPaidFn(ctx, id, paidDate)
}

func (stubInvoiceRepository) Seed(context.Context, []model.Invoice) error {
	panic("not implemented")
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestInvoiceListDerivesOverdueAndFilters(t *testing.T) {
	now := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	stored := []model.Invoice{
		{ID: "inv-1", Amount: 100, Status: model.InvoiceStatusPending, DueDate: now.AddDate(0, 0, 10)},
		{ID: "inv-2", Amount: 50, Status: model.InvoiceStatusPending, DueDate: now.AddDate(0, 0, -3)},
		{ID: "inv-3", Amount: 75, Status: model.InvoiceStatusPaid, DueDate: now.AddDate(0, 0, -20)},
	}

	uc := NewInvoiceUseCase(stubInvoiceRepository{listFn: func(context.Context) ([]model.Invoice, error) {
		out := make([]model.Invoice, len(stored))
		copy(out, stored)
		return out, nil
	}})
	uc.now = fixedClock(now)

	page, totals, err := uc.List(context.Background(), InvoiceFilter{PageNumber: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 invoices, got %d", len(page.Items))
	}
	if page.Items[1].Status != model.InvoiceStatusOverdue {
		t.Fatalf("expected second invoice derived overdue, got %s", page.Items[1].Status)
	}
	if totals[model.InvoiceStatusOverdue] != 50 {
		t.Fatalf("expected overdue total 50, got %v", totals[model.InvoiceStatusOverdue])
	}

	page, _, err = uc.List(context.Background(), InvoiceFilter{Status: model.InvoiceStatusOverdue, PageNumber: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "inv-2" {
		t.Fatalf("expected only the overdue invoice, got %+v", page.Items)
	}
}

func TestInvoiceGetDerivesStatus(t *testing.T) {
	now := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	uc := NewInvoiceUseCase(stubInvoiceRepository{getFn: func(_ context.Context, id string) (*model.Invoice, error) {
		if id != "inv-2" {
			t.Fatalf("unexpected id %s", id)
		}
		return &model.Invoice{ID: "inv-2", Status: model.InvoiceStatusPending, DueDate: now.AddDate(0, 0, -1)}, nil
	}})
	uc.now = fixedClock(now)

	invoice, err := uc.Get(context.Background(), "inv-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.Status != model.InvoiceStatusOverdue {
		t.Fatalf("expected overdue, got %s", invoice.Status)
	}
}

func TestInvoicePayRejectsPaidInvoice(t *testing.T) {
	uc := NewInvoiceUseCase(stubInvoiceRepository{
		getFn: func(context.Context, string) (*model.Invoice, error) {
			return &model.Invoice{ID: "inv-3", Status: model.InvoiceStatusPaid}, nil
		},
		markPaidFn: func(context.Context, string, time.Time) (*model.Invoice, error) {
			t.Fatal("mark paid should not be called for a paid invoice")
			return nil, nil
		},
	})

	if _, err := uc.Pay(context.Background(), "inv-3"); !errors.Is(err, domainErrors.ErrInvoiceNotPending) {
		t.Fatalf("expected ErrInvoiceNotPending, got %v", err)
	}
}

func TestInvoicePaySuccess(t *testing.T) {
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	uc := NewInvoiceUseCase(stubInvoiceRepository{
		getFn: func(context.Context, string) (*model.Invoice, error) {
			return &model.Invoice{ID: "inv-1", Status: model.InvoiceStatusPending, DueDate: now.AddDate(0, 0, 5)}, nil
		},
		markPaidFn: func(_ context.Context, id string, paidDate time.Time) (*model.Invoice, error) {
			if id != "inv-1" || !paidDate.Equal(now) {
				t.Fatalf("unexpected arguments: %s %v", id, paidDate)
			}
			return &model.Invoice{ID: "inv-1", Status: model.InvoiceStatusPaid, PaidDate: &paidDate}, nil
		},
	})
	uc.now = fixedClock(now)

	paid, err := uc.Pay(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid.Status != model.InvoiceStatusPaid || paid.PaidDate == nil {
		t.Fatalf("expected paid invoice, got %+v", paid)
	}
}

func TestParseInvoiceStatus(t *testing.T) {
	if status, ok := ParseInvoiceStatus("Pending"); !ok || status != model.InvoiceStatusPending {
		t.Fatalf("expected pending, got %s/%v", status, ok)
	}
	if _, ok := ParseInvoiceStatus("cancelled"); ok {
		t.Fatal("expected unknown status to be rejected")
	}
}

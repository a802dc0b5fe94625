package repository

import (
	"context"
	"time"

	"github.com/konsiyer/dashboard/internal/domain/model"
)

// InvoiceRepository describes persistence operations with invoices.
type InvoiceRepository interface {
	List(ctx context.Context) ([]model.Invoice, error)
	GetByID(ctx context.Context, id string) (*model.Invoice, error)
	MarkPaid(ctx context.Context, id string, paidDate time.Time) (*model.Invoice, error)
	Seed(ctx context.Context, invoices []model.Invoice) error
}

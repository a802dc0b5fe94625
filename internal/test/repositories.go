package test

import (
	"context"
	"time"

	domainErrors "github.com/konsiyer/dashboard/internal/domain/errors"
	"github.com/konsiyer/dashboard/internal/domain/model"
)

// InvoiceRepositoryStub stores invoices in-memory for tests.
type InvoiceRepositoryStub struct {
	ListFn     func(context.Context) ([]model.Invoice, error)
	GetByIDFn  func(context.Context, string) (*model.Invoice, error)
	MarkPaidFn func(context.Context, string, time.Time) (*model.Invoice, error)
	SeedFn     func(context.Context, []model.Invoice) error

	Invoices []model.Invoice
	Seeded   []model.Invoice
}

// List returns the configured invoices.
func (s *InvoiceRepositoryStub) List(ctx context.Context) ([]model.Invoice, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	out := make([]model.Invoice, len(s.Invoices))
	copy(out, s.Invoices)
	return out, nil
}

// GetByID fetches an invoice by identifier or returns not found.
func (s *InvoiceRepositoryStub) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for i := range s.Invoices {
		if s.Invoices[i].ID == id {
			invoice := s.Invoices[i]
			return &invoice, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// MarkPaid updates a pending invoice in place.
func (s *InvoiceRepositoryStub) MarkPaid(ctx context.Context, id string, paidDate time.Time) (*model.Invoice, error) {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, id, paidDate)
	}
	for i := range s.Invoices {
		if s.Invoices[i].ID == id && s.Invoices[i].Status == model.InvoiceStatusPending {
			s.Invoices[i].Status = model.InvoiceStatusPaid
			s.Invoices[i].PaidDate = &paidDate
			invoice := s.Invoices[i]
			return &invoice, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Seed records seeded invoices.
func (s *InvoiceRepositoryStub) Seed(ctx context.Context, invoices []model.Invoice) error {
	if s.SeedFn != nil {
		return s.SeedFn(ctx, invoices)
	}
	s.Seeded = append(s.Seeded, invoices...)
	return nil
}

// ShopRepositoryStub stores shop connections in-memory for tests.
type ShopRepositoryStub struct {
	ListVerifiedFn    func(context.Context) ([]model.Shop, error)
	GetByDomainFn     func(context.Context, string) (*model.Shop, error)
	UpsertFn          func(context.Context, model.Shop) (*model.Shop, error)
	TouchLastSyncedFn func(context.Context, string, time.Time) error

	Shops map[string]*model.Shop
}

// NewShopRepositoryStub constructs a stub repository with an initialized map.
func NewShopRepositoryStub() *ShopRepositoryStub {
	return &ShopRepositoryStub{Shops: make(map[string]*model.Shop)}
}

// ListVerified returns every verified shop.
func (s *ShopRepositoryStub) ListVerified(ctx context.Context) ([]model.Shop, error) {
	if s.ListVerifiedFn != nil {
		return s.ListVerifiedFn(ctx)
	}
	var result []model.Shop
	for _, shop := range s.Shops {
		if shop.Verified {
			result = append(result, *shop)
		}
	}
	return result, nil
}

// GetByDomain fetches a shop or returns not found.
func (s *ShopRepositoryStub) GetByDomain(ctx context.Context, domain string) (*model.Shop, error) {
	if s.GetByDomainFn != nil {
		return s.GetByDomainFn(ctx, domain)
	}
	if shop, ok := s.Shops[domain]; ok {
		copied := *shop
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Upsert inserts or updates a shop connection.
func (s *ShopRepositoryStub) Upsert(ctx context.Context, shop model.Shop) (*model.Shop, error) {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, shop)
	}
	if s.Shops == nil {
		s.Shops = make(map[string]*model.Shop)
	}
	if existing, ok := s.Shops[shop.Domain]; ok {
		existing.Platform = shop.Platform
		existing.Verified = shop.Verified
		copied := *existing
		return &copied, nil
	}
	stored := shop
	s.Shops[shop.Domain] = &stored
	copied := stored
	return &copied, nil
}

// TouchLastSynced records a completed sync time.
func (s *ShopRepositoryStub) TouchLastSynced(ctx context.Context, domain string, syncedAt time.Time) error {
	if s.TouchLastSyncedFn != nil {
		return s.TouchLastSyncedFn(ctx, domain, syncedAt)
	}
	shop, ok := s.Shops[domain]
	if !ok {
		return domainErrors.ErrNotFound
	}
	shop.LastSyncedAt = &syncedAt
	return nil
}

package postgres

import (
	"context"
	"time"

	"github.com/konsiyer/dashboard/internal/domain/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// DemoInvoices returns the demo billing fixtures loaded on first start.
// Seeding is idempotent: existing rows are left untouched.
func DemoInvoices() []model.Invoice {
	return []model.Invoice{
		{
			ID:          "inv_001",
			Number:      "2025-001",
			IssueDate:   date(2025, time.October, 1),
			DueDate:     date(2025, time.October, 15),
			Amount:      1250.50,
			Currency:    "EUR",
			Status:      model.InvoiceStatusPending,
			Shop:        "TechNova",
			Description: "Affiliate commission for September",
			LineItems: []model.LineItem{
				{Description: "Product Sales Commission", Quantity: 45, Rate: 25.00, Amount: 1125.00},
				{Description: "Bonus Performance", Quantity: 1, Rate: 125.50, Amount: 125.50},
			},
		},
		{
			ID:          "inv_002",
			Number:      "2025-002",
			IssueDate:   date(2025, time.September, 15),
			DueDate:     date(2025, time.September, 30),
			PaidDate:    datePtr(2025, time.September, 28),
			Amount:      980.00,
			Currency:    "EUR",
			Status:      model.InvoiceStatusPaid,
			Shop:        "TechNova",
			Description: "Affiliate commission for August",
			LineItems: []model.LineItem{
				{Description: "Product Sales Commission", Quantity: 35, Rate: 28.00, Amount: 980.00},
			},
		},
		{
			ID:          "inv_003",
			Number:      "2025-003",
			IssueDate:   date(2025, time.September, 1),
			DueDate:     date(2025, time.September, 15),
			Amount:      2150.75,
			Currency:    "EUR",
			Status:      model.InvoiceStatusPending,
			Shop:        "TechNova",
			Description: "Q3 Performance Bonus",
			LineItems: []model.LineItem{
				{Description: "Q3 Sales Target Bonus", Quantity: 1, Rate: 2000.00, Amount: 2000.00},
				{Description: "Additional Incentive", Quantity: 1, Rate: 150.75, Amount: 150.75},
			},
		},
		{
			ID:          "inv_004",
			Number:      "2025-004",
			IssueDate:   date(2025, time.August, 15),
			DueDate:     date(2025, time.August, 30),
			PaidDate:    datePtr(2025, time.August, 29),
			Amount:      1450.00,
			Currency:    "EUR",
			Status:      model.InvoiceStatusPaid,
			Shop:        "TechNova",
			Description: "Affiliate commission for July",
			LineItems: []model.LineItem{
				{Description: "Product Sales Commission", Quantity: 50, Rate: 29.00, Amount: 1450.00},
			},
		},
		{
			ID:          "inv_005",
			Number:      "2025-005",
			IssueDate:   date(2025, time.August, 1),
			DueDate:     date(2025, time.August, 15),
			PaidDate:    datePtr(2025, time.August, 14),
			Amount:      875.25,
			Currency:    "EUR",
			Status:      model.InvoiceStatusPaid,
			Shop:        "TechNova",
			Description: "Affiliate commission for June",
			LineItems: []model.LineItem{
				{Description: "Product Sales Commission", Quantity: 30, Rate: 29.175, Amount: 875.25},
			},
		},
		{
			ID:          "inv_006",
			Number:      "2025-006",
			IssueDate:   date(2025, time.October, 5),
			DueDate:     date(2025, time.October, 20),
			Amount:      3200.00,
			Currency:    "EUR",
			Status:      model.InvoiceStatusPending,
			Shop:        "TechNova",
			Description: "Special Campaign Commission",
			LineItems: []model.LineItem{
				{Description: "October Campaign Sales", Quantity: 80, Rate: 40.00, Amount: 3200.00},
			},
		},
	}
}

// SeedDemoData loads the demo fixtures. Safe to call on every start.
func (s *Storage) SeedDemoData(ctx context.Context) error {
	return s.Invoices().Seed(ctx, DemoInvoices())
}

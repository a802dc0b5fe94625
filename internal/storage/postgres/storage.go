package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/konsiyer/dashboard/internal/domain/errors"
	"github.com/konsiyer/dashboard/internal/domain/model"
	"github.com/konsiyer/dashboard/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool the storage relies on. Keeping it as
// an interface lets tests substitute a pgxmock pool.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type invoiceRepository struct {
	storage *Storage
}

type shopRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Invoices() repository.InvoiceRepository {
	return &invoiceRepository{storage: s}
}

func (s *Storage) Shops() repository.ShopRepository {
	return &shopRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS invoices (
            id TEXT PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            issue_date TIMESTAMPTZ NOT NULL,
            due_date TIMESTAMPTZ NOT NULL,
            paid_date TIMESTAMPTZ,
            amount DOUBLE PRECISION NOT NULL,
            currency TEXT NOT NULL,
            status TEXT NOT NULL,
            shop TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS invoice_line_items (
            id SERIAL PRIMARY KEY,
            invoice_id TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
            description TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            rate DOUBLE PRECISION NOT NULL,
            amount DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS shops (
            domain TEXT PRIMARY KEY,
            platform TEXT NOT NULL,
            verified BOOLEAN NOT NULL DEFAULT FALSE,
            connected_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            last_synced_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_issue ON invoices(issue_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_line_items_invoice ON invoice_line_items(invoice_id, id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- InvoiceRepository implementation ---

const invoiceColumns = `id, number, issue_date, due_date, paid_date, amount, currency, status, shop, description`

func scanInvoice(row pgx.Row) (*model.Invoice, error) {
	var inv model.Invoice
	err := row.Scan(&inv.ID, &inv.Number, &inv.IssueDate, &inv.DueDate, &inv.PaidDate,
		&inv.Amount, &inv.Currency, &inv.Status, &inv.Shop, &inv.Description)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issue_date DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Invoice
	index := make(map[string]int)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		index[inv.ID] = len(result)
		result = append(result, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return result, nil
	}

	const itemsQuery = `SELECT invoice_id, id, description, quantity, rate, amount
                        FROM invoice_line_items ORDER BY invoice_id, id`
	itemRows, err := r.storage.pool.Query(ctx, itemsQuery)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var invoiceID string
		var item model.LineItem
		if err := itemRows.Scan(&invoiceID, &item.ID, &item.Description, &item.Quantity, &item.Rate, &item.Amount); err != nil {
			return nil, err
		}
		if i, ok := index[invoiceID]; ok {
			result[i].LineItems = append(result[i].LineItems, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id=$1`
	inv, err := scanInvoice(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.lineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.LineItems = items
	return inv, nil
}

func (r *invoiceRepository) lineItems(ctx context.Context, invoiceID string) ([]model.LineItem, error) {
	const query = `SELECT id, description, quantity, rate, amount
                   FROM invoice_line_items WHERE invoice_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.LineItem
	for rows.Next() {
		var item model.LineItem
		if err := rows.Scan(&item.ID, &item.Description, &item.Quantity, &item.Rate, &item.Amount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id string, paidDate time.Time) (*model.Invoice, error) {
	query := `UPDATE invoices SET status=$1, paid_date=$2 WHERE id=$3 AND status=$4
              RETURNING ` + invoiceColumns
	inv, err := scanInvoice(r.storage.pool.QueryRow(ctx, query, model.InvoiceStatusPaid, paidDate, id, model.InvoiceStatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either missing or already paid; the caller distinguishes via GetByID.
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.lineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.LineItems = items
	return inv, nil
}

func (r *invoiceRepository) Seed(ctx context.Context, invoices []model.Invoice) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, inv := range invoices {
			const insertInvoice = `INSERT INTO invoices
                (id, number, issue_date, due_date, paid_date, amount, currency, status, shop, description)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                ON CONFLICT (id) DO NOTHING`
			tag, err := tx.Exec(ctx, insertInvoice,
				inv.ID, inv.Number, inv.IssueDate, inv.DueDate, inv.PaidDate,
				inv.Amount, inv.Currency, inv.Status, inv.Shop, inv.Description)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				continue
			}
			for _, item := range inv.LineItems {
				const insertItem = `INSERT INTO invoice_line_items
                    (invoice_id, description, quantity, rate, amount)
                    VALUES ($1, $2, $3, $4, $5)`
				if _, err := tx.Exec(ctx, insertItem, inv.ID, item.Description, item.Quantity, item.Rate, item.Amount); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// --- ShopRepository implementation ---

const shopColumns = `domain, platform, verified, connected_at, last_synced_at`

func scanShop(row pgx.Row) (*model.Shop, error) {
	var shop model.Shop
	err := row.Scan(&shop.Domain, &shop.Platform, &shop.Verified, &shop.ConnectedAt, &shop.LastSyncedAt)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) ListVerified(ctx context.Context) ([]model.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE verified ORDER BY connected_at`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *shop)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *shopRepository) GetByDomain(ctx context.Context, domain string) (*model.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE domain=$1`
	shop, err := scanShop(r.storage.pool.QueryRow(ctx, query, domain))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return shop, nil
}

func (r *shopRepository) Upsert(ctx context.Context, shop model.Shop) (*model.Shop, error) {
	// Re-running the connection callback must converge on the stored shop,
	// so conflicts update rather than fail.
	query := `INSERT INTO shops (domain, platform, verified, connected_at)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (domain) DO UPDATE
              SET platform = EXCLUDED.platform,
                  verified = EXCLUDED.verified
              RETURNING ` + shopColumns
	stored, err := scanShop(r.storage.pool.QueryRow(ctx, query, shop.Domain, shop.Platform, shop.Verified, shop.ConnectedAt))
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *shopRepository) TouchLastSynced(ctx context.Context, domain string, syncedAt time.Time) error {
	const query = `UPDATE shops SET last_synced_at=$1 WHERE domain=$2`
	tag, err := r.storage.pool.Exec(ctx, query, syncedAt, domain)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

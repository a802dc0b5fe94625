package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Invoices() InvoiceRepository
	Shops() ShopRepository
}

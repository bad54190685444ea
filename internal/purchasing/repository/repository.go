package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories bundles all purchasing data access.
type Repositories struct {
	Request   *RequestRepository
	Order     *OrderRepository
	Invoice   *InvoiceRepository
	Vendor    *VendorRepository
	Inventory *InventoryRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Request:   NewRequestRepository(db),
		Order:     NewOrderRepository(db),
		Invoice:   NewInvoiceRepository(db),
		Vendor:    NewVendorRepository(db),
		Inventory: NewInventoryRepository(db),
	}
}

package entity

import "time"

// PurchaseInvoice is created from a processed PurchaseOrder and carries
// the order's vendor, payment method, location and totals.
type PurchaseInvoice struct {
	ID     string `json:"id" gorm:"primaryKey;size:32"`
	Number string `json:"number" gorm:"size:32;uniqueIndex;not null"` // PI-YYYYMMDD-NNNN
	Status string `json:"status" gorm:"size:20;default:draft"`

	SourceOrder   string `json:"source_order" gorm:"size:32;index"` // PO number
	Vendor        string `json:"vendor" gorm:"size:200"`
	PaymentMethod string `json:"payment_method" gorm:"size:100"`

	LocationInventory string `json:"location_inventory" gorm:"size:200"`
	InvoiceDate       string `json:"invoice_date" gorm:"size:10"`
	ShippingDate      string `json:"shipping_date" gorm:"size:10"`
	ShippingAddress   string `json:"shipping_address" gorm:"size:500"`

	Subtotal float64 `json:"subtotal" gorm:"type:decimal(15,2);default:0"`
	Tax      float64 `json:"tax" gorm:"type:decimal(15,2);default:0"`
	Freight  float64 `json:"freight" gorm:"type:decimal(15,2);default:0"`
	Total    float64 `json:"total" gorm:"type:decimal(15,2);default:0"`

	Notes       string  `json:"notes" gorm:"type:text"`
	PaymentDate *string `json:"payment_date" gorm:"size:10"` // stamped on paid

	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []PIItem `json:"items,omitempty" gorm:"foreignKey:InvoiceID"`
}

func (PurchaseInvoice) TableName() string {
	return "purchase_invoices"
}

const (
	PIStatusDraft     = "draft"
	PIStatusSubmitted = "submitted"
	PIStatusPaid      = "paid"
	PIStatusOverdue   = "overdue"
	PIStatusCancelled = "cancelled"
)

// ItemNumberNA marks an invoice line whose item has no inventory record.
const ItemNumberNA = "N/A"

// PIItem is one billed line on a PurchaseInvoice.
type PIItem struct {
	ID        string `json:"id" gorm:"primaryKey;size:32"`
	InvoiceID string `json:"invoice_id" gorm:"size:32;not null;index"`

	ItemNumber  string  `json:"item_number" gorm:"size:50"`
	Qty         float64 `json:"qty" gorm:"type:decimal(10,2);not null"`
	OrderQty    float64 `json:"order_qty" gorm:"type:decimal(10,2);default:0"`
	BackOrder   float64 `json:"back_order" gorm:"type:decimal(10,2);default:0"`
	Unit        string  `json:"unit" gorm:"size:20;default:pcs"`
	Description string  `json:"description" gorm:"size:500"`
	Price       float64 `json:"price" gorm:"type:decimal(15,2);default:0"`
	Discount    float64 `json:"discount" gorm:"type:decimal(5,2);default:0"` // percent
	TaxCode     string  `json:"tax_code" gorm:"size:10;default:PPN11"`

	TaxAmount float64 `json:"tax_amount" gorm:"type:decimal(15,2);default:0"`
	Amount    float64 `json:"amount" gorm:"type:decimal(15,2);default:0"`

	Account string `json:"account" gorm:"size:100"`
	Notes   string `json:"notes" gorm:"type:text"`

	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PIItem) TableName() string {
	return "purchase_invoice_items"
}

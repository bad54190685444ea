package entity

import "time"

// PurchaseOrder is created from an approved PurchaseRequest. Vendor and
// payment method stay blank until the buyer picks them on the draft.
type PurchaseOrder struct {
	ID     string `json:"id" gorm:"primaryKey;size:32"`
	Number string `json:"number" gorm:"size:32;uniqueIndex;not null"` // PO-YYYYMMDD-NNNN
	Status string `json:"status" gorm:"size:20;default:draft"`

	SourceRequest string  `json:"source_request" gorm:"size:32;index"` // PR number
	VendorID      *string `json:"vendor_id" gorm:"size:32"`
	Vendor        string  `json:"vendor" gorm:"size:200"`
	PaymentMethod string  `json:"payment_method" gorm:"size:100"`

	LocationInventory string `json:"location_inventory" gorm:"size:200"`
	DateOrder         string `json:"date_order" gorm:"size:10"`
	ShippingDate      string `json:"shipping_date" gorm:"size:10"`
	ShippingAddress   string `json:"shipping_address" gorm:"size:500"`

	Subtotal   float64 `json:"subtotal" gorm:"type:decimal(15,2);default:0"`
	TotalTax   float64 `json:"total_tax" gorm:"type:decimal(15,2);default:0"`
	Freight    float64 `json:"freight" gorm:"type:decimal(15,2);default:0"`
	GrandTotal float64 `json:"grand_total" gorm:"type:decimal(15,2);default:0"`

	EarlyPaymentTerms string `json:"early_payment_terms" gorm:"size:100"`
	Messages          string `json:"messages" gorm:"type:text"`

	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []POItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

const (
	POStatusDraft     = "draft"
	POStatusProcessed = "processed"
	POStatusCancelled = "cancelled"
)

// POItem is one ordered line on a PurchaseOrder.
type POItem struct {
	ID      string `json:"id" gorm:"primaryKey;size:32"`
	OrderID string `json:"order_id" gorm:"size:32;not null;index"`

	Name        string  `json:"name" gorm:"size:200;not null"`
	OrderQty    float64 `json:"order_qty" gorm:"type:decimal(10,2);not null"`
	Unit        string  `json:"unit" gorm:"size:20;default:pcs"`
	Description string  `json:"description" gorm:"size:500"`
	Price       float64 `json:"price" gorm:"type:decimal(15,2);default:0"`
	Discount    float64 `json:"discount" gorm:"type:decimal(5,2);default:0"` // percent
	TaxCode     string  `json:"tax_code" gorm:"size:10;default:PPN11"`

	// Derived per line.
	TaxAmount float64 `json:"tax_amount" gorm:"type:decimal(15,2);default:0"`
	Amount    float64 `json:"amount" gorm:"type:decimal(15,2);default:0"`

	Account string `json:"account" gorm:"size:100"`
	Notes   string `json:"notes" gorm:"type:text"`

	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (POItem) TableName() string {
	return "purchase_order_items"
}

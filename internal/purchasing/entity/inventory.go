package entity

import "time"

// InventoryItem is the item master. Purchasing consults it to resolve
// invoice line item numbers by name; it never mutates stock levels.
type InventoryItem struct {
	ID         string `json:"id" gorm:"primaryKey;size:32"`
	ItemNumber string `json:"item_number" gorm:"size:50;uniqueIndex;not null"`
	Name       string `json:"name" gorm:"size:200;not null;index"`
	Type       string `json:"type" gorm:"size:20;default:inventory"`
	Status     string `json:"status" gorm:"size:20;default:active"`

	// Unit of measure configuration.
	StockingUOM        string `json:"stocking_uom" gorm:"size:20;default:pcs"`
	SellingUOM         string `json:"selling_uom" gorm:"size:20"`
	SellingConversion  string `json:"selling_conversion" gorm:"size:100"` // e.g. "1 box = 12 pcs"
	BuyingUOM          string `json:"buying_uom" gorm:"size:20"`
	BuyingConversion   string `json:"buying_conversion" gorm:"size:100"`

	PreferredVendorID *string `json:"preferred_vendor_id" gorm:"size:32"`

	TaxablePPN11 bool `json:"taxable_ppn11" gorm:"default:true"`
	ExemptPPN    bool `json:"exempt_ppn" gorm:"default:false"`

	Description  string `json:"description" gorm:"type:text"`
	PictureURL   string `json:"picture_url" gorm:"size:500"`
	ThumbnailURL string `json:"thumbnail_url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Locations []ItemLocation `json:"locations,omitempty" gorm:"foreignKey:ItemID"`
	Prices    []ItemPrice    `json:"prices,omitempty" gorm:"foreignKey:ItemID"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

const (
	ItemTypeInventory = "inventory"
	ItemTypeService   = "service"
)

const (
	ItemStatusActive   = "active"
	ItemStatusArchived = "archived"
)

// ItemLocation is an on-hand quantity snapshot per storage location.
type ItemLocation struct {
	ID          string  `json:"id" gorm:"primaryKey;size:32"`
	ItemID      string  `json:"item_id" gorm:"size:32;not null;index"`
	Location    string  `json:"location" gorm:"size:200;not null"`
	OnHandQty   float64 `json:"on_hand_qty" gorm:"type:decimal(10,2);default:0"`
	OnHandValue float64 `json:"on_hand_value" gorm:"type:decimal(15,2);default:0"`

	CreatedAt time.Time `json:"created_at"`
}

func (ItemLocation) TableName() string {
	return "inventory_item_locations"
}

// ItemPrice is one entry of the item's price list.
type ItemPrice struct {
	ID       string  `json:"id" gorm:"primaryKey;size:32"`
	ItemID   string  `json:"item_id" gorm:"size:32;not null;index"`
	ListName string  `json:"list_name" gorm:"size:100;not null"`
	Price    float64 `json:"price" gorm:"type:decimal(15,2);default:0"`

	CreatedAt time.Time `json:"created_at"`
}

func (ItemPrice) TableName() string {
	return "inventory_item_prices"
}

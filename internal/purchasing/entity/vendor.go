package entity

import "time"

// Vendor is the supplier master. PaymentTerms is copied onto a draft
// PurchaseOrder when the vendor is selected.
type Vendor struct {
	ID            string `json:"id" gorm:"primaryKey;size:32"`
	Name          string `json:"name" gorm:"size:200;not null;uniqueIndex"`
	PaymentTerms  string `json:"payment_terms" gorm:"size:100"`
	Address       string `json:"address" gorm:"size:500"`
	ContactPerson string `json:"contact_person" gorm:"size:100"`
	Email         string `json:"email" gorm:"size:200"`
	Phone         string `json:"phone" gorm:"size:50"`
	Status        string `json:"status" gorm:"size:20;default:active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Vendor) TableName() string {
	return "vendors"
}

const (
	VendorStatusActive   = "active"
	VendorStatusInactive = "inactive"
)

package entity

import "time"

// PurchaseRequest is the entry document of the purchasing flow.
// Business dates are calendar dates stored as YYYY-MM-DD strings.
type PurchaseRequest struct {
	ID     string `json:"id" gorm:"primaryKey;size:32"`
	Number string `json:"number" gorm:"size:32;uniqueIndex;not null"` // PR-YYYYMMDD-NNNN
	Status string `json:"status" gorm:"size:20;default:draft"`

	Division        string `json:"division" gorm:"size:100;not null"`
	PIC             string `json:"pic" gorm:"size:100"`
	Purpose         string `json:"purpose" gorm:"size:500"`
	DateRequest     string `json:"date_request" gorm:"size:10"`
	NeededDate      string `json:"needed_date" gorm:"size:10"`
	DateOfUse       string `json:"date_of_use" gorm:"size:10"`
	ShippingAddress string `json:"shipping_address" gorm:"size:500"`

	// Derived, recomputed wholesale on every mutation.
	Subtotal float64 `json:"subtotal" gorm:"type:decimal(15,2);default:0"`
	Tax      float64 `json:"tax" gorm:"type:decimal(15,2);default:0"`
	Total    float64 `json:"total" gorm:"type:decimal(15,2);default:0"`

	Reviewer          *string `json:"reviewer" gorm:"size:100"`
	Approver          *string `json:"approver" gorm:"size:100"`
	ReviewerNotes     string  `json:"reviewer_notes" gorm:"type:text"`
	EarlyPaymentTerms string  `json:"early_payment_terms" gorm:"size:100"`
	Messages          string  `json:"messages" gorm:"type:text"`

	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []PRItem `json:"items,omitempty" gorm:"foreignKey:RequestID"`
}

func (PurchaseRequest) TableName() string {
	return "purchase_requests"
}

// PR statuses, lowercase on the wire and in the DB.
const (
	PRStatusDraft     = "draft"
	PRStatusSubmitted = "submitted"
	PRStatusReviewed  = "reviewed"
	PRStatusApproved  = "approved"
	PRStatusRejected  = "rejected"
)

// Tax codes carried per line.
const (
	TaxCodePPN11 = "PPN11"
	TaxCodeNone  = "NON"
)

// PRItem is one requested line on a PurchaseRequest.
type PRItem struct {
	ID        string `json:"id" gorm:"primaryKey;size:32"`
	RequestID string `json:"request_id" gorm:"size:32;not null;index"`

	MonthYearForUse string  `json:"month_year_for_use" gorm:"size:50"`
	Name            string  `json:"name" gorm:"size:200;not null"`
	Brand           string  `json:"brand" gorm:"size:100"`
	Specification   string  `json:"specification" gorm:"size:500"`
	Quantity        float64 `json:"quantity" gorm:"type:decimal(10,2);not null"`
	Unit            string  `json:"unit" gorm:"size:20;default:pcs"`
	Price           float64 `json:"price" gorm:"type:decimal(15,2);default:0"`
	TaxCode         string  `json:"tax_code" gorm:"size:10;default:PPN11"`

	// Derived from quantity and price.
	Amount float64 `json:"amount" gorm:"type:decimal(15,2);default:0"`

	ItemPhoto    string `json:"item_photo" gorm:"size:500"`
	PurchaseLink string `json:"purchase_link" gorm:"size:500"`
	UserPIC      string `json:"user_pic" gorm:"size:100"`
	Location     string `json:"location" gorm:"size:200"`
	Notes        string `json:"notes" gorm:"type:text"`

	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PRItem) TableName() string {
	return "purchase_request_items"
}

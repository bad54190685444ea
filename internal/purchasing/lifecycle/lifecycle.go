// Package lifecycle holds the document state machines. Transition checks
// are pure; callers apply the status change only after a nil error, so an
// invalid request never half-updates a document.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
)

// ErrInvalidTransition is wrapped by every rejected status change.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrValidation is wrapped by every rejected document state, missing
// fields and bad items alike.
var ErrValidation = errors.New("validation failed")

var prTransitions = map[string][]string{
	entity.PRStatusDraft:     {entity.PRStatusSubmitted},
	entity.PRStatusSubmitted: {entity.PRStatusReviewed, entity.PRStatusRejected},
	entity.PRStatusReviewed:  {entity.PRStatusApproved, entity.PRStatusRejected},
	entity.PRStatusRejected:  {entity.PRStatusSubmitted},
}

var poTransitions = map[string][]string{
	entity.POStatusDraft:     {entity.POStatusProcessed, entity.POStatusCancelled},
	entity.POStatusProcessed: {entity.POStatusCancelled},
}

var piTransitions = map[string][]string{
	entity.PIStatusDraft:     {entity.PIStatusSubmitted, entity.PIStatusCancelled},
	entity.PIStatusSubmitted: {entity.PIStatusPaid, entity.PIStatusOverdue, entity.PIStatusCancelled},
	entity.PIStatusOverdue:   {entity.PIStatusPaid, entity.PIStatusCancelled},
}

func check(table map[string][]string, doc, from, to string) error {
	for _, next := range table[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %s -> %s", ErrInvalidTransition, doc, from, to)
}

// CheckRequest validates a PurchaseRequest status change.
func CheckRequest(from, to string) error {
	return check(prTransitions, "purchase request", from, to)
}

// CheckOrder validates a PurchaseOrder status change.
func CheckOrder(from, to string) error {
	return check(poTransitions, "purchase order", from, to)
}

// CheckInvoice validates a PurchaseInvoice status change.
func CheckInvoice(from, to string) error {
	return check(piTransitions, "purchase invoice", from, to)
}

// CanEditRequest reports whether PR header and item fields may change.
func CanEditRequest(status string) bool {
	return status == entity.PRStatusDraft
}

// CanEditOrder reports whether PO fields, freight included, may change.
func CanEditOrder(status string) bool {
	return status == entity.POStatusDraft
}

// CanEditInvoice reports whether PI fields may change.
func CanEditInvoice(status string) bool {
	return status == entity.PIStatusDraft
}

// ValidateSubmit checks the mandatory fields a PR needs before it can
// leave draft. The error lists everything missing at once.
func ValidateSubmit(pr *entity.PurchaseRequest) error {
	var missing []string
	if strings.TrimSpace(pr.Division) == "" {
		missing = append(missing, "division")
	}
	if strings.TrimSpace(pr.PIC) == "" {
		missing = append(missing, "pic")
	}
	if strings.TrimSpace(pr.DateOfUse) == "" {
		missing = append(missing, "date_of_use")
	}
	if strings.TrimSpace(pr.NeededDate) == "" {
		missing = append(missing, "needed_date")
	}
	if strings.TrimSpace(pr.ShippingAddress) == "" {
		missing = append(missing, "shipping_address")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if len(pr.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	for i, item := range pr.Items {
		if err := validateItem(item); err != nil {
			return fmt.Errorf("%w: item %d: %s", ErrValidation, i+1, err)
		}
	}
	return nil
}

func validateItem(item entity.PRItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(item.Unit) == "" {
		return errors.New("unit is required")
	}
	if item.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if item.Price < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}

// ValidateProcess checks the fields a PO needs before processing.
func ValidateProcess(po *entity.PurchaseOrder) error {
	var missing []string
	if strings.TrimSpace(po.Vendor) == "" {
		missing = append(missing, "vendor")
	}
	if strings.TrimSpace(po.PaymentMethod) == "" {
		missing = append(missing, "payment_method")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

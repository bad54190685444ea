package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/pricing"
)

const dateLayout = "2006-01-02"

// newID mints the 32-char entity identifier used across the module.
func newID() string {
	return uuid.New().String()[:32]
}

// BuildOrderFromRequest derives a draft PurchaseOrder from an approved
// request. The source request is never touched. Vendor and payment
// method start blank and must be chosen before processing; freight
// starts at zero.
func BuildOrderFromRequest(pr *entity.PurchaseRequest, number string, now time.Time) *entity.PurchaseOrder {
	po := &entity.PurchaseOrder{
		ID:                newID(),
		Number:            number,
		Status:            entity.POStatusDraft,
		SourceRequest:     pr.Number,
		LocationInventory: "",
		DateOrder:         now.Format(dateLayout),
		ShippingDate:      pr.NeededDate,
		ShippingAddress:   pr.ShippingAddress,
		EarlyPaymentTerms: pr.EarlyPaymentTerms,
		Messages:          pr.Messages,
	}

	for i, item := range pr.Items {
		line := pricing.Line{Qty: item.Quantity, Price: item.Price, TaxCode: item.TaxCode}
		amount := pricing.LineAmount(line)
		tax := pricing.LineTax(line)
		po.Items = append(po.Items, entity.POItem{
			ID:          newID(),
			OrderID:     po.ID,
			Name:        item.Name,
			OrderQty:    item.Quantity,
			Unit:        item.Unit,
			Description: item.Specification,
			Price:       item.Price,
			Discount:    0,
			TaxCode:     item.TaxCode,
			TaxAmount:   tax,
			Amount:      amount + tax,
			Notes:       item.Notes,
			SortOrder:   i + 1,
		})
	}

	applyOrderTotals(po)
	return po
}

// BuildInvoiceFromOrder derives a draft PurchaseInvoice from a
// processed order. Vendor, payment method, location and totals carry
// over; item numbers are resolved through the lookup, falling back to
// "N/A" for items without an inventory record. Back-order starts at
// zero. The source order is never touched.
func BuildInvoiceFromOrder(po *entity.PurchaseOrder, number string, now time.Time, itemNumber func(name string) (string, bool)) *entity.PurchaseInvoice {
	pi := &entity.PurchaseInvoice{
		ID:                newID(),
		Number:            number,
		Status:            entity.PIStatusDraft,
		SourceOrder:       po.Number,
		Vendor:            po.Vendor,
		PaymentMethod:     po.PaymentMethod,
		LocationInventory: po.LocationInventory,
		InvoiceDate:       now.Format(dateLayout),
		ShippingDate:      po.ShippingDate,
		ShippingAddress:   po.ShippingAddress,
		Subtotal:          po.Subtotal,
		Tax:               po.TotalTax,
		Freight:           po.Freight,
		Total:             po.GrandTotal,
	}

	for i, item := range po.Items {
		num := entity.ItemNumberNA
		if itemNumber != nil {
			if resolved, ok := itemNumber(item.Name); ok {
				num = resolved
			}
		}
		description := item.Name
		if item.Description != "" {
			description = item.Name + " - " + item.Description
		}
		pi.Items = append(pi.Items, entity.PIItem{
			ID:          newID(),
			InvoiceID:   pi.ID,
			ItemNumber:  num,
			Qty:         item.OrderQty,
			OrderQty:    item.OrderQty,
			BackOrder:   0,
			Unit:        item.Unit,
			Description: description,
			Price:       item.Price,
			Discount:    item.Discount,
			TaxCode:     item.TaxCode,
			TaxAmount:   item.TaxAmount,
			Amount:      item.Amount,
			Account:     item.Account,
			Notes:       item.Notes,
			SortOrder:   i + 1,
		})
	}

	return pi
}

// applyRequestTotals recomputes every derived figure on a PR.
func applyRequestTotals(pr *entity.PurchaseRequest) {
	lines := make([]pricing.Line, len(pr.Items))
	for i, item := range pr.Items {
		lines[i] = pricing.Line{Qty: item.Quantity, Price: item.Price, TaxCode: item.TaxCode}
		pr.Items[i].Amount = pricing.LineAmount(lines[i])
	}
	totals := pricing.Compute(lines, 0)
	pr.Subtotal = totals.Subtotal
	pr.Tax = totals.Tax
	pr.Total = totals.GrandTotal
}

// applyOrderTotals recomputes per-line tax and amount plus the four
// header figures on a PO.
func applyOrderTotals(po *entity.PurchaseOrder) {
	lines := make([]pricing.Line, len(po.Items))
	for i, item := range po.Items {
		lines[i] = pricing.Line{Qty: item.OrderQty, Price: item.Price, Discount: item.Discount, TaxCode: item.TaxCode}
		amount := pricing.LineAmount(lines[i])
		tax := pricing.LineTax(lines[i])
		po.Items[i].TaxAmount = tax
		po.Items[i].Amount = amount + tax
	}
	totals := pricing.Compute(lines, po.Freight)
	po.Subtotal = totals.Subtotal
	po.TotalTax = totals.Tax
	po.Freight = totals.Freight
	po.GrandTotal = totals.GrandTotal
}

// applyInvoiceTotals recomputes per-line tax and amount plus the four
// header figures on a PI.
func applyInvoiceTotals(pi *entity.PurchaseInvoice) {
	lines := make([]pricing.Line, len(pi.Items))
	for i, item := range pi.Items {
		lines[i] = pricing.Line{Qty: item.Qty, Price: item.Price, Discount: item.Discount, TaxCode: item.TaxCode}
		amount := pricing.LineAmount(lines[i])
		tax := pricing.LineTax(lines[i])
		pi.Items[i].TaxAmount = tax
		pi.Items[i].Amount = amount + tax
	}
	totals := pricing.Compute(lines, pi.Freight)
	pi.Subtotal = totals.Subtotal
	pi.Tax = totals.Tax
	pi.Freight = totals.Freight
	pi.Total = totals.GrandTotal
}

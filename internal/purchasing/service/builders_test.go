package service

import (
	"testing"
	"time"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/entity"
)

func approvedRequest() *entity.PurchaseRequest {
	pr := &entity.PurchaseRequest{
		ID:                "req-1",
		Number:            "PR-20241015-0001",
		Status:            entity.PRStatusApproved,
		Division:          "Finance",
		PIC:               "Nike Eka F",
		NeededDate:        "2024-10-30",
		ShippingAddress:   "RCA Head Office, Jakarta",
		EarlyPaymentTerms: "Net 30",
		Items: []entity.PRItem{
			{ID: "it-1", Name: "Tempat Tissue", Specification: "White", Quantity: 1, Unit: "unit", Price: 129000, TaxCode: entity.TaxCodePPN11, Notes: "Non-Asset"},
			{ID: "it-2", Name: "Laptop Stand", Specification: "Silver", Quantity: 1, Unit: "unit", Price: 145000, TaxCode: entity.TaxCodePPN11, Notes: "Non-Asset"},
		},
	}
	applyRequestTotals(pr)
	return pr
}

func TestBuildOrderFromRequest(t *testing.T) {
	pr := approvedRequest()
	now := time.Date(2024, 10, 16, 10, 0, 0, 0, time.UTC)

	po := BuildOrderFromRequest(pr, "PO-20241016-0001", now)

	if po.ID == pr.ID {
		t.Error("order must get a fresh id")
	}
	if po.Status != entity.POStatusDraft {
		t.Errorf("status = %s, want draft", po.Status)
	}
	if po.SourceRequest != "PR-20241015-0001" {
		t.Errorf("source request = %s", po.SourceRequest)
	}
	if po.Vendor != "" || po.PaymentMethod != "" {
		t.Errorf("vendor/payment must start blank, got %q/%q", po.Vendor, po.PaymentMethod)
	}
	if po.Freight != 0 {
		t.Errorf("freight = %v, want 0", po.Freight)
	}
	if po.DateOrder != "2024-10-16" {
		t.Errorf("date order = %s", po.DateOrder)
	}
	if po.ShippingDate != pr.NeededDate || po.ShippingAddress != pr.ShippingAddress {
		t.Error("shipping details not carried over")
	}

	if len(po.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(po.Items))
	}
	first := po.Items[0]
	if first.ID == "it-1" {
		t.Error("item must get a fresh id")
	}
	if first.OrderQty != 1 || first.Price != 129000 {
		t.Errorf("qty/price = %v/%v", first.OrderQty, first.Price)
	}
	if first.TaxAmount != 14190 {
		t.Errorf("tax amount = %v, want 14190", first.TaxAmount)
	}
	if first.Amount != 143190 {
		t.Errorf("amount = %v, want 143190", first.Amount)
	}

	if po.Subtotal != 274000 || po.TotalTax != 30140 || po.GrandTotal != 304140 {
		t.Errorf("totals = %v/%v/%v, want 274000/30140/304140", po.Subtotal, po.TotalTax, po.GrandTotal)
	}

	// Source request untouched.
	if pr.Status != entity.PRStatusApproved || len(pr.Items) != 2 || pr.Items[0].ID != "it-1" {
		t.Error("source request was mutated")
	}
}

func processedOrder() *entity.PurchaseOrder {
	po := &entity.PurchaseOrder{
		ID:                "ord-1",
		Number:            "PO-20241016-0001",
		Status:            entity.POStatusProcessed,
		SourceRequest:     "PR-20241015-0001",
		Vendor:            "Informa Furnishings",
		PaymentMethod:     "TRANSFER 14D",
		LocationInventory: "Main Office Storage",
		ShippingDate:      "2024-10-25",
		ShippingAddress:   "RCA Head Office, Jakarta",
		Freight:           25000,
		Items: []entity.POItem{
			{ID: "poi-1", Name: "Tempat Tissue", OrderQty: 1, Unit: "unit", Description: "White", Price: 129000, TaxCode: entity.TaxCodePPN11, Account: "Office Supplies", Notes: "Non-Asset"},
			{ID: "poi-2", Name: "Laptop Stand", OrderQty: 1, Unit: "unit", Description: "Silver", Price: 145000, TaxCode: entity.TaxCodePPN11, Account: "Office Supplies", Notes: "Non-Asset"},
		},
	}
	applyOrderTotals(po)
	return po
}

func TestBuildInvoiceFromOrder(t *testing.T) {
	po := processedOrder()
	now := time.Date(2024, 10, 26, 10, 0, 0, 0, time.UTC)
	lookup := func(name string) (string, bool) {
		if name == "Tempat Tissue" {
			return "10002", true
		}
		return "", false
	}

	pi := BuildInvoiceFromOrder(po, "PI-20241026-0001", now, lookup)

	if pi.ID == po.ID {
		t.Error("invoice must get a fresh id")
	}
	if pi.Status != entity.PIStatusDraft {
		t.Errorf("status = %s, want draft", pi.Status)
	}
	if pi.SourceOrder != "PO-20241016-0001" {
		t.Errorf("source order = %s", pi.SourceOrder)
	}
	if pi.Vendor != "Informa Furnishings" || pi.PaymentMethod != "TRANSFER 14D" {
		t.Error("vendor details not carried over")
	}
	if pi.LocationInventory != "Main Office Storage" {
		t.Error("location not carried over")
	}
	if pi.InvoiceDate != "2024-10-26" {
		t.Errorf("invoice date = %s", pi.InvoiceDate)
	}
	if pi.Subtotal != po.Subtotal || pi.Tax != po.TotalTax || pi.Freight != po.Freight || pi.Total != po.GrandTotal {
		t.Error("totals not copied from order")
	}
	if pi.Total != 329140 {
		t.Errorf("total = %v, want 329140", pi.Total)
	}

	if len(pi.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(pi.Items))
	}
	if pi.Items[0].ItemNumber != "10002" {
		t.Errorf("resolved item number = %s, want 10002", pi.Items[0].ItemNumber)
	}
	if pi.Items[1].ItemNumber != entity.ItemNumberNA {
		t.Errorf("unresolved item number = %s, want N/A", pi.Items[1].ItemNumber)
	}
	for _, item := range pi.Items {
		if item.BackOrder != 0 {
			t.Errorf("back order = %v, want 0", item.BackOrder)
		}
	}
	if pi.Items[0].Description != "Tempat Tissue - White" {
		t.Errorf("description = %q", pi.Items[0].Description)
	}
	if pi.Items[0].Qty != 1 || pi.Items[0].OrderQty != 1 {
		t.Error("quantities not carried over")
	}

	// Source order untouched.
	if po.Status != entity.POStatusProcessed || len(po.Items) != 2 {
		t.Error("source order was mutated")
	}
}

func TestBuildInvoiceNilLookup(t *testing.T) {
	pi := BuildInvoiceFromOrder(processedOrder(), "PI-20241026-0002", time.Now(), nil)
	for _, item := range pi.Items {
		if item.ItemNumber != entity.ItemNumberNA {
			t.Errorf("item number = %s, want N/A", item.ItemNumber)
		}
	}
}

func TestApplyRequestTotals(t *testing.T) {
	pr := approvedRequest()
	if pr.Subtotal != 274000 || pr.Tax != 30140 || pr.Total != 304140 {
		t.Errorf("totals = %v/%v/%v, want 274000/30140/304140", pr.Subtotal, pr.Tax, pr.Total)
	}
	if pr.Items[0].Amount != 129000 {
		t.Errorf("item amount = %v, want 129000", pr.Items[0].Amount)
	}

	// Dropping an item rederives everything.
	pr.Items = pr.Items[:1]
	applyRequestTotals(pr)
	if pr.Subtotal != 129000 || pr.Tax != 14190 || pr.Total != 143190 {
		t.Errorf("totals after edit = %v/%v/%v", pr.Subtotal, pr.Tax, pr.Total)
	}
}

func TestApplyOrderTotalsWithFreight(t *testing.T) {
	po := processedOrder()
	if po.GrandTotal != 329140 {
		t.Errorf("grand total = %v, want 329140", po.GrandTotal)
	}
	po.Freight = 0
	applyOrderTotals(po)
	if po.GrandTotal != 304140 {
		t.Errorf("grand total without freight = %v, want 304140", po.GrandTotal)
	}
}

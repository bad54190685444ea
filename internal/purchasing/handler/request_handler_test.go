package handler

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/repository"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/service"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/snapshot"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/storage"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/testutil"
)

func setupPurchasingTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	logger := zap.NewNop()

	// No redis, no object store: snapshot and photo uploads are no-ops.
	requestSvc := service.NewRequestService(repos.Request, snapshot.NewStore(nil, logger), storage.NewPhotoStore(nil, ""), logger)
	orderSvc := service.NewOrderService(repos.Order, repos.Request, repos.Vendor, logger)
	invoiceSvc := service.NewInvoiceService(repos.Invoice, repos.Order, repos.Inventory, logger)

	requestHandler := NewRequestHandler(requestSvc, orderSvc)
	orderHandler := NewOrderHandler(orderSvc, invoiceSvc)
	invoiceHandler := NewInvoiceHandler(invoiceSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	api.POST("/purchase-requests", requestHandler.Create)
	api.GET("/purchase-requests/:id", requestHandler.Get)
	api.PUT("/purchase-requests/:id", requestHandler.Update)
	api.POST("/purchase-requests/:id/submit", requestHandler.Submit)
	api.POST("/purchase-requests/:id/review", requestHandler.Review)
	api.POST("/purchase-requests/:id/approve", requestHandler.Approve)
	api.POST("/purchase-requests/:id/reject", requestHandler.Reject)
	api.POST("/purchase-requests/:id/resubmit", requestHandler.Resubmit)
	api.POST("/purchase-requests/:id/orders", requestHandler.CreateOrder)

	api.GET("/purchase-orders/:id", orderHandler.Get)
	api.PUT("/purchase-orders/:id", orderHandler.Update)
	api.POST("/purchase-orders/:id/process", orderHandler.Process)
	api.POST("/purchase-orders/:id/cancel", orderHandler.Cancel)
	api.POST("/purchase-orders/:id/invoices", orderHandler.CreateInvoice)

	api.GET("/purchase-invoices/:id", invoiceHandler.Get)
	api.POST("/purchase-invoices/:id/process", invoiceHandler.Process)
	api.POST("/purchase-invoices/:id/pay", invoiceHandler.Pay)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func draftRequestBody() map[string]interface{} {
	return map[string]interface{}{
		"division":         "General Affair",
		"pic":              "Rina",
		"purpose":          "Office supplies restock",
		"date_of_use":      "2026-03-01",
		"needed_date":      "2026-02-20",
		"shipping_address": "Jl. Kemang Raya No. 12, Jakarta Selatan",
		"items": []map[string]interface{}{
			{
				"name":     "Aqua Gallon",
				"quantity": 43,
				"unit":     "galon",
				"price":    3000,
				"tax_code": "PPN11",
			},
			{
				"name":          "Tempat Tissue",
				"specification": "White",
				"quantity":      29,
				"unit":          "pcs",
				"price":         5000,
				"tax_code":      "PPN11",
			},
		},
	}
}

func createDraftRequest(t *testing.T, env *testutil.TestEnv, token string) (id, number string) {
	t.Helper()
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requests", draftRequestBody(), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating PR, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	return data["id"].(string), data["number"].(string)
}

// TestRequestLifecycleToPaidInvoice walks the full flow:
// PR draft → submitted → reviewed → approved → PO → processed → PI → paid.
func TestRequestLifecycleToPaidInvoice(t *testing.T) {
	env := setupPurchasingTest(t)
	token := testutil.DefaultTestToken()

	prID, prNumber := createDraftRequest(t, env, token)

	// Totals are derived on create: 43×3000 + 29×5000 = 274000,
	// PPN 11% rounded per line = 14190 + 15950 = 30140.
	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/purchase-requests/"+prID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	pr := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if pr["status"] != "draft" {
		t.Fatalf("expected status draft, got %v", pr["status"])
	}
	if pr["subtotal"].(float64) != 274000 {
		t.Fatalf("expected subtotal 274000, got %v", pr["subtotal"])
	}
	if pr["tax"].(float64) != 30140 {
		t.Fatalf("expected tax 30140, got %v", pr["tax"])
	}
	if pr["total"].(float64) != 304140 {
		t.Fatalf("expected total 304140, got %v", pr["total"])
	}

	// Approving a draft skips submission and review: conflict.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requests/"+prID+"/approve", nil, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 approving draft, got %d: %s", w.Code, w.Body.String())
	}

	// draft → submitted → reviewed → approved
	for _, step := range []struct{ action, status string }{
		{"submit", "submitted"},
		{"review", "reviewed"},
		{"approve", "approved"},
	} {
		w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requests/"+prID+"/"+step.action, nil, token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 on %s, got %d: %s", step.action, w.Code, w.Body.String())
		}
		data := testutil.ParseResponse(w)["data"].(map[string]interface{})
		if data["status"] != step.status {
			t.Fatalf("expected status %s after %s, got %v", step.status, step.action, data["status"])
		}
	}

	// Reviewer and approver come from the token identity.
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/purchase-requests/"+prID, nil, token)
	pr = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if pr["reviewer"] != "Test Purchaser" {
		t.Fatalf("expected reviewer 'Test Purchaser', got %v", pr["reviewer"])
	}
	if pr["approver"] != "Test Purchaser" {
		t.Fatalf("expected approver 'Test Purchaser', got %v", pr["approver"])
	}

	// Spawn the purchase order. Totals carry over, vendor starts blank.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requests/"+prID+"/orders", nil, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating PO, got %d: %s", w.Code, w.Body.String())
	}
	po := testutil.ParseResponse(w)["data"].(map[string]interface{})
	poID := po["id"].(string)
	if po["status"] != "draft" {
		t.Fatalf("expected PO status draft, got %v", po["status"])
	}
	if po["source_request"] != prNumber {
		t.Fatalf("expected source_request %s, got %v", prNumber, po["source_request"])
	}
	if po["grand_total"].(float64) != 304140 {
		t.Fatalf("expected grand_total 304140, got %v", po["grand_total"])
	}

	// Processing without a vendor fails validation.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders/"+poID+"/process", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 processing vendorless PO, got %d: %s", w.Code, w.Body.String())
	}

	// Picking a vendor copies its payment terms onto the order.
	vendor := testutil.SeedVendor(t, env.DB, "vendor-po-001", "PT Sumber Makmur", "NET 30")
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/purchase-orders/"+poID,
		map[string]interface{}{"vendor_id": vendor.ID}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 updating PO, got %d: %s", w.Code, w.Body.String())
	}
	po = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if po["vendor"] != "PT Sumber Makmur" {
		t.Fatalf("expected vendor name copied, got %v", po["vendor"])
	}
	if po["payment_method"] != "NET 30" {
		t.Fatalf("expected payment terms copied, got %v", po["payment_method"])
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders/"+poID+"/process", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 processing PO, got %d: %s", w.Code, w.Body.String())
	}

	// Spawn the invoice from the processed order.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders/"+poID+"/invoices", nil, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating PI, got %d: %s", w.Code, w.Body.String())
	}
	pi := testutil.ParseResponse(w)["data"].(map[string]interface{})
	piID := pi["id"].(string)
	if pi["status"] != "draft" {
		t.Fatalf("expected PI status draft, got %v", pi["status"])
	}
	if pi["source_order"] != po["number"] {
		t.Fatalf("expected source_order %v, got %v", po["number"], pi["source_order"])
	}
	if pi["vendor"] != "PT Sumber Makmur" {
		t.Fatalf("expected vendor carried over, got %v", pi["vendor"])
	}
	if pi["total"].(float64) != 304140 {
		t.Fatalf("expected PI total 304140, got %v", pi["total"])
	}
	items := pi["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 invoice items, got %d", len(items))
	}
	first := items[0].(map[string]interface{})
	if first["item_number"] != "N/A" {
		t.Fatalf("expected item_number N/A without inventory record, got %v", first["item_number"])
	}

	// Paying a draft invoice is a conflict; it must be submitted first.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-invoices/"+piID+"/pay", nil, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 paying draft PI, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-invoices/"+piID+"/process", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 submitting PI, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-invoices/"+piID+"/pay", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 paying PI, got %d: %s", w.Code, w.Body.String())
	}
	pi = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if pi["status"] != "paid" {
		t.Fatalf("expected status paid, got %v", pi["status"])
	}
	if pi["payment_date"] == nil {
		t.Fatal("expected payment_date to be stamped")
	}
}

// TestSubmitRequiresItemsAndHeaderFields checks the submit validation.
func TestSubmitRequiresItemsAndHeaderFields(t *testing.T) {
	env := setupPurchasingTest(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{
		"division": "Marketing",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requests", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating empty draft, got %d: %s", w.Code, w.Body.String())
	}
	prID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requests/"+prID+"/submit", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 submitting incomplete PR, got %d: %s", w.Code, w.Body.String())
	}
}

// TestRejectAndResubmit covers the rejection loop back into review.
func TestRejectAndResubmit(t *testing.T) {
	env := setupPurchasingTest(t)
	token := testutil.DefaultTestToken()

	prID, _ := createDraftRequest(t, env, token)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requests/"+prID+"/submit", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on submit, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requests/"+prID+"/reject",
		map[string]interface{}{"notes": "Budget exceeded for this quarter"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on reject, got %d: %s", w.Code, w.Body.String())
	}
	pr := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if pr["status"] != "rejected" {
		t.Fatalf("expected status rejected, got %v", pr["status"])
	}
	if pr["reviewer_notes"] != "Budget exceeded for this quarter" {
		t.Fatalf("expected rejection notes recorded, got %v", pr["reviewer_notes"])
	}

	// Rejected drafts are no longer editable.
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/purchase-requests/"+prID,
		map[string]interface{}{"purpose": "Revised purpose"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 editing rejected PR, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requests/"+prID+"/resubmit", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on resubmit, got %d: %s", w.Code, w.Body.String())
	}
	pr = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if pr["status"] != "submitted" {
		t.Fatalf("expected status submitted after resubmit, got %v", pr["status"])
	}
}

// TestOrderRequiresApprovedRequest ensures unapproved PRs cannot spawn orders.
func TestOrderRequiresApprovedRequest(t *testing.T) {
	env := setupPurchasingTest(t)
	token := testutil.DefaultTestToken()

	prID, _ := createDraftRequest(t, env, token)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requests/"+prID+"/orders", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 ordering from draft PR, got %d: %s", w.Code, w.Body.String())
	}
}

// TestRequestAuthRequired rejects unauthenticated access.
func TestRequestAuthRequired(t *testing.T) {
	env := setupPurchasingTest(t)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-requests", draftRequestBody(), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d: %s", w.Code, w.Body.String())
	}
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/service"
)

// InvoiceHandler serves the PurchaseInvoice endpoints.
type InvoiceHandler struct {
	svc *service.InvoiceService
}

func NewInvoiceHandler(svc *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// List GET /api/v1/purchase-invoices?status=&source_order=&search=
func (h *InvoiceHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":       c.Query("status"),
		"source_order": c.Query("source_order"),
		"search":       c.Query("search"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, "list purchase invoices: "+err.Error())
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: listPagination(page, pageSize, total),
	})
}

// Get GET /api/v1/purchase-invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	pi, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pi)
}

// Update PUT /api/v1/purchase-invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	var req service.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	pi, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pi)
}

// Process POST /api/v1/purchase-invoices/:id/process
func (h *InvoiceHandler) Process(c *gin.Context) {
	pi, err := h.svc.Process(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pi)
}

// Pay POST /api/v1/purchase-invoices/:id/pay
func (h *InvoiceHandler) Pay(c *gin.Context) {
	pi, err := h.svc.Pay(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pi)
}

// MarkOverdue POST /api/v1/purchase-invoices/:id/overdue
func (h *InvoiceHandler) MarkOverdue(c *gin.Context) {
	pi, err := h.svc.MarkOverdue(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pi)
}

// Cancel POST /api/v1/purchase-invoices/:id/cancel
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	pi, err := h.svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pi)
}

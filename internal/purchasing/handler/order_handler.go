package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/service"
)

// OrderHandler serves the PurchaseOrder endpoints.
type OrderHandler struct {
	svc        *service.OrderService
	invoiceSvc *service.InvoiceService
}

func NewOrderHandler(svc *service.OrderService, invoiceSvc *service.InvoiceService) *OrderHandler {
	return &OrderHandler{svc: svc, invoiceSvc: invoiceSvc}
}

// List GET /api/v1/purchase-orders?status=&vendor_id=&source_request=&search=
func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":         c.Query("status"),
		"vendor_id":      c.Query("vendor_id"),
		"source_request": c.Query("source_request"),
		"search":         c.Query("search"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, "list purchase orders: "+err.Error())
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: listPagination(page, pageSize, total),
	})
}

// Get GET /api/v1/purchase-orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	po, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, po)
}

// Update PUT /api/v1/purchase-orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	po, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, po)
}

// Process POST /api/v1/purchase-orders/:id/process
func (h *OrderHandler) Process(c *gin.Context) {
	po, err := h.svc.Process(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, po)
}

// Cancel POST /api/v1/purchase-orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	po, err := h.svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, po)
}

// CreateInvoice POST /api/v1/purchase-orders/:id/invoices
func (h *OrderHandler) CreateInvoice(c *gin.Context) {
	pi, err := h.invoiceSvc.CreateFromOrder(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, pi)
}

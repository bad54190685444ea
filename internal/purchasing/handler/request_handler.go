package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/service"
)

// RequestHandler serves the PurchaseRequest endpoints.
type RequestHandler struct {
	svc      *service.RequestService
	orderSvc *service.OrderService
}

func NewRequestHandler(svc *service.RequestService, orderSvc *service.OrderService) *RequestHandler {
	return &RequestHandler{svc: svc, orderSvc: orderSvc}
}

// List GET /api/v1/purchase-requests?status=&division=&search=
func (h *RequestHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"status":   c.Query("status"),
		"division": c.Query("division"),
		"search":   c.Query("search"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, "list purchase requests: "+err.Error())
		return
	}

	Success(c, ListResponse{
		Items:      items,
		Pagination: listPagination(page, pageSize, total),
	})
}

// Get GET /api/v1/purchase-requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	pr, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pr)
}

// Create POST /api/v1/purchase-requests
func (h *RequestHandler) Create(c *gin.Context) {
	var req service.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	pr, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, pr)
}

// Update PUT /api/v1/purchase-requests/:id
func (h *RequestHandler) Update(c *gin.Context) {
	var req service.UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	pr, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pr)
}

// Delete DELETE /api/v1/purchase-requests/:id
func (h *RequestHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	Success(c, nil)
}

// Submit POST /api/v1/purchase-requests/:id/submit
func (h *RequestHandler) Submit(c *gin.Context) {
	pr, err := h.svc.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pr)
}

type reviewRequest struct {
	Notes string `json:"notes"`
}

// Review POST /api/v1/purchase-requests/:id/review
func (h *RequestHandler) Review(c *gin.Context) {
	var req reviewRequest
	_ = c.ShouldBindJSON(&req)

	pr, err := h.svc.Review(c.Request.Context(), c.Param("id"), GetUserName(c), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pr)
}

// Approve POST /api/v1/purchase-requests/:id/approve
func (h *RequestHandler) Approve(c *gin.Context) {
	pr, err := h.svc.Approve(c.Request.Context(), c.Param("id"), GetUserName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pr)
}

// Reject POST /api/v1/purchase-requests/:id/reject
func (h *RequestHandler) Reject(c *gin.Context) {
	var req reviewRequest
	_ = c.ShouldBindJSON(&req)

	pr, err := h.svc.Reject(c.Request.Context(), c.Param("id"), GetUserName(c), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pr)
}

// Resubmit POST /api/v1/purchase-requests/:id/resubmit
func (h *RequestHandler) Resubmit(c *gin.Context) {
	pr, err := h.svc.Resubmit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pr)
}

// CreateOrder POST /api/v1/purchase-requests/:id/orders
func (h *RequestHandler) CreateOrder(c *gin.Context) {
	po, err := h.orderSvc.CreateFromRequest(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, po)
}

// UploadItemPhoto POST /api/v1/purchase-requests/:id/items/:itemId/photo
func (h *RequestHandler) UploadItemPhoto(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file: "+err.Error())
		return
	}
	defer file.Close()

	pr, err := h.svc.UploadItemPhoto(c.Request.Context(),
		c.Param("id"), c.Param("itemId"),
		file, header.Filename, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, pr)
}

// Export GET /api/v1/purchase-requests/export
func (h *RequestHandler) Export(c *gin.Context) {
	f, filename, err := h.svc.ExportRegister(c.Request.Context())
	if err != nil {
		InternalError(c, "export register: "+err.Error())
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}

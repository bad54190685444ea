package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/lifecycle"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/repository"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/service"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/storage"
)

// Handlers bundles the purchasing HTTP handlers.
type Handlers struct {
	Request   *RequestHandler
	Order     *OrderHandler
	Invoice   *InvoiceHandler
	Vendor    *VendorHandler
	Inventory *InventoryHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Request:   NewRequestHandler(services.Request, services.Order),
		Order:     NewOrderHandler(services.Order, services.Invoice),
		Invoice:   NewInvoiceHandler(services.Invoice),
		Vendor:    NewVendorHandler(services.Vendor),
		Inventory: NewInventoryHandler(services.Inventory),
	}
}

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// respondError maps service errors onto the response envelope. Invalid
// transitions come back as conflicts so clients can distinguish them
// from plain validation failures.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "record not found")
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		Conflict(c, err.Error())
	case errors.Is(err, lifecycle.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, storage.ErrUnavailable):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetUserName is the display name recorded as reviewer or approver.
func GetUserName(c *gin.Context) string {
	userName, _ := c.Get("user_name")
	if name, ok := userName.(string); ok && name != "" {
		return name
	}
	return GetUserID(c)
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

func listPagination(page, pageSize int, total int64) *Pagination {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      int(total),
		TotalPages: totalPages,
	}
}

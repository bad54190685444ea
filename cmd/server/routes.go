package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/config"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/middleware"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/planner"
	"github.com/AnnamlProject/AN-NAML-RCA-Purchases-Module/internal/purchasing/handler"
)

func registerRoutes(r *gin.Engine, h *handler.Handlers, plannerH *planner.Handler, cfg *config.Config) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": Version})
	})

	v1 := r.Group("/api/v1")

	// Dev login: mints a JWT for the given identity. There is no user
	// store; identity lives entirely in the token.
	v1.POST("/auth/token", issueToken(cfg.JWT))

	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		requests := authorized.Group("/purchase-requests")
		{
			requests.GET("", h.Request.List)
			requests.POST("", h.Request.Create)
			requests.GET("/export", h.Request.Export)
			requests.GET("/:id", h.Request.Get)
			requests.PUT("/:id", h.Request.Update)
			requests.DELETE("/:id", h.Request.Delete)
			requests.POST("/:id/submit", h.Request.Submit)
			requests.POST("/:id/review", h.Request.Review)
			requests.POST("/:id/approve", h.Request.Approve)
			requests.POST("/:id/reject", h.Request.Reject)
			requests.POST("/:id/resubmit", h.Request.Resubmit)
			requests.POST("/:id/items/:itemId/photo", h.Request.UploadItemPhoto)
			requests.POST("/:id/orders", h.Request.CreateOrder)
		}

		orders := authorized.Group("/purchase-orders")
		{
			orders.GET("", h.Order.List)
			orders.GET("/:id", h.Order.Get)
			orders.PUT("/:id", h.Order.Update)
			orders.POST("/:id/process", h.Order.Process)
			orders.POST("/:id/cancel", h.Order.Cancel)
			orders.POST("/:id/invoices", h.Order.CreateInvoice)
		}

		invoices := authorized.Group("/purchase-invoices")
		{
			invoices.GET("", h.Invoice.List)
			invoices.GET("/:id", h.Invoice.Get)
			invoices.PUT("/:id", h.Invoice.Update)
			invoices.POST("/:id/process", h.Invoice.Process)
			invoices.POST("/:id/pay", h.Invoice.Pay)
			invoices.POST("/:id/overdue", h.Invoice.MarkOverdue)
			invoices.POST("/:id/cancel", h.Invoice.Cancel)
		}

		vendors := authorized.Group("/vendors")
		{
			vendors.GET("", h.Vendor.List)
			vendors.POST("", h.Vendor.Create)
			vendors.GET("/:id", h.Vendor.Get)
			vendors.PUT("/:id", h.Vendor.Update)
		}

		inventory := authorized.Group("/inventory-items")
		{
			inventory.GET("", h.Inventory.List)
			inventory.POST("", h.Inventory.Create)
			inventory.GET("/:id", h.Inventory.Get)
			inventory.PUT("/:id", h.Inventory.Update)
		}

		authorized.POST("/planner/generate", plannerH.Generate)
	}
}

type tokenRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func issueToken(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 40000, "message": "invalid payload: " + err.Error()})
			return
		}

		now := time.Now()
		claims := middleware.JWTClaims{
			UserID: req.UserID,
			Name:   req.Name,
			Email:  req.Email,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   req.UserID,
				Issuer:    cfg.Issuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTokenExpire)),
				ID:        uuid.New().String(),
			},
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.Secret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 50000, "message": "sign token: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"code":    0,
			"message": "success",
			"data": gin.H{
				"access_token": signed,
				"token_type":   "Bearer",
				"expires_in":   int(cfg.AccessTokenExpire.Seconds()),
			},
		})
	}
}

package planner

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Handler serves the plan generation endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type generateRequest struct {
	Guidelines string `json:"guidelines" binding:"required"`
}

type generateResponse struct {
	Plan string `json:"plan"`
}

// Generate POST /api/v1/planner/generate
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 40000, "message": "invalid payload: " + err.Error()})
		return
	}

	plan, err := h.svc.Generate(c.Request.Context(), req.Guidelines)
	if err != nil {
		switch {
		case errors.Is(err, ErrBusy):
			c.JSON(409, gin.H{"code": 40900, "message": err.Error()})
		case errors.Is(err, ErrNotConfigured):
			c.JSON(503, gin.H{"code": 50300, "message": err.Error()})
		default:
			c.JSON(500, gin.H{"code": 50000, "message": err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    generateResponse{Plan: plan},
	})
}

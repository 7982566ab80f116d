package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"realestate-backend/internal/domains/property/model"
	"realestate-backend/internal/domains/property/service"
	"realestate-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// OwnerHandler handles /owners
type OwnerHandler struct {
	service service.Service
}

func NewOwnerHandler(svc service.Service) *OwnerHandler {
	return &OwnerHandler{service: svc}
}

// CreateOwner handles POST /owners
func (h *OwnerHandler) CreateOwner(c *gin.Context) {
	var req CreateOwnerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	owner, err := h.service.CreateOwner(c.Request.Context(), req.ToInput())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, CreateOwnerResponse{ID: owner.ID})
}

// GetOwner handles GET /owners/:id
func (h *OwnerHandler) GetOwner(c *gin.Context) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(c, model.NewInvalidInput(model.CodeInvalidOwner, fmt.Sprintf("Invalid owner id: %s", raw)))
		return
	}

	owner, err := h.service.GetOwner(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, owner)
}

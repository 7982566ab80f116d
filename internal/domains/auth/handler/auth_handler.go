package handler

import (
	"errors"
	"net/http"

	"realestate-backend/internal/domains/auth"
	"realestate-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r TokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 200)),
	)
}

type AuthHandler struct {
	tokens *auth.TokenService
}

func NewAuthHandler(tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// IssueToken handles POST /auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", err)
		return
	}

	res, err := h.tokens.IssueToken(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid username or password")
			return
		}
		response.InternalServerError(c, "Failed to issue token")
		return
	}

	response.Success(c, http.StatusOK, res)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/geocrop/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/geocrop/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/geocrop/internal/pkg/httputil"
	"github.com/marcos-nsantos/geocrop/internal/usecase/auth"
)

type AuthHandler struct {
	authSvc AuthService
}

func NewAuthHandler(authSvc AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login authenticates the operator and returns a bearer token.
//
//	POST /auth/login {name, password}
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	token, operator, err := h.authSvc.Login(c.Request.Context(), auth.LoginInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleDomainError(c, err)
		return
	}

	httputil.OK(c, response.LoginResponse{
		Operator:    response.OperatorResponse{ID: operator.ID, Name: operator.Name},
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
	})
}

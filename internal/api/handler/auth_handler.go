package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jtrack/tracking-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type tokenRequest struct {
	ClientID     string `json:"clientId"     validate:"required"`
	ClientSecret string `json:"clientSecret" validate:"required"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Token exchanges client credentials for a bearer token.
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, expiresIn, err := h.authService.IssueToken(c.Request().Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token, ExpiresIn: expiresIn})
}

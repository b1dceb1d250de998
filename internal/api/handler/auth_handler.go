package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-bff/internal/api/middleware"
	"github.com/inkpost/blog-bff/internal/core/domain"
	"github.com/inkpost/blog-bff/internal/core/ports"
	"github.com/inkpost/blog-bff/internal/core/service"
)

type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=15"`
	Password string `json:"password" validate:"required,min=6,max=30"`
}

type loginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login authenticates a user and issues an opaque session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  ports.Envelope
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, ports.Fail(service.MsgUserNotFound))
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, ports.Fail(service.MsgWrongPassword))
		}
		return err
	}

	return c.JSON(http.StatusOK, ports.OK(loginResult{Token: token, User: user}))
}

// Logout destroys the caller's session. Idempotent: logging out twice, or
// with no token at all, still answers 204.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.TokenKey).(string)
	if token != "" {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}
	return c.NoContent(http.StatusNoContent)
}

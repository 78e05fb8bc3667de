package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apiclient"
	"github.com/hms/hms/internal/platform/session"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/session", h.Current)
	api.POST("/session/login", h.Login)
	api.POST("/session/signup", h.Signup)
	api.POST("/session/logout", h.Logout)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.Login(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(apiclient.HTTPStatus(err), apiclient.Describe(err))
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.Signup(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(apiclient.HTTPStatus(err), apiclient.Describe(err))
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.svc.Logout(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Current(c echo.Context) error {
	claims, err := h.svc.Current(c.Request().Context())
	if errors.Is(err, session.ErrNoSession) {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id":    claims.Subject,
		"role":       claims.Role,
		"email":      claims.Email,
		"expires_at": claims.ExpiresAt,
	})
}

package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/KingDev1404/freshbulk/internal/logging"
	"github.com/KingDev1404/freshbulk/internal/models"
	"github.com/KingDev1404/freshbulk/internal/mykafka"
	"github.com/KingDev1404/freshbulk/internal/service"
	"github.com/KingDev1404/freshbulk/internal/tokens"
	"github.com/KingDev1404/freshbulk/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func (h *AuthHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *AuthHTTP) setSessionCookies(c echo.Context, res *service.LoginResult) {
	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, res.AccessToken, "/", res.AccessExp))
	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookie, res.RefreshToken, "/", res.RefreshExp))
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(l, "register_error", err)
	}

	h.publish(c, map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(l, "login_error", err)
	}

	h.setSessionCookies(c, res)

	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"user":     res.User,
		"is_admin": res.User.Role == models.RoleAdmin,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	cookie, err := c.Cookie(tokens.RefreshCookie)
	if err != nil || cookie.Value == "" {
		l.Warn("refresh_error", "status", 401, "reason", "missing refresh token")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	res, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
		c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/"))
		return respondError(l, "refresh_error", err)
	}

	h.setSessionCookies(c, res)

	l.Info("refresh_success", "user_id", res.User.ID)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if cookie, err := c.Cookie(tokens.RefreshCookie); err == nil && cookie.Value != "" {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			return respondError(l, "logout_error", err)
		}
	}

	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/"))

	l.Info("logout_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/KingDev1404/freshbulk/internal/service"
)

// respondError maps service sentinel errors to the HTTP taxonomy:
// validation 400, unauthorized 401, forbidden 403, not found 404,
// anything else 500. The message lands in the JSON {message} body.
func respondError(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		l.Warn(event, "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		l.Warn(event, "status", 403, "error", err)
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func pageMeta(page, limit, offset int, total int64) map[string]any {
	return map[string]any{
		"page":        page,
		"size":        limit,
		"total":       total,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
		"has_prev":    page > 1,
		"has_next":    int64(offset+limit) < total,
	}
}

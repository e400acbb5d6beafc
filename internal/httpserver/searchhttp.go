package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/KingDev1404/freshbulk/internal/logging"
	"github.com/KingDev1404/freshbulk/internal/service/search"
	"github.com/KingDev1404/freshbulk/internal/util"
)

type SearchHTTP struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.products")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_error", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	if h.ES == nil {
		l.Warn("search_error", "status", 503, "reason", "search backend not configured")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := search.Search(ctx, h.ES, h.Index, q, from, limit)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}

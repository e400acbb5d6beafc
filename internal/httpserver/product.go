package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/KingDev1404/freshbulk/internal/logging"
	"github.com/KingDev1404/freshbulk/internal/middleware/auth"
	"github.com/KingDev1404/freshbulk/internal/models"
	"github.com/KingDev1404/freshbulk/internal/mykafka"
	"github.com/KingDev1404/freshbulk/internal/service"
	"github.com/KingDev1404/freshbulk/internal/service/search"
	"github.com/KingDev1404/freshbulk/internal/transport"
	"github.com/KingDev1404/freshbulk/internal/util"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

func (h *ProductHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["product_id"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *ProductHTTP) indexProduct(c echo.Context, p *models.Product) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexProduct(ctx, h.ES, h.Index, p); err != nil {
		logging.FromContext(c.Request().Context()).Error("es index failed", "product_id", p.ID, "error", err)
	}
}

func (h *ProductHTTP) removeFromIndex(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.RemoveProduct(ctx, h.ES, h.Index, id); err != nil {
		logging.FromContext(c.Request().Context()).Error("es remove failed", "product_id", id, "error", err)
	}
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.GetProduct(ctx, uint(id))
	if err != nil {
		return respondError(l, "get_product_error", err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetProducts(ctx, offset, limit)
	if err != nil {
		return respondError(l, "get_products_error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": pageMeta(page, limit, offset, total),
	})
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	ident, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, ident, req)
	if err != nil {
		return respondError(l, "create_product_error", err)
	}

	h.indexProduct(c, product)
	h.publish(c, map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
		"price":      product.Price.String(),
	})

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	ident, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.UpdateProduct(ctx, ident, uint(id), req)
	if err != nil {
		return respondError(l, "update_product_error", err)
	}

	h.indexProduct(c, product)
	h.publish(c, map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
		"price":      product.Price.String(),
	})

	l.Info("update_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	ident, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.DeleteProduct(ctx, ident, uint(id)); err != nil {
		return respondError(l, "delete_product_error", err)
	}

	h.removeFromIndex(c, uint(id))
	h.publish(c, map[string]any{
		"type":       "product_deleted",
		"product_id": uint(id),
	})

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

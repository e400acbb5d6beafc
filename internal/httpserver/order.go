package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/KingDev1404/freshbulk/internal/logging"
	"github.com/KingDev1404/freshbulk/internal/middleware/auth"
	"github.com/KingDev1404/freshbulk/internal/mykafka"
	"github.com/KingDev1404/freshbulk/internal/service"
	"github.com/KingDev1404/freshbulk/internal/transport"
	"github.com/KingDev1404/freshbulk/internal/util"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["order_id"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	ident, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, ident, req)
	if err != nil {
		return respondError(l, "create_order_error", err)
	}

	h.publish(c, map[string]any{
		"type":     "order_created",
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.TotalAmount.String(),
	})

	l.Info("create_order_success", "order_id", order.ID, "total", order.TotalAmount.String())
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	ident, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.GetOrder(ctx, ident, uint(id))
	if err != nil {
		return respondError(l, "get_order_error", err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	ident, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.ListOrders(ctx, ident, offset, limit)
	if err != nil {
		return respondError(l, "get_orders_error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": pageMeta(page, limit, offset, total),
	})
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	ident, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, ident, uint(id), req.Status)
	if err != nil {
		return respondError(l, "update_status_error", err)
	}

	h.publish(c, map[string]any{
		"type":     "order_status_updated",
		"order_id": order.ID,
		"status":   order.Status,
	})

	l.Info("update_status_success", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, order)
}

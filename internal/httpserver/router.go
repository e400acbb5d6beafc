package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/KingDev1404/freshbulk/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	OrderHandler   *OrderHTTP
	SearchHandler  *SearchHTTP
	AuthMW         *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/refresh", d.AuthHandler.Refresh)
	v1.POST("/logout", d.AuthHandler.Logout)

	// Catalog reads and search are public; anonymous callers may browse.
	v1.GET("/products", d.ProductHandler.GetProducts)
	v1.GET("/products/:id", d.ProductHandler.GetProduct)
	v1.GET("/search", d.SearchHandler.Search)

	admin := v1.Group("", d.AuthMW.RequireAdmin)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PUT("/products/:id", d.ProductHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	orders := v1.Group("/orders", d.AuthMW.RequireAuth)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/:id", d.OrderHandler.GetOrder)

	// PUT and PATCH carry identical semantics for status updates.
	adminOrders := v1.Group("/orders", d.AuthMW.RequireAdmin)
	adminOrders.PUT("/:id", d.OrderHandler.UpdateStatus)
	adminOrders.PATCH("/:id", d.OrderHandler.UpdateStatus)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/dashboard"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/metrics"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/service"
)

// maxUploadMemory caps the multipart form held in memory; larger images
// spill to temp files.
const maxUploadMemory = 8 << 20

type Deps struct {
	ServiceName string
	Products    *service.ProductService
	Categories  *service.CategoryService
	Orders      *service.OrderService
	Sales       *dashboard.SalesEngine
	Processor   OrderProcessor
	Metrics     *metrics.Registry
}

// NewRouter wires every route under /api/v1. /health is also served at
// the root for Consul checks.
func NewRouter(d Deps) *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = maxUploadMemory

	if d.Metrics != nil {
		router.Use(d.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": d.ServiceName})
	}
	router.GET("/health", health)

	products := NewProductHandler(d.Products)
	categories := NewCategoryHandler(d.Categories)
	orders := NewOrderHandler(d.Orders, d.Processor)
	sales := NewDashboardHandler(d.Sales)

	v1 := router.Group("/api/v1")
	v1.GET("/health", health)

	v1.GET("/products", products.ListProducts)
	v1.POST("/products", products.CreateProduct)
	v1.POST("/products/with-image", products.CreateProductWithImage)
	v1.GET("/products/:id", products.GetProduct)
	v1.PUT("/products/:id", products.UpdateProduct)
	v1.DELETE("/products/:id", products.DeleteProduct)

	v1.GET("/categories", categories.ListCategories)
	v1.POST("/categories", categories.CreateCategory)
	v1.GET("/categories/:id", categories.GetCategory)
	v1.PUT("/categories/:id", categories.UpdateCategory)
	v1.DELETE("/categories/:id", categories.DeleteCategory)

	v1.GET("/orders", orders.ListOrders)
	v1.POST("/orders", orders.CreateOrder)
	v1.GET("/orders/:id", orders.GetOrder)
	v1.PUT("/orders/:id", orders.UpdateOrder)
	v1.DELETE("/orders/:id", orders.DeleteOrder)
	v1.PATCH("/orders/:id/status", orders.UpdateOrderStatus)
	v1.POST("/orders/:id/process", orders.ProcessOrder)

	v1.GET("/dashboard/sales", sales.GetSales)

	return router
}

package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/processor"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/service"
)

// OrderProcessor runs the processing workflow, in-process or remotely.
type OrderProcessor interface {
	Process(ctx context.Context, orderID string) (processor.Response, error)
}

type OrderHandler struct {
	orders    *service.OrderService
	processor OrderProcessor
}

// NewOrderHandler builds the handler. proc may be nil, in which case the
// process endpoint answers 503.
func NewOrderHandler(orders *service.OrderService, proc OrderProcessor) *OrderHandler {
	return &OrderHandler{
		orders:    orders,
		processor: proc,
	}
}

// ListOrders returns all orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder returns a single order
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// CreateOrder creates a new order priced from the current catalog
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// UpdateOrder replaces an order's date and products
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus updates the order status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
}

// DeleteOrder removes an order
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// ProcessOrder runs the workflow and relays its status code and body
func (h *OrderHandler) ProcessOrder(c *gin.Context) {
	if h.processor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "order processor not configured"})
		return
	}

	id := c.Param("id")
	log.Printf("📞 Processing order %s", id)
	resp, err := h.processor.Process(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Order processor failed for %s: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.Data(resp.StatusCode, "application/json; charset=utf-8", []byte(resp.Body))
}

package processor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

func TestGenerateReport(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	order := OrderDetails{OrderID: "x", Date: day, Total: 90, ProductIDs: []string{a.Hex(), b.Hex(), a.Hex()}}
	window := []models.Order{
		{Total: 100, ProductIDs: []primitive.ObjectID{a}},
		{Total: 200, ProductIDs: []primitive.ObjectID{a, b, b}},
	}

	report := GenerateReport(order, window)

	assert.Equal(t, CurrentOrder{TotalItems: 3, AverageItemPrice: 30, OrderDate: day}, report.CurrentOrder)
	assert.Equal(t, 2, report.Trends.TotalOrders)
	assert.Equal(t, 300.0, report.Trends.TotalRevenue)
	assert.Equal(t, 150.0, report.Trends.AvgOrderValue)
	assert.Equal(t, map[string]int{a.Hex(): 2, b.Hex(): 1}, report.Trends.ProductsSold)
}

func TestGenerateReport_EmptyOrderAndWindow(t *testing.T) {
	report := GenerateReport(OrderDetails{Total: 0}, nil)

	assert.Zero(t, report.CurrentOrder.TotalItems)
	assert.Zero(t, report.CurrentOrder.AverageItemPrice)
	assert.Zero(t, report.Trends.TotalOrders)
	assert.Zero(t, report.Trends.AvgOrderValue)
	assert.NotNil(t, report.Trends.ProductsSold)
	assert.Empty(t, report.Trends.ProductsSold)
}

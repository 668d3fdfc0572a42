package processor

import (
	"time"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

// reportWindow is how far back the trend figures look.
const reportWindow = 30 * 24 * time.Hour

// OrderDetails is the order as reported by the workflow.
type OrderDetails struct {
	OrderID      string     `json:"order_id"`
	Date         time.Time  `json:"date"`
	Total        float64    `json:"total"`
	ProductIDs   []string   `json:"product_ids"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	Status       string     `json:"status,omitempty"`
	CustomerName string     `json:"customer_name,omitempty"`
}

func NewOrderDetails(o *models.Order) OrderDetails {
	d := OrderDetails{
		OrderID:      o.ID.Hex(),
		Date:         o.Date,
		Total:        o.Total,
		ProductIDs:   models.HexIDs(o.ProductIDs),
		Status:       o.Status,
		CustomerName: o.CustomerName,
	}
	if !o.CreatedAt.IsZero() {
		created := o.CreatedAt
		d.CreatedAt = &created
	}
	return d
}

type CurrentOrder struct {
	TotalItems       int       `json:"total_items"`
	AverageItemPrice float64   `json:"average_item_price"`
	OrderDate        time.Time `json:"order_date"`
}

type Trends struct {
	TotalOrders   int            `json:"total_orders"`
	TotalRevenue  float64        `json:"total_revenue"`
	AvgOrderValue float64        `json:"avg_order_value"`
	ProductsSold  map[string]int `json:"products_sold"`
}

type SalesReport struct {
	CurrentOrder CurrentOrder `json:"current_order"`
	Trends       Trends       `json:"trends"`
}

// GenerateReport summarises the order and the trailing window of orders.
// ProductsSold counts, per product, the window orders that contain it; a
// product listed twice in one order counts once.
func GenerateReport(order OrderDetails, window []models.Order) SalesReport {
	current := CurrentOrder{
		TotalItems: len(order.ProductIDs),
		OrderDate:  order.Date,
	}
	if current.TotalItems > 0 {
		current.AverageItemPrice = order.Total / float64(current.TotalItems)
	}

	trends := Trends{ProductsSold: make(map[string]int)}
	for _, o := range window {
		trends.TotalOrders++
		trends.TotalRevenue += o.Total

		seen := make(map[string]bool, len(o.ProductIDs))
		for _, id := range o.ProductIDs {
			hex := id.Hex()
			if seen[hex] {
				continue
			}
			seen[hex] = true
			trends.ProductsSold[hex]++
		}
	}
	if trends.TotalOrders > 0 {
		trends.AvgOrderValue = trends.TotalRevenue / float64(trends.TotalOrders)
	}

	return SalesReport{CurrentOrder: current, Trends: trends}
}

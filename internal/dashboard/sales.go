// Package dashboard computes sales metrics over the orders collection.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

// ProductResolver narrows product/category filters to concrete product ids.
type ProductResolver interface {
	FindIDs(ctx context.Context, productIDs, categoryIDs []primitive.ObjectID) ([]primitive.ObjectID, error)
}

// OrderAggregator runs aggregation pipelines over orders.
type OrderAggregator interface {
	Aggregate(ctx context.Context, pipeline mongo.Pipeline, results interface{}) error
}

// SalesQuery filters the dashboard. Zero values mean "no filter"; both
// date bounds are inclusive.
type SalesQuery struct {
	Start       *time.Time
	End         *time.Time
	CategoryIDs []string
	ProductIDs  []string
}

type Metrics struct {
	TotalOrders   int64   `json:"total_orders" bson:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue" bson:"total_revenue"`
	AvgOrderValue float64 `json:"avg_order_value" bson:"avg_order_value"`
	MinOrderValue float64 `json:"min_order_value" bson:"min_order_value"`
	MaxOrderValue float64 `json:"max_order_value" bson:"max_order_value"`
}

type DailySales struct {
	Date    time.Time `json:"date" bson:"date"`
	Revenue float64   `json:"revenue" bson:"revenue"`
	Orders  int64     `json:"orders" bson:"orders"`
}

type TopProduct struct {
	ProductID    string  `json:"product_id" bson:"product_id"`
	Name         string  `json:"name" bson:"name"`
	OrderCount   int64   `json:"order_count" bson:"order_count"`
	TotalRevenue float64 `json:"total_revenue" bson:"total_revenue"`
}

type SalesReport struct {
	Metrics     Metrics      `json:"metrics"`
	TimeSeries  []DailySales `json:"time_series"`
	TopProducts []TopProduct `json:"top_products"`
}

func emptyReport() *SalesReport {
	return &SalesReport{TimeSeries: []DailySales{}, TopProducts: []TopProduct{}}
}

type SalesEngine struct {
	products ProductResolver
	orders   OrderAggregator
}

func NewSalesEngine(products ProductResolver, orders OrderAggregator) *SalesEngine {
	return &SalesEngine{products: products, orders: orders}
}

// Sales runs the summary, daily series and top products pipelines
// concurrently. Any failure fails the whole report.
func (e *SalesEngine) Sales(ctx context.Context, q SalesQuery) (*SalesReport, error) {
	productIDs, err := models.ParseIDs(q.ProductIDs)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := models.ParseIDs(q.CategoryIDs)
	if err != nil {
		return nil, err
	}

	var qualifying []primitive.ObjectID
	if len(productIDs) > 0 || len(categoryIDs) > 0 {
		qualifying, err = e.products.FindIDs(ctx, productIDs, categoryIDs)
		if err != nil {
			return nil, aggregationError(err)
		}
		if len(qualifying) == 0 {
			return emptyReport(), nil
		}
	}

	match := buildMatch(q.Start, q.End, qualifying)
	report := emptyReport()

	var summary []Metrics
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.orders.Aggregate(gctx, summaryPipeline(match), &summary)
	})
	g.Go(func() error {
		return e.orders.Aggregate(gctx, timeSeriesPipeline(match), &report.TimeSeries)
	})
	g.Go(func() error {
		return e.orders.Aggregate(gctx, topProductsPipeline(match, qualifying), &report.TopProducts)
	})
	if err := g.Wait(); err != nil {
		return nil, aggregationError(err)
	}

	if len(summary) > 0 {
		report.Metrics = summary[0]
	}
	if report.TimeSeries == nil {
		report.TimeSeries = []DailySales{}
	}
	if report.TopProducts == nil {
		report.TopProducts = []TopProduct{}
	}
	return report, nil
}

func aggregationError(err error) error {
	if errors.Is(err, models.ErrStoreFailure) {
		return fmt.Errorf("aggregation failed: %w", err)
	}
	return fmt.Errorf("%w: aggregation failed: %w", models.ErrStoreFailure, err)
}

// Package processor runs the order processing workflow: load the order,
// build a sales report over recent orders and compose notifications.
package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

const (
	MessageProcessed = "Pedido processado com sucesso"
	MessagePartial   = "Pedido encontrado, mas houve erro no processamento adicional"
)

var ErrMissingOrderID = errors.New("order_id não fornecido no evento")

// Outcome labels, as reported to a Recorder.
const (
	OutcomeProcessed = "processed"
	OutcomePartial   = "partial"
	OutcomeNotFound  = "not_found"
	OutcomeFailed    = "failed"
)

// Event is the trigger payload.
type Event struct {
	OrderID string `json:"order_id"`
}

// Response mirrors the serverless proxy response: the body is a JSON string.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type OrderStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindSince(ctx context.Context, since time.Time) ([]models.Order, error)
	MarkProcessed(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

// Recorder observes workflow outcomes.
type Recorder interface {
	ObserveWorkflow(outcome string, notifications []Notification)
}

type Option func(*Processor)

// WithClock replaces the clock used for the report window and the
// processed stamp.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

func WithRecorder(r Recorder) Option {
	return func(p *Processor) { p.recorder = r }
}

type Processor struct {
	orders   OrderStore
	now      func() time.Time
	recorder Recorder
}

func New(orders OrderStore, opts ...Option) *Processor {
	p := &Processor{
		orders: orders,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of one workflow run.
type Result struct {
	StatusCode    int
	Order         *OrderDetails
	Report        *SalesReport
	Notifications []Notification
	// Err is the failure behind a non-200 status or a partial success.
	Err error
}

func (r *Result) Outcome() string {
	switch {
	case r.StatusCode == http.StatusNotFound:
		return OutcomeNotFound
	case r.StatusCode != http.StatusOK:
		return OutcomeFailed
	case r.Err != nil:
		return OutcomePartial
	default:
		return OutcomeProcessed
	}
}

type successBody struct {
	Message       string         `json:"message"`
	OrderDetails  *OrderDetails  `json:"order_details"`
	SalesReport   *SalesReport   `json:"sales_report"`
	Notifications []Notification `json:"notifications"`
}

type partialBody struct {
	Message      string        `json:"message"`
	ErrorDetails string        `json:"error_details"`
	OrderDetails *OrderDetails `json:"order_details"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Response renders the result in the trigger's response shape.
func (r *Result) Response() Response {
	var body interface{}
	switch {
	case r.StatusCode == http.StatusNotFound:
		body = errorBody{Error: fmt.Sprintf("Pedido %s não encontrado", r.Order.OrderID)}
	case r.StatusCode != http.StatusOK:
		body = errorBody{Error: r.Err.Error()}
	case r.Err != nil:
		body = partialBody{Message: MessagePartial, ErrorDetails: r.Err.Error(), OrderDetails: r.Order}
	default:
		body = successBody{Message: MessageProcessed, OrderDetails: r.Order, SalesReport: r.Report, Notifications: r.Notifications}
	}

	data, err := json.Marshal(body)
	if err != nil {
		data, _ = json.Marshal(errorBody{Error: err.Error()})
		return Response{StatusCode: http.StatusInternalServerError, Body: string(data)}
	}
	return Response{StatusCode: r.StatusCode, Body: string(data)}
}

// Handle is the serverless entry point. Failures are reported in the
// response, never as an invocation error.
func (p *Processor) Handle(ctx context.Context, event Event) (Response, error) {
	return p.ProcessOrder(ctx, event.OrderID).Response(), nil
}

// ProcessOrder runs the workflow for one order. Once the order is found,
// a failure in the later steps still yields a 200 with the error attached.
func (p *Processor) ProcessOrder(ctx context.Context, orderID string) *Result {
	result := p.process(ctx, orderID)
	if p.recorder != nil {
		p.recorder.ObserveWorkflow(result.Outcome(), result.Notifications)
	}
	return result
}

func (p *Processor) process(ctx context.Context, orderID string) *Result {
	log.Printf("📥 Processing order %q", orderID)

	if orderID == "" {
		return failed(ErrMissingOrderID)
	}
	id, err := models.ParseID(orderID)
	if err != nil {
		return failed(err)
	}

	order, err := p.orders.GetByID(ctx, id)
	if err != nil {
		return failed(err)
	}
	if order == nil {
		log.Printf("⚠️ Order %s not found", orderID)
		return &Result{
			StatusCode: http.StatusNotFound,
			Order:      &OrderDetails{OrderID: orderID},
			Err:        fmt.Errorf("order %s: %w", orderID, models.ErrNotFound),
		}
	}

	details := NewOrderDetails(order)
	result := &Result{StatusCode: http.StatusOK, Order: &details}

	now := p.now()
	window, err := p.orders.FindSince(ctx, now.Add(-reportWindow))
	if err != nil {
		log.Printf("❌ Sales report for order %s failed: %v", orderID, err)
		result.Err = err
		return result
	}

	report := GenerateReport(details, window)
	notifications := ComposeNotifications(details, report)

	if err := p.orders.MarkProcessed(ctx, id, now); err != nil {
		log.Printf("❌ Could not mark order %s processed: %v", orderID, err)
		result.Err = err
		return result
	}

	result.Report = &report
	result.Notifications = notifications
	log.Printf("✅ Order %s processed, %d notifications", orderID, len(notifications))
	return result
}

func failed(err error) *Result {
	log.Printf("❌ Order processing failed: %v", err)
	return &Result{StatusCode: http.StatusInternalServerError, Err: err}
}

// Process runs the workflow in-process and renders its response.
func (p *Processor) Process(ctx context.Context, orderID string) (Response, error) {
	return p.Handle(ctx, Event{OrderID: orderID})
}

// Package storetest provides in-memory stores with the same behaviour as the
// MongoDB repositories, for tests that should not need a database.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

// Calls records every mutating call, in order, across stores sharing it.
type Calls struct {
	mu  sync.Mutex
	log []string
}

func (c *Calls) add(format string, args ...interface{}) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = append(c.log, fmt.Sprintf(format, args...))
}

func (c *Calls) List() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.log...)
}

type Products struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.Product
	Calls *Calls
	// Err, when set, is returned by every call.
	Err error
}

func NewProducts(products ...models.Product) *Products {
	s := &Products{items: make(map[primitive.ObjectID]models.Product)}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.items[p.ID] = p
	}
	return s
}

func (s *Products) GetAll(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *Products) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Products) FindIDs(ctx context.Context, productIDs, categoryIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []primitive.ObjectID
	for id, p := range s.items {
		if len(productIDs) > 0 && !contains(productIDs, id) {
			continue
		}
		if len(categoryIDs) > 0 && !intersects(p.CategoryIDs, categoryIDs) {
			continue
		}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hex() < out[j].Hex() })
	return out, nil
}

func (s *Products) Create(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CategoryIDs == nil {
		p.CategoryIDs = []primitive.ObjectID{}
	}
	p.CreatedAt = time.Now().UTC()
	s.items[p.ID] = *p
	s.Calls.add("products.create %s", p.ID.Hex())
	return nil
}

func (s *Products) Update(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.items[p.ID]
	if !ok {
		return fmt.Errorf("product %s: %w", p.ID.Hex(), models.ErrNotFound)
	}
	p.CreatedAt = existing.CreatedAt
	s.items[p.ID] = *p
	s.Calls.add("products.update %s", p.ID.Hex())
	return nil
}

func (s *Products) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("product %s: %w", id.Hex(), models.ErrNotFound)
	}
	delete(s.items, id)
	s.Calls.add("products.delete %s", id.Hex())
	return nil
}

func (s *Products) PullCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var matched int64
	for id, p := range s.items {
		if !contains(p.CategoryIDs, categoryID) {
			continue
		}
		kept := make([]primitive.ObjectID, 0, len(p.CategoryIDs))
		for _, c := range p.CategoryIDs {
			if c != categoryID {
				kept = append(kept, c)
			}
		}
		p.CategoryIDs = kept
		s.items[id] = p
		matched++
	}
	s.Calls.add("products.pull %s", categoryID.Hex())
	return matched, nil
}

type Categories struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.Category
	Calls *Calls
	Err   error
}

func NewCategories(categories ...models.Category) *Categories {
	s := &Categories{items: make(map[primitive.ObjectID]models.Category)}
	for _, c := range categories {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		s.items[c.ID] = c
	}
	return s
}

func (s *Categories) GetAll(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.Category, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s *Categories) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *Categories) Create(ctx context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = time.Now().UTC()
	s.items[c.ID] = *c
	s.Calls.add("categories.create %s", c.ID.Hex())
	return nil
}

func (s *Categories) Update(ctx context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.items[c.ID]
	if !ok {
		return fmt.Errorf("category %s: %w", c.ID.Hex(), models.ErrNotFound)
	}
	c.CreatedAt = existing.CreatedAt
	s.items[c.ID] = *c
	s.Calls.add("categories.update %s", c.ID.Hex())
	return nil
}

func (s *Categories) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("category %s: %w", id.Hex(), models.ErrNotFound)
	}
	delete(s.items, id)
	s.Calls.add("categories.delete %s", id.Hex())
	return nil
}

type Orders struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.Order
	Calls *Calls
	Err   error
	// WindowErr fails only FindSince, to exercise the workflow's partial path.
	WindowErr error
}

func NewOrders(orders ...models.Order) *Orders {
	s := &Orders{items: make(map[primitive.ObjectID]models.Order)}
	for _, o := range orders {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		s.items[o.ID] = o
	}
	return s
}

func (s *Orders) GetAll(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.Order, 0, len(s.items))
	for _, o := range s.items {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() > out[j].ID.Hex() })
	return out, nil
}

func (s *Orders) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *Orders) FindSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.WindowErr != nil {
		return nil, s.WindowErr
	}
	out := make([]models.Order, 0)
	for _, o := range s.items {
		if !o.Date.Before(since) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Orders) Create(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	if o.ProductIDs == nil {
		o.ProductIDs = []primitive.ObjectID{}
	}
	o.CreatedAt = time.Now().UTC()
	s.items[o.ID] = *o
	s.Calls.add("orders.create %s", o.ID.Hex())
	return nil
}

func (s *Orders) Update(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.items[o.ID]
	if !ok {
		return fmt.Errorf("order %s: %w", o.ID.Hex(), models.ErrNotFound)
	}
	if existing.Processed() {
		return fmt.Errorf("order %s: %w", o.ID.Hex(), models.ErrOrderProcessed)
	}
	existing.Date = o.Date
	existing.ProductIDs = o.ProductIDs
	existing.Total = o.Total
	if o.Status != "" {
		existing.Status = o.Status
	}
	if o.CustomerName != "" {
		existing.CustomerName = o.CustomerName
	}
	s.items[o.ID] = existing
	s.Calls.add("orders.update %s", o.ID.Hex())
	return nil
}

func (s *Orders) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	o, ok := s.items[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id.Hex(), models.ErrNotFound)
	}
	o.Status = status
	s.items[id] = o
	s.Calls.add("orders.status %s %s", id.Hex(), status)
	return nil
}

func (s *Orders) MarkProcessed(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	o, ok := s.items[id]
	if !ok || o.Processed() {
		return nil
	}
	o.ProcessedAt = &at
	s.items[id] = o
	s.Calls.add("orders.processed %s", id.Hex())
	return nil
}

func (s *Orders) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("order %s: %w", id.Hex(), models.ErrNotFound)
	}
	delete(s.items, id)
	s.Calls.add("orders.delete %s", id.Hex())
	return nil
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func intersects(a, b []primitive.ObjectID) bool {
	for _, x := range a {
		if contains(b, x) {
			return true
		}
	}
	return false
}

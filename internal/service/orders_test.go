package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/storetest"
)

type recordingPublisher struct {
	published []*models.Order
	err       error
}

func (p *recordingPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, order)
	return nil
}

func TestOrderCreate_ComputesTotalAndPublishes(t *testing.T) {
	a := models.Product{ID: primitive.NewObjectID(), Price: 100}
	b := models.Product{ID: primitive.NewObjectID(), Price: 50.5}
	pub := &recordingPublisher{}
	svc := NewOrderService(storetest.NewOrders(), storetest.NewProducts(a, b), pub)

	order, err := svc.Create(context.Background(), models.OrderRequest{
		Date:       time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		ProductIDs: []string{a.ID.Hex(), b.ID.Hex()},
	})
	require.NoError(t, err)
	assert.InDelta(t, 150.5, order.Total, 1e-9)
	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, pub.published, 1)
	assert.Equal(t, order.ID, pub.published[0].ID)
}

func TestOrderCreate_PublishFailureStillCreates(t *testing.T) {
	orders := storetest.NewOrders()
	svc := NewOrderService(orders, storetest.NewProducts(), &recordingPublisher{err: errors.New("broker down")})

	order, err := svc.Create(context.Background(), models.OrderRequest{Date: time.Now()})
	require.NoError(t, err)

	stored, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Zero(t, stored.Total)
}

func TestOrderCreate_UnknownProductStoresNothing(t *testing.T) {
	orders := storetest.NewOrders()
	svc := NewOrderService(orders, storetest.NewProducts(), nil)

	_, err := svc.Create(context.Background(), models.OrderRequest{
		Date: time.Now(), ProductIDs: []string{primitive.NewObjectID().Hex()},
	})
	assert.True(t, errors.Is(err, models.ErrInvalidReference))

	all, _ := orders.GetAll(context.Background())
	assert.Empty(t, all)
}

func TestOrderCreate_Validation(t *testing.T) {
	svc := NewOrderService(storetest.NewOrders(), storetest.NewProducts(), nil)

	_, err := svc.Create(context.Background(), models.OrderRequest{})
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = svc.Create(context.Background(), models.OrderRequest{Date: time.Now(), Status: "lost"})
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = svc.Create(context.Background(), models.OrderRequest{Date: time.Now(), ProductIDs: []string{"bad"}})
	assert.True(t, errors.Is(err, models.ErrMalformedID))
}

func TestOrderUpdate_RecomputesTotal(t *testing.T) {
	a := models.Product{ID: primitive.NewObjectID(), Price: 10}
	existing := models.Order{ID: primitive.NewObjectID(), Date: time.Now(), Total: 999, Status: models.StatusPending}
	svc := NewOrderService(storetest.NewOrders(existing), storetest.NewProducts(a), nil)

	order, err := svc.Update(context.Background(), existing.ID.Hex(), models.OrderRequest{
		Date: time.Now(), ProductIDs: []string{a.ID.Hex(), a.ID.Hex()},
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestOrderUpdate_ProcessedIsRejected(t *testing.T) {
	at := time.Now()
	existing := models.Order{ID: primitive.NewObjectID(), Date: at, ProcessedAt: &at}
	svc := NewOrderService(storetest.NewOrders(existing), storetest.NewProducts(), nil)

	_, err := svc.Update(context.Background(), existing.ID.Hex(), models.OrderRequest{Date: time.Now()})
	assert.True(t, errors.Is(err, models.ErrOrderProcessed))

	require.NoError(t, svc.UpdateStatus(context.Background(), existing.ID.Hex(), models.StatusShipped))
}

func TestOrderUpdate_Missing(t *testing.T) {
	svc := NewOrderService(storetest.NewOrders(), storetest.NewProducts(), nil)

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), models.OrderRequest{Date: time.Now()})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestOrderUpdateStatus(t *testing.T) {
	existing := models.Order{ID: primitive.NewObjectID(), Date: time.Now(), Status: models.StatusPending}
	orders := storetest.NewOrders(existing)
	svc := NewOrderService(orders, storetest.NewProducts(), nil)

	require.NoError(t, svc.UpdateStatus(context.Background(), existing.ID.Hex(), models.StatusConfirmed))
	got, _ := orders.GetByID(context.Background(), existing.ID)
	assert.Equal(t, models.StatusConfirmed, got.Status)

	err := svc.UpdateStatus(context.Background(), existing.ID.Hex(), "teleported")
	assert.True(t, errors.Is(err, models.ErrValidation))

	err = svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), models.StatusShipped)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestOrderDelete(t *testing.T) {
	existing := models.Order{ID: primitive.NewObjectID(), Date: time.Now()}
	svc := NewOrderService(storetest.NewOrders(existing), storetest.NewProducts(), nil)

	require.NoError(t, svc.Delete(context.Background(), existing.ID.Hex()))
	_, err := svc.Get(context.Background(), existing.ID.Hex())
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestSet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, time.Minute)

	mock.ExpectSet("product:1", []byte(`{"name":"Mouse","price":10.5}`), time.Minute).SetVal("OK")

	err := c.Set(context.Background(), "product:1", item{Name: "Mouse", Price: 10.5})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, time.Minute)

	mock.ExpectGet("product:1").SetVal(`{"name":"Mouse","price":10.5}`)

	var got item
	err := c.Get(context.Background(), "product:1", &got)
	require.NoError(t, err)
	assert.Equal(t, item{Name: "Mouse", Price: 10.5}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, time.Minute)

	mock.ExpectGet("product:2").RedisNil()

	var got item
	err := c.Get(context.Background(), "product:2", &got)
	assert.ErrorIs(t, err, redis.Nil)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, time.Minute)

	mock.ExpectDel("product:1", "products:all").SetVal(2)

	err := c.Delete(context.Background(), "product:1", "products:all")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByPattern(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, time.Minute)

	mock.ExpectScan(0, "product:*", scanBatch).SetVal([]string{"product:1", "product:2"}, 0)
	mock.ExpectDel("product:1", "product:2").SetVal(2)

	err := c.DeleteByPattern(context.Background(), "product:*")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByPattern_NoKeys(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, time.Minute)

	mock.ExpectScan(0, "product:*", scanBatch).SetVal([]string{}, 0)

	err := c.DeleteByPattern(context.Background(), "product:*")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

func seedOrder(t *testing.T, gw types.Gateway, number string, status types.OrderStatus, total float64, at time.Time) types.Record {
	t.Helper()
	return mustInsert(t, gw, types.CollectionOrders, types.Record{
		"order_number":  number,
		"customer_name": "Ayşe Yılmaz",
		"status":        string(status),
		"total_amount":  total,
		"order_date":    at,
		"shipping_address": types.Address{
			FullName: "Ayşe Yılmaz", City: "İstanbul",
		},
	})
}

func TestOrders_GetAllNewestFirst(t *testing.T) {
	svc, gw := newTestServices(t)

	seedOrder(t, gw, "SP-1", types.OrderPending, 100, testEpoch.Add(-48*time.Hour))
	seedOrder(t, gw, "SP-2", types.OrderPending, 200, testEpoch)
	seedOrder(t, gw, "SP-3", types.OrderPending, 300, testEpoch.Add(-24*time.Hour))

	all, err := svc.Orders.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"SP-2", "SP-3", "SP-1"}, []string{all[0].OrderNumber, all[1].OrderNumber, all[2].OrderNumber})
	assert.Equal(t, "İstanbul", all[0].ShippingAddress.City)
	assert.Equal(t, types.PaymentPending, all[0].PaymentStatus)
	assert.Empty(t, all[0].Items)
	assert.NotNil(t, all[0].History)
}

func TestOrders_GetByIDLoadsItems(t *testing.T) {
	svc, gw := newTestServices(t)

	o := seedOrder(t, gw, "SP-1", types.OrderPending, 300, testEpoch)
	for _, name := range []string{"Rose", "Oud"} {
		mustInsert(t, gw, types.CollectionOrderItems, types.Record{
			"order_id":     o["id"],
			"product_name": name,
			"quantity":     int64(2),
			"unit_price":   75.0,
			"total_price":  150.0,
		})
	}

	got, ok, err := svc.Orders.GetByID(context.Background(), o["id"].(string))
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Rose", got.Items[0].ProductName)
	assert.Equal(t, int64(2), got.Items[1].Quantity)
	assert.Equal(t, 300.0, got.Total)
}

func TestOrders_UpdateStatusAppendsHistory(t *testing.T) {
	svc, gw := newTestServices(t)
	ctx := context.Background()
	id := seedOrder(t, gw, "SP-1", types.OrderPending, 100, testEpoch)["id"].(string)

	got, err := svc.Orders.UpdateStatus(ctx, id, types.OrderPaymentConfirmed, "admin")
	require.NoError(t, err)
	assert.Equal(t, types.OrderPaymentConfirmed, got.Status)
	assert.Equal(t, types.PaymentPending, got.PaymentStatus, "status change leaves payment fields alone")
	assert.Nil(t, got.PaymentDate)

	got, err = svc.Orders.UpdateStatus(ctx, id, types.OrderPreparing, "editor")
	require.NoError(t, err)
	require.Len(t, got.History, 2)
	assert.Equal(t, types.OrderPaymentConfirmed, got.History[0].Status)
	assert.Equal(t, types.OrderPreparing, got.History[1].Status)
	assert.Equal(t, "editor", got.History[1].CreatedBy)
	assert.Equal(t, "Hazırlanıyor", got.History[1].Note)
}

func TestOrders_UpdateStatusErrors(t *testing.T) {
	svc, gw := newTestServices(t)
	ctx := context.Background()
	id := seedOrder(t, gw, "SP-1", types.OrderPending, 100, testEpoch)["id"].(string)

	tests := []struct {
		name   string
		id     string
		status types.OrderStatus
		want   error
	}{
		{"unknown status", id, "lost", types.ErrInvalidStatus},
		{"shipped without tracking", id, types.OrderShipped, types.ErrTrackingRequired},
		{"missing order", "0190b3a0-0000-7000-8000-000000000000", types.OrderDelivered, types.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Orders.UpdateStatus(ctx, tt.id, tt.status, "admin")
			requireWriteError(t, err, tt.want)
		})
	}

	got, _, err := svc.Orders.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, types.OrderPending, got.Status, "failed updates leave the order unchanged")
	assert.Empty(t, got.History)
}

func TestOrders_UpdateShipping(t *testing.T) {
	svc, gw := newTestServices(t)
	ctx := context.Background()
	id := seedOrder(t, gw, "SP-1", types.OrderPreparing, 100, testEpoch)["id"].(string)

	_, err := svc.Orders.UpdateShipping(ctx, id, types.ShippingInfo{Company: "Yurtiçi"}, "admin")
	requireWriteError(t, err, types.ErrInvalidData)

	got, err := svc.Orders.UpdateShipping(ctx, id, types.ShippingInfo{
		Company:        "Yurtiçi",
		TrackingNumber: "YK123",
		TrackingURL:    "https://kargo.example/YK123",
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, types.OrderShipped, got.Status)
	assert.Equal(t, "YK123", got.TrackingNumber)
	assert.Equal(t, "Yurtiçi", got.ShippingCompany)
	require.Len(t, got.History, 1)
	assert.Equal(t, "shipped", got.History[0].Action)

	got, err = svc.Orders.UpdateStatus(ctx, id, types.OrderShipped, "admin")
	require.NoError(t, err, "tracking number on file allows the shipped status")
	assert.Len(t, got.History, 2)
}

func TestOrderFilter_Match(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	o := types.Order{Status: types.OrderShipped, OrderDate: day.Add(22 * time.Hour)}

	tests := []struct {
		name   string
		filter OrderFilter
		want   bool
	}{
		{"zero filter", OrderFilter{}, true},
		{"status match", OrderFilter{Status: types.OrderShipped}, true},
		{"status mismatch", OrderFilter{Status: types.OrderPending}, false},
		{"from before", OrderFilter{From: day}, true},
		{"from after", OrderFilter{From: day.AddDate(0, 0, 1)}, false},
		{"to same day is inclusive", OrderFilter{To: day}, true},
		{"to day before", OrderFilter{To: day.AddDate(0, 0, -1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(o))
		})
	}
}

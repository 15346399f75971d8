package devserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/PattyWambere/KapeeFrontend/internal/devserver/store"
	"github.com/PattyWambere/KapeeFrontend/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placedEventMessage(t *testing.T, orderID string) kafka.Message {
	t.Helper()

	raw, err := json.Marshal(models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "e1",
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID: orderID,
	})
	require.NoError(t, err)
	return kafka.Message{Key: []byte("order-" + orderID), Value: raw}
}

func TestFulfillmentShipsPendingOrder(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, st.CreateOrder(ctx, &models.Order{
		ID: "order-1", CustomerID: "a1", Status: models.OrderStatusPending,
	}))

	w := NewFulfillmentWorker(nil, st, nil)
	require.NoError(t, w.handleMessage(ctx, placedEventMessage(t, "order-1")))

	order, err := st.OrderByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
}

func TestFulfillmentSkipsCancelledOrder(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, st.CreateOrder(ctx, &models.Order{
		ID: "order-1", CustomerID: "a1", Status: models.OrderStatusCancelled,
	}))

	w := NewFulfillmentWorker(nil, st, nil)
	require.NoError(t, w.handleMessage(ctx, placedEventMessage(t, "order-1")))

	order, err := st.OrderByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status, "a cancelled order is not shipped")
}

func TestFulfillmentIgnoresOtherEvents(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	raw, err := json.Marshal(models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{EventID: "e2", EventType: models.EventTypeOrderStatusChanged},
		OrderID:   "order-1",
	})
	require.NoError(t, err)

	w := NewFulfillmentWorker(nil, st, nil)
	assert.NoError(t, w.handleMessage(ctx, kafka.Message{Value: raw}))

	// Garbage payloads are logged and skipped, not retried forever.
	assert.NoError(t, w.handleMessage(ctx, kafka.Message{Value: []byte("not json")}))
}

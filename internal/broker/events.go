package broker

import (
	"context"
	"time"

	"github.com/PattyWambere/KapeeFrontend/internal/models"
	"github.com/PattyWambere/KapeeFrontend/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher publishes order lifecycle events. A nil publisher is
// valid and drops everything, so callers never branch on whether Kafka is
// configured.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher wraps a producer; pass nil to disable publishing.
func NewEventPublisher(producer *Producer) *EventPublisher {
	if producer == nil {
		return nil
	}
	return &EventPublisher{producer: producer}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// OrderPlaced publishes an ORDER_PLACED event for a freshly created order.
func (ep *EventPublisher) OrderPlaced(ctx context.Context, order *models.Order) {
	if ep == nil {
		return
	}
	event := &models.OrderPlacedEvent{
		BaseEvent:   newBaseEvent(models.EventTypeOrderPlaced),
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
	}
	ep.publish(ctx, order.ID, event)
}

// OrderCancelled publishes an ORDER_CANCELLED event.
func (ep *EventPublisher) OrderCancelled(ctx context.Context, order *models.Order) {
	if ep == nil {
		return
	}
	event := &models.OrderCancelledEvent{
		BaseEvent:  newBaseEvent(models.EventTypeOrderCancelled),
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
	}
	ep.publish(ctx, order.ID, event)
}

// OrderStatusChanged publishes an ORDER_STATUS_CHANGED event.
func (ep *EventPublisher) OrderStatusChanged(ctx context.Context, orderID, oldStatus, newStatus string) {
	if ep == nil {
		return
	}
	event := &models.OrderStatusChangedEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrderStatusChanged),
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
	ep.publish(ctx, orderID, event)
}

// publish is best-effort: a broker outage must not fail the order
// operation that triggered the event.
func (ep *EventPublisher) publish(ctx context.Context, orderID string, event interface{}) {
	if err := ep.producer.PublishEvent(ctx, "order-"+orderID, event); err != nil {
		util.GetLogger().Error("Failed to publish order event",
			zap.String("order_id", orderID), zap.Error(err))
	}
}

package devserver

import (
	"context"
	"encoding/json"

	"github.com/PattyWambere/KapeeFrontend/internal/broker"
	"github.com/PattyWambere/KapeeFrontend/internal/devserver/store"
	"github.com/PattyWambere/KapeeFrontend/internal/models"
	"github.com/PattyWambere/KapeeFrontend/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// FulfillmentWorker consumes order events and advances pending orders to
// shipped, simulating back-office processing so the storefront client can
// exercise status transitions during development.
type FulfillmentWorker struct {
	consumer *broker.Consumer
	store    store.Store
	events   *broker.EventPublisher
	logger   *zap.Logger
}

// NewFulfillmentWorker creates a fulfillment worker.
func NewFulfillmentWorker(consumer *broker.Consumer, st store.Store, events *broker.EventPublisher) *FulfillmentWorker {
	return &FulfillmentWorker{
		consumer: consumer,
		store:    st,
		events:   events,
		logger:   util.GetLogger(),
	}
}

// Start consumes until the context is cancelled.
func (w *FulfillmentWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting fulfillment worker")
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Stop closes the consumer.
func (w *FulfillmentWorker) Stop() error {
	w.logger.Info("Stopping fulfillment worker")
	return w.consumer.Close()
}

func (w *FulfillmentWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		w.logger.Warn("Failed to unmarshal event", zap.Error(err))
		return nil
	}

	if base.EventType != models.EventTypeOrderPlaced {
		return nil
	}

	var event models.OrderPlacedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		w.logger.Warn("Failed to unmarshal order placed event", zap.Error(err))
		return nil
	}

	order, err := w.store.OrderByID(ctx, event.OrderID)
	if err != nil {
		w.logger.Warn("Order from event not found", zap.String("order_id", event.OrderID))
		return nil
	}
	// The customer may have cancelled between placement and pickup.
	if order.Status != models.OrderStatusPending {
		return nil
	}

	if err := w.store.UpdateOrderStatus(ctx, order.ID, models.OrderStatusShipped); err != nil {
		return err
	}

	w.events.OrderStatusChanged(ctx, order.ID, models.OrderStatusPending, models.OrderStatusShipped)
	w.logger.Info("Order shipped", zap.String("order_id", order.ID))
	return nil
}

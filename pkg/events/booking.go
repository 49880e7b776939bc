package events

import (
	"context"

	"carrental/pkg/kafka"
	"carrental/pkg/logger"
	"carrental/pkg/model"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"

	sourceService = "carrental-api"
)

// Publisher emits booking lifecycle events. A nil *BookingPublisher is safe
// to call, so the service works unchanged when Kafka is not configured.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus string)
}

type BookingPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewBookingPublisher(producer *kafka.Producer, log *logger.Logger) *BookingPublisher {
	return &BookingPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *BookingPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	if p == nil {
		return
	}
	p.publish(ctx, EventBookingCreated, booking, nil)
}

func (p *BookingPublisher) BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus string) {
	if p == nil {
		return
	}
	p.publish(ctx, EventBookingStatusChanged, booking, map[string]string{
		"previous-status": previousStatus,
	})
}

// publish is best-effort: a broker failure is logged, never surfaced to the
// booking flow.
func (p *BookingPublisher) publish(ctx context.Context, eventType string, booking *model.Booking, headers map[string]string) {
	builder := kafka.NewMessage().
		WithKey(booking.CarID).
		WithValue(booking).
		WithEventType(eventType).
		WithSource(sourceService)
	for k, v := range headers {
		builder = builder.WithHeader(k, v)
	}

	if err := p.producer.Publish(ctx, builder.Build()); err != nil {
		p.log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

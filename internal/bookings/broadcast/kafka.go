package broadcast

import (
	"context"
	"sync"
	"time"

	"roomly/pkg/config"
	"roomly/pkg/kafka"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

// KafkaBroadcaster publishes booking events to a Kafka topic, keyed by
// room ID so consumers see each room's events in order.
type KafkaBroadcaster struct {
	producer *kafka.Producer
	timeout  time.Duration
	log      *logger.Logger
	wg       sync.WaitGroup
}

func NewKafkaBroadcaster(producer *kafka.Producer, cfg *config.Config) *KafkaBroadcaster {
	return &KafkaBroadcaster{
		producer: producer,
		timeout:  cfg.BroadcastTimeout,
		log:      cfg.Log,
	}
}

// Announce publishes the event from a detached goroutine with its own
// timeout. The caller's context is deliberately not used: the mutation has
// already committed, so a cancelled request must not suppress the
// announcement, and a broker outage must not stall the response.
func (b *KafkaBroadcaster) Announce(kind Kind, booking *model.Booking) {
	event := Event{
		Kind:       kind,
		Booking:    booking,
		OccurredAt: time.Now().UTC(),
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		msg := kafka.NewMessage().
			WithKey(booking.RoomID).
			WithValue(event).
			WithEventType(string(kind)).
			WithSource("bookings").
			Build()

		if err := b.producer.Publish(ctx, msg); err != nil {
			b.log.Warn("Booking event broadcast failed",
				"kind", kind,
				"booking_id", booking.ID,
				"room_id", booking.RoomID,
				"error", err,
			)
		}
	}()
}

// Close waits for in-flight announcements, then closes the producer.
func (b *KafkaBroadcaster) Close() error {
	b.wg.Wait()
	return b.producer.Close()
}

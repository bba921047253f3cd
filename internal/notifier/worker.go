// Package notifier consumes committed booking events and keeps a local
// view of upcoming bookings for delivery of reminders. Because broadcast
// delivery is best-effort, the worker also re-reads the bookings service on
// a timer so a missed event is repaired on the next sweep.
package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"roomly/internal/bookings/broadcast"
	"roomly/pkg/client"
	"roomly/pkg/config"
	"roomly/pkg/kafka"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

// Worker tracks live bookings keyed by booking ID.
type Worker struct {
	bookings *client.BookingClient
	cfg      *config.Config
	log      *logger.Logger

	mu   sync.RWMutex
	view map[string]*model.Booking
}

func NewWorker(bookings *client.BookingClient, cfg *config.Config) *Worker {
	return &Worker{
		bookings: bookings,
		cfg:      cfg,
		log:      cfg.Log,
		view:     make(map[string]*model.Booking),
	}
}

// HandleMessage is the Kafka consumer entrypoint.
func (w *Worker) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var event broadcast.Event
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("failed to decode booking event: %w", err)
	}
	if event.Booking == nil || event.Booking.ID == "" {
		return fmt.Errorf("booking event %s carries no booking", msg.GetEventID())
	}

	w.apply(event.Kind, event.Booking)

	w.log.Info("Booking event applied",
		"kind", event.Kind,
		"booking_id", event.Booking.ID,
		"room_id", event.Booking.RoomID,
	)
	return nil
}

func (w *Worker) apply(kind broadcast.Kind, booking *model.Booking) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch kind {
	case broadcast.KindCreated, broadcast.KindUpdated:
		if booking.Live() {
			w.view[booking.ID] = booking
		} else {
			delete(w.view, booking.ID)
		}
	case broadcast.KindCancelled, broadcast.KindDeleted:
		delete(w.view, booking.ID)
	default:
		w.log.Warn("Unknown booking event kind", "kind", kind)
	}
}

// Upcoming returns the tracked bookings starting inside the given window.
func (w *Worker) Upcoming(within time.Duration) []*model.Booking {
	now := time.Now()
	cutoff := now.Add(within)

	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []*model.Booking
	for _, b := range w.view {
		if b.StartTime.After(now) && b.StartTime.Before(cutoff) {
			out = append(out, b)
		}
	}
	return out
}

// RunReconciliation periodically replaces the local view with the bookings
// service's answer, repairing any events the broadcast dropped. It blocks
// until the context is cancelled.
func (w *Worker) RunReconciliation(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.reconcile(ctx); err != nil {
				w.log.Warn("Booking reconciliation failed", "error", err)
			}
		}
	}
}

func (w *Worker) reconcile(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, w.cfg.RequestTimeout)
	defer cancel()

	fresh := make(map[string]*model.Booking)
	var offset int64
	const pageSize = 100

	for {
		resp, err := w.bookings.GetAll(ctx, pageSize, offset)
		if err != nil {
			return fmt.Errorf("failed to fetch bookings page at offset %d: %w", offset, err)
		}

		page, meta, err := w.bookings.DecodeBookings(resp)
		if err != nil {
			return fmt.Errorf("failed to decode bookings page: %w", err)
		}

		for _, b := range page {
			if b.Live() {
				fresh[b.ID] = b
			}
		}

		offset += int64(len(page))
		if len(page) == 0 || meta == nil || offset >= meta.TotalCount {
			break
		}
	}

	w.mu.Lock()
	w.view = fresh
	w.mu.Unlock()

	w.log.Info("Booking view reconciled", "bookings", len(fresh))
	return nil
}

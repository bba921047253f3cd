package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"roomly/pkg/kafka"
)

// Metrics tracks publish and consume counters with atomic operations.
type Metrics struct {
	MessagesPublished       int64
	MessagesPublishedFailed int64
	PublishDurationTotal    int64 // nanoseconds

	MessagesConsumed       int64
	MessagesConsumedFailed int64
	ConsumeDurationTotal   int64 // nanoseconds
}

var globalMetrics = &Metrics{}

// GetMetrics returns the process-wide metrics instance.
func GetMetrics() *Metrics {
	return globalMetrics
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	atomic.StoreInt64(&m.MessagesPublished, 0)
	atomic.StoreInt64(&m.MessagesPublishedFailed, 0)
	atomic.StoreInt64(&m.PublishDurationTotal, 0)
	atomic.StoreInt64(&m.MessagesConsumed, 0)
	atomic.StoreInt64(&m.MessagesConsumedFailed, 0)
	atomic.StoreInt64(&m.ConsumeDurationTotal, 0)
}

// GetAvgPublishDuration returns the mean time spent publishing a message.
func (m *Metrics) GetAvgPublishDuration() time.Duration {
	published := atomic.LoadInt64(&m.MessagesPublished)
	if published == 0 {
		return 0
	}
	total := atomic.LoadInt64(&m.PublishDurationTotal)
	return time.Duration(total / published)
}

// GetAvgConsumeDuration returns the mean time spent handling a message.
func (m *Metrics) GetAvgConsumeDuration() time.Duration {
	consumed := atomic.LoadInt64(&m.MessagesConsumed)
	if consumed == 0 {
		return 0
	}
	total := atomic.LoadInt64(&m.ConsumeDurationTotal)
	return time.Duration(total / consumed)
}

// MetricsProducerMiddleware counts publishes and accumulates their durations.
func MetricsProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)

		if err != nil {
			atomic.AddInt64(&globalMetrics.MessagesPublishedFailed, 1)
		} else {
			atomic.AddInt64(&globalMetrics.MessagesPublished, 1)
			atomic.AddInt64(&globalMetrics.PublishDurationTotal, int64(duration))
		}

		return err
	}
}

// MetricsConsumerMiddleware counts consumed messages and accumulates their durations.
func MetricsConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)

		if err != nil {
			atomic.AddInt64(&globalMetrics.MessagesConsumedFailed, 1)
		} else {
			atomic.AddInt64(&globalMetrics.MessagesConsumed, 1)
			atomic.AddInt64(&globalMetrics.ConsumeDurationTotal, int64(duration))
		}

		return err
	}
}

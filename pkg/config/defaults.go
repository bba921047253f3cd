package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roomly"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultBusinessDayStart = "08:00"
	DefaultBusinessDayEnd   = "16:00"

	DefaultLockTTL           = 10 * time.Second
	DefaultLockRetryAttempts = 5
	DefaultLockRetryBackoff  = 50 * time.Millisecond

	DefaultBroadcastTimeout  = 5 * time.Second
	DefaultBookingTopic      = "booking-events"
	DefaultBookingDLQTopic   = "booking-events-dlq"
	DefaultBookingsBaseURL   = "http://localhost:8080"
	DefaultReconcileInterval = 5 * time.Minute

	DefaultPaginationLimit = 100
)

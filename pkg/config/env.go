package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvBusinessDayStart = "BUSINESS_DAY_START"
	EnvBusinessDayEnd   = "BUSINESS_DAY_END"

	EnvLockTTL           = "ROOM_LOCK_TTL"
	EnvLockRetryAttempts = "ROOM_LOCK_RETRY_ATTEMPTS"
	EnvLockRetryBackoff  = "ROOM_LOCK_RETRY_BACKOFF"

	EnvBroadcastTimeout  = "BROADCAST_TIMEOUT"
	EnvBookingTopic      = "BOOKING_EVENTS_TOPIC"
	EnvBookingDLQTopic   = "BOOKING_EVENTS_DLQ_TOPIC"
	EnvBookingsBaseURL   = "BOOKINGS_BASE_URL"
	EnvReconcileInterval = "RECONCILE_INTERVAL"
)

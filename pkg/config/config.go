package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"roomly/pkg/client"
	"roomly/pkg/logger"
)

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Bookings must start and end inside this daily window, expressed as
	// HH:MM in the timestamp's own offset.
	BusinessDayStart string
	BusinessDayEnd   string

	LockTTL           time.Duration
	LockRetryAttempts int
	LockRetryBackoff  time.Duration

	BroadcastTimeout time.Duration
	BookingTopic     string
	BookingDLQTopic  string

	BookingsBaseURL   string
	ReconcileInterval time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		BusinessDayStart: getEnvStr(EnvBusinessDayStart, DefaultBusinessDayStart),
		BusinessDayEnd:   getEnvStr(EnvBusinessDayEnd, DefaultBusinessDayEnd),

		LockTTL:           getEnvDuration(EnvLockTTL, DefaultLockTTL),
		LockRetryAttempts: getEnvNum(EnvLockRetryAttempts, DefaultLockRetryAttempts),
		LockRetryBackoff:  getEnvDuration(EnvLockRetryBackoff, DefaultLockRetryBackoff),

		BroadcastTimeout: getEnvDuration(EnvBroadcastTimeout, DefaultBroadcastTimeout),
		BookingTopic:     getEnvStr(EnvBookingTopic, DefaultBookingTopic),
		BookingDLQTopic:  getEnvStr(EnvBookingDLQTopic, DefaultBookingDLQTopic),

		BookingsBaseURL:   getEnvStr(EnvBookingsBaseURL, DefaultBookingsBaseURL),
		ReconcileInterval: getEnvDuration(EnvReconcileInterval, DefaultReconcileInterval),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

// BusinessWindow returns the daily booking window as minutes since midnight.
// Load guarantees both strings are valid HH:MM and start < end.
func (cfg *Config) BusinessWindow() (openMin, closeMin int) {
	return minutesOfDay(cfg.BusinessDayStart), minutesOfDay(cfg.BusinessDayEnd)
}

func minutesOfDay(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errs = append(errs, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errs = append(errs, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errs = append(errs, "MongoDatabaseName cannot be empty")
	}

	if !timeOfDayRegex.MatchString(cfg.BusinessDayStart) {
		errs = append(errs, fmt.Sprintf("BusinessDayStart must be in HH:MM format (00:00-23:59), got: %s", cfg.BusinessDayStart))
	}
	if !timeOfDayRegex.MatchString(cfg.BusinessDayEnd) {
		errs = append(errs, fmt.Sprintf("BusinessDayEnd must be in HH:MM format (00:00-23:59), got: %s", cfg.BusinessDayEnd))
	}
	if timeOfDayRegex.MatchString(cfg.BusinessDayStart) && timeOfDayRegex.MatchString(cfg.BusinessDayEnd) {
		if minutesOfDay(cfg.BusinessDayStart) >= minutesOfDay(cfg.BusinessDayEnd) {
			errs = append(errs, fmt.Sprintf("BusinessDayStart (%s) must be before BusinessDayEnd (%s)", cfg.BusinessDayStart, cfg.BusinessDayEnd))
		}
	}

	for name, d := range map[string]time.Duration{
		"MongoConnTimeout":  cfg.MongoConnTimeout,
		"RateLimitWindow":   cfg.RateLimitWindow,
		"RequestTimeout":    cfg.RequestTimeout,
		"IdempotencyTTL":    cfg.IdempotencyTTL,
		"ReadTimeout":       cfg.ReadTimeout,
		"WriteTimeout":      cfg.WriteTimeout,
		"IdleTimeout":       cfg.IdleTimeout,
		"ShutdownTimeout":   cfg.ShutdownTimeout,
		"LockTTL":           cfg.LockTTL,
		"LockRetryBackoff":  cfg.LockRetryBackoff,
		"BroadcastTimeout":  cfg.BroadcastTimeout,
		"ReconcileInterval": cfg.ReconcileInterval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.LockRetryAttempts <= 0 {
		errs = append(errs, fmt.Sprintf("LockRetryAttempts must be positive, got: %d", cfg.LockRetryAttempts))
	}
	if cfg.BookingTopic == "" {
		errs = append(errs, "BookingTopic cannot be empty")
	}

	if len(errs) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, e := range errs {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"business_day_start", cfg.BusinessDayStart,
		"business_day_end", cfg.BusinessDayEnd,
		"lock_ttl", cfg.LockTTL,
		"lock_retry_attempts", cfg.LockRetryAttempts,
		"lock_retry_backoff", cfg.LockRetryBackoff,
		"broadcast_timeout", cfg.BroadcastTimeout,
		"booking_topic", cfg.BookingTopic,
		"booking_dlq_topic", cfg.BookingDLQTopic,
		"reconcile_interval", cfg.ReconcileInterval,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}

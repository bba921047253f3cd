package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"roomly/internal/notifier"
	"roomly/pkg/client"
	"roomly/pkg/config"
	"roomly/pkg/kafka"
	kafka_config "roomly/pkg/kafka/config"
	kafka_middleware "roomly/pkg/kafka/middleware"
)

const (
	ServiceName   = "notifier"
	ConsumerGroup = "roomly-notifier"
)

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Notifier service")

	bookingClient := client.NewBookingClient(cfg.BookingsBaseURL)
	worker := notifier.NewWorker(bookingClient, cfg)

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.BookingTopic, ConsumerGroup, cfg.BookingDLQTopic, worker.HandleMessage)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware())
		consumer.Use(kafka_middleware.MetricsConsumerMiddleware())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go worker.RunReconciliation(ctx)

	go func() {
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped gracefully")
}

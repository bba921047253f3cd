package main

import (
	"roomly/internal/bookings/broadcast"
	"roomly/internal/bookings/handler"
	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/service"
	"roomly/internal/bookings/validator"
	roomsrepository "roomly/internal/rooms/repository"
	roomsservice "roomly/internal/rooms/service"
	roomsvalidator "roomly/internal/rooms/validator"
	"roomly/pkg/app"
	"roomly/pkg/config"
	"roomly/pkg/kafka"
	kafka_config "roomly/pkg/kafka/config"
	kafka_middleware "roomly/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	bookingService, broadcaster := initServices(cfg)
	defer func() {
		if err := broadcaster.Close(); err != nil {
			cfg.Log.Error("Failed to close broadcaster", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.BookingService, broadcast.Broadcaster) {
	roomRepo := roomsrepository.NewMongoRoomRepository(cfg)
	roomService := roomsservice.NewRoomService(roomRepo, roomsvalidator.NewRoomValidator(), cfg)

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingTopic, cfg.BookingDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware())
		producer.Use(kafka_middleware.MetricsProducerMiddleware())
	}
	broadcaster := broadcast.NewKafkaBroadcaster(producer, cfg)

	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewRoomLockRepository(cfg)
	bookingValidator := validator.NewBookingValidator(roomService, cfg)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		bookingValidator,
		broadcaster,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName, "topic", cfg.BookingTopic)
	return bookingService, broadcaster
}

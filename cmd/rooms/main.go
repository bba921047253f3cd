package main

import (
	"roomly/internal/rooms/handler"
	"roomly/internal/rooms/repository"
	"roomly/internal/rooms/service"
	"roomly/internal/rooms/validator"
	"roomly/pkg/app"
	"roomly/pkg/config"
)

const ServiceName = "rooms"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Rooms service")

	roomRepo := repository.NewMongoRoomRepository(cfg)
	roomService := service.NewRoomService(roomRepo, validator.NewRoomValidator(), cfg)
	cfg.Log.Info("Room service initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewRoomHandler(roomService, cfg.Log))
	serverApp.Run()
}

package main

import (
	bookingshandler "carrental/internal/bookings/handler"
	bookingsrepository "carrental/internal/bookings/repository"
	bookingsservice "carrental/internal/bookings/service"
	bookingsvalidator "carrental/internal/bookings/validator"
	carshandler "carrental/internal/cars/handler"
	carsrepository "carrental/internal/cars/repository"
	carsservice "carrental/internal/cars/service"
	carsvalidator "carrental/internal/cars/validator"
	dashboardhandler "carrental/internal/dashboard/handler"
	dashboardservice "carrental/internal/dashboard/service"
	usershandler "carrental/internal/users/handler"
	usersrepository "carrental/internal/users/repository"
	usersservice "carrental/internal/users/service"
	"carrental/pkg/app"
	"carrental/pkg/auth"
	"carrental/pkg/config"
	"carrental/pkg/events"
	"carrental/pkg/kafka"
	kafkaconfig "carrental/pkg/kafka/config"
	"carrental/pkg/storage"
)

const ServiceName = "carrental"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting car rental service")

	serverApp := app.NewApplication(cfg)

	files, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize file storage", "error", err)
	}

	publisher := initPublisher(cfg, serverApp)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := usersrepository.NewMongoUserRepository(cfg)
	carRepo := carsrepository.NewMongoCarRepository(cfg)
	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)
	lockRepo := bookingsrepository.NewBookingLockRepository(cfg)

	authmw := auth.NewMiddleware(tokens, userRepo, cfg.Log)

	userService := usersservice.NewUserService(userRepo, tokens, files, cfg)
	carService := carsservice.NewCarService(carRepo, carsvalidator.NewCarValidator(cfg.Log), files, cfg)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		lockRepo,
		carRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	dashService := dashboardservice.NewDashboardService(carRepo, bookingRepo, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	serverApp.SetApp(
		usershandler.NewUserHandler(userService, authmw, cfg.MaxUploadSize, cfg.Log),
		carshandler.NewCarHandler(carService, authmw, cfg.MaxUploadSize, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, authmw, cfg.Log),
		dashboardhandler.NewDashboardHandler(dashService, authmw, cfg.Log),
	)
	serverApp.Run()
}

// initPublisher wires the Kafka producer when brokers are configured, and
// returns nil otherwise so booking flows run without eventing.
func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	kafkaCfg := kafkaconfig.Load()
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return nil
	}

	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}
	serverApp.OnShutdown(producer.Close)

	cfg.Log.Info("Booking event publisher initialized", "topic", cfg.BookingEventsTopic)
	return events.NewBookingPublisher(producer, cfg.Log)
}

package main

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/casamia/hotel-management/internal/config"
	"github.com/casamia/hotel-management/internal/database"
	"github.com/casamia/hotel-management/internal/handler"
	"github.com/casamia/hotel-management/internal/queue"
	"github.com/casamia/hotel-management/internal/repository"
	"github.com/casamia/hotel-management/internal/router"
	"github.com/casamia/hotel-management/internal/service"
)

func main() {
	cfg := config.Load()
	log := config.GetLogger()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	// Redis is optional: without it the rate limiter and the invoice
	// advisory lock are disabled, the rest of the service is unaffected.
	rdb := config.NewRedisClient()
	locker := config.NewRedisLocker(rdb)
	rl := config.LoadRateLimitConfig()

	users := repository.NewUserRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	extras := repository.NewExtraServiceRepo(db)
	events := repository.NewEventRepo(db)
	reservations := repository.NewReservationRepo(db)
	invoices := repository.NewInvoiceRepo(db)

	engine := service.NewInvoiceEngine(invoices, locker)

	h := router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users),
		Hotels:        handler.NewHotelHandler(hotels, users),
		Rooms:         handler.NewRoomHandler(rooms, hotels),
		ExtraServices: handler.NewExtraServiceHandler(extras),
		Events:        handler.NewEventHandler(events, hotels),
		Reservations:  handler.NewReservationHandler(reservations, rooms, hotels, extras),
		Invoices:      handler.NewInvoiceHandler(reservations, engine, invoices, hotels, cfg.InvoiceDir),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	router.Register(e, cfg, rl, rdb, h)

	go queue.StartInvoiceConsumer()

	addr := ":" + cfg.Port
	log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("server starting")
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

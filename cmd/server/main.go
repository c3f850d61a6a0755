package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/dojoroom/room-booking/internal/booking"
	"github.com/dojoroom/room-booking/internal/cache"
	"github.com/dojoroom/room-booking/internal/config"
	"github.com/dojoroom/room-booking/internal/database"
	"github.com/dojoroom/room-booking/internal/handler"
	"github.com/dojoroom/room-booking/internal/queue"
	"github.com/dojoroom/room-booking/internal/repository"
	"github.com/dojoroom/room-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		database.Pool{MaxConns: cfg.DBMaxConns, MaxLife: cfg.DBConnMaxLife})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	var schedCache *cache.Schedule // nil degrades to a no-op cache
	if rdb := config.NewRedisClient(); rdb != nil {
		schedCache = cache.NewSchedule(rdb, cfg.ScheduleCacheTTL)
	} else {
		log.Print("redis unavailable, schedule cache disabled")
	}

	slots := repository.NewSlotRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	bookings := booking.NewService(slots, cfg.Booking)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	book := handler.NewBookingHandler(bookings, slots, schedCache, cfg.DefaultRoom)
	book.PublishEvents = true

	// Background consumer turning slot events into logs/slots.log.
	go queue.StartSlotConsumer()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterBooking(e, book, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, room=%s)", addr, cfg.Env, cfg.DefaultRoom)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

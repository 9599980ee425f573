package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"

	"github.com/OthmanASSAS/slotify/internal/application"
	"github.com/OthmanASSAS/slotify/internal/config"
	"github.com/OthmanASSAS/slotify/internal/email"
	"github.com/OthmanASSAS/slotify/internal/infrastructure/repository"
	handlers "github.com/OthmanASSAS/slotify/internal/interfaces/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Error loading timezone: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DBConnString())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Error pinging database: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigin,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))

	// Email Client
	emailClient, err := email.NewClient(
		cfg.SMTP.Host,
		fmt.Sprintf("%d", cfg.SMTP.Port),
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.FromName,
		cfg.SMTP.FromEmail,
		cfg.AppBaseURL,
	)
	var sender application.EmailSender
	if err != nil {
		log.Printf("Warning: Email client initialization failed: %v", err)
		// Continue without email
	} else {
		sender = emailClient
	}

	calendar := application.NewBusinessCalendar(loc)

	// Repositories
	allowedEmailRepo := repository.NewAllowedEmailRepository(db)
	timeSlotRepo := repository.NewTimeSlotRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	magicLinkRepo := repository.NewMagicLinkRepository(db)
	pendingRepo := repository.NewPendingReservationRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	availabilityService := application.NewAvailabilityService(timeSlotRepo, reservationRepo, calendar)
	bookingService := application.NewBookingService(allowedEmailRepo, timeSlotRepo, reservationRepo, sender, calendar, time.Now)
	cancellationService := application.NewCancellationService(reservationRepo, magicLinkRepo, calendar, time.Now)
	tokenService := application.NewTokenService(allowedEmailRepo, magicLinkRepo, pendingRepo, reservationRepo, bookingService, sender, calendar, time.Now, cfg.AppBaseURL)
	adminService := application.NewAdminService(allowedEmailRepo, timeSlotRepo, reservationRepo, adminRepo, time.Now)

	// Handlers
	sessions := handlers.NewSessionManager(time.Now)
	slotHandler := handlers.NewSlotHandler(availabilityService, calendar)
	reservationHandler := handlers.NewReservationHandler(bookingService, cancellationService)
	tokenHandler := handlers.NewTokenHandler(tokenService)
	adminHandler := handlers.NewAdminHandler(adminService, sessions)

	limiter := application.NewRateLimiter(
		application.NewMemoryCounterStore(time.Now),
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
		cfg.RateLimit.Requests,
	)

	api := app.Group("/api")
	api.Use(handlers.RateLimit(limiter))

	// Public catalog
	api.Get("/slots", slotHandler.GetActiveSlots)
	api.Get("/availability/week", slotHandler.GetWeekAvailability)

	// Reservations
	reservations := api.Group("/reservations")
	reservations.Post("/", reservationHandler.Create)
	reservations.Post("/batch", reservationHandler.CreateBatch)
	reservations.Post("/cancel", reservationHandler.CancelByCode)
	reservations.Post("/:id/cancel", reservationHandler.CancelByToken)

	// Magic links
	api.Post("/magic-link", tokenHandler.RequestMagicLink)
	api.Get("/magic-link/:token", tokenHandler.RedeemMagicLink)

	// Pending reservations
	pending := api.Group("/pending-reservations")
	pending.Post("/", tokenHandler.CreatePending)
	pending.Get("/:token", tokenHandler.GetPending)
	pending.Post("/:token/complete", tokenHandler.CompletePending)

	// Admin
	admin := api.Group("/admin")
	admin.Post("/login", adminHandler.Login)
	admin.Post("/logout", adminHandler.Logout)

	admin.Use(handlers.RequireAdmin(sessions))
	admin.Get("/emails", adminHandler.ListEmails)
	admin.Post("/emails", adminHandler.AddEmail)
	admin.Delete("/emails/:id", adminHandler.RemoveEmail)
	admin.Get("/slots", adminHandler.ListSlots)
	admin.Post("/slots", adminHandler.CreateSlots)
	admin.Patch("/slots/:id", adminHandler.SetSlotActive)
	admin.Delete("/slots/:id", adminHandler.DeleteSlot)
	admin.Get("/reservations", adminHandler.ListReservations)

	log.Printf("Server starting on port %d", cfg.Server.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}

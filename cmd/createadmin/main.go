package main

import (
	"database/sql"
	"flag"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/OthmanASSAS/slotify/internal/application"
	"github.com/OthmanASSAS/slotify/internal/config"
	"github.com/OthmanASSAS/slotify/internal/infrastructure/repository"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetPrefix("[createadmin] ")

	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password (min 8 characters)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Both -email and -password are required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DBConnString())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	adminService := application.NewAdminService(
		repository.NewAllowedEmailRepository(db),
		repository.NewTimeSlotRepository(db),
		repository.NewReservationRepository(db),
		repository.NewAdminRepository(db),
		time.Now,
	)

	admin, err := adminService.CreateAdmin(*email, *password)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin %s created (id %s)", admin.Email, admin.ID)
}

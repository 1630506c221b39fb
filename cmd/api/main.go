package main

import (
	"log"
	"os"

	"github.com/ecokabadi/ewaste-backend/internal/config"
	"github.com/ecokabadi/ewaste-backend/internal/db"
	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/server"
	"github.com/joho/godotenv"
)

// Set via -ldflags at build time.
var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	srv := server.New(nil, gitSHA, buildTime)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// Connect the database in the background so health checks come up
	// fast; handlers report a not-ready error until injection happens.
	go func() {
		cfg, err := config.Load()
		if err != nil {
			log.Printf("config load error: %v", err)
			return
		}
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		if err := conn.AutoMigrate(
			&model.Profile{},
			&model.KarmaItem{},
			&model.Redemption{},
			&model.Pickup{},
			&model.Notification{},
		); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
		srv.SetDB(conn)
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

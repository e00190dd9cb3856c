package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatherly/gatherly_api/config"
	"github.com/gatherly/gatherly_api/internal/db"
	"github.com/gatherly/gatherly_api/internal/facet"
	api "github.com/gatherly/gatherly_api/internal/http/rest"
	"github.com/gatherly/gatherly_api/internal/search"
	"github.com/gatherly/gatherly_api/internal/stats"
	"github.com/gatherly/gatherly_api/internal/store"
)

const (
	allowConnectionsAfterShutdown = 1 * time.Second
)

func main() {
	cfg := config.New()

	database, err := db.New(cfg.Dsn)
	if err != nil {
		log.Panicln("failed to connect to database", "error", err)
	}

	entityStore := store.New(database)
	a := &api.API{
		Config: cfg,
		Store:  entityStore,
		Search: search.NewIndex(database.Pool()),
		Facet:  facet.NewBuilder(entityStore),
		Stats:  stats.NewService(entityStore),
	}
	go func() {
		log.Printf("Server running on port %v ...", cfg.Port)
		log.Fatal(a.Serve())
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopChan

	log.Println("Request to shutdown server. Doing nothing for ", allowConnectionsAfterShutdown)
	waitTimer := time.NewTimer(allowConnectionsAfterShutdown)
	<-waitTimer.C

	log.Println("Shutting down server...")

	if err := a.Shutdown(); err != nil {
		log.Println("server shutdown failed", "error", err)
	}
	database.Close()
	log.Println("Database connections closed.")
}

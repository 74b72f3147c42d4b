package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cricklab/fieldsim/config"
	"github.com/cricklab/fieldsim/engine"
	"github.com/cricklab/fieldsim/field"
	"github.com/cricklab/fieldsim/server"
	"github.com/cricklab/fieldsim/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	addr := flag.String("addr", cfg.HTTPAddr, "HTTP listen address")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path (empty disables recording)")
	layoutDir := flag.String("layouts", cfg.LayoutDir, "directory of custom layout YAML files")
	flag.Parse()

	logger := log.Default()

	rng := engine.DefaultSource()
	if cfg.Seed != 0 {
		rng = engine.NewSeededSource(cfg.Seed)
	}
	sim := engine.NewSimulator(engine.DefaultParams(), rng, logger)

	var db *store.Store
	if *dbPath != "" {
		db, err = store.New(*dbPath)
		if err != nil {
			log.Fatalf("open database %s: %v", *dbPath, err)
		}
		defer db.Close()
	}

	layouts, err := field.All(*layoutDir)
	if err != nil {
		log.Fatalf("load layouts: %v", err)
	}

	simServer := server.New(sim, db, layouts, logger)
	go simServer.Run()

	srv := &http.Server{
		Addr:         *addr,
		Handler:      simServer.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Delivery simulator listening on %s (%d layouts)", *addr, len(layouts))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Printf("Shutting down server (signal: %v)...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

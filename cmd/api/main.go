package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/restaurant-stars/backend/internal/config"
	"github.com/zhouzirui/restaurant-stars/backend/internal/handler"
	starredModel "github.com/zhouzirui/restaurant-stars/backend/internal/model/starred"
	"github.com/zhouzirui/restaurant-stars/backend/internal/service/events"
	"github.com/zhouzirui/restaurant-stars/backend/internal/service/starred"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	restaurants, closeCatalog, err := openCatalog(ctx, cfg.Catalog)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	defer closeCatalog()
	log.Printf("catalog ready (source=%s, restaurants=%d)", cfg.Catalog.Source(), len(restaurants.List()))

	var seed []starredModel.Entry
	if cfg.Starred.Seed {
		seed = starredModel.Seed()
	}

	hub := events.NewHub(cfg.Events.Buffer)
	starredService := starred.NewService(restaurants, seed, starred.WithPublisher(hub))
	log.Printf("starred service initialized with %d entries", starredService.Count())

	router := handler.NewRouter(restaurants, starredService, hub)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("starred restaurants backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"reelbase/config"
	"reelbase/handlers"
	"reelbase/internal/database"
	catalogsvc "reelbase/services/catalog"
	favoritesvc "reelbase/services/favorites"
	friendsvc "reelbase/services/friends"
	ratingsvc "reelbase/services/ratings"
	"reelbase/store"
	"reelbase/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogger(cfg)
	slog.Info("reelbase.starting", "port", cfg.ServerPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(ctx, database.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	slog.Info("reelbase.database_ready")

	st := store.New(db.Connection())

	catalogHandler := handlers.NewCatalogHandler(catalogsvc.NewService(st))
	ratingsHandler := handlers.NewRatingsHandler(ratingsvc.NewService(st))
	favoritesHandler := handlers.NewFavoritesHandler(favoritesvc.NewService(st))
	friendsHandler := handlers.NewFriendsHandler(friendsvc.NewService(st))

	router := utils.NewRouter(cfg.RequestTimeout)
	handlers.Register(router, catalogHandler, ratingsHandler, favoritesHandler, friendsHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()
	slog.Info("reelbase.listening", "addr", server.Addr)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("reelbase.shutting_down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	slog.Info("reelbase.stopped")
	return nil
}

// setupLogger routes structured logs to stdout and a rotated file.
func setupLogger(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	out := io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})))
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"meetup-api/internal/config"
	"meetup-api/internal/handlers"
	"meetup-api/internal/logging"
	"meetup-api/internal/metrics"
	"meetup-api/internal/mykafka"
	"meetup-api/internal/repo"
	"meetup-api/internal/service"
	httpserver "meetup-api/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LogLevel)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KafkaAddress != "" {
		prod = mykafka.NewProducer([]string{configuration.KafkaAddress})
	}

	metrics.Init()

	gormRepo := repo.New(db)
	authService := &service.AuthService{
		Repo:          gormRepo,
		AccessSecret:  configuration.AccessSecret,
		RefreshSecret: configuration.RefreshSecret,
		AccessTTL:     configuration.AccessTTL,
		RefreshTTL:    configuration.RefreshTTL,
		BcryptCost:    configuration.BcryptCost,
	}
	meetupService := &service.MeetupService{Repo: gormRepo, Auth: authService}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), metrics.Middleware())
	e.Validator = handlers.NewValidator()

	deps := httpserver.Deps{
		AuthHandler:   &handlers.AuthHandler{Auth: authService, Producer: prod},
		MeetupHandler: &handlers.MeetupHandler{Meetups: meetupService, Producer: prod},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.ServerPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/novalink/novalink-backend/pkg/config"
	"github.com/novalink/novalink-backend/pkg/discord"
	"github.com/novalink/novalink-backend/pkg/httpapi"
)

const defaultPort = "3001"

func main() {
	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Level:           log.InfoLevel,
		TimeFormat:      time.Kitchen,
	})

	conf, err := config.LoadConfig(false)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		panic(errors.Wrap(err, "Failed to load config"))
	}
	if conf.DiscordBotToken == "" {
		panic(errors.New("DISCORD_BOT_TOKEN must be set"))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	client := discord.NewClient(conf, logger)
	handler := discord.NewHandler(client, logger)

	router := chi.NewRouter()
	router.Use(cors.New(cors.Options{
		AllowCredentials: true,
		AllowedOrigins:   []string{"*"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	}).Handler)

	apiLimiter := httpapi.NewRateLimiter(rate.Every(15*time.Minute/100), 100)
	router.Use(apiLimiter.Middleware)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpapi.OK(w, "API is running", map[string]string{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "Discord NovaLink Backend",
		})
	})
	router.Mount("/api/discord", handler.Routes())

	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("Discord service running", "address", "http://localhost:"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			panic(errors.Wrap(err, "Unable to start server"))
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	<-signalChan

	logger.Info("Discord service shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}

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
	"github.com/novalink/novalink-backend/pkg/httpapi"
	"github.com/novalink/novalink-backend/pkg/linkedin"
)

const defaultPort = "3000"

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
	if conf.LinkedInClientID == "" || conf.LinkedInClientSecret == "" {
		panic(errors.New("LINKEDIN_CLIENT_ID and LINKEDIN_CLIENT_SECRET must be set"))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	client := linkedin.NewClient(conf, logger)
	handler := linkedin.NewHandler(client, logger)

	router := chi.NewRouter()
	router.Use(cors.New(cors.Options{
		AllowCredentials: true,
		AllowedOrigins:   []string{"*"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}).Handler)

	// 100 requests per 15 minutes overall, 20 posts per hour.
	apiLimiter := httpapi.NewRateLimiter(rate.Every(15*time.Minute/100), 100)
	postLimiter := httpapi.NewRateLimiter(rate.Every(time.Hour/20), 20)
	router.Use(apiLimiter.Middleware)

	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		httpapi.OK(w, "API is running", map[string]string{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "LinkedIn NovaLink Backend",
		})
	})
	router.Mount("/api/linkedin", handler.Routes(postLimiter.Middleware))

	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("LinkedIn service running", "address", "http://localhost:"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			panic(errors.Wrap(err, "Unable to start server"))
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	<-signalChan

	logger.Info("LinkedIn service shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}

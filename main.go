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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"presence-analyzer/internal"
	"presence-analyzer/internal/config"
	"presence-analyzer/internal/container"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := internal.NewLogger(internal.ParseLogLevel(appConfig.Logging.Level))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	server, err := appContainer.WebServer()
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	web := &http.Server{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var admin *http.Server
	if appConfig.Admin.Enabled {
		admin = &http.Server{
			Addr:              ":" + appConfig.Admin.Port,
			Handler:           appContainer.AdminHandler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("Admin server (metrics, pprof, cache) listening on :%s", appConfig.Admin.Port)
			if err := admin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Admin server failed: %v", err)
			}
		}()
	}

	go func() {
		logger.Info("Starting presence analyzer on http://localhost:%s", appConfig.Server.Port)
		if err := web.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := web.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
	if admin != nil {
		if err := admin.Shutdown(ctx); err != nil {
			logger.Error("Admin server shutdown failed: %v", err)
		}
	}
}

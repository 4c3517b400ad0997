// Package main starts the in-memory stub of the HomeSeek listing API,
// setting up configuration, logging, handlers, and routes.
package main

import (
	"cmp"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/zhaohz/homeseek/internal/config"
	"github.com/zhaohz/homeseek/internal/logger"
	"github.com/zhaohz/homeseek/internal/server"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	handler := server.NewHandler(options.JWTSecret, zapLogger)
	router := server.NewRouter(handler, zapLogger)

	zapLogger.Info("starting stub API server", zap.String("addr", options.Addr))
	if err := http.ListenAndServe(options.Addr, router); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}

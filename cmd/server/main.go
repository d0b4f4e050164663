package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"cardforge/internal/api"
	"cardforge/internal/config"
	"cardforge/internal/logging"
	"cardforge/internal/metrics"
	"cardforge/internal/services"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.AppName, cfg.LogLevel)

	pdfService := services.NewPDFService()
	fileService := services.NewFileService(cfg.MaxFileSizeBytes(), pdfService)
	aiService := services.NewAIService(
		cfg.ProviderKey,
		cfg.Model,
		cfg.ProviderBaseURL,
		time.Duration(cfg.RequestTimeoutSeconds)*time.Second,
	)
	contentService := services.NewContentService(fileService, aiService)

	if cfg.ProviderKey == "" {
		slog.Warn("no provider API key configured, generation endpoints will fail")
	}

	httpMetrics := metrics.NewHTTPMetrics(cfg.AppName)
	server := api.NewServer(cfg, contentService, httpMetrics)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: time.Duration(cfg.RequestTimeoutSeconds+30) * time.Second,
	}

	var err error
	if cfg.UseTLS() {
		slog.Info("listening with TLS", "port", cfg.Port)
		err = srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
	} else {
		if cfg.TLSCertPath != "" || cfg.TLSKeyPath != "" {
			slog.Warn("TLS configured but certificate files not found, falling back to HTTP")
		}
		slog.Info("listening", "port", cfg.Port)
		err = srv.ListenAndServe()
	}

	if err != nil && err != http.ErrServerClosed {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

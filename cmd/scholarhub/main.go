// cmd/scholarhub/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"scholarhub-client/internal/api"
	"scholarhub-client/internal/application"
	"scholarhub-client/internal/common/config"
	"scholarhub-client/internal/common/database"
	"scholarhub-client/internal/common/logger"
	"scholarhub-client/internal/dashboard"
	"scholarhub-client/internal/notification"
	"scholarhub-client/internal/qualification"
	"scholarhub-client/internal/session"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(operationName+" failed, retrying...",
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return err
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger's format comes from config, so this one failure goes to
		// a default logger.
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting scholarhub client...",
		zap.String("environment", cfg.App.Environment),
		zap.String("backend", cfg.API.BaseURL),
	)

	ctx := context.Background()

	// --- Credential store ---
	var store session.CredentialStore
	switch cfg.Storage.Backend {
	case "redis":
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Storage.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.Storage.Redis.Namespace, cfg.App.Name)
		zapLog.Info("Redis credential store ready")
	default:
		fileStore, err := session.NewFileStore(cfg.Storage.File.Path)
		if err != nil {
			zapLog.Fatal("file credential store failed", zap.Error(err))
		}
		store = fileStore
		zapLog.Info("File credential store ready")
	}

	// --- Backend client and services ---
	apiClient := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.Timeout)*time.Millisecond, log)
	manager := session.NewManager(apiClient, store, log)
	loader := dashboard.NewLoader(apiClient, manager, log)

	// Constructed here so a UI embedding this binary gets fully wired services.
	_ = application.NewService(apiClient, manager, log)
	_ = notification.NewChannel(apiClient, manager, log)
	_ = session.NewProfileFlow(apiClient, manager, log)
	_ = qualification.NewFetcher(apiClient, manager)

	// --- Metrics server ---
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "healthy",
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			mux.Handle("/metrics", promhttp.Handler())
			zapLog.Info("Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				zapLog.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Session hydration ---
	hydrateCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.API.Timeout)*time.Millisecond)
	if _, err := manager.Hydrate(hydrateCtx); err != nil {
		zapLog.Warn("Session hydration did not restore a session", zap.Error(err))
	}
	cancel()

	user := manager.CurrentUser()
	if user == nil {
		zapLog.Info("No active session; sign in to load a dashboard")
	} else {
		zapLog.Info("Session restored",
			zap.String("user", user.DisplayName()),
			zap.String("role", string(user.Role)),
		)

		panel, err := dashboard.PanelFor(user.Role, loader)
		if err != nil {
			zapLog.Fatal("dashboard dispatch failed", zap.Error(err))
		}
		view, err := panel.Load(ctx, user)
		if err != nil {
			zapLog.Error("dashboard load failed", zap.Error(err))
		} else {
			zapLog.Info("Dashboard loaded",
				zap.String("panel", panel.Title()),
				zap.Int("scholarships", len(view.Scholarships)),
				zap.Int("applications", len(view.Applications)),
				zap.Int("available", len(view.Available)),
			)
		}
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received")
	zapLog.Info("Scholarhub client stopped gracefully")
}

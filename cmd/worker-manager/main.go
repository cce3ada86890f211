// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"grocery-assistant/internal/app"
	"grocery-assistant/internal/common/camunda"
	"grocery-assistant/internal/common/config"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/common/observability"

	ic "grocery-assistant/internal/workers/assistant/interpret-command"
	rp "grocery-assistant/internal/workers/assistant/resolve-price"
	si "grocery-assistant/internal/workers/assistant/suggest-items"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}
	if err := config.ValidateWorkers(cfg); err != nil {
		zap.NewExample().Fatal("worker config invalid", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.Build(ctx, cfg, obs, log)
	if err != nil {
		zapLog.Fatal("assistant build failed", zap.Error(err))
	}
	defer application.Close()

	// --- Init Zeebe Client with retry ---
	zeebe, err := camunda.Connect(ctx, cfg.Camunda, camunda.DefaultRetryConfig)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully", zap.String("broker", cfg.Camunda.BrokerAddress))

	// --- Register Workers ---
	var workers []worker.JobWorker
	register := func(taskType string, handler camunda.JobHandler) {
		if w := camunda.StartWorker(zeebe.Zeebe(), taskType, config.GetWorkerConfig(cfg, taskType), handler, log); w != nil {
			workers = append(workers, w)
		}
	}

	register(ic.TaskType, ic.NewHandler(
		ic.LoadConfig(config.GetWorkerConfig(cfg, ic.TaskType)),
		obs, log,
	))
	register(rp.TaskType, rp.NewHandler(
		rp.LoadConfig(config.GetWorkerConfig(cfg, rp.TaskType)),
		application.Prices, obs, log,
	))
	register(si.TaskType, si.NewHandler(
		si.LoadConfig(config.GetWorkerConfig(cfg, si.TaskType), cfg.APIs.Suggestion),
		application.Catalog, application.Rules, application.Suggestions, application.Prices, obs, log,
	))
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		failed := make(map[string]string)
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			failed["zeebe"] = err.Error()
		}
		for name, check := range application.Checks {
			if err := check(r.Context()); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			writeStatus(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "not ready", "checks": failed})
			return
		}
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	healthServer := &http.Server{Addr: cfg.Camunda.HealthAddress, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Camunda.HealthAddress))
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	zapLog.Info("Worker manager stopped")
}

func writeStatus(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

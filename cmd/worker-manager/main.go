// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"restaurant-workers/internal/api"
	"restaurant-workers/internal/app"
	"restaurant-workers/internal/common/camunda"
	"restaurant-workers/internal/common/config"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/observability"
	processpayment "restaurant-workers/internal/workers/payments/process-payment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if err := config.ValidateForWorkers(cfg); err != nil {
		zapLog.Fatal("invalid worker configuration", zap.Error(err))
	}

	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	obs, err := observability.New(cfg.App.Name, cfg.Observability.JaegerEndpoint)
	if err != nil {
		zapLog.Warn("observability partially initialised", zap.Error(err))
	}
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = camunda.RetryWithBackoff(ctx, camunda.DefaultRetryConfig, log, "Zeebe client initialization", func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Backends ---
	clients, err := app.Connect(ctx, cfg, camunda.DefaultRetryConfig, log)
	if err != nil {
		zapLog.Fatal("backend connection failed", zap.Error(err))
	}
	defer clients.Close()

	if clients.Postgres != nil {
		if err := processpayment.EnsureSchema(ctx, clients.Postgres); err != nil {
			zapLog.Fatal("payments schema setup failed", zap.Error(err))
		}
	}

	// --- Workers ---
	services := app.BuildServices(cfg, clients, log)
	var workers []worker.JobWorker
	for _, reg := range app.Registrations(services) {
		w := camunda.StartWorker(
			zeebe.GetClient(),
			reg.TaskType,
			config.GetWorkerConfig(cfg, reg.TaskType),
			reg.Handle,
			obs,
			log,
		)
		if w != nil {
			workers = append(workers, w)
		}
	}
	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := zeebe.HealthCheck(readyCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	server := &http.Server{
		Addr:              cfg.Observability.MetricsAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- REST API ---
	apiServer := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           api.NewRouter(services, cfg.HTTP.AllowedOrigins, log).Setup(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("API server listening", zap.String("address", apiServer.Addr))
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("API server failed", zap.Error(err))
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
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping API server", zap.Error(err))
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}

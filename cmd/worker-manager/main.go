// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"recruit-workers/internal/careerplan"
	"recruit-workers/internal/common/camunda"
	"recruit-workers/internal/common/config"
	"recruit-workers/internal/common/database"
	"recruit-workers/internal/common/logger"
	"recruit-workers/internal/common/observability"
	"recruit-workers/internal/lifecycle"
	"recruit-workers/internal/matching"
	"recruit-workers/internal/store"
	"recruit-workers/internal/suggest"
	"recruit-workers/pkg/registry"

	// Application Workers (5)
	cas "recruit-workers/internal/workers/application/change-application-status"
	ga "recruit-workers/internal/workers/application/get-application"
	loa "recruit-workers/internal/workers/application/list-offer-applications"
	ri "recruit-workers/internal/workers/application/record-interview"
	sas "recruit-workers/internal/workers/application/score-and-submit-application"

	// Career Workers (5)
	gcp "recruit-workers/internal/workers/career/generate-career-plan"
	getcp "recruit-workers/internal/workers/career/get-career-plan"
	rcp "recruit-workers/internal/workers/career/refresh-career-plan"
	tca "recruit-workers/internal/workers/career/toggle-career-action"
	uco "recruit-workers/internal/workers/career/update-career-objective"
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
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("otel metrics disabled", zap.Error(err))
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(camunda.ConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()

	if _, err := zeebe.ExecuteWithRetry(ctx, func(ctx context.Context) (interface{}, error) {
		return zeebe.GetClient().NewTopologyCommand().Send(ctx)
	}, "topology"); err != nil {
		zapLog.Fatal("zeebe topology check failed", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Domain services ---
	generator, err := suggest.New(ctx, cfg.Suggestions, log)
	if err != nil {
		zapLog.Fatal("suggestion provider init failed", zap.Error(err))
	}

	signals := store.NewSignalStore(pg.DB, redis.Client, config.GetDuration(cfg.Scoring.CacheTTL*1000), log)
	applications := lifecycle.NewService(
		store.NewApplicationRepo(pg.DB),
		signals,
		matching.NewScorer(matching.DefaultPolicy()),
		log,
	)
	plans := careerplan.NewService(
		store.NewPlanRepo(pg.DB),
		signals,
		generator,
		log,
		careerplan.WithMaxActions(cfg.Suggestions.MaxActions),
		careerplan.WithTimeout(config.GetDuration(cfg.Suggestions.Timeout)),
	)

	// --- Register Workers ---
	jobTimeout := config.GetDuration(cfg.Camunda.Timeout)
	catalog := registry.Builtin()
	var workers []worker.JobWorker
	register := func(taskType string, build func(wc config.WorkerConfig) camunda.JobHandler) {
		if !config.IsWorkerEnabled(cfg, taskType) {
			zapLog.Info("Worker disabled", zap.String("taskType", taskType))
			return
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		// the broker lease must outlive the handler's own deadline
		lease := jobTimeout
		if d := config.GetDuration(wcfg.Timeout) + 5*time.Second; d > lease {
			lease = d
		}
		workers = append(workers, camunda.Open(zeebe.GetClient(), taskType, wcfg.MaxJobsActive, lease, build(wcfg)))
		activity, known := catalog.Lookup(taskType)
		if !known {
			zapLog.Warn("Worker missing from activity registry", zap.String("taskType", taskType))
		}
		zapLog.Info("Worker registered",
			zap.String("taskType", taskType),
			zap.String("category", activity.Category),
			zap.Int("maxJobsActive", wcfg.MaxJobsActive),
			zap.Duration("lease", lease),
		)
	}

	register(sas.TaskType, func(wc config.WorkerConfig) camunda.JobHandler {
		return sas.NewHandler(sas.LoadConfig(wc), applications, obs, log)
	})
	register(cas.TaskType, func(wc config.WorkerConfig) camunda.JobHandler {
		return cas.NewHandler(cas.LoadConfig(wc), applications, obs, log)
	})
	register(ri.TaskType, func(wc config.WorkerConfig) camunda.JobHandler {
		return ri.NewHandler(ri.LoadConfig(wc), applications, obs, log)
	})
	register(ga.TaskType, func(wc config.WorkerConfig) camunda.JobHandler {
		return ga.NewHandler(ga.LoadConfig(wc), applications, obs, log)
	})
	register(loa.TaskType, func(wc config.WorkerConfig) camunda.JobHandler {
		return loa.NewHandler(loa.LoadConfig(wc), applications, obs, log)
	})

	register(gcp.TaskType, func(wc config.WorkerConfig) camunda.JobHandler {
		return gcp.NewHandler(gcp.LoadConfig(wc), plans, obs, log)
	})
	register(uco.TaskType, func(wc config.WorkerConfig) camunda.JobHandler {
		return uco.NewHandler(uco.LoadConfig(wc), plans, obs, log)
	})
	register(rcp.TaskType, func(wc config.WorkerConfig) camunda.JobHandler {
		return rcp.NewHandler(rcp.LoadConfig(wc), plans, obs, log)
	})
	register(tca.TaskType, func(wc config.WorkerConfig) camunda.JobHandler {
		return tca.NewHandler(tca.LoadConfig(wc), plans, obs, log)
	})
	register(getcp.TaskType, func(wc config.WorkerConfig) camunda.JobHandler {
		return getcp.NewHandler(getcp.LoadConfig(wc), plans, obs, log)
	})

	zapLog.Info("All workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := readiness(ctx, zeebe, pg, redis); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: cfg.Server.Address, Handler: mux}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing metrics", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func readiness(ctx context.Context, zeebe *camunda.Client, pg *database.PostgresClient, redis *database.RedisClient) error {
	if err := pg.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if err := redis.Ping(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return zeebe.HealthCheck(ctx)
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}

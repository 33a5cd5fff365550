package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kinhostella/atletismo/internal/config"
	"github.com/kinhostella/atletismo/internal/db"
	dbRedis "github.com/kinhostella/atletismo/internal/db/redis"
	"github.com/kinhostella/atletismo/internal/domain/event"
	logpkg "github.com/kinhostella/atletismo/internal/logger"
	"github.com/kinhostella/atletismo/internal/metrics"
	"github.com/kinhostella/atletismo/internal/repository/intentcache"
	"github.com/kinhostella/atletismo/internal/repository/ranking"
	chiTransport "github.com/kinhostella/atletismo/internal/transport/chi"
	"github.com/kinhostella/atletismo/internal/transport/llm"
	askuc "github.com/kinhostella/atletismo/internal/usecase/ask"
	composeuc "github.com/kinhostella/atletismo/internal/usecase/compose"
	extractuc "github.com/kinhostella/atletismo/internal/usecase/extract"
	healthuc "github.com/kinhostella/atletismo/internal/usecase/health"
	queryuc "github.com/kinhostella/atletismo/internal/usecase/query"
	"github.com/kinhostella/atletismo/internal/version"
)

func main() {
	question := flag.String("ask", "", "answer one question on stdout and exit (no HTTP server)")
	flag.Parse()

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting atletismo API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("dataset", cfg.Dataset.Path),
		zap.String("model", cfg.LLM.Model),
	)

	// The dataset is loaded once at startup. A failed load keeps the server
	// up so /healthz reports it; /ask returns 503 until a restart fixes it.
	table, err := ranking.Load(cfg.Dataset.Path)
	if err != nil {
		logger.Error("Failed to load ranking dataset", zap.Error(err))
		table = nil
	} else {
		logger.Info("Ranking dataset loaded", zap.Int("rows", table.Len()))
	}

	// Optional intent cache
	var store db.Store
	if cfg.Cache.Enabled() {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(context.Background(), 30*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to intent cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Register metrics explicitly (no init())
	metrics.RegisterLLMMetrics()

	modelClient := llm.NewClient(&llm.Config{
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
		Provider: cfg.LLM.Provider,
		Timeout:  time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		Logger:   logger,
	})

	// Pipeline stages — composition root
	var extractor askuc.Extractor = extractuc.New(modelClient)
	if store != nil {
		extractor = intentcache.New(
			extractor, store,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.IntentCacheTotal, logger,
		)
	}
	engine := queryuc.New(event.NewResolver())
	composer := composeuc.New(modelClient)

	askSvc := askuc.New(table, extractor, engine, composer)

	// One-shot CLI mode
	if *question != "" {
		answer, err := askSvc.Ask(logpkg.WithContext(context.Background(), logger), *question)
		if err != nil {
			logger.Fatal("Failed to answer question", zap.Error(err))
		}
		for _, w := range answer.Warnings {
			fmt.Fprintln(os.Stderr, "aviso:", w)
		}
		fmt.Println(answer.Text)
		return
	}

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	var dataset healthuc.DatasetCounter
	if table != nil {
		dataset = table
	}
	healthSvc := healthuc.New(dataset, modelClient, cachePinger)

	server := chiTransport.NewServer(askSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.WithContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

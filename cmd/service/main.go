package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	application "waste-service/internal/app"
	"waste-service/internal/entities"
	"waste-service/internal/handlers/rest/bin_request_approve_post"
	"waste-service/internal/handlers/rest/bin_request_cancel_post"
	"waste-service/internal/handlers/rest/bin_request_get"
	"waste-service/internal/handlers/rest/bin_request_post"
	"waste-service/internal/handlers/rest/bin_request_reject_post"
	"waste-service/internal/handlers/rest/delivery_confirm_post"
	"waste-service/internal/handlers/rest/delivery_post"
	"waste-service/internal/handlers/rest/delivery_status_put"
	"waste-service/internal/handlers/rest/delivery_tracking_get"
	"waste-service/internal/handlers/rest/device_token_post"
	"waste-service/internal/handlers/rest/healthcheck_head"
	"waste-service/internal/handlers/rest/notifications_get"
	"waste-service/internal/handlers/rest/pickup_assign_post"
	"waste-service/internal/handlers/rest/pickup_complete_post"
	"waste-service/internal/handlers/rest/pickup_get"
	"waste-service/internal/handlers/rest/pickup_post"
	"waste-service/internal/handlers/rest/pickup_start_post"
	"waste-service/internal/handlers/rest/ping_get"
	"waste-service/internal/pkg/config"
	"waste-service/internal/pkg/dotenv"
	"waste-service/internal/pkg/grpcclient"
	"waste-service/internal/pkg/kafka"
	metrics_system "waste-service/internal/pkg/metrics"
	"waste-service/internal/pkg/middlewares/auth"
	"waste-service/internal/pkg/middlewares/graceful_shutdown"
	"waste-service/internal/pkg/middlewares/metrics"
	"waste-service/internal/pkg/middlewares/rate_limiter"
	"waste-service/internal/pkg/middlewares/timeout"
	"waste-service/internal/pkg/postgres"
	"waste-service/internal/pkg/redis"
	"waste-service/pkg/logger"
	"waste-service/pkg/logger/zap_adapter"
	"waste-service/pkg/token_bucket"
)

func main() {
	envErr := loadDotenv()

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting waste-service application")

	if envErr != nil {
		mainLog.Error("failed to load .env file", logger.NewField("error", envErr))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

func loadDotenv() error {
	if err := dotenv.Load(); err != nil {
		return err
	}
	return dotenv.ApplyPortFlag()
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, log, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			runLog.Error("failed to close redis client", logger.NewField("error", err))
		}
	}()

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}()

	// соединение с billing-сервисом нужно только для PAYMENT_LEDGER=grpc
	var conn *grpc.ClientConn
	if cfg.Payment.Ledger == config.PaymentLedgerGRPC {
		conn, err = grpcclient.NewConnClient(ctx, log, &cfg.Payment)
		if err != nil {
			return fmt.Errorf("gRPC client: %w", err)
		}
		defer func() {
			if err := conn.Close(); err != nil {
				runLog.Error("failed to close gRPC connection", logger.NewField("error", err))
			}
		}()
	}

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, redisClient, producer, conn, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx, log)

	var limiter rate_limiter.Limiter
	switch cfg.Server.RateLimiterBackend {
	case config.RateLimiterRedis:
		limiter = redis.NewWindowLimiter(redisClient, cfg.Server.RateLimiterQPS, time.Second)
	default:
		limiter = token_bucket.New(cfg.Server.RateLimiterBurst, float64(cfg.Server.RateLimiterQPS))
	}

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	router := routerDeps{
		log:            log,
		isShuttingDown: &isShuttingDown,
		app:            businessApp,
		database:       pool,
		limiter:        limiter,
		cfg:            cfg,
	}

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, router),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
			logger.NewField("rate_limiter", cfg.Server.RateLimiterBackend),
			logger.NewField("payment_ledger", cfg.Payment.Ledger),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, pool),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()
	runLog.Info("Server stopped")
	return nil
}

type routerDeps struct {
	log            logger.Logger
	isShuttingDown *atomic.Bool
	app            *application.Application
	database       healthcheck_head.Pinger
	limiter        rate_limiter.Limiter
	cfg            *config.Config
}

func initRouter(ongoingCtx context.Context, deps routerDeps) http.Handler {
	log, app := deps.log, deps.app

	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(deps.isShuttingDown, ongoingCtx))
	router.Use(timeout.Middleware(deps.cfg.Server.RequestTimeout))
	router.Use(metrics.Middleware(log))

	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/healthcheck", healthcheck_head.New(deps.isShuttingDown, deps.database)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log)).Methods(http.MethodGet)

	// публичный трекинг доставки ограничивается по IP
	public := router.NewRoute().Subrouter()
	public.Use(rate_limiter.Middleware(log, deps.cfg.Server.RateLimiterQPS, deps.limiter))
	public.Handle("/deliveries/tracking/{trackingNumber}", delivery_tracking_get.New(log, app.ServiceDelivery)).Methods(http.MethodGet)

	api := router.NewRoute().Subrouter()
	api.Use(auth.Middleware(log, deps.cfg.Auth.JWTSecret))
	api.Use(rate_limiter.Middleware(log, deps.cfg.Server.RateLimiterQPS, deps.limiter))

	staff := auth.RequireRoles(log, entities.RoleOperator, entities.RoleAdmin)
	fieldStaff := auth.RequireRoles(log, entities.RoleCollector, entities.RoleOperator, entities.RoleAdmin)
	collectors := auth.RequireRoles(log, entities.RoleCollector)

	api.Handle("/bin-requests", bin_request_post.New(log, app.ServiceBinRequest)).Methods(http.MethodPost)
	api.Handle("/bin-requests/{id}", bin_request_get.New(log, app.ServiceBinRequest)).Methods(http.MethodGet)
	api.Handle("/bin-requests/{id}/approve", staff(bin_request_approve_post.New(log, app.ServiceBinRequest))).Methods(http.MethodPost)
	api.Handle("/bin-requests/{id}/reject", staff(bin_request_reject_post.New(log, app.ServiceBinRequest))).Methods(http.MethodPost)
	api.Handle("/bin-requests/{id}/cancel", bin_request_cancel_post.New(log, app.ServiceBinRequest)).Methods(http.MethodPost)

	api.Handle("/deliveries", staff(delivery_post.New(log, app.ServiceDelivery))).Methods(http.MethodPost)
	api.Handle("/deliveries/{id}/status", fieldStaff(delivery_status_put.New(log, app.ServiceDelivery))).Methods(http.MethodPut)
	api.Handle("/deliveries/{id}/confirm", delivery_confirm_post.New(log, app.ServiceDelivery)).Methods(http.MethodPost)

	api.Handle("/pickups", pickup_post.New(log, app.ServicePickup)).Methods(http.MethodPost)
	api.Handle("/pickups/{id}", pickup_get.New(log, app.ServicePickup)).Methods(http.MethodGet)
	api.Handle("/pickups/{id}/assign", staff(pickup_assign_post.New(log, app.ServicePickup))).Methods(http.MethodPost)
	api.Handle("/pickups/{id}/start", collectors(pickup_start_post.New(log, app.ServicePickup))).Methods(http.MethodPost)
	api.Handle("/pickups/{id}/complete", collectors(pickup_complete_post.New(log, app.ServicePickup))).Methods(http.MethodPost)

	api.Handle("/notifications", notifications_get.New(log, app.ServiceNotification)).Methods(http.MethodGet)
	api.Handle("/users/me/device-token", device_token_post.New(log, app.ServiceUser)).Methods(http.MethodPost)

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool, database healthcheck_head.Pinger) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, database)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}

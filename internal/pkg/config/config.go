package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	PaymentLedgerPostgres = "postgres"
	PaymentLedgerGRPC     = "grpc"

	RateLimiterMemory = "memory"
	RateLimiterRedis  = "redis"

	defaultPickupRadiusMeters = 50
)

type (
	Tasks struct {
		NotificationDispatchInterval time.Duration
		NotificationDispatchBatch    int
	}

	HTTPServer struct {
		Port               string
		RequestTimeout     time.Duration // middleware timeout
		RateLimiterQPS     int           // middleware rate limiter capacity
		RateLimiterBurst   int           // middleware rate limiter burst/refill
		RateLimiterBackend string        // memory | redis
		PprofEnabled       bool
		PprofPort          string
	}

	Database struct {
		Host           string
		Port           string
		User           string
		Password       string
		DBName         string
		SSLMode        string
		IsolationLevel string
		MaxConns       int
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Payment struct {
		Ledger   string // postgres | grpc
		GRPCHost string
	}

	Auth struct {
		JWTSecret string
	}

	Workflow struct {
		StrictDeliveryTransitions bool
		CompareAndSwap            bool
		PickupRadiusMeters        float64
	}

	Notification struct {
		FCMCredentialsFile string
		DispatchTimeout    time.Duration
	}

	Kafka struct {
		PortHealthcheck   string
		Brokers           string
		NotificationTopic string
		ConsumerGroup     string
		Sarama            Sarama
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	Config struct {
		LogLevel     string
		Tasks        Tasks
		Server       HTTPServer
		Database     Database
		Redis        Redis
		Payment      Payment
		Auth         Auth
		Workflow     Workflow
		Notification Notification
		Kafka        Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	dispatchInterval, err := osGetEnvDuration("BACKGROUND_NOTIFICATION_DISPATCH_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dispatchBatch, err := osGetInt("BACKGROUND_NOTIFICATION_DISPATCH_BATCH")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	strictTransitions, err := osGetBool("WORKFLOW_STRICT_DELIVERY_TRANSITIONS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	compareAndSwap, err := osGetBool("WORKFLOW_COMPARE_AND_SWAP")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pickupRadius, err := osGetFloat("WORKFLOW_PICKUP_RADIUS_METERS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if pickupRadius == 0 {
		pickupRadius = defaultPickupRadiusMeters
	}

	maxConns, err := osGetInt("POSTGRES_MAX_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dispatchTimeout, err := osGetEnvDuration("NOTIFICATION_DISPATCH_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		LogLevel: os.Getenv("LOG_LEVEL"),
		Tasks: Tasks{
			NotificationDispatchInterval: dispatchInterval,
			NotificationDispatchBatch:    dispatchBatch,
		},
		Server: HTTPServer{
			Port:               os.Getenv("PORT"),
			RequestTimeout:     requestTimeout,
			RateLimiterQPS:     rateLimiterQPS,
			RateLimiterBurst:   rateLimiterBurst,
			RateLimiterBackend: osGetOrDefault("MIDDLEWARE_RATE_LIMIT_BACKEND", RateLimiterMemory),
			PprofEnabled:       pprofEnabled,
			PprofPort:          os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:           os.Getenv("POSTGRES_HOST"),
			Port:           os.Getenv("POSTGRES_PORT"),
			User:           os.Getenv("POSTGRES_USER"),
			Password:       os.Getenv("POSTGRES_PASSWORD"),
			DBName:         os.Getenv("POSTGRES_DB"),
			SSLMode:        os.Getenv("POSTGRES_SSLMODE"),
			IsolationLevel: os.Getenv("DB_ISOLATION_LEVEL"),
			MaxConns:       maxConns,
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Payment: Payment{
			Ledger:   osGetOrDefault("PAYMENT_LEDGER", PaymentLedgerPostgres),
			GRPCHost: os.Getenv("PAYMENT_LEDGER_GRPC_HOST"),
		},
		Auth: Auth{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Workflow: Workflow{
			StrictDeliveryTransitions: strictTransitions,
			CompareAndSwap:            compareAndSwap,
			PickupRadiusMeters:        pickupRadius,
		},
		Notification: Notification{
			FCMCredentialsFile: os.Getenv("FCM_CREDENTIALS_FILE"),
			DispatchTimeout:    dispatchTimeout,
		},
		Kafka: Kafka{
			Brokers:           os.Getenv("KAFKA_BROKERS"),
			NotificationTopic: os.Getenv("KAFKA_NOTIFICATION_TOPIC"),
			ConsumerGroup:     os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck:   os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.RateLimiterBackend != RateLimiterMemory && cfg.Server.RateLimiterBackend != RateLimiterRedis {
		return fmt.Errorf("MIDDLEWARE_RATE_LIMIT_BACKEND must be %q or %q", RateLimiterMemory, RateLimiterRedis)
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	if cfg.Database.MaxConns < 0 {
		return errors.New("POSTGRES_MAX_CONNS must not be negative")
	}

	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	switch cfg.Payment.Ledger {
	case PaymentLedgerPostgres:
	case PaymentLedgerGRPC:
		if cfg.Payment.GRPCHost == "" {
			return errors.New("PAYMENT_LEDGER_GRPC_HOST is required when PAYMENT_LEDGER=grpc")
		}
	default:
		return fmt.Errorf("PAYMENT_LEDGER must be %q or %q", PaymentLedgerPostgres, PaymentLedgerGRPC)
	}

	if cfg.Workflow.PickupRadiusMeters < 0 {
		return errors.New("WORKFLOW_PICKUP_RADIUS_METERS must not be negative")
	}

	if cfg.Tasks.NotificationDispatchInterval == time.Duration(0) {
		return errors.New("BACKGROUND_NOTIFICATION_DISPATCH_INTERVAL is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.NotificationTopic == "" {
		return errors.New("KAFKA_NOTIFICATION_TOPIC is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	return nil
}

// ValidateWorker checks the settings the notification dispatch worker needs on top of Load.
func (c *Config) ValidateWorker() error {
	if c.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if c.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if c.Notification.FCMCredentialsFile == "" {
		return errors.New("FCM_CREDENTIALS_FILE is required")
	}
	if c.Notification.DispatchTimeout == time.Duration(0) {
		return errors.New("NOTIFICATION_DISPATCH_TIMEOUT is required")
	}
	return nil
}

func osGetOrDefault(s, def string) string {
	if val := os.Getenv(s); val != "" {
		return val
	}
	return def
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"golang.org/x/time/rate"

	_ "github.com/sbilibin2017/gw-token-ledger/docs"
	"github.com/sbilibin2017/gw-token-ledger/internal/handlers"
	"github.com/sbilibin2017/gw-token-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/middlewares"
	"github.com/sbilibin2017/gw-token-ledger/internal/migrations"
	"github.com/sbilibin2017/gw-token-ledger/internal/payments"
	"github.com/sbilibin2017/gw-token-ledger/internal/pricing"
	"github.com/sbilibin2017/gw-token-ledger/internal/realtime"
	"github.com/sbilibin2017/gw-token-ledger/internal/repositories"
	"github.com/sbilibin2017/gw-token-ledger/internal/services"
	"github.com/sbilibin2017/gw-token-ledger/internal/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const shutdownTimeout = 10 * time.Second

// @title gw-token-ledger API
// @version 1.0.0
// @description Token wallet of the marketplace: balances, job applications, promotions and payment top-ups
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// config is the full service configuration read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	PaymentRefTTL     time.Duration

	KafkaBrokers         []string
	KafkaLedgerTopic     string
	KafkaRetryTopic      string
	KafkaGroupID         string
	KafkaRedeliveryDelay time.Duration

	S3       storage.Config
	S3Bucket string

	JWTSecretKey         string
	PaymentWebhookSecret string
	PricingFile          string
	WebhookRateLimit     float64
	WebhookRateBurst     int
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, Kafka, S3, auth and pricing configuration.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var (
		cfg = &config{}
		err error
	)

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return nil, fmt.Errorf("POSTGRES_PORT: %w", err)
	}
	if cfg.PGMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return nil, fmt.Errorf("POSTGRES_MAX_OPEN_CONNS: %w", err)
	}
	if cfg.PGMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return nil, fmt.Errorf("POSTGRES_MAX_IDLE_CONNS: %w", err)
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return nil, fmt.Errorf("REDIS_PORT: %w", err)
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return nil, fmt.Errorf("REDIS_POOL_SIZE: %w", err)
	}
	if cfg.RedisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return nil, fmt.Errorf("REDIS_MIN_IDLE_CONNS: %w", err)
	}
	if cfg.PaymentRefTTL, err = time.ParseDuration(getEnv("REDIS_PAYMENT_REFERENCE_TTL", "72h")); err != nil {
		return nil, fmt.Errorf("REDIS_PAYMENT_REFERENCE_TTL: %w", err)
	}

	// Kafka config
	cfg.KafkaBrokers = strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	cfg.KafkaLedgerTopic = getEnv("KAFKA_LEDGER_TOPIC", "ledger-events")
	cfg.KafkaRetryTopic = getEnv("KAFKA_PAYMENT_RETRY_TOPIC", "payment-credits-retry")
	cfg.KafkaGroupID = getEnv("KAFKA_GROUP_ID", "token-ledger")
	if cfg.KafkaRedeliveryDelay, err = time.ParseDuration(getEnv("KAFKA_REDELIVERY_DELAY", "30s")); err != nil {
		return nil, fmt.Errorf("KAFKA_REDELIVERY_DELAY: %w", err)
	}

	// S3 config
	cfg.S3 = storage.Config{
		Region:          getEnv("S3_REGION", "us-east-1"),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
	}
	if cfg.S3.UseSSL, err = strconv.ParseBool(getEnv("S3_USE_SSL", "false")); err != nil {
		return nil, fmt.Errorf("S3_USE_SSL: %w", err)
	}
	cfg.S3Bucket = getEnv("S3_BUCKET", "statements")

	// Auth, payments and pricing
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	cfg.PaymentWebhookSecret = getEnv("PAYMENT_WEBHOOK_SECRET", "")
	cfg.PricingFile = getEnv("PRICING_FILE", "")
	if cfg.WebhookRateLimit, err = strconv.ParseFloat(getEnv("WEBHOOK_RATE_LIMIT", "20"), 64); err != nil {
		return nil, fmt.Errorf("WEBHOOK_RATE_LIMIT: %w", err)
	}
	if cfg.WebhookRateBurst, err = strconv.Atoi(getEnv("WEBHOOK_RATE_BURST", "40")); err != nil {
		return nil, fmt.Errorf("WEBHOOK_RATE_BURST: %w", err)
	}

	return cfg, nil
}

// routerDeps are the collaborators the HTTP surface is built from.
type routerDeps struct {
	Wallet interface {
		handlers.WalletReader
		handlers.TransactionReader
		handlers.ApplicationSpender
		handlers.Promoter
		handlers.PricingReader
	}
	Statements     handlers.StatementExporter
	Confirmer      handlers.PaymentConfirmer
	Subscriber     handlers.WalletSubscriber
	Tokener        middlewares.Tokener
	WebhookSecret  []byte
	WebhookLimiter *rate.Limiter
}

// newRouter builds the HTTP routes and their middleware chains.
func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.MetricsMiddleware)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Signed by the payment provider, not by a user token
	r.Group(func(r chi.Router) {
		r.Use(middlewares.RateLimitMiddleware(deps.WebhookLimiter))
		handlers.RegisterPaymentWebhookHandler(r, handlers.NewPaymentWebhookHandler(deps.Confirmer, deps.WebhookSecret))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(deps.Tokener))

		handlers.RegisterWalletHandlers(r,
			handlers.NewGetWalletHandler(deps.Wallet),
			handlers.NewListTransactionsHandler(deps.Wallet),
		)
		handlers.RegisterWalletStreamHandler(r, handlers.NewWalletStreamHandler(deps.Subscriber))
		handlers.RegisterStatementHandlers(r,
			handlers.NewExportStatementHandler(deps.Statements),
			handlers.NewDeleteStatementHandler(deps.Statements),
		)
		handlers.RegisterApplyToJobHandler(r, handlers.NewApplyToJobHandler(deps.Wallet))
		handlers.RegisterPromotionHandlers(r,
			handlers.NewQuotePromotionHandler(deps.Wallet),
			handlers.NewPromoteHandler(deps.Wallet),
		)
		handlers.RegisterGetPricingHandler(r, handlers.NewGetPricingHandler(deps.Wallet))
	})

	return r
}

func newKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func newKafkaReader(brokers []string, topic, groupID string, startOffset int64) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		StartOffset: startOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     time.Second,
	})
}

// run initializes the logger, database, Redis, Kafka, object storage and HTTP server.
// It wires the background consumers and handles graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	if cfg.PaymentWebhookSecret == "" {
		logger.Log.Warn("PAYMENT_WEBHOOK_SECRET is empty, every webhook will be rejected")
	}

	table, err := pricing.Load(cfg.PricingFile)
	if err != nil {
		return err
	}

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL ping failed: %w", err)
	}
	if err := migrations.Run(db.DB); err != nil {
		return err
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Object storage
	objects, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		return err
	}
	if err := objects.EnsureBucket(ctx, cfg.S3Bucket); err != nil {
		return err
	}

	// Kafka
	ledgerWriter := newKafkaWriter(cfg.KafkaBrokers, cfg.KafkaLedgerTopic)
	defer ledgerWriter.Close()
	retryWriter := newKafkaWriter(cfg.KafkaBrokers, cfg.KafkaRetryTopic)
	defer retryWriter.Close()

	// every instance keeps its own projection and needs every ledger event
	projectionReader := newKafkaReader(cfg.KafkaBrokers, cfg.KafkaLedgerTopic,
		fmt.Sprintf("%s-projection-%s", cfg.KafkaGroupID, uuid.NewString()), kafka.LastOffset)
	redeliveryReader := newKafkaReader(cfg.KafkaBrokers, cfg.KafkaRetryTopic,
		cfg.KafkaGroupID+"-redelivery", kafka.FirstOffset)

	// Initialize repositories
	walletRepo := repositories.NewWalletRepository(db)
	promotionRepo := repositories.NewPromotionRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	paymentCache := repositories.NewPaymentReferenceCacheRepository(rdb, cfg.PaymentRefTTL)
	transactor := repositories.NewTransactor(db)

	// Initialize services
	walletService := services.NewWalletService(
		walletRepo, transactor, promotionRepo, applicationRepo,
		paymentRepo, paymentCache, ledgerWriter, table,
	)
	statementService := services.NewStatementService(walletRepo, objects, cfg.S3Bucket)
	confirmer := payments.NewConfirmer(walletService, retryWriter, table)
	projection := realtime.NewProjection(walletService)

	// Background consumers
	consumer := realtime.NewConsumer(projectionReader, projection)
	consumer.Start(ctx)
	defer consumer.Stop()

	redelivery := payments.NewRedeliveryWorker(redeliveryReader, confirmer, cfg.KafkaRedeliveryDelay)
	redelivery.Start(ctx)
	defer redelivery.Stop()

	router := newRouter(routerDeps{
		Wallet:         walletService,
		Statements:     statementService,
		Confirmer:      confirmer,
		Subscriber:     projection,
		Tokener:        jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey)),
		WebhookSecret:  []byte(cfg.PaymentWebhookSecret),
		WebhookLimiter: rate.NewLimiter(rate.Limit(cfg.WebhookRateLimit), cfg.WebhookRateBurst),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	// Shutdown does not track hijacked websocket connections
	srv.RegisterOnShutdown(projection.Close)

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

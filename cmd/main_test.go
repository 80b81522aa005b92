package main

import (
	"bytes"
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/handlers"
	"github.com/sbilibin2017/gw-token-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/sbilibin2017/gw-token-ledger/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	assert.Equal(t, "myconfig.env", parseFlags())
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	output := buf.String()
	assert.Contains(t, output, "Version: v1.0.0")
	assert.Contains(t, output, "Commit: abcd1234")
	assert.Contains(t, output, "Build: 2025-09-26")
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.AppHost)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "info", cfg.LogLevel)

	assert.Equal(t, 5432, cfg.PGPort)
	assert.Equal(t, 16, cfg.PGMaxOpenConns)
	assert.Equal(t, 8, cfg.PGMaxIdleConns)

	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, 72*time.Hour, cfg.PaymentRefTTL)

	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "ledger-events", cfg.KafkaLedgerTopic)
	assert.Equal(t, "payment-credits-retry", cfg.KafkaRetryTopic)
	assert.Equal(t, 30*time.Second, cfg.KafkaRedeliveryDelay)

	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.False(t, cfg.S3.UseSSL)
	assert.Equal(t, "statements", cfg.S3Bucket)

	assert.Equal(t, "my_super_secret_key", cfg.JWTSecretKey)
	assert.Empty(t, cfg.PaymentWebhookSecret)
	assert.Empty(t, cfg.PricingFile)
	assert.Equal(t, 20.0, cfg.WebhookRateLimit)
	assert.Equal(t, 40, cfg.WebhookRateBurst)
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv()
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("POSTGRES_HOST", "pg.example.com")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("REDIS_PAYMENT_REFERENCE_TTL", "24h")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_REDELIVERY_DELAY", "1m")
	t.Setenv("S3_ENDPOINT", "minio:9000")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("S3_BUCKET", "ledger")
	t.Setenv("JWT_SECRET_KEY", "supersecret")
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "whsec")
	t.Setenv("PRICING_FILE", "configs/pricing.yaml")
	t.Setenv("WEBHOOK_RATE_LIMIT", "2.5")
	t.Setenv("WEBHOOK_RATE_BURST", "5")

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.AppHost)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "pg.example.com", cfg.PGHost)
	assert.Equal(t, 5433, cfg.PGPort)
	assert.Equal(t, 24*time.Hour, cfg.PaymentRefTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Minute, cfg.KafkaRedeliveryDelay)
	assert.Equal(t, "minio:9000", cfg.S3.Endpoint)
	assert.True(t, cfg.S3.UseSSL)
	assert.Equal(t, "ledger", cfg.S3Bucket)
	assert.Equal(t, "supersecret", cfg.JWTSecretKey)
	assert.Equal(t, "whsec", cfg.PaymentWebhookSecret)
	assert.Equal(t, "configs/pricing.yaml", cfg.PricingFile)
	assert.Equal(t, 2.5, cfg.WebhookRateLimit)
	assert.Equal(t, 5, cfg.WebhookRateBurst)
}

func TestParseConfig_Invalid(t *testing.T) {
	for key, val := range map[string]string{
		"POSTGRES_PORT":               "abc",
		"REDIS_PAYMENT_REFERENCE_TTL": "forever",
		"S3_USE_SSL":                  "maybe",
		"WEBHOOK_RATE_BURST":          "x",
	} {
		t.Run(key, func(t *testing.T) {
			resetEnv()
			t.Setenv(key, val)

			_, err := parseConfig("nonexistent.env")
			assert.Error(t, err)
		})
	}
}

func TestRun_InvalidLogLevel(t *testing.T) {
	resetEnv()
	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)
	cfg.LogLevel = "loud"

	assert.Error(t, run(context.Background(), cfg))
}

func TestRun_DatabaseUnavailable(t *testing.T) {
	resetEnv()
	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)
	cfg.PGHost = "127.0.0.1"
	cfg.PGPort = 1

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Error(t, run(ctx, cfg))
}

type routerMocks struct {
	wallet     *handlers.MockWalletReader
	txns       *handlers.MockTransactionReader
	spender    *handlers.MockApplicationSpender
	promoter   *handlers.MockPromoter
	pricing    *handlers.MockPricingReader
	statements *handlers.MockStatementExporter
	confirmer  *handlers.MockPaymentConfirmer
	subscriber *handlers.MockWalletSubscriber
}

// walletFacade stitches the per-handler mocks into the single wallet dependency.
type walletFacade struct {
	*handlers.MockWalletReader
	*handlers.MockTransactionReader
	*handlers.MockApplicationSpender
	*handlers.MockPromoter
	*handlers.MockPricingReader
}

func newTestRouter(t *testing.T, tokens *jwt.JWT, limiter *rate.Limiter) (http.Handler, routerMocks) {
	ctrl := gomock.NewController(t)
	m := routerMocks{
		wallet:     handlers.NewMockWalletReader(ctrl),
		txns:       handlers.NewMockTransactionReader(ctrl),
		spender:    handlers.NewMockApplicationSpender(ctrl),
		promoter:   handlers.NewMockPromoter(ctrl),
		pricing:    handlers.NewMockPricingReader(ctrl),
		statements: handlers.NewMockStatementExporter(ctrl),
		confirmer:  handlers.NewMockPaymentConfirmer(ctrl),
		subscriber: handlers.NewMockWalletSubscriber(ctrl),
	}
	router := newRouter(routerDeps{
		Wallet:         walletFacade{m.wallet, m.txns, m.spender, m.promoter, m.pricing},
		Statements:     m.statements,
		Confirmer:      m.confirmer,
		Subscriber:     m.subscriber,
		Tokener:        tokens,
		WebhookSecret:  []byte("whsec"),
		WebhookLimiter: limiter,
	})
	return router, m
}

func TestRouter_RequiresToken(t *testing.T) {
	router, _ := newTestRouter(t, jwt.New(jwt.WithSecretKey("secret")), rate.NewLimiter(rate.Inf, 1))

	for _, path := range []string{"/api/v1/wallet", "/api/v1/pricing", "/api/v1/wallet/stream"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestRouter_AuthenticatedRequest(t *testing.T) {
	tokens := jwt.New(jwt.WithSecretKey("secret"), jwt.WithExpiration(time.Minute))
	router, m := newTestRouter(t, tokens, rate.NewLimiter(rate.Inf, 1))

	userID := uuid.New()
	token, err := tokens.Generate(context.Background(), userID)
	require.NoError(t, err)

	m.wallet.EXPECT().GetOrCreateWallet(gomock.Any(), userID).
		Return(&models.Wallet{UserID: userID, Balance: 7, Version: 2}, nil)
	m.pricing.EXPECT().Pricing().Return(pricing.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/pricing", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_WebhookIsRateLimited(t *testing.T) {
	router, _ := newTestRouter(t, jwt.New(), rate.NewLimiter(rate.Limit(0), 1))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader([]byte(`{}`))))
		codes = append(codes, rr.Code)
	}

	// the first request reaches the handler and fails the signature check
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := newTestRouter(t, jwt.New(), rate.NewLimiter(rate.Inf, 1))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "tokenledger_stream_subscribers")
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/sbilibin2017/gw-wallet-payments/docs"

	"github.com/sbilibin2017/gw-wallet-payments/internal/facades"
	"github.com/sbilibin2017/gw-wallet-payments/internal/handlers"
	"github.com/sbilibin2017/gw-wallet-payments/internal/jwt"
	"github.com/sbilibin2017/gw-wallet-payments/internal/logger"
	"github.com/sbilibin2017/gw-wallet-payments/internal/middlewares"
	"github.com/sbilibin2017/gw-wallet-payments/internal/migrations"
	"github.com/sbilibin2017/gw-wallet-payments/internal/repositories"
	"github.com/sbilibin2017/gw-wallet-payments/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	GRPCPort string
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
	WalletCacheTTL    time.Duration
	AdminCacheTTL     time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecret string
	JWTExp    time.Duration

	PaymentTxTimeout time.Duration
	CORSOrigins      []string
}

// DSN returns the PostgreSQL connection string.
func (c config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

// @title gw-wallet-payments API
// @version 1.0.0
// @description Wallet ledger and order payment service for the storefront
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey Bearer
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

// parseConfig loads environment variables from a file and returns
// the application, database, Redis, Kafka, JWT and payment configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		n, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	}
	getDuration := func(key, defaultValue string) (time.Duration, error) {
		d, err := time.ParseDuration(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return d, nil
	}
	getList := func(key, defaultValue string) []string {
		var out []string
		for _, v := range strings.Split(getEnv(key, defaultValue), ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		return out
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.GRPCPort = getEnv("GRPC_PORT", "50051")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.CORSOrigins = getList("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	var walletExp int
	if walletExp, err = getInt("REDIS_EXP_SECOND", "60"); err != nil {
		return
	}
	cfg.WalletCacheTTL = time.Duration(walletExp) * time.Second
	if cfg.AdminCacheTTL, err = getDuration("ADMIN_CACHE_TTL", "30s"); err != nil {
		return
	}

	// Kafka config, no brokers disables publishing
	cfg.KafkaBrokers = getList("KAFKA_BROKERS", "")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "wallet.transactions")

	// JWT config
	cfg.JWTSecret = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	var jwtExp int
	if jwtExp, err = getInt("JWT_EXP_SECOND", "86400"); err != nil {
		return
	}
	cfg.JWTExp = time.Duration(jwtExp) * time.Second

	// Payment config
	if cfg.PaymentTxTimeout, err = getDuration("PAYMENT_TX_TIMEOUT", "5s"); err != nil {
		return
	}

	return
}

// app bundles the services the router dispatches to.
type app struct {
	tokener  middlewares.Tokener
	auth     *services.AuthService
	wallets  *services.WalletService
	payments *services.PaymentService
	orders   *services.OrderService
	admin    *services.AdminService
}

// newRouter wires middleware and routes.
func newRouter(a app, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	handlers.RegisterRegisterHandler(r, handlers.NewRegisterHandler(a.auth))
	handlers.RegisterLoginHandler(r, handlers.NewLoginHandler(a.auth))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Protected routes with JWT middleware
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(a.tokener))

		handlers.RegisterMyWalletHandler(r, handlers.NewMyWalletHandler(a.wallets))
		handlers.RegisterMyTransactionsHandler(r, handlers.NewMyTransactionsHandler(a.wallets))
		handlers.RegisterPayOrderHandler(r, handlers.NewPayOrderHandler(a.payments))

		handlers.RegisterCreateOrderHandler(r, handlers.NewCreateOrderHandler(a.orders))
		handlers.RegisterListOrdersHandler(r, handlers.NewListOrdersHandler(a.orders))
		handlers.RegisterGetOrderHandler(r, handlers.NewGetOrderHandler(a.orders))
		handlers.RegisterCancelOrderHandler(r, handlers.NewCancelOrderHandler(a.orders))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.AdminMiddleware)

			handlers.RegisterAdminWalletsHandler(r, handlers.NewAdminWalletsHandler(a.admin))
			handlers.RegisterAdminTransactionsHandler(r, handlers.NewAdminTransactionsHandler(a.wallets))
			handlers.RegisterAdminSummaryHandler(r, handlers.NewAdminSummaryHandler(a.admin))
			handlers.RegisterDepositHandler(r, handlers.NewDepositHandler(a.wallets))
			handlers.RegisterWithdrawHandler(r, handlers.NewWithdrawHandler(a.wallets))
			handlers.RegisterWalletStatusHandler(r, handlers.NewWalletStatusHandler(a.wallets))

			handlers.RegisterRefundOrderHandler(r, handlers.NewRefundOrderHandler(a.payments))
			handlers.RegisterOrderStatusHandler(r, handlers.NewOrderStatusHandler(a.orders))
		})
	})

	return r
}

// run initializes the logger, database, Redis, Kafka and servers.
// It blocks until ctx is cancelled or a termination signal arrives.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	logger.Log.Infow("connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := migrations.Up(db.DB); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
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
		return fmt.Errorf("redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka publisher
	var writer facades.MessageWriter
	if len(cfg.KafkaBrokers) > 0 {
		kw := facades.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kw.Close()
		writer = kw
		logger.Log.Infow("publishing ledger events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	publisher := facades.NewLedgerEventsKafkaFacade(writer)

	// Initialize JWT service
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecret), jwt.WithExpiration(cfg.JWTExp))

	// Initialize repositories
	txManager := repositories.NewTxManager(db, cfg.PaymentTxTimeout)
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, repositories.GetTxFromContext)
	walletWriteRepo := repositories.NewWalletWriterRepository(db, repositories.GetTxFromContext)
	walletReadRepo := repositories.NewWalletReaderRepository(db, repositories.GetTxFromContext)
	ledgerWriteRepo := repositories.NewTransactionWriteRepository(db, repositories.GetTxFromContext)
	ledgerReadRepo := repositories.NewTransactionReadRepository(db, repositories.GetTxFromContext)
	orderRepo := repositories.NewOrderRepository(db, repositories.GetTxFromContext)
	adminRepo := repositories.NewAdminReadRepository(db)
	walletCache := repositories.NewWalletCacheRepository(rdb, cfg.WalletCacheTTL)
	summaryCache := repositories.NewWalletCacheRepository(rdb, cfg.AdminCacheTTL)

	// Initialize services
	a := app{
		tokener: tokens,
		auth:    services.NewAuthService(txManager, userReadRepo, userWriteRepo, walletWriteRepo, tokens),
		wallets: services.NewWalletService(txManager, walletWriteRepo, walletReadRepo, ledgerWriteRepo, ledgerReadRepo,
			walletCache, publisher),
		payments: services.NewPaymentService(txManager, orderRepo, orderRepo, walletReadRepo, walletWriteRepo,
			ledgerWriteRepo, ledgerReadRepo, walletCache, publisher),
		orders: services.NewOrderService(txManager, orderRepo, orderRepo),
		admin:  services.NewAdminService(adminRepo, summaryCache),
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           newRouter(a, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	healthSrv := health.NewServer()
	grpcSrv := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.AppHost, cfg.GRPCPort))
		if err != nil {
			return fmt.Errorf("gRPC listen failed: %w", err)
		}
		logger.Log.Infof("gRPC health server listening on %s", lis.Addr())
		return grpcSrv.Serve(lis)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutdown signal received, stopping servers...")

		healthSrv.Shutdown()
		grpcSrv.GracefulStop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorw("HTTP server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Log.Info("servers stopped gracefully")
	return nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/mneelabs/agent-gateway/docs"
	"github.com/mneelabs/agent-gateway/internal/apikey"
	"github.com/mneelabs/agent-gateway/internal/authorize"
	"github.com/mneelabs/agent-gateway/internal/common/handler"
	"github.com/mneelabs/agent-gateway/internal/common/middleware"
	"github.com/mneelabs/agent-gateway/internal/config"
	"github.com/mneelabs/agent-gateway/internal/generation"
	"github.com/mneelabs/agent-gateway/internal/ledger"
	"github.com/mneelabs/agent-gateway/internal/wallet"
	"github.com/mneelabs/agent-gateway/pkg/chain"
	pkgdb "github.com/mneelabs/agent-gateway/pkg/db"
	"github.com/mneelabs/agent-gateway/pkg/payment"
	pkgredis "github.com/mneelabs/agent-gateway/pkg/redis"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Agent Payment Gateway API
// @version 1.0
// @description Payment-gated image generation API for autonomous agents
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// 1) Logger
	logger, err := initLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 2) Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	logger.Info("starting server",
		zap.String("environment", cfg.Server.Environment),
		zap.String("addr", cfg.Server.Addr()),
	)

	// 3) Database
	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// 4) Redis
	rdb := initRedis(cfg.Redis)
	defer rdb.Close()

	// 5) Connection test (fail-fast)
	if err := testConnections(db, rdb); err != nil {
		logger.Fatal("failed to test connections", zap.Error(err))
	}

	// 6) Chain reader
	reader, err := chain.Dial(cfg.Chain.RPCURL, cfg.Chain.ReadTimeout, logger)
	if err != nil {
		logger.Fatal("failed to connect to chain rpc", zap.Error(err))
	}

	// 7) Router
	router := setupRouter(cfg, logger, db, rdb, reader)

	// 8) HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.Info("server started",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("swagger", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Server.Port)),
	)

	// 9) Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// 10) Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func initLogger() (*zap.Logger, error) {
	env := os.Getenv("ENVIRONMENT")
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	return pkgdb.New(pkgdb.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Password:        cfg.Password,
		Name:            cfg.Name,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return pkgredis.New(pkgredis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func testConnections(db *sql.DB, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pkgdb.Ping(ctx, db); err != nil {
		return err
	}
	return pkgredis.Ping(ctx, rdb)
}

func setupRouter(cfg *config.Config, logger *zap.Logger, db *sql.DB, rdb *redis.Client, reader *chain.EthReader) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	// Swagger
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoints
	healthHandler := handler.NewHealthHandler(db, rdb, reader.Ping)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// ============================================================================
	// Dependencies Setup
	// ============================================================================

	// TxRunner for transaction management
	txRunner := pkgdb.NewTxRunner(db)

	// Payment verifier over the chain reader
	verifier := payment.NewChainVerifier(payment.Config{
		TokenAddress:    ethcommon.HexToAddress(cfg.Chain.TokenAddress),
		TreasuryAddress: ethcommon.HexToAddress(cfg.Chain.TreasuryAddress),
		PriceUnits:      big.NewInt(cfg.Chain.PriceUnits),
		MaxTxAge:        cfg.Chain.MaxTxAge,
		TokenDecimals:   cfg.Chain.TokenDecimals,
	}, reader, clock.New(), logger)

	// Payment ledger (MySQL authoritative, Redis fast path)
	ledgerStore := ledger.NewMySQLStore(txRunner, rdb, logger)

	// Downstream generation client
	generator := generation.NewHTTPGenerator(cfg.Generation.URL, cfg.Generation.Timeout, logger)

	// ============================================================================
	// Service & Handler Setup
	// ============================================================================

	apikeyService := apikey.NewService(txRunner, logger)
	apikeyHandler := apikey.NewHandler(apikeyService)

	authorizeService := authorize.NewService(apikeyService, ledgerStore, verifier, generator, cfg.Chain.TokenDecimals, logger)
	authorizeHandler := authorize.NewHandler(authorizeService)

	walletService := wallet.NewService(reader, ethcommon.HexToAddress(cfg.Chain.TokenAddress), cfg.Chain.TokenDecimals, logger)
	walletHandler := wallet.NewHandler(walletService)

	// ============================================================================
	// Route Registration
	// ============================================================================

	v1 := router.Group("/api/v1")
	{
		apikeyHandler.RegisterRoutes(v1)
		authorizeHandler.RegisterRoutes(v1)
		walletHandler.RegisterRoutes(v1)
	}

	return router
}

package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	inventoryv1 "github.com/Ivanvip24/vt-souvenir-system-sub001/api/inventoryv1"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/config"
	alertPublisherPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/publisher"
	alertRepoPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/repository"
	alertUCPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/usecase"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/broker"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/cache"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/observability"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/postgres"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/rpc"

	bomH "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/bom/handler"
	bomRepoPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/bom/repository"
	bomUCPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/bom/usecase"

	forecastH "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/forecast/handler"
	forecastUCPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/forecast/usecase"

	lifecycleH "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/lifecycle/handler"
	lifecycleUCPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/lifecycle/usecase"

	matH "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/handler"
	matRepoPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/repository"
	matUCPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/material/usecase"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/ops"
	orderListenerPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/order/listener"
	orderRepoPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/order/repository"

	resH "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/reservation/handler"
	resRepoPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/reservation/repository"
	resUCPkg "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/reservation/usecase"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Initialize Telemetry
	var extraCores []zapcore.Core
	if cfg.Telemetry.Enabled {
		otelCfg := &observability.Config{
			Endpoint:       cfg.Telemetry.Endpoint,
			AuthHeader:     cfg.Telemetry.AuthHeader,
			Insecure:       cfg.Telemetry.Insecure,
			ServiceName:    config.ServiceName,
			ServiceVersion: config.ServiceVersion,
		}
		shutdownLogs, err := observability.SetupLoggingSDK(ctx, otelCfg)
		if err != nil {
			log.Fatalf("failed to set up OTel logging: %v", err)
		}
		defer shutdownLogs(context.Background())

		_, shutdownTraces, err := observability.SetupTracingSDK(ctx, otelCfg)
		if err != nil {
			log.Fatalf("failed to set up OTel tracing: %v", err)
		}
		defer shutdownTraces(context.Background())

		extraCores = append(extraCores, logger.NewOTelCore(config.ServiceName))
	}

	// 3. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		ServiceName:       config.ServiceName,
	}
	appLogger := logger.NewZapLogger(logConfig, extraCores...)
	defer appLogger.Sync()

	// 4. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	txManager := postgres.NewTxManager(db)

	// 5. Initialize Repositories
	matRepo := matRepoPkg.NewPGRepository(db)
	resRepo := resRepoPkg.NewPGRepository(db)
	bomRepo := bomRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	alertRepo := alertRepoPkg.NewPGRepository(db)

	// 6. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 7. Initialize Kafka
	kafkaConsumer, err := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.OrdersTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	if err != nil {
		appLogger.Fatal("Could not create Kafka consumer", zap.Error(err))
	}
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrdersTopic))

	kafkaProducer, err := broker.NewProducer(&broker.Config{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    cfg.Kafka.AlertsTopic,
		ClientID: config.ServiceName,
	}, otel.GetTracerProvider())
	if err != nil {
		appLogger.Fatal("Could not create Kafka producer", zap.Error(err))
	}
	defer kafkaProducer.Close()

	// 8. Initialize UseCases
	matUC := matUCPkg.NewMaterialUseCase(matRepo, resRepo, matRepo, txManager, appLogger)
	bomUC := bomUCPkg.NewBOMUseCase(bomRepo, matRepo, orderRepo, appLogger)
	resUC := resUCPkg.NewReservationUseCase(resRepo, matRepo, matUC, bomRepo, orderRepo, txManager, appLogger)
	forecastUC := forecastUCPkg.NewForecastUseCase(matRepo, matRepo, appLogger)
	alertUC := alertUCPkg.NewAlertUseCase(alertRepo, matRepo, forecastUC,
		alertPublisherPkg.NewKafkaPublisher(kafkaProducer), txManager, appLogger)
	lifecycleUC := lifecycleUCPkg.NewLifecycleUseCase(resUC, alertUC, orderRepo, txManager,
		redisClient, cfg.Inventory.MaintenanceLockTTL, otel.Tracer(config.ServiceName), appLogger)

	// 9. Start Listener and Alert Sweep
	orderListener := orderListenerPkg.NewOrderListener(kafkaConsumer, lifecycleUC, appLogger)
	go orderListener.Start(ctx)
	go runAlertSweep(ctx, cfg.Inventory.AlertSweepInterval, lifecycleUC.SweepAlerts, appLogger)

	// 10. Initialize Handlers
	matHandler := matH.NewMaterialHandler(matUC, appLogger)
	bomHandler := bomH.NewBOMHandler(bomUC, appLogger)
	resHandler := resH.NewReservationHandler(resUC, appLogger)
	forecastHandler := forecastH.NewForecastHandler(forecastUC, alertUC, appLogger)
	hookHandler := lifecycleH.NewOrderHookHandler(lifecycleUC, appLogger)

	// 11. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			rpc.ContextInterceptor(),
			rpc.LoggingInterceptor(appLogger),
		),
	)

	// Register Services
	inventoryv1.RegisterMaterialServiceServer(grpcServer, matHandler)
	inventoryv1.RegisterBOMServiceServer(grpcServer, bomHandler)
	inventoryv1.RegisterReservationServiceServer(grpcServer, resHandler)
	inventoryv1.RegisterForecastServiceServer(grpcServer, forecastHandler)
	inventoryv1.RegisterOrderHookServiceServer(grpcServer, hookHandler)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// 12. Start Ops HTTP Server
	opsController := ops.NewController(lifecycleUC, map[string]ops.Pinger{
		"postgres": ops.PingFunc(db.PingContext),
		"redis":    redisClient,
	}, appLogger)
	opsServer := &http.Server{
		Addr:              cfg.Server.OpsPort,
		Handler:           ops.NewRouter(opsController),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		appLogger.Info("Starting ops HTTP server", zap.String("addr", cfg.Server.OpsPort))
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve ops", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("Ops server shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

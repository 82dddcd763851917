// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"entgo.io/ent/dialect"
	"github.com/joho/godotenv"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	boardv1 "github.com/gurkanbulca/opsboard/api/board/v1"
	"github.com/gurkanbulca/opsboard/internal/config"
	"github.com/gurkanbulca/opsboard/internal/database"
	"github.com/gurkanbulca/opsboard/internal/httpapi"
	"github.com/gurkanbulca/opsboard/internal/logger"
	"github.com/gurkanbulca/opsboard/internal/middleware"
	"github.com/gurkanbulca/opsboard/internal/repository"
	"github.com/gurkanbulca/opsboard/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg.Log.Level, cfg.Log.Pretty)
	if envErr != nil {
		log.Debug().Msg("No .env file found")
	}

	if err := cfg.ValidateConfig(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := buildRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise repository")
	}
	defer closeRepo()

	boards := service.NewBoardManager(repo, service.WithLogger(log))
	taskService := service.NewTaskService(boards, log)

	// Initialize middleware
	metadataExtractor := middleware.NewMetadataExtractorInterceptor()
	validator := middleware.NewValidator(cfg.ToValidationConfig())
	loggingInterceptor := middleware.NewLoggingInterceptor(log)

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			metadataExtractor.Unary(),
			loggingInterceptor.Unary(),
			validator.Unary(),
		),
		grpc.ChainStreamInterceptor(
			metadataExtractor.Stream(),
			loggingInterceptor.Stream(),
			validator.Stream(),
		),
	)
	boardv1.RegisterBoardServiceServer(grpcServer, taskService)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(boardv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	if cfg.Server.EnableReflection {
		reflection.Register(grpcServer)
		log.Info().Msg("gRPC reflection enabled (disable in production)")
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCPort))
	if err != nil {
		log.Fatal().Err(err).Str("port", cfg.Server.GRPCPort).Msg("Failed to listen")
	}

	httpServer := httpapi.NewServer(httpapi.NewBoardHandler(taskService, boards, validator), log)

	go func() {
		log.Info().Str("port", cfg.Server.GRPCPort).Msg("Ops board gRPC server listening")
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve gRPC")
		}
	}()
	go func() {
		log.Info().Str("port", cfg.Server.HTTPPort).Msg("Ops board REST gateway listening")
		if err := httpServer.Start(":" + cfg.Server.HTTPPort); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve HTTP")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("Shutting down server...")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}
	grpcServer.GracefulStop()
	log.Info().Msg("Server shutdown complete")
}

// buildRepository returns the board repository for the configured data source and a close func.
func buildRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.TaskRepository, func(), error) {
	switch cfg.Data.Source {
	case config.DataSourcePostgres:
		db, err := database.Open(ctx, cfg.ToDatabaseConfig())
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close database connection")
			}
		}
		if cfg.Server.AutoMigrate {
			if err := runAutoMigration(ctx, db, log); err != nil {
				closeDB()
				return nil, nil, err
			}
		}
		return repository.NewSQLTaskRepository(db, dialect.Postgres), closeDB, nil

	default:
		fx, err := repository.LoadFixturesFile(cfg.Data.FixturesPath, time.Now().UTC())
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewMemoryTaskRepository()
		if err := repository.SeedMemory(ctx, repo, fx); err != nil {
			return nil, nil, err
		}
		log.Info().Strs("organizations", repo.Organizations()).Msg("Using mock board data")
		return repo, func() {}, nil
	}
}

func runAutoMigration(ctx context.Context, db *sqlx.DB, log zerolog.Logger) error {
	log.Info().Msg("Running auto migration...")
	if err := database.Migrate(ctx, db, dialect.Postgres); err != nil {
		return fmt.Errorf("run auto migration: %w", err)
	}
	log.Info().Msg("Auto migration completed")
	return nil
}

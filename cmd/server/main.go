package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/exactsplit-backend/internal/adapter/grpc"
	"github.com/simaogato/exactsplit-backend/internal/config"
	"github.com/simaogato/exactsplit-backend/internal/logging"
	"github.com/simaogato/exactsplit-backend/internal/usecase/allocator"
	"github.com/simaogato/exactsplit-backend/internal/usecase/split"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Setup logger
	logger, err := logging.New(logging.Config{
		Environment: logging.Environment(cfg.Environment),
		Level:       cfg.LogLevel,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// 3. Initialize Services (Use Cases)
	alloc := allocator.New(allocator.Config{
		Workers:       cfg.Workers,
		MaxRecipients: cfg.MaxRecipients,
	}, logger.Named("allocator"))
	splitService := split.NewSplitService(alloc, logger.Named("split"))

	// 4. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger.Named("grpc")),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)

	grpcadapter.RegisterSplitServiceServer(grpcServer, grpcadapter.NewServer(splitService))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal(fmt.Sprintf("Failed to listen on %s", cfg.GRPCAddr), zap.Error(err))
	}

	// Start server in a goroutine
	go func() {
		logger.Info("gRPC server listening",
			zap.String("addr", cfg.GRPCAddr),
			zap.Int("workers", cfg.Workers),
			zap.Int("max_recipients", cfg.MaxRecipients),
		)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("Failed to serve gRPC server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, logger)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(grpcServer *grpclib.Server, logger *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("Received signal, shutting down gracefully", zap.String("signal", sig.String()))

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
}

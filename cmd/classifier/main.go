package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"sentify/ai"
	"sentify/infrastructure/grpc/server"
	"sentify/infrastructure/grpc/wire"

	grpc3 "github.com/mama165/sdk-go/grpc"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	exitOK      = 0
	exitRuntime = 1
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Classifier terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run serves the lexicon classifier over gRPC. The flags are the ones passed by specialist.StartSpecialist.
func run() (int, error) {
	id := flag.String("id", "lexicon", "Classifier ID")
	port := flag.Int("port", 50051, "gRPC port")
	level := flag.String("level", "INFO", "Log Level")
	flag.Parse()

	logger := logs.GetLoggerFromString(lo.FromPtr(level))

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", *port))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen: %w", err)
	}

	s := grpc.NewServer(grpc.ChainUnaryInterceptor(grpc3.UnaryLoggingInterceptor(logger)))
	wire.RegisterClassifierServer(s, server.NewClassifierServer(*id, ai.NewLexicon(), logger))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(wire.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Classifier starting", "id", *id, "port", *port)
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	healthServer.Shutdown()
	s.GracefulStop()
	logger.Info("Classifier stopped cleanly")
	return exitOK, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/aradsms/contacts_service/internal/platform/config"
	"github.com/aradsms/contacts_service/internal/platform/logger"
	"github.com/aradsms/contacts_service/internal/platform/messagebroker"

	contactsApp "github.com/aradsms/contacts_service/internal/contacts_service/app"
	"github.com/aradsms/contacts_service/internal/contacts_service/repository/memory"
	adapter_http "github.com/aradsms/contacts_service/internal/contacts_service/transport/http"
)

const serviceName = "contacts-service"

func main() {
	os.Exit(run())
}

// run wires and serves the service until a signal arrives. It returns the
// process exit code so deferred cleanup runs before main exits.
func run() int {
	mainCtx, mainCancel := context.WithCancel(context.Background())
	defer mainCancel()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		return 1
	}

	appLogger := logger.New(cfg.LogLevel).With("service", cfg.ServiceName)
	appLogger.Info("Starting service...")
	appLogger.Info("Configuration loaded",
		"log_level", cfg.LogLevel,
		"version", cfg.ServiceVersion,
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"nats_enabled", cfg.NATSUrl != "",
		"seed_sample_data", cfg.SeedSampleData,
	)

	// Contact events are optional; the service runs without a broker.
	var publisher contactsApp.EventPublisher
	if cfg.NATSUrl != "" {
		natsClient, err := messagebroker.NewNATSClient(cfg.NATSUrl, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Error("Failed to connect to NATS, contact events disabled", "url", cfg.NATSUrl, "error", err)
		} else {
			defer natsClient.Close()
			publisher = natsClient
		}
	} else {
		appLogger.Info("NATS URL not configured, contact events disabled.")
	}

	contactRepo := memory.NewMemContactRepository(appLogger)
	application := contactsApp.NewApplication(contactRepo, publisher, appLogger)

	if cfg.SeedSampleData {
		if _, err := application.SeedSampleContacts(mainCtx); err != nil {
			appLogger.Error("Failed to load sample contacts", "error", err)
			return 1
		}
	}

	contactsHandler := adapter_http.NewContactsHandler(application, appLogger, adapter_http.NewValidator())
	systemHandler := adapter_http.NewSystemHandler(application, cfg.ServiceName, cfg.ServiceVersion, time.Now(), appLogger)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           adapter_http.NewRouter(contactsHandler, systemHandler, cfg.RequestTimeout()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	g, groupCtx := errgroup.WithContext(mainCtx)

	g.Go(func() error {
		appLogger.Info("HTTP server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed", "error", err)
			return fmt.Errorf("http server on %s: %w", httpServer.Addr, err)
		}
		appLogger.Info("HTTP server stopped gracefully.")
		return nil
	})

	g.Go(func() error {
		listenAddress := cfg.GRPCAddr()
		appLogger.Info("gRPC health server starting", "address", listenAddress)
		lis, err := net.Listen("tcp", listenAddress)
		if err != nil {
			appLogger.Error("Failed to listen for gRPC", "address", listenAddress, "error", err)
			return fmt.Errorf("failed to listen for gRPC on %s: %w", listenAddress, err)
		}
		defer lis.Close()

		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		healthServer.SetServingStatus(cfg.ServiceName, healthpb.HealthCheckResponse_SERVING)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			appLogger.Error("gRPC server failed to serve", "error", err)
			return err
		}
		appLogger.Info("gRPC server stopped gracefully.")
		return nil
	})

	// Termination signals
	g.Go(func() error {
		stopSignal := make(chan os.Signal, 1)
		signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(stopSignal)
		select {
		case sig := <-stopSignal:
			appLogger.Info("Received termination signal", "signal", sig.String())
			mainCancel()
		case <-groupCtx.Done():
		}
		return nil
	})

	// Graceful shutdown once any goroutine fails or a signal arrives.
	g.Go(func() error {
		<-groupCtx.Done()
		appLogger.Info("Initiating graceful shutdown...")
		healthServer.Shutdown() // reports NOT_SERVING to every watcher

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("HTTP server shutdown failed", "error", err)
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			appLogger.Warn("gRPC graceful stop timed out, forcing stop")
			grpcServer.Stop()
		}
		return nil
	})

	appLogger.Info("Service is ready and running.")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Service group encountered an error", "error", err)
		return 1
	}
	appLogger.Info("Service shut down.")
	return 0
}

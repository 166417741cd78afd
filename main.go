package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"order-service/handlers"
	"order-service/internal/auth"
	"order-service/internal/consul"
	"order-service/internal/gateway"
	"order-service/internal/orders"
	"order-service/internal/stores/kafka"
	"order-service/internal/stores/postgres"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	if err := startApp(); err != nil {
		slog.Error("service stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func startApp() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on environment")
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := postgres.OpenDB()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	if err := postgres.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	orderConf, err := orders.NewConf(db)
	if err != nil {
		return fmt.Errorf("failed to init orders store: %w", err)
	}

	pubKeyFile := os.Getenv("AUTH_PUBLIC_KEY_FILE")
	if pubKeyFile == "" {
		pubKeyFile = "pubkey.pem"
	}
	pubKey, err := os.ReadFile(pubKeyFile)
	if err != nil {
		return fmt.Errorf("failed to read auth public key: %w", err)
	}
	keys, err := auth.NewKeys(pubKey)
	if err != nil {
		return fmt.Errorf("failed to load auth keys: %w", err)
	}

	gatewayConf, err := gateway.NewConf(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
	if err != nil {
		return fmt.Errorf("failed to init payment gateway: %w", err)
	}

	kafkaConf, err := kafka.NewConf()
	if err != nil {
		return fmt.Errorf("failed to init kafka producer: %w", err)
	}
	defer kafkaConf.Close()

	prefix := os.Getenv("SERVICE_ENDPOINT_PREFIX")
	if prefix == "" {
		prefix = "/orders"
	}
	portStr := os.Getenv("SERVICE_PORT")
	if portStr == "" {
		portStr = "8084"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid SERVICE_PORT: %w", err)
	}

	consulClient, err := consul.NewClient()
	if err != nil {
		return fmt.Errorf("failed to connect to consul: %w", err)
	}
	serviceID := "orders-" + uuid.NewString()
	host := os.Getenv("SERVICE_HOST")
	if host == "" {
		host = "localhost"
	}
	if err := consul.RegisterService(consulClient, serviceID, "orders", host, port); err != nil {
		return fmt.Errorf("failed to register with consul: %w", err)
	}
	defer func() {
		if err := consul.DeregisterService(consulClient, serviceID); err != nil {
			slog.Error("consul deregistration failed", slog.String("error", err.Error()))
		}
	}()

	engine := handlers.API(prefix, keys, orderConf, gatewayConf, kafkaConf)
	server := &http.Server{
		Addr:         ":" + portStr,
		Handler:      engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting order service", slog.String("addr", server.Addr), slog.String("prefix", prefix))
		errCh <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				return fmt.Errorf("failed to close server: %w", closeErr)
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fraudrisk/config"
	"fraudrisk/history"
	"fraudrisk/internal/server"
	"fraudrisk/services"
	"fraudrisk/util"

	"github.com/joho/godotenv"
)

func gracefulShutdown(apiServer *http.Server, riskServer *server.Server, logger *slog.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// No new requests arrive after Shutdown, so pending history writes and alerts
	// can be drained before their backends go away.
	riskServer.Wait()
	history.Disable()

	services.CloseNats()
	if services.RedisClient != nil {
		services.RedisClient.Close()
	}

	logger.Info("server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

/*
Connects the optional Redis and NATS backends described by cfg and configures history.
*/
func connectServices(cfg config.Config, logger *slog.Logger) error {
	if cfg.Services.Nats.Enabled {
		if _, err := services.ConnectNats(cfg.Services.Nats.Url); err != nil {
			return fmt.Errorf("connecting to nats: %w", err)
		}
		logger.Info("nats connected", "url", cfg.Services.Nats.Url, "subject", cfg.Services.Nats.Subject)
	}

	if cfg.Services.Redis.Enabled {
		if _, err := services.ConnectRedis(cfg.Services.Redis.Host); err != nil {
			return fmt.Errorf("could not connect to redis, please check configuration: %w", err)
		}
		logger.Info("redis connected", "host", cfg.Services.Redis.Host)
	}

	if cfg.History.Enabled {
		if err := history.Configure(cfg.History.Retention(), cfg.History.MaxEntries); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	configPath := flag.String("config", "./config.yaml", "path to the YAML configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, skipping")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "path", *configPath, "error", err)
		os.Exit(1)
	}

	logger := util.InitLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	var authKeys map[string][]byte
	if cfg.Auth.Enabled {
		authKeys, err = config.LoadSecrets(cfg.Auth.Clients)
		if err != nil {
			logger.Error("failed to load secrets", "error", err)
			os.Exit(1)
		}
	}

	if err := connectServices(cfg, logger); err != nil {
		logger.Error("failed to connect services", "error", err)
		os.Exit(1)
	}

	riskServer := server.New(cfg, authKeys, logger)
	apiServer := riskServer.HTTPServer()

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, riskServer, logger, done)

	logger.Info("listening", "addr", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	<-done
	logger.Info("graceful shutdown complete")
}

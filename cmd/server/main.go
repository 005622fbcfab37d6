package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/akozhevnikov/coffeeshop/internal/auth"
	"github.com/akozhevnikov/coffeeshop/internal/config"
	"github.com/akozhevnikov/coffeeshop/internal/logger"
	"github.com/akozhevnikov/coffeeshop/internal/notify"
	"github.com/akozhevnikov/coffeeshop/internal/server"
	"github.com/akozhevnikov/coffeeshop/internal/server/handlers"
	"github.com/akozhevnikov/coffeeshop/internal/server/storage/sqlite"
	"github.com/akozhevnikov/coffeeshop/internal/service"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	logg.Info("starting coffeeshop server", slog.String("version", Version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error("server run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *slog.Logger) error {
	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	mailer := notify.NewEmailService(logg, notify.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Secure:   cfg.Email.Secure,
		User:     cfg.Email.User,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		AppURL:   cfg.AppURL,
	})

	// Диагностика почтового транспорта: результат advisory,
	// сервер стартует в любом случае
	mailer.TestConnection(ctx)

	authService := service.NewAuthService(logg, store, tokens, mailer)
	userService := service.NewUserService(logg, store, store)
	orderService := service.NewOrderService(logg, store, store, mailer)

	srv := server.New(logg, cfg.ServerAddress, tokens, server.Handlers{
		Auth:   handlers.NewAuthHandler(logg, authService),
		Users:  handlers.NewUsersHandler(logg, userService),
		Orders: handlers.NewOrdersHandler(logg, orderService),
		Health: handlers.NewHealthHandler(logg, Version),
	})

	return srv.Run(ctx)
}

func printVersion() {
	fmt.Printf("Coffeeshop Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

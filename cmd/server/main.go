package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"github.com/rxtech-lab/argo-broker/internal/api"
	"github.com/rxtech-lab/argo-broker/internal/balance"
	"github.com/rxtech-lab/argo-broker/internal/config"
	"github.com/rxtech-lab/argo-broker/internal/logger"
	"github.com/rxtech-lab/argo-broker/internal/store"
	"github.com/rxtech-lab/argo-broker/internal/transaction"
	"github.com/rxtech-lab/argo-broker/internal/version"
)

// serveAction wires the store, services and HTTP server together and blocks
// until the process is signalled to stop.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if address := cmd.String("listen"); address != "" {
		cfg.ListenAddress = address
	}

	if path := cmd.String("database"); path != "" {
		cfg.DatabasePath = path
	}

	var appLogger *logger.Logger
	if cmd.Bool("debug") {
		appLogger, err = logger.NewDebugLogger()
	} else {
		appLogger, err = logger.NewLogger()
	}
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	db, err := store.NewStore(cfg.DatabasePath, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	balances := balance.NewService(db, appLogger)
	transactions := transaction.NewService(db, balances, appLogger, cfg.CurrencyTicker)
	server := api.NewServer(transactions, balances, db, appLogger)

	if err := server.Start(cfg.ListenAddress); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	appLogger.Info("Broker started",
		zap.String("database", cfg.DatabasePath),
		zap.String("currencyTicker", cfg.CurrencyTicker))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
	case sig := <-stop:
		appLogger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func main() {
	cmd := &cli.Command{
		Name:    "argo-broker",
		Usage:   "Brokerage back-office API server",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the yaml configuration file",
			},
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "Listen address, overrides the configuration file",
			},
			&cli.StringFlag{
				Name:    "database",
				Aliases: []string{"d"},
				Usage:   "DuckDB database path, overrides the configuration file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: serveAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

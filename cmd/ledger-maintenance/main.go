package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/familyfin/ledgerhub/db"
	"github.com/familyfin/ledgerhub/lib/logging"
	"github.com/familyfin/ledgerhub/lib/service"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

// maintenance commands for the balance chains
func main() {
	rootCmd := &cobra.Command{
		Use:   "ledger-maintenance",
		Short: "Verify and repair ledger balance chains",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newVerifyCommand(), newRecomputeCommand(), newAuditCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadService builds a ledger service from the environment. The returned
// function releases its resources.
func loadService(ctx context.Context) (*service.LedgerService, func(), error) {
	c := &service.Config{}
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("Failed to load .env file")
	}
	if err := envconfig.Process("", c); err != nil {
		return nil, nil, fmt.Errorf("loading environment variables: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.Logger(c.LogFilePath, c.LogLevel)

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing db connection: %w", err)
	}
	if err := db.Migrate(ctx, dbConn); err != nil {
		dbConn.Close()
		return nil, nil, err
	}

	if c.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: c.SentryDSN}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	svc := &service.LedgerService{
		Config:       c,
		DB:           dbConn,
		Logger:       logger,
		LedgerPubSub: service.NewPubsub(),
	}
	cleanup := func() {
		sentry.Flush(2 * time.Second)
		dbConn.Close()
	}
	return svc, cleanup, nil
}

// Package main implements skillctl, the operator CLI for SkillTrack.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"skilltrack/internal/config"
	"skilltrack/internal/database"
	"skilltrack/internal/logger"
	"skilltrack/internal/vault"
)

var (
	// logLevel overrides LOG_LEVEL for the CLI
	logLevel string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skillctl",
	Short: "Operator CLI for SkillTrack",
	Long: `skillctl runs maintenance tasks against the SkillTrack database and
helps with local development: applying migrations, minting tokens, generating
signing keys and inspecting progress and rating options.

Configuration is read from the same environment variables as the API server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup(logger.Config{Level: logLevel, Format: "text", Output: cmd.ErrOrStderr()})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

// loadConfig reads configuration and, when enabled, secrets from Vault
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cfg.Vault.Enabled {
		client, err := vault.NewClient(&vault.Config{
			Address: cfg.Vault.Address,
			Token:   cfg.Vault.Token,
			KVMount: cfg.Vault.KVMount,
		})
		if err != nil {
			return nil, err
		}
		secrets, err := client.LoadSecrets(ctx, cfg.Vault.SecretPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load secrets from vault: %w", err)
		}
		cfg.ApplySecrets(secrets)
	}
	return cfg, nil
}

// openDatabase loads configuration and connects to the database
func openDatabase(ctx context.Context) (*config.Config, *database.Database, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	db, err := database.New(connectCtx, &cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Database connection established", "host", cfg.Database.Host, "name", cfg.Database.Name)
	return cfg, db, nil
}

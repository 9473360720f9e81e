// Package cli команды сервиса бронирований: serve, migrate, advance-statuses, seed.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

const defaultConfigPath = "config.toml"

// NewRoot корневая команда; без подкоманды запускает serve
func NewRoot() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "reservation-service",
		Short:        "Restaurant table reservation service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to the TOML config file")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newMigrateCmd(&configPath))
	cmd.AddCommand(newAdvanceStatusesCmd(&configPath))
	cmd.AddCommand(newSeedCmd(&configPath))
	return cmd
}

// bootstrap читает конфигурацию и создает логгер
func bootstrap(configPath string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded from %s", configPath)
	return cfg, log, nil
}

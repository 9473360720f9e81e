package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/migrations"
)

const commandTimeout = 2 * time.Minute

var errMemoryStorage = errors.New("command requires postgres storage")

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			if cfg.Storage.Driver == config.StorageDriverMemory {
				return errMemoryStorage
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			// схема применяется до сборки репозиториев, поэтому без newApp
			a := &app{cfg: cfg, log: log}
			defer a.Close()
			db, err := a.openPostgres(ctx)
			if err != nil {
				return err
			}
			if err := migrations.Apply(ctx, db); err != nil {
				return err
			}

			log.Info("Schema applied to %s", cfg.Database.DBName)
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newAdvanceStatusesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "advance-statuses",
		Short: "Move reservations to IN_PROGRESS or FINISHED according to the current time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			a, err := newApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.reservation.AutoAdvanceStatuses(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "advanced %d reservations\n", n)
			return nil
		},
	}
}

func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load locations, tables and waiters from a TOML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			if cfg.Storage.Driver == config.StorageDriverMemory {
				return errMemoryStorage
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			a, err := newApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.applySeed(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seed %s applied\n", args[0])
			return nil
		},
	}
}

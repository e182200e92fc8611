package app

import (
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/config"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Storage.Driver != config.StoragePostgres {
			log.Info().Str("driver", cfg.Storage.Driver).Msg("nothing to migrate")
			return nil
		}

		store, err := openStorage(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		return runMigrations(store.postgres, cfg.Database, migrateDown)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "roll every migration back instead")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrations(pg *postgres.Postgres, cfg config.DatabaseConfig, down bool) error {
	log.Info().Str("source", cfg.MigrationsPath).Bool("down", down).Msg("running migrations")

	driver, err := pgmigrate.WithInstance(pg.Database, &pgmigrate.Config{DatabaseName: cfg.Name})
	if err != nil {
		return errors.Wrap(err, "failed to create migration driver")
	}

	migrations, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, cfg.Name, driver)
	if err != nil {
		return errors.Wrap(err, "failed to load migrations")
	}

	if down {
		err = migrations.Down()
	} else {
		err = migrations.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("no change made by migration scripts")
			return nil
		}

		return errors.Wrap(err, "migration failed")
	}

	return nil
}

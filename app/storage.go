package app

import (
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/config"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo/memdb"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/pkg/postgres"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type storage struct {
	repos    *repo.Repositories
	postgres *postgres.Postgres
}

func (s *storage) Close() error {
	if s.postgres != nil {
		return s.postgres.Close()
	}
	return nil
}

func openStorage(cfg config.Config) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("using in-memory storage, data is lost on exit")
		return &storage{repos: repo.NewMemoryRepositories(memdb.New())}, nil
	}

	log.Info().Str("database", cfg.Database.Name).Msg("connecting database")
	pg, err := postgres.NewDB(cfg.Database.URL, postgres.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error occurred while connecting to db")
	}

	return &storage{repos: repo.NewRepositories(pg), postgres: pg}, nil
}

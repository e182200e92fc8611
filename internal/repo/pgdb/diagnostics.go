package pgdb

import (
	"context"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/pkg/postgres"
)

type DiagnosticsRepo struct {
	*postgres.Postgres
}

func NewDiagnosticsRepo(pgdb *postgres.Postgres) *DiagnosticsRepo {
	return &DiagnosticsRepo{pgdb}
}

func (r *DiagnosticsRepo) Ping(ctx context.Context) error {
	return r.Database.PingContext(ctx)
}

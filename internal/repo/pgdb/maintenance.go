package pgdb

import (
	"context"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/pkg/postgres"
	"github.com/pkg/errors"
)

type MaintenanceRepo struct {
	*postgres.Postgres
}

func NewMaintenanceRepo(pgdb *postgres.Postgres) *MaintenanceRepo {
	return &MaintenanceRepo{pgdb}
}

func (r *MaintenanceRepo) ClearData(ctx context.Context, withUsers bool) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	tables := []string{"bid", "gig"}
	if withUsers {
		tables = append(tables, "users")
	}

	for _, table := range tables {
		deleteSql, args, _ := r.SqlBuilder.Delete(table).ToSql()
		if _, err := tx.ExecContext(ctx, deleteSql, args...); err != nil {
			if e := tx.Rollback(); e != nil {
				return e
			}

			return errors.Wrapf(err, "failed to clear %s", table)
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit")
}

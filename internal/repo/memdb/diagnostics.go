package memdb

import "context"

type DiagnosticsRepo struct {
	db *Database
}

func NewDiagnosticsRepo(db *Database) *DiagnosticsRepo {
	return &DiagnosticsRepo{db: db}
}

func (r *DiagnosticsRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

package pgdb

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/pkg/postgres"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pgdb *postgres.Postgres) *UserRepo {
	return &UserRepo{pgdb}
}

// Unknown ids are simply absent from the result.
func (r *UserRepo) GetUsersByIds(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.User, error) {
	users := make(map[uuid.UUID]entity.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "name", "email").
		From("users").
		Where(squirrel.Eq{"id": uuidStrings(ids)}).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query users")
	}
	defer rows.Close()

	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.Id, &u.Name, &u.Email); err != nil {
			return nil, errors.Wrap(err, "failed to scan user")
		}
		users[u.Id] = u
	}

	return users, errors.Wrap(rows.Err(), "failed to read users")
}

// squirrel expands array kinds, and uuid.UUID is a [16]byte, so ids go in as strings.
func uuidStrings(ids []uuid.UUID) []string {
	s := make([]string, 0, len(ids))
	for _, id := range ids {
		s = append(s, id.String())
	}
	return s
}

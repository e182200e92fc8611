package memdb

import (
	"context"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/google/uuid"
)

type UserRepo struct {
	db *Database
}

func NewUserRepo(db *Database) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetUsersByIds(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	users := make(map[uuid.UUID]entity.User, len(ids))
	for _, id := range ids {
		if u, ok := r.db.users[id]; ok {
			users[id] = u
		}
	}

	return users, nil
}

package memdb

import (
	"context"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/google/uuid"
)

type MaintenanceRepo struct {
	db *Database
}

func NewMaintenanceRepo(db *Database) *MaintenanceRepo {
	return &MaintenanceRepo{db: db}
}

func (r *MaintenanceRepo) ClearData(ctx context.Context, withUsers bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.gigs = make(map[uuid.UUID]*entity.Gig)
	r.db.bids = make(map[uuid.UUID]*entity.Bid)
	r.db.bidKeys = make(map[bidKey]uuid.UUID)
	r.db.order = make(map[uuid.UUID]int64)
	if withUsers {
		r.db.users = make(map[uuid.UUID]entity.User)
	}

	return nil
}

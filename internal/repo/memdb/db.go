// Package memdb is an in-process store with the same guarantees the postgres
// schema gives: a unique (gig, freelancer) key and conditional status writes.
// Every operation holds one mutex, so each call is atomic on its own.
package memdb

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/google/uuid"
)

type bidKey struct {
	gigId        uuid.UUID
	freelancerId uuid.UUID
}

type Database struct {
	mu      sync.Mutex
	gigs    map[uuid.UUID]*entity.Gig
	bids    map[uuid.UUID]*entity.Bid
	bidKeys map[bidKey]uuid.UUID
	users   map[uuid.UUID]entity.User
	// insertion order, breaks created_at ties
	seq   int64
	order map[uuid.UUID]int64

	now func() time.Time
}

func New() *Database {
	return &Database{
		gigs:    make(map[uuid.UUID]*entity.Gig),
		bids:    make(map[uuid.UUID]*entity.Bid),
		bidKeys: make(map[bidKey]uuid.UUID),
		users:   make(map[uuid.UUID]entity.User),
		order:   make(map[uuid.UUID]int64),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// PutUser seeds the user directory.
func (db *Database) PutUser(u entity.User) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.users[u.Id] = u
}

func (db *Database) nextOrder(id uuid.UUID) {
	db.seq++
	db.order[id] = db.seq
}

func (db *Database) newerFirst(aId uuid.UUID, aCreated time.Time, bId uuid.UUID, bCreated time.Time) bool {
	if !aCreated.Equal(bCreated) {
		return aCreated.After(bCreated)
	}
	return db.order[aId] > db.order[bId]
}

func (db *Database) sortGigs(gigs []entity.Gig) {
	sort.Slice(gigs, func(i, j int) bool {
		return db.newerFirst(gigs[i].Id, gigs[i].CreatedAt, gigs[j].Id, gigs[j].CreatedAt)
	})
}

func (db *Database) sortBids(bids []entity.Bid) {
	sort.Slice(bids, func(i, j int) bool {
		return db.newerFirst(bids[i].Id, bids[i].CreatedAt, bids[j].Id, bids[j].CreatedAt)
	})
}

func paginate[T any](items []T, pg *entity.PaginationInput) []T {
	if pg == nil {
		return items
	}
	if pg.Offset > 0 {
		if pg.Offset >= len(items) {
			return items[:0]
		}
		items = items[pg.Offset:]
	}
	if pg.Limit > 0 && pg.Limit < len(items) {
		items = items[:pg.Limit]
	}
	return items
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

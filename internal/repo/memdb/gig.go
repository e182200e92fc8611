package memdb

import (
	"context"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/common"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo/repo_errors"
	"github.com/google/uuid"
)

type GigRepo struct {
	db *Database
}

func NewGigRepo(db *Database) *GigRepo {
	return &GigRepo{db: db}
}

func (r *GigRepo) CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.db.now()
	gig := &entity.Gig{
		Id:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		OwnerId:     input.OwnerId,
		Status:      common.GigOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.db.gigs[gig.Id] = gig
	r.db.nextOrder(gig.Id)

	return gig.Id, nil
}

func (r *GigRepo) GetGigById(ctx context.Context, id uuid.UUID) (*entity.Gig, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	gig, ok := r.db.gigs[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *gig
	return &copied, nil
}

func (r *GigRepo) collect(match func(*entity.Gig) bool) []entity.Gig {
	gigs := make([]entity.Gig, 0)
	for _, gig := range r.db.gigs {
		if match(gig) {
			gigs = append(gigs, *gig)
		}
	}
	r.db.sortGigs(gigs)

	return gigs
}

func (r *GigRepo) GetOpenGigs(ctx context.Context, search *entity.GigSearch) ([]entity.Gig, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var text string
	var pg *entity.PaginationInput
	if search != nil {
		text, pg = search.Text, search.PaginationInput
	}

	gigs := r.collect(func(g *entity.Gig) bool {
		if g.Status != common.GigOpen {
			return false
		}
		return text == "" || containsFold(g.Title, text) || containsFold(g.Description, text)
	})

	return paginate(gigs, pg), nil
}

func (r *GigRepo) GetGigsByOwnerId(ctx context.Context, ownerId uuid.UUID, pg *entity.PaginationInput) ([]entity.Gig, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	gigs := r.collect(func(g *entity.Gig) bool { return g.OwnerId == ownerId })

	return paginate(gigs, pg), nil
}

func (r *GigRepo) GetGigsByIds(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Gig, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	result := make(map[uuid.UUID]entity.Gig, len(ids))
	for _, id := range ids {
		if gig, ok := r.db.gigs[id]; ok {
			result[id] = *gig
		}
	}

	return result, nil
}

func (r *GigRepo) EditOpenGigById(ctx context.Context, id uuid.UUID, input *entity.UpdateGigInput) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	gig, ok := r.db.gigs[id]
	if !ok || gig.Status != common.GigOpen {
		return repo_errors.ErrStatusMismatch
	}

	if input.Title != "" {
		gig.Title = input.Title
	}
	if input.Description != "" {
		gig.Description = input.Description
	}
	if input.Budget > 0 {
		gig.Budget = input.Budget
	}
	gig.UpdatedAt = r.db.now()

	return nil
}

func (r *GigRepo) AssignGig(ctx context.Context, gigId uuid.UUID, bidId uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	gig, ok := r.db.gigs[gigId]
	if !ok || gig.Status != common.GigOpen {
		return repo_errors.ErrStatusMismatch
	}
	bid, ok := r.db.bids[bidId]
	if !ok || bid.GigId != gigId || bid.Status != common.BidPending {
		return repo_errors.ErrStatusMismatch
	}

	gig.Status = common.GigAssigned
	gig.HiredBidId = uuid.NullUUID{UUID: bidId, Valid: true}
	gig.UpdatedAt = r.db.now()

	return nil
}

func (r *GigRepo) DeleteOpenGigById(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	gig, ok := r.db.gigs[id]
	if !ok || gig.Status != common.GigOpen {
		return repo_errors.ErrStatusMismatch
	}

	for bidId, bid := range r.db.bids {
		if bid.GigId == id {
			delete(r.db.bidKeys, bidKey{bid.GigId, bid.FreelancerId})
			delete(r.db.order, bidId)
			delete(r.db.bids, bidId)
		}
	}
	delete(r.db.order, id)
	delete(r.db.gigs, id)

	return nil
}

func (r *GigRepo) GetIncompleteHires(ctx context.Context) ([]entity.Gig, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	pending := make(map[uuid.UUID]bool)
	for _, bid := range r.db.bids {
		if bid.Status == common.BidPending {
			pending[bid.GigId] = true
		}
	}

	return r.collect(func(g *entity.Gig) bool {
		if g.Status != common.GigAssigned {
			return false
		}
		if pending[g.Id] {
			return true
		}
		hired, ok := r.db.bids[g.HiredBidId.UUID]
		return !g.HiredBidId.Valid || !ok || hired.Status != common.BidHired
	}), nil
}

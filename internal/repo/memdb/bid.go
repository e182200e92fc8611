package memdb

import (
	"context"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/common"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo/repo_errors"
	"github.com/google/uuid"
)

type BidRepo struct {
	db *Database
}

func NewBidRepo(db *Database) *BidRepo {
	return &BidRepo{db: db}
}

func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	gig, ok := r.db.gigs[input.GigId]
	if !ok {
		return uuid.Nil, repo_errors.ErrNotFound
	}
	if gig.Status != common.GigOpen {
		return uuid.Nil, repo_errors.ErrStatusMismatch
	}
	key := bidKey{input.GigId, input.FreelancerId}
	if _, exists := r.db.bidKeys[key]; exists {
		return uuid.Nil, repo_errors.ErrDuplicate
	}

	now := r.db.now()
	bid := &entity.Bid{
		Id:           uuid.New(),
		GigId:        input.GigId,
		FreelancerId: input.FreelancerId,
		Message:      input.Message,
		Price:        input.Price,
		Status:       common.BidPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.db.bids[bid.Id] = bid
	r.db.bidKeys[key] = bid.Id
	r.db.nextOrder(bid.Id)

	return bid.Id, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	bid, ok := r.db.bids[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *bid
	return &copied, nil
}

func (r *BidRepo) collect(match func(*entity.Bid) bool) []entity.Bid {
	bids := make([]entity.Bid, 0)
	for _, bid := range r.db.bids {
		if match(bid) {
			bids = append(bids, *bid)
		}
	}
	r.db.sortBids(bids)

	return bids
}

func (r *BidRepo) GetGigBids(ctx context.Context, gigId uuid.UUID, pg *entity.PaginationInput) ([]entity.Bid, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return paginate(r.collect(func(b *entity.Bid) bool { return b.GigId == gigId }), pg), nil
}

func (r *BidRepo) GetFreelancerBids(ctx context.Context, freelancerId uuid.UUID, pg *entity.PaginationInput) ([]entity.Bid, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return paginate(r.collect(func(b *entity.Bid) bool { return b.FreelancerId == freelancerId }), pg), nil
}

func (r *BidRepo) EditPendingBidById(ctx context.Context, id uuid.UUID, input *entity.UpdateBidInput) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	bid, ok := r.db.bids[id]
	if !ok || bid.Status != common.BidPending {
		return repo_errors.ErrStatusMismatch
	}
	if gig, ok := r.db.gigs[bid.GigId]; !ok || gig.Status != common.GigOpen {
		return repo_errors.ErrStatusMismatch
	}

	if input.Message != "" {
		bid.Message = input.Message
	}
	if input.Price != nil {
		bid.Price = *input.Price
	}
	bid.UpdatedAt = r.db.now()

	return nil
}

func (r *BidRepo) UpdateBidStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	bid, ok := r.db.bids[id]
	if !ok {
		return false, repo_errors.ErrNotFound
	}

	switch bid.Status {
	case to:
		return false, nil
	case from:
		bid.Status = to
		bid.UpdatedAt = r.db.now()
		return true, nil
	default:
		return false, repo_errors.ErrStatusMismatch
	}
}

func (r *BidRepo) RejectPendingBids(ctx context.Context, gigId uuid.UUID, exceptBidId uuid.UUID) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var rejected int64
	now := r.db.now()
	for id, bid := range r.db.bids {
		if bid.GigId == gigId && id != exceptBidId && bid.Status == common.BidPending {
			bid.Status = common.BidRejected
			bid.UpdatedAt = now
			rejected++
		}
	}

	return rejected, nil
}

func (r *BidRepo) DeletePendingBidById(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	bid, ok := r.db.bids[id]
	if !ok || bid.Status != common.BidPending {
		return repo_errors.ErrStatusMismatch
	}
	if gig, ok := r.db.gigs[bid.GigId]; !ok || gig.Status != common.GigOpen {
		return repo_errors.ErrStatusMismatch
	}

	delete(r.db.bidKeys, bidKey{bid.GigId, bid.FreelancerId})
	delete(r.db.order, id)
	delete(r.db.bids, id)

	return nil
}

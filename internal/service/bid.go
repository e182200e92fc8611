package service

import (
	"context"
	"errors"
	"strings"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/common"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/policy"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo/repo_errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type BidService struct {
	bidRepo  repo.Bid
	gigRepo  repo.Gig
	userRepo repo.User
	limiter  Limiter
}

func NewBidService(repos *repo.Repositories, limiter Limiter) *BidService {
	return &BidService{
		bidRepo:  repos.Bid,
		gigRepo:  repos.Gig,
		userRepo: repos.User,
		limiter:  limiter,
	}
}

func (s *BidService) getBid(ctx context.Context, bidId string) (*entity.Bid, error) {
	id, err := parseId(bidId, ErrBidNotFound)
	if err != nil {
		return nil, err
	}

	bid, err := s.bidRepo.GetBidById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, internal(err)
	}

	return bid, nil
}

func (s *BidService) outputs(ctx context.Context, bids []entity.Bid) ([]entity.BidOutputModel, error) {
	freelancerIds, gigIds := bidRefs(bids)

	users, err := s.userRepo.GetUsersByIds(ctx, freelancerIds)
	if err != nil {
		return nil, internal(err)
	}
	gigs, err := s.gigRepo.GetGigsByIds(ctx, gigIds)
	if err != nil {
		return nil, internal(err)
	}

	return mapBids(bids, users, gigs), nil
}

func (s *BidService) output(ctx context.Context, bid *entity.Bid) (*entity.BidOutputModel, error) {
	out, err := s.outputs(ctx, []entity.Bid{*bid})
	if err != nil {
		return nil, err
	}

	return &out[0], nil
}

// The first failing check decides the error, and the checks run in the
// order the API documents them.
func (s *BidService) CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	input.Message = strings.TrimSpace(input.Message)
	if input.GigId == uuid.Nil || input.Message == "" {
		return nil, ErrMissingFields
	}
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}

	gig, err := s.gigRepo.GetGigById(ctx, input.GigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, internal(err)
	}

	if gig.Status != common.GigOpen {
		return nil, ErrGigNotAcceptingBids
	}
	if policy.IsOwner(input.FreelancerId, gig) {
		return nil, ErrOwnGig
	}

	if s.limiter != nil && !s.limiter.Allow(ctx, "bids:"+input.FreelancerId.String()) {
		return nil, ErrTooManyBids
	}

	id, err := s.bidRepo.CreateBid(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrDuplicate):
			return nil, ErrDuplicateBid
		case errors.Is(err, repo_errors.ErrStatusMismatch):
			// assigned after the check above
			return nil, ErrGigNotAcceptingBids
		case errors.Is(err, repo_errors.ErrNotFound):
			// gig deleted after the check above
			return nil, ErrGigNotFound
		}

		return nil, internal(err)
	}

	bid, err := s.bidRepo.GetBidById(ctx, id)
	if err != nil {
		return nil, internal(err)
	}

	log.Debug().
		Str("bid_id", bid.Id.String()).
		Str("gig_id", gig.Id.String()).
		Msg("bid submitted")

	return s.output(ctx, bid)
}

func (s *BidService) GetUserBids(ctx context.Context, requester uuid.UUID, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	bids, err := s.bidRepo.GetFreelancerBids(ctx, requester, pg)
	if err != nil {
		return nil, internal(err)
	}

	return s.outputs(ctx, bids)
}

// GetGigBids is visible to the gig owner only.
func (s *BidService) GetGigBids(ctx context.Context, gigId string, requester uuid.UUID, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	id, err := parseId(gigId, ErrGigNotFound)
	if err != nil {
		return nil, err
	}

	gig, err := s.gigRepo.GetGigById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, internal(err)
	}

	if !policy.IsOwner(requester, gig) {
		return nil, ErrNotGigOwnerBids
	}

	bids, err := s.bidRepo.GetGigBids(ctx, gig.Id, pg)
	if err != nil {
		return nil, internal(err)
	}

	return s.outputs(ctx, bids)
}

func (s *BidService) EditBidById(ctx context.Context, bidId string, requester uuid.UUID, input *entity.UpdateBidInput) (*entity.BidOutputModel, error) {
	bid, err := s.getBid(ctx, bidId)
	if err != nil {
		return nil, err
	}

	if !policy.IsBidder(requester, bid) {
		return nil, ErrNotBidderUpdate
	}
	if bid.Status != common.BidPending {
		return nil, ErrBidUpdateProcessed
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	input.Message = strings.TrimSpace(input.Message)

	if err := s.bidRepo.EditPendingBidById(ctx, bid.Id, input); err != nil {
		if errors.Is(err, repo_errors.ErrStatusMismatch) {
			return nil, ErrBidUpdateProcessed
		}

		return nil, internal(err)
	}

	bid, err = s.bidRepo.GetBidById(ctx, bid.Id)
	if err != nil {
		return nil, internal(err)
	}

	return s.output(ctx, bid)
}

func (s *BidService) DeleteBidById(ctx context.Context, bidId string, requester uuid.UUID) error {
	bid, err := s.getBid(ctx, bidId)
	if err != nil {
		return err
	}

	if !policy.IsBidder(requester, bid) {
		return ErrNotBidderDelete
	}
	if bid.Status != common.BidPending {
		return ErrBidDeleteProcessed
	}

	if err := s.bidRepo.DeletePendingBidById(ctx, bid.Id); err != nil {
		if errors.Is(err, repo_errors.ErrStatusMismatch) {
			return ErrBidDeleteProcessed
		}

		return internal(err)
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/common"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/notify"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/policy"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo/repo_errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBackoff  = 50 * time.Millisecond
	notifyTimeout        = 5 * time.Second
)

// HiringService moves a gig to assigned and settles its bids.
//
// The gig flip is a single conditional write and is the only gate: whoever
// wins it owns the hire. The bid updates that follow are idempotent, so a
// failure after the flip is finished later by ResumeHire without any risk
// of a second winner.
type HiringService struct {
	gigRepo  repo.Gig
	bidRepo  repo.Bid
	userRepo repo.User
	sink     notify.Sink

	retryAttempts int
	retryBackoff  time.Duration
}

func NewHiringService(repos *repo.Repositories, sink notify.Sink, retryAttempts int, retryBackoff time.Duration) *HiringService {
	if retryAttempts <= 0 {
		retryAttempts = defaultRetryAttempts
	}
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}

	return &HiringService{
		gigRepo:       repos.Gig,
		bidRepo:       repos.Bid,
		userRepo:      repos.User,
		sink:          sink,
		retryAttempts: retryAttempts,
		retryBackoff:  retryBackoff,
	}
}

func (s *HiringService) Hire(ctx context.Context, bidId string, requester uuid.UUID) (*entity.BidOutputModel, error) {
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

	gig, err := s.gigRepo.GetGigById(ctx, bid.GigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, internal(err)
	}

	if !policy.IsOwner(requester, gig) {
		return nil, ErrNotGigOwnerHire
	}
	if gig.Status != common.GigOpen {
		return nil, ErrGigAlreadyAssigned
	}

	if err := s.gigRepo.AssignGig(ctx, gig.Id, bid.Id); err != nil {
		if errors.Is(err, repo_errors.ErrStatusMismatch) {
			return nil, ErrGigAlreadyAssigned
		}

		return nil, internal(err)
	}
	gig.Status = common.GigAssigned
	gig.HiredBidId = uuid.NullUUID{UUID: bid.Id, Valid: true}

	log.Info().
		Str("gig_id", gig.Id.String()).
		Str("bid_id", bid.Id.String()).
		Msg("gig assigned")

	// past this point the hire is decided; a client going away must not
	// leave it half done
	ctx = context.WithoutCancel(ctx)

	if err := s.completeHire(ctx, gig, bid); err != nil {
		log.Error().Err(err).
			Str("gig_id", gig.Id.String()).
			Str("bid_id", bid.Id.String()).
			Msg("hire left incomplete, repair will finish it")

		return nil, internal(err)
	}

	return s.hiredBid(ctx, bid.Id, gig)
}

func (s *HiringService) hiredBid(ctx context.Context, bidId uuid.UUID, gig *entity.Gig) (*entity.BidOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, internal(err)
	}

	users, err := s.userRepo.GetUsersByIds(ctx, []uuid.UUID{bid.FreelancerId})
	if err != nil {
		return nil, internal(err)
	}

	return mapBid(bid, users, map[uuid.UUID]entity.Gig{gig.Id: *gig}), nil
}

// completeHire retries the bid updates with a doubling backoff.
func (s *HiringService) completeHire(ctx context.Context, gig *entity.Gig, bid *entity.Bid) error {
	backoff := s.retryBackoff

	var err error
	for attempt := 1; attempt <= s.retryAttempts; attempt++ {
		if err = s.settleBids(ctx, gig, bid); err == nil {
			return nil
		}
		if errors.Is(err, repo_errors.ErrStatusMismatch) || errors.Is(err, repo_errors.ErrNotFound) {
			return err
		}

		log.Warn().Err(err).
			Int("attempt", attempt).
			Str("gig_id", gig.Id.String()).
			Msg("settling bids failed")

		if attempt == s.retryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return err
}

func (s *HiringService) settleBids(ctx context.Context, gig *entity.Gig, bid *entity.Bid) error {
	changed, err := s.bidRepo.UpdateBidStatus(ctx, bid.Id, common.BidPending, common.BidHired)
	if err != nil {
		return err
	}
	if changed {
		s.notifyHired(ctx, bid.FreelancerId, gig)
	}

	rejected, err := s.bidRepo.RejectPendingBids(ctx, gig.Id, bid.Id)
	if err != nil {
		return err
	}

	log.Debug().
		Str("gig_id", gig.Id.String()).
		Int64("rejected", rejected).
		Msg("bids settled")

	return nil
}

// notifyHired never blocks the caller and never fails it.
func (s *HiringService) notifyHired(ctx context.Context, freelancerId uuid.UUID, gig *entity.Gig) {
	if s.sink == nil {
		return
	}

	n := entity.Notification{
		Type:      entity.NotificationHired,
		Message:   fmt.Sprintf("You have been hired for \"%s\"!", gig.Title),
		GigId:     gig.Id.String(),
		GigTitle:  gig.Title,
		Timestamp: time.Now().UTC(),
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("notification sink panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		if err := s.sink.Send(ctx, freelancerId, n); err != nil {
			log.Warn().Err(err).
				Str("user_id", freelancerId.String()).
				Str("gig_id", n.GigId).
				Msg("hire notification not delivered")
		}
	}()
}

func (s *HiringService) ResumeHire(ctx context.Context, gigId uuid.UUID) error {
	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrGigNotFound
		}

		return internal(err)
	}

	if gig.Status != common.GigAssigned {
		return nil
	}
	if !gig.HiredBidId.Valid {
		return internal(fmt.Errorf("gig %s is assigned without a hired bid", gig.Id))
	}

	bid, err := s.bidRepo.GetBidById(ctx, gig.HiredBidId.UUID)
	if err != nil {
		return internal(err)
	}

	return internal(s.completeHire(ctx, gig, bid))
}

// RepairIncompleteHires resumes every hire that stopped after the gig flip
// and reports how many it finished.
func (s *HiringService) RepairIncompleteHires(ctx context.Context) (int, error) {
	gigs, err := s.gigRepo.GetIncompleteHires(ctx)
	if err != nil {
		return 0, internal(err)
	}

	var errs []error
	repaired := 0
	for _, gig := range gigs {
		if err := s.ResumeHire(ctx, gig.Id); err != nil {
			errs = append(errs, err)
			continue
		}
		repaired++
	}

	if len(gigs) > 0 {
		log.Info().
			Int("found", len(gigs)).
			Int("repaired", repaired).
			Msg("incomplete hires repaired")
	}

	return repaired, errors.Join(errs...)
}

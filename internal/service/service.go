package service

import (
	"context"
	"time"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/notify"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping(ctx context.Context) error
}

type Gig interface {
	CreateGig(ctx context.Context, input *entity.CreateGigInput) (*entity.GigOutputModel, error)
	GetOpenGigs(ctx context.Context, search *entity.GigSearch) ([]entity.GigOutputModel, error)
	GetGigById(ctx context.Context, gigId string) (*entity.GigOutputModel, error)
	GetUserGigs(ctx context.Context, requester uuid.UUID, pg *entity.PaginationInput) ([]entity.GigOutputModel, error)

	EditGigById(ctx context.Context, gigId string, requester uuid.UUID, input *entity.UpdateGigInput) (*entity.GigOutputModel, error)
	DeleteGigById(ctx context.Context, gigId string, requester uuid.UUID) error
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error)
	GetUserBids(ctx context.Context, requester uuid.UUID, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
	GetGigBids(ctx context.Context, gigId string, requester uuid.UUID, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)

	EditBidById(ctx context.Context, bidId string, requester uuid.UUID, input *entity.UpdateBidInput) (*entity.BidOutputModel, error)
	DeleteBidById(ctx context.Context, bidId string, requester uuid.UUID) error
}

type Hiring interface {
	Hire(ctx context.Context, bidId string, requester uuid.UUID) (*entity.BidOutputModel, error)

	// ResumeHire finishes the bid updates of a gig that was already assigned.
	ResumeHire(ctx context.Context, gigId uuid.UUID) error
	RepairIncompleteHires(ctx context.Context) (int, error)
}

// Limiter throttles bid submissions per freelancer.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type Options struct {
	Limiter       Limiter
	RetryAttempts int
	RetryBackoff  time.Duration
}

type Services struct {
	Diagnostics Diagnostics
	Gig         Gig
	Bid         Bid
	Hiring      Hiring
}

func NewServices(repos *repo.Repositories, sink notify.Sink, opts Options) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Gig:         NewGigService(repos),
		Bid:         NewBidService(repos, opts.Limiter),
		Hiring:      NewHiringService(repos, sink, opts.RetryAttempts, opts.RetryBackoff),
	}
}

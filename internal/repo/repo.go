package repo

import (
	"context"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo/memdb"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo/pgdb"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping(ctx context.Context) error
}

type User interface {
	GetUsersByIds(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.User, error)
}

type Gig interface {
	CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error)
	GetGigById(ctx context.Context, id uuid.UUID) (*entity.Gig, error)
	GetOpenGigs(ctx context.Context, search *entity.GigSearch) ([]entity.Gig, error)
	GetGigsByOwnerId(ctx context.Context, ownerId uuid.UUID, pg *entity.PaginationInput) ([]entity.Gig, error)
	GetGigsByIds(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Gig, error)
	// EditOpenGigById fails with ErrStatusMismatch once the gig is assigned.
	EditOpenGigById(ctx context.Context, id uuid.UUID, input *entity.UpdateGigInput) error
	// AssignGig flips open -> assigned and records the winning bid in one
	// conditional write. ErrStatusMismatch means another hire got there first
	// or the bid is no longer pending.
	AssignGig(ctx context.Context, gigId uuid.UUID, bidId uuid.UUID) error
	// DeleteOpenGigById removes an open gig together with its bids.
	DeleteOpenGigById(ctx context.Context, id uuid.UUID) error
	// GetIncompleteHires lists assigned gigs whose hired bid is not marked
	// hired yet or which still have pending bids.
	GetIncompleteHires(ctx context.Context) ([]entity.Gig, error)
}

type Bid interface {
	// CreateBid returns ErrDuplicate when the freelancer already bid on the gig
	// and ErrStatusMismatch when the gig is no longer open.
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error)
	GetBidById(ctx context.Context, id uuid.UUID) (*entity.Bid, error)
	GetGigBids(ctx context.Context, gigId uuid.UUID, pg *entity.PaginationInput) ([]entity.Bid, error)
	GetFreelancerBids(ctx context.Context, freelancerId uuid.UUID, pg *entity.PaginationInput) ([]entity.Bid, error)
	// EditPendingBidById fails with ErrStatusMismatch unless the bid is pending
	// and its gig is still open.
	EditPendingBidById(ctx context.Context, id uuid.UUID, input *entity.UpdateBidInput) error
	// UpdateBidStatus is a compare-and-set; changed is false when the bid was
	// already in the target status.
	UpdateBidStatus(ctx context.Context, id uuid.UUID, from, to string) (changed bool, err error)
	// RejectPendingBids rejects every pending bid of the gig except one.
	RejectPendingBids(ctx context.Context, gigId uuid.UUID, exceptBidId uuid.UUID) (int64, error)
	DeletePendingBidById(ctx context.Context, id uuid.UUID) error
}

type Maintenance interface {
	ClearData(ctx context.Context, withUsers bool) error
}

type Repositories struct {
	Diagnostics
	User
	Gig
	Bid
	Maintenance
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		User:        pgdb.NewUserRepo(p),
		Gig:         pgdb.NewGigRepo(p),
		Bid:         pgdb.NewBidRepo(p),
		Maintenance: pgdb.NewMaintenanceRepo(p),
	}
}

// NewMemoryRepositories keeps everything in process. Used by tests and by
// the "memory" storage driver.
func NewMemoryRepositories(db *memdb.Database) *Repositories {
	return &Repositories{
		Diagnostics: memdb.NewDiagnosticsRepo(db),
		User:        memdb.NewUserRepo(db),
		Gig:         memdb.NewGigRepo(db),
		Bid:         memdb.NewBidRepo(db),
		Maintenance: memdb.NewMaintenanceRepo(db),
	}
}

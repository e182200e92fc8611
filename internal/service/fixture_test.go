package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/notify"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo/memdb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *memdb.Database
	repos    *repo.Repositories
	hub      *notify.Hub
	services *Services

	owner      entity.User
	freelancer entity.User
	other      entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := memdb.New()
	f := &fixture{
		db:         db,
		repos:      repo.NewMemoryRepositories(db),
		hub:        notify.NewHub(),
		owner:      entity.User{Id: uuid.New(), Name: "Olivia Owner", Email: "olivia@example.com"},
		freelancer: entity.User{Id: uuid.New(), Name: "Frank Free", Email: "frank@example.com"},
		other:      entity.User{Id: uuid.New(), Name: "Greta Gun", Email: "greta@example.com"},
	}
	for _, u := range []entity.User{f.owner, f.freelancer, f.other} {
		db.PutUser(u)
	}
	f.services = NewServices(f.repos, f.hub, Options{RetryAttempts: 3, RetryBackoff: time.Millisecond})

	return f
}

func (f *fixture) gig(t *testing.T, budget float64) *entity.GigOutputModel {
	t.Helper()
	gig, err := f.services.Gig.CreateGig(context.Background(), &entity.CreateGigInput{
		Title: "Logo design", Description: "A clean logo", Budget: budget, OwnerId: f.owner.Id,
	})
	require.NoError(t, err)
	return gig
}

func (f *fixture) bid(t *testing.T, gigId string, freelancer uuid.UUID, price float64) *entity.BidOutputModel {
	t.Helper()
	bid, err := f.services.Bid.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId: uuid.MustParse(gigId), FreelancerId: freelancer, Message: "I can do it", Price: price,
	})
	require.NoError(t, err)
	return bid
}

// inbox is a notification channel that records what it receives.
type inbox struct {
	mu  sync.Mutex
	got []entity.Notification
}

func (i *inbox) Deliver(ctx context.Context, n entity.Notification) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.got = append(i.got, n)
	return nil
}

func (i *inbox) received() []entity.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]entity.Notification(nil), i.got...)
}

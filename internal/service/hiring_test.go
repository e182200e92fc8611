package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/common"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/notify"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bidStatus(t *testing.T, f *fixture, bidId string) string {
	t.Helper()
	bid, err := f.repos.Bid.GetBidById(context.Background(), uuid.MustParse(bidId))
	require.NoError(t, err)
	return bid.Status
}

func gigRecord(t *testing.T, f *fixture, gigId string) *entity.Gig {
	t.Helper()
	gig, err := f.repos.Gig.GetGigById(context.Background(), uuid.MustParse(gigId))
	require.NoError(t, err)
	return gig
}

func TestHire_SettlesAllBids(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	box := &inbox{}
	f.hub.Register(f.freelancer.Id, box)

	gig := f.gig(t, 500)
	a := f.bid(t, gig.Id, f.freelancer.Id, 400)
	b := f.bid(t, gig.Id, f.other.Id, 450)

	hired, err := f.services.Hiring.Hire(ctx, a.Id, f.owner.Id)
	require.NoError(t, err)
	assert.Equal(t, common.BidHired, hired.Status)
	assert.Equal(t, common.GigAssigned, hired.Gig.Status)
	assert.Equal(t, f.freelancer.Name, hired.Freelancer.Name)

	record := gigRecord(t, f, gig.Id)
	assert.Equal(t, common.GigAssigned, record.Status)
	assert.Equal(t, a.Id, record.HiredBidId.UUID.String())
	assert.Equal(t, common.BidRejected, bidStatus(t, f, b.Id))

	require.Eventually(t, func() bool { return len(box.received()) == 1 }, time.Second, 5*time.Millisecond)
	n := box.received()[0]
	assert.Equal(t, entity.NotificationHired, n.Type)
	assert.Equal(t, `You have been hired for "Logo design"!`, n.Message)
	assert.Equal(t, gig.Id, n.GigId)
	assert.Equal(t, gig.Title, n.GigTitle)
	assert.False(t, n.Timestamp.IsZero())
}

func TestHire_Gates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gig := f.gig(t, 500)
	a := f.bid(t, gig.Id, f.freelancer.Id, 400)
	b := f.bid(t, gig.Id, f.other.Id, 450)

	_, err := f.services.Hiring.Hire(ctx, uuid.NewString(), f.owner.Id)
	assert.ErrorIs(t, err, ErrBidNotFound)

	_, err = f.services.Hiring.Hire(ctx, a.Id, f.freelancer.Id)
	assert.ErrorIs(t, err, ErrNotGigOwnerHire)
	assert.Equal(t, common.GigOpen, gigRecord(t, f, gig.Id).Status)

	_, err = f.services.Hiring.Hire(ctx, a.Id, f.owner.Id)
	require.NoError(t, err)

	_, err = f.services.Hiring.Hire(ctx, b.Id, f.owner.Id)
	assert.ErrorIs(t, err, ErrGigAlreadyAssigned)
	_, err = f.services.Hiring.Hire(ctx, a.Id, f.owner.Id)
	assert.ErrorIs(t, err, ErrGigAlreadyAssigned)
}

func TestHire_ConcurrentSingleWinner(t *testing.T) {
	f := newFixture(t)
	gig := f.gig(t, 500)

	bids := []*entity.BidOutputModel{f.bid(t, gig.Id, f.freelancer.Id, 400), f.bid(t, gig.Id, f.other.Id, 450)}
	for i := 0; i < 6; i++ {
		u := entity.User{Id: uuid.New(), Name: "extra"}
		f.db.PutUser(u)
		bids = append(bids, f.bid(t, gig.Id, u.Id, float64(100+i)))
	}

	var wins, lost atomic.Int32
	var wg sync.WaitGroup
	for _, bid := range bids {
		wg.Add(1)
		go func(bidId string) {
			defer wg.Done()
			_, err := f.services.Hiring.Hire(context.Background(), bidId, f.owner.Id)
			if err == nil {
				wins.Add(1)
			} else if errors.Is(err, ErrGigAlreadyAssigned) {
				lost.Add(1)
			}
		}(bid.Id)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(len(bids)-1), lost.Load())

	hired := 0
	for _, bid := range bids {
		switch bidStatus(t, f, bid.Id) {
		case common.BidHired:
			hired++
		case common.BidPending:
			t.Errorf("bid %s still pending", bid.Id)
		}
	}
	assert.Equal(t, 1, hired)
}

// flakyBids fails selected writes a fixed number of times.
type flakyBids struct {
	repo.Bid
	statusFailures atomic.Int32
	rejectFailures atomic.Int32
}

var errStorageDown = errors.New("storage unavailable")

func (r *flakyBids) UpdateBidStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	if r.statusFailures.Add(-1) >= 0 {
		return false, errStorageDown
	}
	return r.Bid.UpdateBidStatus(ctx, id, from, to)
}

func (r *flakyBids) RejectPendingBids(ctx context.Context, gigId uuid.UUID, exceptBidId uuid.UUID) (int64, error) {
	if r.rejectFailures.Add(-1) >= 0 {
		return 0, errStorageDown
	}
	return r.Bid.RejectPendingBids(ctx, gigId, exceptBidId)
}

func flakyHiring(f *fixture, bids *flakyBids) *HiringService {
	repos := *f.repos
	repos.Bid = bids
	return NewHiringService(&repos, f.hub, 2, time.Millisecond)
}

func TestHire_RetriesTransientFailures(t *testing.T) {
	f := newFixture(t)
	bids := &flakyBids{Bid: f.repos.Bid}
	bids.rejectFailures.Store(1)
	hiring := flakyHiring(f, bids)

	gig := f.gig(t, 500)
	a := f.bid(t, gig.Id, f.freelancer.Id, 400)
	b := f.bid(t, gig.Id, f.other.Id, 450)

	_, err := hiring.Hire(context.Background(), a.Id, f.owner.Id)
	require.NoError(t, err)
	assert.Equal(t, common.BidRejected, bidStatus(t, f, b.Id))
}

func TestHire_PartialFailureIsRepaired(t *testing.T) {
	f := newFixture(t)
	box := &inbox{}
	f.hub.Register(f.freelancer.Id, box)
	ctx := context.Background()

	bids := &flakyBids{Bid: f.repos.Bid}
	bids.rejectFailures.Store(10)
	hiring := flakyHiring(f, bids)

	gig := f.gig(t, 500)
	a := f.bid(t, gig.Id, f.freelancer.Id, 400)
	b := f.bid(t, gig.Id, f.other.Id, 450)

	_, err := hiring.Hire(ctx, a.Id, f.owner.Id)
	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))

	// the gate is closed even though the hire did not finish
	assert.Equal(t, common.GigAssigned, gigRecord(t, f, gig.Id).Status)
	assert.Equal(t, common.BidHired, bidStatus(t, f, a.Id))
	assert.Equal(t, common.BidPending, bidStatus(t, f, b.Id))
	_, err = f.services.Hiring.Hire(ctx, b.Id, f.owner.Id)
	assert.ErrorIs(t, err, ErrGigAlreadyAssigned)

	incomplete, err := f.repos.Gig.GetIncompleteHires(ctx)
	require.NoError(t, err)
	require.Len(t, incomplete, 1)

	bids.rejectFailures.Store(0)
	repaired, err := hiring.RepairIncompleteHires(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)
	assert.Equal(t, common.BidRejected, bidStatus(t, f, b.Id))

	repaired, err = hiring.RepairIncompleteHires(ctx)
	require.NoError(t, err)
	assert.Zero(t, repaired)

	require.Eventually(t, func() bool { return len(box.received()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, box.received(), 1, "retries must not notify twice")
}

func TestResumeHire_NotifiesWhenBidFlipsLate(t *testing.T) {
	f := newFixture(t)
	box := &inbox{}
	f.hub.Register(f.freelancer.Id, box)
	ctx := context.Background()

	bids := &flakyBids{Bid: f.repos.Bid}
	bids.statusFailures.Store(10)
	hiring := flakyHiring(f, bids)

	gig := f.gig(t, 500)
	a := f.bid(t, gig.Id, f.freelancer.Id, 400)

	_, err := hiring.Hire(ctx, a.Id, f.owner.Id)
	require.Error(t, err)
	assert.Equal(t, common.BidPending, bidStatus(t, f, a.Id))
	assert.Empty(t, box.received())

	require.NoError(t, f.services.Hiring.ResumeHire(ctx, uuid.MustParse(gig.Id)))
	assert.Equal(t, common.BidHired, bidStatus(t, f, a.Id))
	require.Eventually(t, func() bool { return len(box.received()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestResumeHire_OpenOrUnknownGig(t *testing.T) {
	f := newFixture(t)
	gig := f.gig(t, 500)

	assert.NoError(t, f.services.Hiring.ResumeHire(context.Background(), uuid.MustParse(gig.Id)))
	assert.ErrorIs(t, f.services.Hiring.ResumeHire(context.Background(), uuid.New()), ErrGigNotFound)
}

type blockingSink struct {
	*notify.Hub
	release chan struct{}
}

func (s *blockingSink) Send(ctx context.Context, userId uuid.UUID, n entity.Notification) error {
	<-s.release
	return errors.New("gone")
}

func TestHire_NotificationDoesNotAffectResult(t *testing.T) {
	f := newFixture(t)
	sink := &blockingSink{Hub: notify.NewHub(), release: make(chan struct{})}
	defer close(sink.release)
	hiring := NewHiringService(f.repos, sink, 1, time.Millisecond)

	gig := f.gig(t, 500)
	a := f.bid(t, gig.Id, f.freelancer.Id, 400)

	done := make(chan error, 1)
	go func() {
		_, err := hiring.Hire(context.Background(), a.Id, f.owner.Id)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("hire waited for the notification")
	}
}

func TestHire_FailingChannel(t *testing.T) {
	f := newFixture(t)
	f.hub.Register(f.freelancer.Id, notify.ChannelFunc(func(ctx context.Context, n entity.Notification) error {
		return errors.New("socket closed")
	}))

	gig := f.gig(t, 500)
	a := f.bid(t, gig.Id, f.freelancer.Id, 400)

	hired, err := f.services.Hiring.Hire(context.Background(), a.Id, f.owner.Id)
	require.NoError(t, err)
	assert.Equal(t, common.BidHired, hired.Status)
}

package service

import (
	"context"
	"testing"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/common"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGig(t *testing.T) {
	f := newFixture(t)

	gig := f.gig(t, 500)
	assert.Equal(t, common.GigOpen, gig.Status)
	assert.Equal(t, 500.0, gig.Budget)
	require.NotNil(t, gig.Owner)
	assert.Equal(t, f.owner.Name, gig.Owner.Name)
	assert.Empty(t, gig.HiredBidId)
}

func TestCreateGig_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.services.Gig.CreateGig(ctx, &entity.CreateGigInput{Title: "  ", Description: "d", Budget: 1, OwnerId: f.owner.Id})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = f.services.Gig.CreateGig(ctx, &entity.CreateGigInput{Title: "t", Description: "d", Budget: 0, OwnerId: f.owner.Id})
	assert.ErrorIs(t, err, ErrInvalidBudget)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestGetGigById(t *testing.T) {
	f := newFixture(t)
	gig := f.gig(t, 100)

	got, err := f.services.Gig.GetGigById(context.Background(), gig.Id)
	require.NoError(t, err)
	assert.Equal(t, gig.Id, got.Id)

	_, err = f.services.Gig.GetGigById(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrGigNotFound)

	_, err = f.services.Gig.GetGigById(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrGigNotFound)
}

func TestGetOpenGigs_HidesAssigned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	open := f.gig(t, 100)
	taken := f.gig(t, 200)
	bid := f.bid(t, taken.Id, f.freelancer.Id, 150)
	_, err := f.services.Hiring.Hire(ctx, bid.Id, f.owner.Id)
	require.NoError(t, err)

	gigs, err := f.services.Gig.GetOpenGigs(ctx, &entity.GigSearch{Text: " logo "})
	require.NoError(t, err)
	require.Len(t, gigs, 1)
	assert.Equal(t, open.Id, gigs[0].Id)

	mine, err := f.services.Gig.GetUserGigs(ctx, f.owner.Id, nil)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestEditGig(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gig := f.gig(t, 100)

	_, err := f.services.Gig.EditGigById(ctx, gig.Id, f.freelancer.Id, &entity.UpdateGigInput{Title: "mine now"})
	assert.ErrorIs(t, err, ErrNotGigOwnerUpdate)

	updated, err := f.services.Gig.EditGigById(ctx, gig.Id, f.owner.Id, &entity.UpdateGigInput{Budget: 250})
	require.NoError(t, err)
	assert.Equal(t, 250.0, updated.Budget)
	assert.Equal(t, gig.Title, updated.Title)

	bid := f.bid(t, gig.Id, f.freelancer.Id, 200)
	_, err = f.services.Hiring.Hire(ctx, bid.Id, f.owner.Id)
	require.NoError(t, err)

	_, err = f.services.Gig.EditGigById(ctx, gig.Id, f.owner.Id, &entity.UpdateGigInput{Title: "late"})
	assert.ErrorIs(t, err, ErrGigUpdateAssigned)
}

func TestDeleteGig(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gig := f.gig(t, 100)
	bid := f.bid(t, gig.Id, f.freelancer.Id, 90)

	assert.ErrorIs(t, f.services.Gig.DeleteGigById(ctx, gig.Id, f.freelancer.Id), ErrNotGigOwnerDelete)
	require.NoError(t, f.services.Gig.DeleteGigById(ctx, gig.Id, f.owner.Id))

	_, err := f.services.Gig.GetGigById(ctx, gig.Id)
	assert.ErrorIs(t, err, ErrGigNotFound)
	err = f.services.Bid.DeleteBidById(ctx, bid.Id, f.freelancer.Id)
	assert.ErrorIs(t, err, ErrBidNotFound)
}

func TestDeleteGig_AssignedIsKept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gig := f.gig(t, 100)
	bid := f.bid(t, gig.Id, f.freelancer.Id, 90)
	_, err := f.services.Hiring.Hire(ctx, bid.Id, f.owner.Id)
	require.NoError(t, err)

	err = f.services.Gig.DeleteGigById(ctx, gig.Id, f.owner.Id)
	assert.ErrorIs(t, err, ErrGigDeleteAssigned)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

package controller

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostBid(t *testing.T) {
	a := newTestApi(t)
	gig := a.postGig("500")

	code, resp := a.postBid(gig.Id, &a.freelancer, "400")
	require.Equal(t, http.StatusCreated, code, resp.Message)
	assert.Equal(t, common.BidPending, resp.Bid.Status)
	assert.Equal(t, a.freelancer.Name, resp.Bid.Freelancer.Name)
	assert.Equal(t, gig.Title, resp.Bid.Gig.Title)
}

func TestPostBid_StatusCodes(t *testing.T) {
	a := newTestApi(t)
	gig := a.postGig("500")
	_, first := a.postBid(gig.Id, &a.freelancer, "400")

	tests := []struct {
		name    string
		body    string
		user    bool
		code    int
		message string
	}{
		{"missing fields", `{"gigId":"` + gig.Id + `"}`, false, http.StatusBadRequest, "Please provide all fields"},
		{"unknown gig", `{"gigId":"` + uuid.NewString() + `","message":"m","price":1}`, false, http.StatusNotFound, "Gig not found"},
		{"malformed gig id", `{"gigId":"abc","message":"m","price":1}`, false, http.StatusNotFound, "Gig not found"},
		{"own gig", `{"gigId":"` + gig.Id + `","message":"m","price":1}`, true, http.StatusBadRequest, "You cannot bid on your own gig"},
		{"duplicate", `{"gigId":"` + gig.Id + `","message":"m","price":1}`, false, http.StatusBadRequest, "You have already submitted a bid for this gig"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &a.freelancer
			if tt.user {
				user = &a.owner
			}
			code, resp := a.do(http.MethodPost, "/api/bids", user, tt.body)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.message, resp.Message)
			assert.False(t, resp.Success)
		})
	}

	code, _ := a.do(http.MethodPatch, "/api/bids/"+first.Bid.Id+"/hire", &a.owner, "")
	require.Equal(t, http.StatusOK, code)

	code, resp := a.postBid(gig.Id, &a.other, "300")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "This gig is no longer accepting bids", resp.Message)
}

func TestGetGigBids(t *testing.T) {
	a := newTestApi(t)
	gig := a.postGig("500")
	a.postBid(gig.Id, &a.freelancer, "400")
	a.postBid(gig.Id, &a.other, "450")

	code, resp := a.do(http.MethodGet, "/api/bids/gig/"+gig.Id, &a.owner, "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Bids, 2)
	assert.NotEmpty(t, resp.Bids[0].Freelancer.Email)

	code, resp = a.do(http.MethodGet, "/api/bids/gig/"+gig.Id, &a.freelancer, "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Not authorized to view bids for this gig", resp.Message)

	code, _ = a.do(http.MethodGet, "/api/bids/gig/"+uuid.NewString(), &a.owner, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetMyBids(t *testing.T) {
	a := newTestApi(t)
	gig := a.postGig("500")
	a.postBid(gig.Id, &a.freelancer, "400")

	code, resp := a.do(http.MethodGet, "/api/bids/my", &a.freelancer, "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Bids, 1)
	assert.Equal(t, gig.Title, resp.Bids[0].Gig.Title)
	assert.Equal(t, 500.0, resp.Bids[0].Gig.Budget)
	assert.Equal(t, common.GigOpen, resp.Bids[0].Gig.Status)
}

func TestHireBid(t *testing.T) {
	a := newTestApi(t)
	gig := a.postGig("500")
	_, winner := a.postBid(gig.Id, &a.freelancer, "400")
	_, loser := a.postBid(gig.Id, &a.other, "450")

	code, resp := a.do(http.MethodPatch, "/api/bids/"+uuid.NewString()+"/hire", &a.owner, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = a.do(http.MethodPatch, "/api/bids/"+winner.Bid.Id+"/hire", &a.freelancer, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = a.do(http.MethodPatch, "/api/bids/"+winner.Bid.Id+"/hire", &a.owner, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Freelancer hired successfully", resp.Message)
	assert.Equal(t, common.BidHired, resp.Bid.Status)

	code, resp = a.do(http.MethodPatch, "/api/bids/"+loser.Bid.Id+"/hire", &a.owner, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "This gig has already been assigned", resp.Message)

	_, resp = a.do(http.MethodGet, "/api/bids/gig/"+gig.Id, &a.owner, "")
	statuses := map[string]string{}
	for _, b := range resp.Bids {
		statuses[b.Id] = b.Status
	}
	assert.Equal(t, common.BidHired, statuses[winner.Bid.Id])
	assert.Equal(t, common.BidRejected, statuses[loser.Bid.Id])
}

func TestHireBid_Concurrent(t *testing.T) {
	a := newTestApi(t)
	gig := a.postGig("500")
	_, first := a.postBid(gig.Id, &a.freelancer, "400")
	_, second := a.postBid(gig.Id, &a.other, "450")

	var ok, rejected atomic.Int32
	var wg sync.WaitGroup
	for _, id := range []string{first.Bid.Id, second.Bid.Id} {
		wg.Add(1)
		go func(bidId string) {
			defer wg.Done()
			code, _ := a.do(http.MethodPatch, "/api/bids/"+bidId+"/hire", &a.owner, "")
			switch code {
			case http.StatusOK:
				ok.Add(1)
			case http.StatusBadRequest:
				rejected.Add(1)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(1), rejected.Load())
}

func TestUpdateAndDeleteBid(t *testing.T) {
	a := newTestApi(t)
	gig := a.postGig("500")
	_, bid := a.postBid(gig.Id, &a.freelancer, "400")
	path := "/api/bids/" + bid.Bid.Id

	code, _ := a.do(http.MethodPut, path, &a.other, `{"price":10}`)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp := a.do(http.MethodPut, path, &a.freelancer, `{"price":380}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 380.0, resp.Bid.Price)

	code, _ = a.do(http.MethodDelete, path, &a.other, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = a.do(http.MethodDelete, path, &a.freelancer, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Bid deleted successfully", resp.Message)

	code, _ = a.do(http.MethodDelete, path, &a.freelancer, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUpdateBid_AfterHire(t *testing.T) {
	a := newTestApi(t)
	gig := a.postGig("500")
	_, bid := a.postBid(gig.Id, &a.freelancer, "400")
	a.do(http.MethodPatch, "/api/bids/"+bid.Bid.Id+"/hire", &a.owner, "")

	code, resp := a.do(http.MethodPut, "/api/bids/"+bid.Bid.Id, &a.freelancer, `{"message":"more"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Cannot update a bid that has been processed", resp.Message)

	code, resp = a.do(http.MethodDelete, "/api/bids/"+bid.Bid.Id, &a.freelancer, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Cannot delete a bid that has been processed", resp.Message)
}

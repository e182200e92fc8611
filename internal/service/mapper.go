package service

import (
	"time"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"

	"github.com/google/uuid"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// mapUser falls back to a bare id when the directory has no record.
func mapUser(id uuid.UUID, users map[uuid.UUID]entity.User) *entity.UserOutputModel {
	u, ok := users[id]
	if !ok {
		return &entity.UserOutputModel{Id: id.String()}
	}

	return &entity.UserOutputModel{Id: id.String(), Name: u.Name, Email: u.Email}
}

func mapGig(g *entity.Gig, users map[uuid.UUID]entity.User) *entity.GigOutputModel {
	out := &entity.GigOutputModel{
		Id:          g.Id.String(),
		Title:       g.Title,
		Description: g.Description,
		Budget:      g.Budget,
		Status:      g.Status,
		Owner:       mapUser(g.OwnerId, users),
		CreatedAt:   formatTime(g.CreatedAt),
		UpdatedAt:   formatTime(g.UpdatedAt),
	}
	if g.HiredBidId.Valid {
		out.HiredBidId = g.HiredBidId.UUID.String()
	}

	return out
}

func mapGigs(g []entity.Gig, users map[uuid.UUID]entity.User) []entity.GigOutputModel {
	s := make([]entity.GigOutputModel, 0, len(g))
	for i := range g {
		s = append(s, *mapGig(&g[i], users))
	}

	return s
}

func mapGigSummary(g *entity.Gig) *entity.GigSummaryOutputModel {
	return &entity.GigSummaryOutputModel{
		Id:     g.Id.String(),
		Title:  g.Title,
		Budget: g.Budget,
		Status: g.Status,
	}
}

func mapBid(b *entity.Bid, users map[uuid.UUID]entity.User, gigs map[uuid.UUID]entity.Gig) *entity.BidOutputModel {
	out := &entity.BidOutputModel{
		Id:         b.Id.String(),
		Message:    b.Message,
		Price:      b.Price,
		Status:     b.Status,
		Freelancer: mapUser(b.FreelancerId, users),
		CreatedAt:  formatTime(b.CreatedAt),
		UpdatedAt:  formatTime(b.UpdatedAt),
	}
	if gig, ok := gigs[b.GigId]; ok {
		out.Gig = mapGigSummary(&gig)
	} else {
		out.Gig = &entity.GigSummaryOutputModel{Id: b.GigId.String()}
	}

	return out
}

func mapBids(b []entity.Bid, users map[uuid.UUID]entity.User, gigs map[uuid.UUID]entity.Gig) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0, len(b))
	for i := range b {
		s = append(s, *mapBid(&b[i], users, gigs))
	}

	return s
}

func gigOwnerIds(gigs []entity.Gig) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(gigs))
	for _, g := range gigs {
		ids = append(ids, g.OwnerId)
	}
	return ids
}

func bidRefs(bids []entity.Bid) (freelancers []uuid.UUID, gigs []uuid.UUID) {
	seen := make(map[uuid.UUID]bool)
	for _, b := range bids {
		freelancers = append(freelancers, b.FreelancerId)
		if !seen[b.GigId] {
			seen[b.GigId] = true
			gigs = append(gigs, b.GigId)
		}
	}
	return freelancers, gigs
}

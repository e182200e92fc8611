package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model
type Bid struct {
	Id           uuid.UUID `json:"id" db:"id"`
	GigId        uuid.UUID `json:"gigId" db:"gig_id"`
	FreelancerId uuid.UUID `json:"freelancerId" db:"freelancer_id"`
	Message      string    `json:"message" db:"message"`
	Price        float64   `json:"price" db:"price"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// service + repo input model
type CreateBidInput struct {
	GigId        uuid.UUID // given
	Message      string    // given
	Price        float64   // given
	FreelancerId uuid.UUID // taken from the requester
	// Id, Status ("pending") and CreatedAt are set by the store
}

// empty message and nil price keep the stored value
type UpdateBidInput struct {
	Message string
	Price   *float64
}

// controller model
type BidOutputModel struct {
	Id         string                 `json:"id"`
	Message    string                 `json:"message"`
	Price      float64                `json:"price"`
	Status     string                 `json:"status"`
	Freelancer *UserOutputModel       `json:"freelancer"`
	Gig        *GigSummaryOutputModel `json:"gig"`
	CreatedAt  string                 `json:"createdAt"`
	UpdatedAt  string                 `json:"updatedAt"`
}

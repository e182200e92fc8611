package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model
type Gig struct {
	Id          uuid.UUID     `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Description string        `json:"description" db:"description"`
	Budget      float64       `json:"budget" db:"budget"`
	OwnerId     uuid.UUID     `json:"ownerId" db:"owner_id"`
	Status      string        `json:"status" db:"status"`
	HiredBidId  uuid.NullUUID `json:"hiredBidId" db:"hired_bid_id"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
}

// service + repo input model
type CreateGigInput struct {
	Title       string    // given
	Description string    // given
	Budget      float64   // given
	OwnerId     uuid.UUID // taken from the requester
	// Id, Status ("open") and CreatedAt are set by the store
}

// empty strings and zero budget keep the stored value
type UpdateGigInput struct {
	Title       string
	Description string
	Budget      float64
}

// GigSearch narrows the open gig listing. Empty Text returns every open gig.
type GigSearch struct {
	Text string
	*PaginationInput
}

// controller model
type GigOutputModel struct {
	Id          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Budget      float64          `json:"budget"`
	Status      string           `json:"status"`
	Owner       *UserOutputModel `json:"owner"`
	HiredBidId  string           `json:"hiredBidId,omitempty"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
}

// attached to bids
type GigSummaryOutputModel struct {
	Id     string  `json:"id"`
	Title  string  `json:"title"`
	Budget float64 `json:"budget"`
	Status string  `json:"status"`
}

package common

// gig statuses
const (
	GigOpen     = "open"
	GigAssigned = "assigned"
)

// bid statuses
const (
	BidPending  = "pending"
	BidHired    = "hired"
	BidRejected = "rejected"
)

func ValidGigStatus(s string) bool {
	return s == GigOpen || s == GigAssigned
}

func ValidBidStatus(s string) bool {
	switch s {
	case BidPending, BidHired, BidRejected:
		return true
	default:
		return false
	}
}

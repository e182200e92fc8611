// Package policy holds the ownership predicates every mutating operation
// checks before it writes.
package policy

import (
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/google/uuid"
)

func IsOwner(user uuid.UUID, gig *entity.Gig) bool {
	return gig != nil && user != uuid.Nil && gig.OwnerId == user
}

func IsBidder(user uuid.UUID, bid *entity.Bid) bool {
	return bid != nil && user != uuid.Nil && bid.FreelancerId == user
}

package service

import (
	"errors"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindInvalidState
	KindConflict
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidState:
		return "invalid_state"
	case KindConflict:
		return "conflict"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// Error is what every service method fails with. Message is safe to show to
// the caller; Err carries the cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels regardless of the attached cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Message == e.Message
}

func (e *Error) wrap(err error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: err}
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns KindInternal for anything that is not a service error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	ErrMissingFields = newError(KindValidation, "Please provide all fields")
	ErrInvalidBudget = newError(KindValidation, "Budget must be greater than 0")
	ErrInvalidPrice  = newError(KindValidation, "Price cannot be negative")

	ErrGigNotFound = newError(KindNotFound, "Gig not found")
	ErrBidNotFound = newError(KindNotFound, "Bid not found")

	ErrNotGigOwnerUpdate = newError(KindForbidden, "Not authorized to update this gig")
	ErrNotGigOwnerDelete = newError(KindForbidden, "Not authorized to delete this gig")
	ErrNotGigOwnerBids   = newError(KindForbidden, "Not authorized to view bids for this gig")
	ErrNotGigOwnerHire   = newError(KindForbidden, "Not authorized to hire for this gig")
	ErrNotBidderUpdate   = newError(KindForbidden, "Not authorized to update this bid")
	ErrNotBidderDelete   = newError(KindForbidden, "Not authorized to delete this bid")
	ErrOwnGig            = newError(KindForbidden, "You cannot bid on your own gig")

	ErrGigNotAcceptingBids = newError(KindInvalidState, "This gig is no longer accepting bids")
	ErrGigAlreadyAssigned  = newError(KindInvalidState, "This gig has already been assigned")
	ErrGigUpdateAssigned   = newError(KindInvalidState, "Cannot update a gig that has been assigned")
	ErrGigDeleteAssigned   = newError(KindInvalidState, "Cannot delete a gig that has been assigned")
	ErrBidUpdateProcessed  = newError(KindInvalidState, "Cannot update a bid that has been processed")
	ErrBidDeleteProcessed  = newError(KindInvalidState, "Cannot delete a bid that has been processed")

	ErrDuplicateBid = newError(KindConflict, "You have already submitted a bid for this gig")

	ErrTooManyBids = newError(KindRateLimited, "Too many bids submitted, try again later")

	ErrInternal = newError(KindInternal, "Something went wrong")
)

// internal wraps an unexpected failure, keeping service errors as they are.
func internal(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return ErrInternal.wrap(err)
}

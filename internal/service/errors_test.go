package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesWrappedSentinel(t *testing.T) {
	cause := errors.New("connection reset")
	err := internal(cause)

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestInternalKeepsServiceErrors(t *testing.T) {
	assert.Same(t, ErrGigNotFound, internal(ErrGigNotFound))
	assert.Nil(t, internal(nil))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrBidNotFound))
	assert.Equal(t, KindConflict, KindOf(ErrDuplicateBid))
	assert.Equal(t, KindForbidden, KindOf(ErrOwnGig))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, "invalid_state", KindOf(ErrGigAlreadyAssigned).String())
}

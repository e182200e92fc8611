package repo_errors

import "errors"

var (
	ErrNotFound = errors.New("record not found")
	// unique (gig_id, freelancer_id) violated
	ErrDuplicate = errors.New("duplicate key violation")
	// conditional update matched no row because the status moved on
	ErrStatusMismatch = errors.New("status precondition failed")
)

package service

import "errors"

var (
	// ErrUnknownStatus rejects a transition target outside the fixed set.
	ErrUnknownStatus = errors.New("unknown booking status")
	// ErrNotCancellable guards the cancel specialization: only pending
	// bookings may be cancelled from the console.
	ErrNotCancellable = errors.New("only pending bookings can be cancelled")
	// ErrNotLoaded means the raw collection has not been fetched yet.
	ErrNotLoaded = errors.New("collection not loaded")
)

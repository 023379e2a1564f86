package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a submission is rejected before computing.
	ErrValidation = errors.New("validation failed")
	// ErrIndexOutOfRange is returned when a position does not address a
	// saved scenario.
	ErrIndexOutOfRange = errors.New("scenario index out of range")
	// ErrStaleIndex is returned when a position now holds a different
	// scenario than the caller last saw. It matches ErrIndexOutOfRange.
	ErrStaleIndex = fmt.Errorf("scenario at index has changed: %w", ErrIndexOutOfRange)
	// ErrPersistence is returned when the backing store cannot be written.
	ErrPersistence = errors.New("scenario persistence failed")
	// ErrCorruptData is returned when the persisted collection cannot be decoded.
	ErrCorruptData = errors.New("persisted scenarios are corrupt")
)

package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrStepOutOfOrder       = errors.New("wizard step out of order")
	ErrRemoteService        = errors.New("remote service error")
	ErrItineraryUnavailable = errors.New("itinerary unavailable")
	ErrItineraryNotFound    = errors.New("itinerary not found")
	ErrDocumentEncoding     = errors.New("document encoding error")
	ErrSessionStore         = errors.New("session store error")
	ErrDatabaseError        = errors.New("database error")
	ErrMissingCredential    = errors.New("missing api credential")
)

// RemoteServiceError is returned when the text-generation service answers with
// anything other than a usable completion.
type RemoteServiceError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *RemoteServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: remote service returned status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: remote service call failed: %v", e.Provider, e.Err)
}

func (e *RemoteServiceError) Unwrap() error { return e.Err }

func (e *RemoteServiceError) Is(target error) bool { return target == ErrRemoteService }

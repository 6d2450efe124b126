package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist (a stored trip, a catalog entry, a draft session).
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing trip name, end date before start date, malformed time of day).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a change would break an itinerary invariant
// unless the user confirms it first: a second hotel slot on the same day, or
// regenerating days over slots that would be discarded.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidState is returned for operations that are not valid in the
// current state, such as confirming a picker that was never opened or
// addressing a day index outside the itinerary.
var ErrInvalidState = errors.New("invalid state")

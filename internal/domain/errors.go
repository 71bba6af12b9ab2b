package domain

import "errors"

// Failure taxonomy. Adapters wrap these so callers can match with errors.Is
// and the HTTP layer can pick a status without inspecting messages.
var (
	// ErrInvalidRequest: caller-supplied input missing or malformed.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrDataUnavailable: the internal dataset could not be read or parsed.
	ErrDataUnavailable = errors.New("internal dataset unavailable")
	// ErrUpstreamUnavailable: the third-party call failed or returned an
	// unparseable payload. Never paired with partial results.
	ErrUpstreamUnavailable = errors.New("upstream reviews unavailable")
	// ErrStorageCorrupt: persisted hidden-id state was unreadable. Recovered
	// by resetting to an empty set, never surfaced to the user.
	ErrStorageCorrupt = errors.New("visibility state corrupt")
)

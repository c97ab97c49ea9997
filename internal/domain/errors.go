package domain

import "errors"

var (
	// ErrInvalidPosition marks a coordinate outside the WGS84 ranges.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidInput marks a constructor argument of the wrong shape.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyResolved rejects a second Resolve call on the same entity,
	// regardless of whether the first attempt succeeded or failed.
	ErrAlreadyResolved = errors.New("already resolved")

	// ErrDependencyUnresolved marks a route whose start or end exposes
	// neither a coordinate nor an address.
	ErrDependencyUnresolved = errors.New("dependency unresolved")

	// ErrNoResult is a provider's legitimate "nothing found". The composite
	// resolver treats it as permission to try the next tier.
	ErrNoResult = errors.New("no result")

	// ErrLocationNotFound means every configured tier came back empty.
	ErrLocationNotFound = errors.New("location not found")

	// ErrProviderUnavailable marks a capability (routing, imagery) requested
	// with no provider configured for it.
	ErrProviderUnavailable = errors.New("provider unavailable")

	ErrInvalidSpeed      = errors.New("speed must be greater than zero")
	ErrTranslationFailed = errors.New("translation failed")
)

// ResolutionError is the single externally visible resolution-failure kind.
// It keeps the originating provider or transport error reachable through
// errors.Unwrap instead of collapsing every cause into one opaque value.
type ResolutionError struct {
	Op  string
	Err error
}

func (e *ResolutionError) Error() string {
	return "resolve " + e.Op + ": " + e.Err.Error()
}

func (e *ResolutionError) Unwrap() error { return e.Err }

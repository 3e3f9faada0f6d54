package domain

import "errors"

var (
	// ErrValidation signals missing or invalid caller input.
	ErrValidation = errors.New("validation failed")
	// ErrMissingQuery signals a full-text request without a query string.
	ErrMissingQuery = errors.New("query is required")
	// ErrPrefixTooShort signals an autocomplete prefix below MinPrefixLength.
	ErrPrefixTooShort = errors.New("prefix too short")

	// ErrUnavailable signals that the index engine could not be reached.
	ErrUnavailable = errors.New("engine unavailable")
	// ErrTimeout signals that the engine did not answer within the request deadline.
	ErrTimeout = errors.New("engine timeout")
	// ErrQuery signals a malformed descriptor or an engine-side validation failure.
	ErrQuery = errors.New("engine rejected query")
)

// IsEngineError reports whether err originates from the index engine.
func IsEngineError(err error) bool {
	return errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrQuery)
}

package newsdex

import (
	"errors"

	"github.com/kailas-cloud/newsdex/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation     = domain.ErrValidation
	ErrMissingQuery   = domain.ErrMissingQuery
	ErrPrefixTooShort = domain.ErrPrefixTooShort
	ErrUnavailable    = domain.ErrUnavailable
	ErrTimeout        = domain.ErrTimeout
	ErrQuery          = domain.ErrQuery
)

// ErrReadOnly is returned by Load on backends the SDK does not write to.
var ErrReadOnly = errors.New("newsdex: backend is read-only")

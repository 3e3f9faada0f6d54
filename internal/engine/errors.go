package engine

import (
	"context"
	"errors"

	"github.com/kailas-cloud/newsdex/internal/domain"
)

// Kind classifies engine failures.
type Kind int

const (
	// KindUnavailable is a connection or transport failure.
	KindUnavailable Kind = iota
	// KindTimeout is a missed deadline or a cancelled call.
	KindTimeout
	// KindQuery is a malformed descriptor or an engine-side validation failure.
	KindQuery
)

// String returns the metrics label of the kind.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindQuery:
		return "query_error"
	default:
		return "unavailable"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindTimeout:
		return domain.ErrTimeout
	case KindQuery:
		return domain.ErrQuery
	default:
		return domain.ErrUnavailable
	}
}

// Op names used as error context.
const (
	OpValidate  = "validate"
	OpSearch    = "search"
	OpAggregate = "aggregate"
	OpPing      = "ping"
	OpDecode    = "decode"
	OpIndex     = "index"
	OpLoad      = "load"
)

// Error wraps an engine failure with the operation and its kind.
// errors.Is matches both the kind's domain sentinel and the underlying cause.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Op + ": " + e.Kind.String() + ": " + e.Err.Error() }

// Unwrap exposes the domain sentinel and the cause.
func (e *Error) Unwrap() []error { return []error{e.Kind.sentinel(), e.Err} }

// NewError builds an *Error.
func NewError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Unavailable wraps a transport failure.
func Unavailable(op string, err error) error { return NewError(op, KindUnavailable, err) }

// Timeout wraps a missed deadline.
func Timeout(op string, err error) error { return NewError(op, KindTimeout, err) }

// QueryError wraps a rejected descriptor.
func QueryError(op string, err error) error { return NewError(op, KindQuery, err) }

// KindOf returns the kind of err and whether err is an engine error at all.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindUnavailable, false
}

// classify turns an arbitrary driver error into an *Error. A missed deadline or a
// cancelled call is reported as KindTimeout even when the client library surfaced it
// as a transport failure.
func classify(ctx context.Context, op string, err error) error {
	expired := errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		ctx.Err() != nil

	var e *Error
	if errors.As(err, &e) {
		if e.Kind != KindUnavailable || !expired {
			return err
		}
		op, err = e.Op, e.Err
	}
	if !expired {
		return Unavailable(op, err)
	}
	if cerr := ctx.Err(); cerr != nil && !errors.Is(err, cerr) {
		err = errors.Join(cerr, err)
	}
	return Timeout(op, err)
}

package shapeinference

import "github.com/pkg/errors"

// kindError is a sentinel error that is also a more general kind of error.
type kindError struct {
	msg    string
	parent error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.parent }

// Kinds of errors returned by shape and layout inference. Errors returned wrap one of them,
// use errors.Is to test for them.
var (
	// ErrInvalidConfiguration is returned for malformed or missing configuration of an operation.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrAxisOutOfRange is returned when an axis doesn't resolve to [0, rank).
	// It is also an ErrInvalidConfiguration.
	ErrAxisOutOfRange error = &kindError{msg: "axis out of range", parent: ErrInvalidConfiguration}

	// ErrUnsupportedLayoutRequest is returned when a layout is requested for an operation that
	// only propagates its operand's layout.
	ErrUnsupportedLayoutRequest = errors.New("unsupported layout request")

	// ErrUnknownRankUnsupported is returned when layout propagation is attempted on a tensor with unknown rank.
	ErrUnknownRankUnsupported = errors.New("unknown rank unsupported")

	// ErrInternal is returned when the inference's own bookkeeping is inconsistent. It should never happen.
	ErrInternal = errors.New("internal invariant violation")
)

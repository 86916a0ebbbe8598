package serialize

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds. Every error produced by this package carries exactly one of
// them in its Unwrap chain; both the standard library's errors.Is and
// cockroachdb's match them.
var (
	// ErrInvalidArgument marks malformed containers and steps: missing
	// fields, out-of-range or wrong-kind index references, unknown codecs,
	// version mismatches, step sequencing violations.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFailedPrecondition marks internal invariant violations and misuse
	// of an instance, such as an index slot claimed twice.
	ErrFailedPrecondition = errors.New("failed precondition")

	// ErrNotFound marks a VALUE step whose declared codec reported that the
	// payload is not one of its kinds.
	ErrNotFound = errors.New("not found")
)

// ErrNoExtension is the sentinel a codec decode function returns when the
// payload is not one of its kinds. With an explicit codec index the decoder
// surfaces it as ErrNotFound; without one it makes the decoder move on to
// the next declared codec.
var ErrNoExtension = errors.New("no extension for this payload")

// WithKind attaches a taxonomy sentinel to err. The sentinel sits in the
// Unwrap chain, so errors.Is(err, kind) matches, while the message stays
// err's own.
func WithKind(err, kind error) error {
	return &kinded{cause: err, kind: kind}
}

type kinded struct {
	cause error
	kind  error
}

func (e *kinded) Error() string {
	return e.cause.Error()
}

func (e *kinded) Unwrap() []error {
	return []error{e.cause, e.kind}
}

func invalidArgumentf(format string, args ...any) error {
	return WithKind(errors.NewWithDepthf(1, format, args...), ErrInvalidArgument)
}

func failedPreconditionf(format string, args ...any) error {
	return WithKind(errors.NewWithDepthf(1, format, args...), ErrFailedPrecondition)
}

func notFoundf(format string, args ...any) error {
	return WithKind(errors.NewWithDepthf(1, format, args...), ErrNotFound)
}

// annotated appends a trailing "; ..." context fragment to an error without
// disturbing its identity chain: errors.Is still sees the cause. Each
// unwinding frame may add one more fragment.
type annotated struct {
	cause  error
	suffix string
}

func (e *annotated) Error() string {
	return e.cause.Error() + "; " + e.suffix
}

func (e *annotated) Unwrap() error {
	return e.cause
}

func annotatef(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return &annotated{
		cause:  err,
		suffix: fmt.Sprintf(format, args...),
	}
}

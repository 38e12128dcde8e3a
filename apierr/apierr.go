// Package apierr gives every operation in opinionop, linkop, debate, and
// engine a single tagged error shape, so a caller at the API boundary (the
// CLI, or any HTTP layer built atop engine.Engine) can make the 4xx/5xx
// split without string-matching error messages.
//
// Sentinels are never stringified at the definition site; callers wrap with
// operation context via fmt.Errorf("%w", ...), extended here with an
// explicit Kind so the sentinel alone doesn't have to carry the
// recoverable/fatal classification.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for a 4xx/5xx split:
// Validation/NotFound/Conflict are caller mistakes (recoverable, 4xx);
// Storage/Propagation are engine-side failures (fatal, 5xx). An error stops
// the operation where it occurs; graph and metadata writes made before it are
// not rolled back.
type Kind int

const (
	// KindValidation covers malformed input: empty content, a link to or
	// from an AND node, patching a non-leaf, and similar.
	KindValidation Kind = iota
	// KindNotFound covers references to an opinion, link, or debate ID that
	// does not exist.
	KindNotFound
	// KindConflict covers a request that is well-formed but rejected by a
	// structural invariant: a cycle, deleting the global debate.
	KindConflict
	// KindStorage covers metadata-store failures: a SQL error, a connection
	// drop, a constraint violation surfaced by the driver.
	KindStorage
	// KindPropagation covers failures inside the score propagator itself,
	// such as the depth-256 resource budget being exceeded.
	KindPropagation
)

// String names the kind, used in CLI error output.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage"
	case KindPropagation:
		return "propagation"
	default:
		return "unknown"
	}
}

// Recoverable reports whether a caller can retry with different input
// (Validation/NotFound/Conflict) as opposed to a fatal engine-side failure
// (Storage/Propagation) that stopped the mutation part-way; writes made
// before the failure remain in place.
func (k Kind) Recoverable() bool {
	return k == KindValidation || k == KindNotFound || k == KindConflict
}

// Error is the tagged error every exported operation returns on failure.
// Op names the operation ("linkop.CreateLink", "opinionop.PatchOpinion")
// for log correlation; Err is the underlying sentinel or wrapped error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes Err so errors.Is/errors.As compose through apierr.Error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error, the entry point every package in this module uses
// instead of constructing Error literals directly.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Wrapf builds an Error whose underlying Err is a fmt.Errorf-formatted
// wrap of cause, preserving cause for errors.Is/errors.As via %w.
func Wrapf(kind Kind, op string, cause error, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf("%s: %w", msg, cause)}
}

// Is reports whether err is an *Error of the given kind, unwrapping as
// needed.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

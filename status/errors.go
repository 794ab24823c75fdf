// SPDX-License-Identifier: MIT

package status

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// Sentinels for every backend status code. Match them with errors.Is.
var (
	ErrFailure            = errors.New("status: failure")
	ErrContinue           = errors.New("status: the iteration has not converged yet")
	ErrDomain             = errors.New("status: input domain error")
	ErrRange              = errors.New("status: output range error")
	ErrFault              = errors.New("status: invalid pointer")
	ErrInvalid            = errors.New("status: invalid argument")
	ErrFailed             = errors.New("status: generic failure")
	ErrFactor             = errors.New("status: factorization failed")
	ErrSanity             = errors.New("status: sanity check failed")
	ErrNoMemory           = errors.New("status: allocation failed")
	ErrBadFunc            = errors.New("status: problem with user-supplied function")
	ErrRunaway            = errors.New("status: iterative process is out of control")
	ErrMaxIter            = errors.New("status: exceeded max number of iterations")
	ErrZeroDivision       = errors.New("status: division by zero")
	ErrBadTolerance       = errors.New("status: invalid tolerance")
	ErrTolerance          = errors.New("status: failed to reach the specified tolerance")
	ErrUnderflow          = errors.New("status: underflow")
	ErrOverflow           = errors.New("status: overflow")
	ErrLoss               = errors.New("status: loss of accuracy")
	ErrRound              = errors.New("status: roundoff error")
	ErrBadLength          = errors.New("status: length mismatch")
	ErrNotSquare          = errors.New("status: matrix not square")
	ErrSingular           = errors.New("status: singular matrix")
	ErrDivergent          = errors.New("status: divergent")
	ErrUnsupported        = errors.New("status: unsupported")
	ErrUnimplemented      = errors.New("status: not implemented")
	ErrCache              = errors.New("status: cache limit exceeded")
	ErrTable              = errors.New("status: table limit exceeded")
	ErrNoProgress         = errors.New("status: no progress towards solution")
	ErrNoProgressJacobian = errors.New("status: jacobian evaluations are not improving the solution")
	ErrToleranceF         = errors.New("status: cannot reach the specified tolerance in F")
	ErrToleranceX         = errors.New("status: cannot reach the specified tolerance in X")
	ErrToleranceG         = errors.New("status: cannot reach the specified tolerance in gradient")
	ErrEOF                = errors.New("status: end of file")
)

// Core failure kinds that refine a backend code. An *Error carrying one of
// these matches both the kind and the code sentinel:
//
//	ErrDimensionMismatch -> EBADLEN
//	ErrIndexOutOfRange   -> EINVAL
//	ErrInvalidState      -> EINVAL
var (
	ErrDimensionMismatch = errors.New("status: dimension mismatch")
	ErrIndexOutOfRange   = errors.New("status: index out of range")
	ErrInvalidState      = errors.New("status: invalid state")
)

// Aliases under the failure-kind names used throughout the numcore docs.
var (
	ErrInvalidArgument   = ErrInvalid
	ErrLengthMismatch    = ErrBadLength
	ErrAllocationFailure = ErrNoMemory
	ErrSingularity       = ErrSingular
)

// kindCodes ties each core kind to the backend code it refines.
var kindCodes = map[error]Code{
	ErrDimensionMismatch: EBADLEN,
	ErrIndexOutOfRange:   EINVAL,
	ErrInvalidState:      EINVAL,
}

// Error is a raised numerical failure.
type Error struct {
	Op     string // operation that detected the failure, e.g. "Matrix.MulVec"
	Code   Code
	Reason string // human readable detail, including offending sizes
	File   string // reporting location (base name)
	Line   int
	kind   error // optional core kind refining Code
}

// Error renders "op: reason [CODE] (file:line)".
func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s [%s]", e.Op, e.Reason, e.Code)
	}

	return fmt.Sprintf("%s: %s [%s] (%s:%d)", e.Op, e.Reason, e.Code, e.File, e.Line)
}

// Unwrap exposes the code sentinel and, when present, the core kind.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.kind != nil {
		out = append(out, e.kind)
	}
	if s := e.Code.Sentinel(); s != nil {
		out = append(out, s)
	}

	return out
}

// Kind returns the core kind (ErrDimensionMismatch, ...) or the code sentinel.
func (e *Error) Kind() error {
	if e.kind != nil {
		return e.kind
	}

	return e.Code.Sentinel()
}

// New raises a failure for code at the caller's location.
// Success and Continue are not failures: New returns nil for them.
func New(op string, code Code, format string, args ...any) error {
	if code == Success || code == Continue {
		return nil
	}

	return raise(op, code, nil, reasonOf(code, format, args))
}

// NewKind raises one of the core kinds (ErrDimensionMismatch,
// ErrIndexOutOfRange, ErrInvalidState) or any code sentinel.
// Unrecognised kinds are raised as Failure wrapping kind.
func NewKind(op string, kind error, format string, args ...any) error {
	code, ok := kindCodes[kind]
	if !ok {
		code = codeOfSentinel(kind)
		if code != Failure || kind == ErrFailure {
			kind = nil
		}
	}

	return raise(op, code, kind, reasonOf(code, format, args))
}

// Resolve turns a backend-reported code into a signal and an error.
// Success yields (Done, nil), Continue yields (Resume, nil), anything else
// yields (Done, *Error) raised through the handler.
func Resolve(code Code, op, reason string) (Signal, error) {
	switch code {
	case Success:
		return Done, nil
	case Continue:
		return Resume, nil
	}
	if reason == "" {
		reason = code.Message()
	}

	return Done, raise(op, code, nil, reason)
}

// CodeOf extracts the status code from err.
// nil maps to Success; errors outside the taxonomy map to Failure.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	for k, c := range kindCodes {
		if errors.Is(err, k) {
			return c
		}
	}

	return codeOfSentinel(err)
}

func codeOfSentinel(err error) Code {
	for i := range codeTable {
		s := codeTable[i].sentinel
		if s != nil && errors.Is(err, s) {
			return Code(i) + minCode
		}
	}

	return Failure
}

func reasonOf(code Code, format string, args []any) string {
	if format == "" {
		return code.Message()
	}
	if len(args) == 0 {
		return format
	}

	return fmt.Sprintf(format, args...)
}

// raise builds the error, stamps the caller of New/NewKind/Resolve and runs
// the handler.
func raise(op string, code Code, kind error, reason string) *Error {
	e := &Error{Op: op, Code: code, Reason: reason, kind: kind}
	if _, file, line, ok := runtime.Caller(2); ok {
		e.File = filepath.Base(file)
		e.Line = line
	}
	currentHandler()(e)

	return e
}

// SPDX-License-Identifier: MIT

// Package status is the numerical error taxonomy of numcore.
//
// Purpose:
//   - Enumerate the backend status codes (GSL numbering) with their names and
//     canonical messages.
//   - Map every code to a package-level sentinel so callers match failures
//     with errors.Is, never by string.
//   - Raise structured *Error values at the point of detection, carrying the
//     operation, the offending sizes (in Reason) and the reporting location.
//   - Keep the "continue" signal apart from failures (Resolve).
//
// Every raised error passes through a process-wide Handler hook
// (SetHandler). The default handler logs at debug level and counts the error
// in the numcore_status_errors_total metric.
package status

import "fmt"

// Code is a backend status code. Values match the GSL numbering so codes
// reported by a GSL-compatible backend can be resolved without translation.
type Code int

const (
	Success  Code = 0
	Failure  Code = -1
	Continue Code = -2

	EDOM     Code = 1  // input domain error, e.g. sqrt(-1)
	ERANGE   Code = 2  // output range error, e.g. exp(1e100)
	EFAULT   Code = 3  // invalid pointer
	EINVAL   Code = 4  // invalid argument supplied by user
	EFAILED  Code = 5  // generic failure
	EFACTOR  Code = 6  // factorization failed
	ESANITY  Code = 7  // sanity check failed
	ENOMEM   Code = 8  // allocation failed
	EBADFUNC Code = 9  // problem with user-supplied function
	ERUNAWAY Code = 10 // iterative process is out of control
	EMAXITER Code = 11 // exceeded max number of iterations
	EZERODIV Code = 12 // tried to divide by zero
	EBADTOL  Code = 13 // user specified an invalid tolerance
	ETOL     Code = 14 // failed to reach the specified tolerance
	EUNDRFLW Code = 15
	EOVRFLW  Code = 16
	ELOSS    Code = 17 // loss of accuracy
	EROUND   Code = 18 // failed because of roundoff error
	EBADLEN  Code = 19 // matrix, vector lengths are not conformant
	ENOTSQR  Code = 20
	ESING    Code = 21 // apparent singularity detected
	EDIVERGE Code = 22 // integral or series is divergent
	EUNSUP   Code = 23 // requested feature is not supported
	EUNIMPL  Code = 24 // requested feature not (yet) implemented
	ECACHE   Code = 25
	ETABLE   Code = 26
	ENOPROG  Code = 27 // iteration is not making progress towards solution
	ENOPROGJ Code = 28 // jacobian evaluations are not improving the solution
	ETOLF    Code = 29
	ETOLX    Code = 30
	ETOLG    Code = 31
	EOF      Code = 32
)

// minCode and maxCode bound the table below.
const (
	minCode = Continue
	maxCode = EOF
)

type codeInfo struct {
	name     string
	message  string
	sentinel error
}

// codeTable is indexed by code-minCode.
var codeTable = [maxCode - minCode + 1]codeInfo{
	Continue - minCode: {"CONTINUE", "the iteration has not converged yet", ErrContinue},
	Failure - minCode:  {"FAILURE", "failure", ErrFailure},
	Success - minCode:  {"SUCCESS", "success", nil},
	EDOM - minCode:     {"EDOM", "input domain error", ErrDomain},
	ERANGE - minCode:   {"ERANGE", "output range error", ErrRange},
	EFAULT - minCode:   {"EFAULT", "invalid pointer", ErrFault},
	EINVAL - minCode:   {"EINVAL", "invalid argument supplied by user", ErrInvalid},
	EFAILED - minCode:  {"EFAILED", "generic failure", ErrFailed},
	EFACTOR - minCode:  {"EFACTOR", "factorization failed", ErrFactor},
	ESANITY - minCode:  {"ESANITY", "sanity check failed - shouldn't happen", ErrSanity},
	ENOMEM - minCode:   {"ENOMEM", "malloc failed", ErrNoMemory},
	EBADFUNC - minCode: {"EBADFUNC", "problem with user-supplied function", ErrBadFunc},
	ERUNAWAY - minCode: {"ERUNAWAY", "iterative process is out of control", ErrRunaway},
	EMAXITER - minCode: {"EMAXITER", "exceeded max number of iterations", ErrMaxIter},
	EZERODIV - minCode: {"EZERODIV", "tried to divide by zero", ErrZeroDivision},
	EBADTOL - minCode:  {"EBADTOL", "specified tolerance is invalid or theoretically unattainable", ErrBadTolerance},
	ETOL - minCode:     {"ETOL", "failed to reach the specified tolerance", ErrTolerance},
	EUNDRFLW - minCode: {"EUNDRFLW", "underflow", ErrUnderflow},
	EOVRFLW - minCode:  {"EOVRFLW", "overflow", ErrOverflow},
	ELOSS - minCode:    {"ELOSS", "loss of accuracy", ErrLoss},
	EROUND - minCode:   {"EROUND", "roundoff error", ErrRound},
	EBADLEN - minCode:  {"EBADLEN", "matrix/vector sizes are not conformant", ErrBadLength},
	ENOTSQR - minCode:  {"ENOTSQR", "matrix not square", ErrNotSquare},
	ESING - minCode:    {"ESING", "singularity or extremely bad function behavior detected", ErrSingular},
	EDIVERGE - minCode: {"EDIVERGE", "integral or series is divergent", ErrDivergent},
	EUNSUP - minCode:   {"EUNSUP", "the required feature is not supported by this hardware platform", ErrUnsupported},
	EUNIMPL - minCode:  {"EUNIMPL", "the requested feature is not (yet) implemented", ErrUnimplemented},
	ECACHE - minCode:   {"ECACHE", "cache limit exceeded", ErrCache},
	ETABLE - minCode:   {"ETABLE", "table limit exceeded", ErrTable},
	ENOPROG - minCode:  {"ENOPROG", "iteration is not making progress towards solution", ErrNoProgress},
	ENOPROGJ - minCode: {"ENOPROGJ", "jacobian evaluations are not improving the solution", ErrNoProgressJacobian},
	ETOLF - minCode:    {"ETOLF", "cannot reach the specified tolerance in F", ErrToleranceF},
	ETOLX - minCode:    {"ETOLX", "cannot reach the specified tolerance in X", ErrToleranceX},
	ETOLG - minCode:    {"ETOLG", "cannot reach the specified tolerance in gradient", ErrToleranceG},
	EOF - minCode:      {"EOF", "end of file", ErrEOF},
}

// Known reports whether c is part of the status table.
func (c Code) Known() bool { return c >= minCode && c <= maxCode }

// String returns the symbolic name ("ESING", "SUCCESS", ...).
func (c Code) String() string {
	if !c.Known() {
		return fmt.Sprintf("Code(%d)", int(c))
	}

	return codeTable[c-minCode].name
}

// Message returns the canonical description of c, the strerror text.
func (c Code) Message() string {
	if !c.Known() {
		return "unknown error code"
	}

	return codeTable[c-minCode].message
}

// Sentinel returns the package-level error for c. Success yields nil;
// unknown codes yield ErrFailure.
func (c Code) Sentinel() error {
	if !c.Known() {
		return ErrFailure
	}

	return codeTable[c-minCode].sentinel
}

// Codes lists every known code in ascending numeric order.
func Codes() []Code {
	out := make([]Code, 0, len(codeTable))
	for c := minCode; c <= maxCode; c++ {
		out = append(out, c)
	}

	return out
}

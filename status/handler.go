// SPDX-License-Identifier: MIT

package status

import (
	"sync/atomic"

	"github.com/katalvlaran/numcore/internal/logger"
	"github.com/katalvlaran/numcore/internal/metrics"
)

// Signal tells the caller of Resolve how to proceed.
type Signal int

const (
	// Done: the call finished; consult the error.
	Done Signal = iota
	// Resume: an iterative procedure should run another step. Not an error.
	Resume
)

func (s Signal) String() string {
	if s == Resume {
		return "resume"
	}

	return "done"
}

// Handler observes every raised *Error at its detection point.
// It must not retain or mutate e beyond the call.
type Handler func(e *Error)

// Discard is a handler that ignores every error.
var Discard Handler = func(*Error) {}

var handler atomic.Pointer[Handler]

// DefaultHandler logs the error at debug level and counts it by code.
func DefaultHandler(e *Error) {
	metrics.RecordStatus(e.Code.String())
	logger.Log.Debug("numerical error",
		"op", e.Op,
		"code", e.Code.String(),
		"reason", e.Reason,
		"file", e.File,
		"line", e.Line,
	)
}

// SetHandler installs h and returns the previous handler.
// A nil h restores DefaultHandler.
func SetHandler(h Handler) Handler {
	if h == nil {
		h = DefaultHandler
	}
	prev := handler.Swap(&h)
	if prev == nil {
		return DefaultHandler
	}

	return *prev
}

func currentHandler() Handler {
	if h := handler.Load(); h != nil {
		return *h
	}

	return DefaultHandler
}

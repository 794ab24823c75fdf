// SPDX-License-Identifier: MIT

package status_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numcore/internal/metrics"
	"github.com/katalvlaran/numcore/status"
)

func TestCodes_TableIsComplete(t *testing.T) {
	codes := status.Codes()
	require.Len(t, codes, 35)
	require.Equal(t, status.Continue, codes[0])
	require.Equal(t, status.EOF, codes[len(codes)-1])

	seen := map[string]bool{}
	for _, c := range codes {
		require.True(t, c.Known())
		require.NotContains(t, seen, c.String(), "duplicate name for %d", int(c))
		seen[c.String()] = true
		require.NotEmpty(t, c.Message())
		if c == status.Success {
			require.Nil(t, c.Sentinel())
			continue
		}
		require.NotNil(t, c.Sentinel(), c.String())
	}
}

func TestCodes_Names(t *testing.T) {
	require.Equal(t, "SUCCESS", status.Success.String())
	require.Equal(t, "FAILURE", status.Failure.String())
	require.Equal(t, "CONTINUE", status.Continue.String())
	require.Equal(t, "ESING", status.ESING.String())
	require.Equal(t, "EBADLEN", status.EBADLEN.String())
	require.Equal(t, 21, int(status.ESING))
	require.Equal(t, 32, int(status.EOF))
	require.Equal(t, "Code(99)", status.Code(99).String())
	require.Equal(t, "unknown error code", status.Code(99).Message())
	require.ErrorIs(t, status.Code(99).Sentinel(), status.ErrFailure)
	require.Equal(t, "matrix/vector sizes are not conformant", status.EBADLEN.Message())
}

func TestSentinelsAreDistinct(t *testing.T) {
	codes := status.Codes()
	for i, a := range codes {
		for j, b := range codes {
			if i == j || a == status.Success || b == status.Success {
				continue
			}
			require.False(t, errors.Is(a.Sentinel(), b.Sentinel()), "%s vs %s", a, b)
		}
	}
}

func TestNew_CarriesContext(t *testing.T) {
	err := status.New("Matrix.MulVec", status.EBADLEN, "vector length %d != cols %d", 2, 3)
	require.Error(t, err)
	require.ErrorIs(t, err, status.ErrBadLength)
	require.ErrorIs(t, err, status.ErrLengthMismatch)

	var se *status.Error
	require.True(t, errors.As(err, &se))
	require.Equal(t, "Matrix.MulVec", se.Op)
	require.Equal(t, status.EBADLEN, se.Code)
	require.Equal(t, "vector length 2 != cols 3", se.Reason)
	require.Equal(t, "status_test.go", se.File)
	require.Positive(t, se.Line)
	require.True(t, strings.HasPrefix(err.Error(), "Matrix.MulVec: vector length 2 != cols 3 [EBADLEN] (status_test.go:"))
}

func TestNew_DefaultReason(t *testing.T) {
	err := status.New("lu", status.ESING, "")
	var se *status.Error
	require.True(t, errors.As(err, &se))
	require.Equal(t, status.ESING.Message(), se.Reason)
	require.ErrorIs(t, err, status.ErrSingularity)
}

func TestNew_SuccessAndContinueAreNotErrors(t *testing.T) {
	require.NoError(t, status.New("op", status.Success, "x"))
	require.NoError(t, status.New("op", status.Continue, "x"))
}

func TestNewKind(t *testing.T) {
	cases := []struct {
		kind error
		code status.Code
		also error
	}{
		{status.ErrDimensionMismatch, status.EBADLEN, status.ErrBadLength},
		{status.ErrIndexOutOfRange, status.EINVAL, status.ErrInvalid},
		{status.ErrInvalidState, status.EINVAL, status.ErrInvalid},
		{status.ErrSingular, status.ESING, status.ErrSingular},
		{status.ErrNotSquare, status.ENOTSQR, status.ErrNotSquare},
	}
	for _, tc := range cases {
		err := status.NewKind("op", tc.kind, "detail")
		require.ErrorIs(t, err, tc.kind)
		require.ErrorIs(t, err, tc.also)
		require.Equal(t, tc.code, status.CodeOf(err))
	}

	foreign := errors.New("disk on fire")
	err := status.NewKind("op", foreign, "")
	require.ErrorIs(t, err, foreign)
	require.ErrorIs(t, err, status.ErrFailure)
	require.Equal(t, status.Failure, status.CodeOf(err))
}

func TestResolve(t *testing.T) {
	sig, err := status.Resolve(status.Success, "step", "")
	require.NoError(t, err)
	require.Equal(t, status.Done, sig)

	sig, err = status.Resolve(status.Continue, "step", "")
	require.NoError(t, err)
	require.Equal(t, status.Resume, sig)
	require.Equal(t, "resume", sig.String())

	for _, c := range status.Codes() {
		if c == status.Success || c == status.Continue {
			continue
		}
		sig, err = status.Resolve(c, "step", "")
		require.Equal(t, status.Done, sig)
		require.ErrorIs(t, err, c.Sentinel(), c.String())
		require.Equal(t, c, status.CodeOf(err))
	}
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, status.Success, status.CodeOf(nil))
	require.Equal(t, status.ESING, status.CodeOf(fmt.Errorf("wrap: %w", status.ErrSingular)))
	require.Equal(t, status.EBADLEN, status.CodeOf(fmt.Errorf("wrap: %w", status.ErrDimensionMismatch)))
	require.Equal(t, status.Failure, status.CodeOf(errors.New("other")))

	wrapped := fmt.Errorf("outer: %w", status.New("x", status.EDOM, ""))
	require.Equal(t, status.EDOM, status.CodeOf(wrapped))
}

func TestSetHandler(t *testing.T) {
	var got []*status.Error
	prev := status.SetHandler(func(e *status.Error) { got = append(got, e) })
	defer status.SetHandler(prev)

	_ = status.New("a", status.EDOM, "")
	_, _ = status.Resolve(status.ERANGE, "b", "too big")
	_, _ = status.Resolve(status.Continue, "c", "")

	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].Op)
	require.Equal(t, status.ERANGE, got[1].Code)
	require.Equal(t, "too big", got[1].Reason)
}

func TestSetHandler_NilRestoresDefault(t *testing.T) {
	prev := status.SetHandler(status.Discard)
	status.SetHandler(nil)
	defer status.SetHandler(prev)

	before := testutil.ToFloat64(metrics.StatusErrors.WithLabelValues("ETOLX"))
	_ = status.New("x", status.ETOLX, "")
	require.Equal(t, before+1, testutil.ToFloat64(metrics.StatusErrors.WithLabelValues("ETOLX")))
}

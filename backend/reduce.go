// SPDX-License-Identifier: MIT

package backend

import (
	"github.com/katalvlaran/numcore/scalar"
	"github.com/katalvlaran/numcore/status"
)

const opMinMax = "backend.MinMaxIndex"

// seq is a read-only linear walk over n elements.
type seq[T scalar.Scalar] struct {
	n  int
	at func(int) T
}

// MinMaxIndex returns the positions of the smallest and largest elements of x.
// Ties resolve to the first position. For float kinds the first NaN, if any,
// is reported as both minimum and maximum. Complex kinds are unordered and
// fail with ErrUnsupported.
func MinMaxIndex[T scalar.Scalar](x Vec[T]) (imin, imax int, err error) {
	if err = x.check(opMinMax); err != nil {
		return 0, 0, err
	}
	if x.N == 0 {
		return 0, 0, status.New(opMinMax, status.EINVAL, "empty vector")
	}

	return orderedScan(seq[T]{n: x.N, at: x.At})
}

// MinMaxIndexMatrix is MinMaxIndex over g in row-major order.
func MinMaxIndexMatrix[T scalar.Scalar](g General[T]) (minR, minC, maxR, maxC int, err error) {
	if err = g.check(opMinMax); err != nil {
		return 0, 0, 0, 0, err
	}
	cols := g.Cols
	imin, imax, err := orderedScan(seq[T]{
		n:  g.Rows * cols,
		at: func(k int) T { return g.At(k/cols, k%cols) },
	})
	if err != nil {
		return 0, 0, 0, 0, err
	}

	return imin / cols, imin % cols, imax / cols, imax % cols, nil
}

// orderedScan narrows T to an ordered kind.
func orderedScan[T scalar.Scalar](s seq[T]) (int, int, error) {
	switch v := any(s).(type) {
	case seq[int8]:
		return scan(v)
	case seq[uint8]:
		return scan(v)
	case seq[int16]:
		return scan(v)
	case seq[uint16]:
		return scan(v)
	case seq[int32]:
		return scan(v)
	case seq[uint32]:
		return scan(v)
	case seq[int64]:
		return scan(v)
	case seq[uint64]:
		return scan(v)
	case seq[float32]:
		return scan(v)
	case seq[float64]:
		return scan(v)
	}

	return 0, 0, status.New(opMinMax, status.EUNSUP, "%s elements are not ordered", scalar.KindOf[T]())
}

func scan[T scalar.Real](s seq[T]) (int, int, error) {
	lo := s.at(0)
	if lo != lo {
		return 0, 0, nil
	}
	hi := lo
	imin, imax := 0, 0
	for i := 1; i < s.n; i++ {
		v := s.at(i)
		if v != v {
			return i, i, nil
		}
		if v < lo {
			lo, imin = v, i
		}
		if v > hi {
			hi, imax = v, i
		}
	}

	return imin, imax, nil
}

// SPDX-License-Identifier: MIT

// Package matrix - Matrix[T]: row-major storage & safe accessors.
//
// Purpose:
//   - Provide a row-major buffer with the explicit index formula r*tda + c.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Track the Fresh -> Factored transition so LU factors are never used as data.
//
// Complexity quicksheet:
//   - NewMatrix: O(r*c) when zeroed; At/Set: O(1); Clone/ToSlice/ToRows: O(r*c).

package matrix

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/numcore/backend"
	"github.com/katalvlaran/numcore/buffer"
	"github.com/katalvlaran/numcore/scalar"
	"github.com/katalvlaran/numcore/status"
)

// ---------- error context tags ----------

const (
	opNewMatrix         = "NewMatrix"
	opNewMatrixFrom     = "NewMatrixFrom"
	opNewMatrixFromRows = "NewMatrixFromRows"
	opMatAt             = "Matrix.At"
	opMatSet            = "Matrix.Set"
	opMatSetAll         = "Matrix.SetAll"
	opMatSetIdentity    = "Matrix.SetIdentity"
	opMatRow            = "Matrix.Row"
	opMatCol            = "Matrix.Col"
	opMatSetRow         = "Matrix.SetRow"
	opMatSetCol         = "Matrix.SetCol"
	opMatToSlice        = "Matrix.ToSlice"
	opMatClone          = "Matrix.Clone"
	opMatRelease        = "Matrix.Release"
)

// State is the lifecycle of a Matrix.
type State uint8

const (
	// Fresh matrices hold plain data and accept every operation.
	Fresh State = iota
	// Factored matrices hold LU factors owned by an LU value; arithmetic fails
	// with ErrInvalidState.
	Factored
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == Factored {
		return "factored"
	}

	return "fresh"
}

// Matrix is a dense row-major matrix of T.
//   - rows, cols hold dimensions (both > 0).
//   - tda is the row stride (>= cols); element (r,c) lives at r*tda + c.
//   - state is Fresh until DecomposeLU takes the matrix over.
type Matrix[T scalar.Scalar] struct {
	rows, cols int
	tda        int
	buf        *buffer.Buffer[T]
	kind       scalar.Kind
	state      State
}

var _ fmt.Stringer = (*Matrix[float64])(nil)

// NewMatrix allocates a rows×cols matrix, zeroed unless WithZeroed(false).
//
// Errors:
//   - ErrInvalidArgument for a zero dimension or an unregistered element type.
//   - ErrAllocationFailure when the arena cannot provide storage.
func NewMatrix[T scalar.Scalar](rows, cols int, opts ...Option) (*Matrix[T], error) {
	return newMatrix[T](opNewMatrix, rows, cols, gatherOptions(opts...))
}

// NewMatrixFrom copies flat, read in row-major order, into a rows×cols matrix.
// len(flat) must equal rows*cols (ErrLengthMismatch otherwise).
func NewMatrixFrom[T scalar.Scalar](flat []T, rows, cols int, opts ...Option) (*Matrix[T], error) {
	if err := validateShape(opNewMatrixFrom, rows, cols); err != nil {
		return nil, err
	}
	if len(flat) != rows*cols {
		return nil, status.New(opNewMatrixFrom, status.EBADLEN, "%d values for a %dx%d matrix", len(flat), rows, cols)
	}
	o := gatherOptions(opts...)
	o.zeroed = false
	m, err := newMatrix[T](opNewMatrixFrom, rows, cols, o)
	if err != nil {
		return nil, err
	}
	g, _ := m.general(opNewMatrixFrom)
	if err = backend.CopyMatrix(g, backend.General[T]{Rows: rows, Cols: cols, Stride: cols, Data: flat}); err != nil {
		_ = m.Release()
		return nil, err
	}

	return m, nil
}

// NewMatrixFromRows builds a matrix from nested rows.
//
// Errors:
//   - ErrInvalidArgument when data is empty or its first row is empty.
//   - ErrDimensionMismatch when rows have different lengths.
func NewMatrixFromRows[T scalar.Scalar](data [][]T, opts ...Option) (*Matrix[T], error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, status.New(opNewMatrixFromRows, status.EINVAL, "empty row data")
	}
	rows, cols := len(data), len(data[0])
	for i, row := range data {
		if len(row) != cols {
			return nil, status.NewKind(opNewMatrixFromRows, status.ErrDimensionMismatch,
				"row %d has %d values, row 0 has %d", i, len(row), cols)
		}
	}
	o := gatherOptions(opts...)
	o.zeroed = false
	m, err := newMatrix[T](opNewMatrixFromRows, rows, cols, o)
	if err != nil {
		return nil, err
	}
	g, _ := m.general(opNewMatrixFromRows)
	for i, row := range data {
		copy(g.Row(i).Data, row)
	}

	return m, nil
}

func newMatrix[T scalar.Scalar](op string, rows, cols int, o options) (*Matrix[T], error) {
	k, err := validateKind[T](op)
	if err != nil {
		return nil, err
	}
	if err = validateShape(op, rows, cols); err != nil {
		return nil, err
	}
	buf, err := buffer.New[T](o.arena, rows*cols, o.zeroed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Matrix[T]{rows: rows, cols: cols, tda: cols, buf: buf, kind: k}, nil
}

// general borrows the storage as a backend descriptor for one call.
// A nil or released matrix fails with ErrInvalidState.
func (m *Matrix[T]) general(op string) (backend.General[T], error) {
	if m == nil || m.buf == nil {
		return backend.General[T]{}, status.NewKind(op, status.ErrInvalidState, "nil matrix")
	}
	data, err := m.buf.Slice()
	if err != nil {
		return backend.General[T]{}, fmt.Errorf("%s: %w", op, err)
	}

	return backend.General[T]{Rows: m.rows, Cols: m.cols, Stride: m.tda, Data: data}, nil
}

// fresh is general plus the Fresh-state requirement of every data operation.
func (m *Matrix[T]) fresh(op string) (backend.General[T], error) {
	g, err := m.general(op)
	if err != nil {
		return g, err
	}
	if m.state != Fresh {
		return backend.General[T]{}, status.NewKind(op, status.ErrInvalidState, "matrix holds LU factors")
	}

	return g, nil
}

func (m *Matrix[T]) arena() *buffer.Arena { return m.buf.Arena() }

// Rows is the row count.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols is the column count.
func (m *Matrix[T]) Cols() int { return m.cols }

// TDA is the row stride of the storage.
func (m *Matrix[T]) TDA() int { return m.tda }

// Size returns (rows, cols).
func (m *Matrix[T]) Size() (rows, cols int) { return m.rows, m.cols }

// Kind is the scalar tag of T.
func (m *Matrix[T]) Kind() scalar.Kind { return m.kind }

// State reports the lifecycle state.
func (m *Matrix[T]) State() State { return m.state }

// Factored reports whether the storage holds LU factors.
func (m *Matrix[T]) Factored() bool { return m.state == Factored }

// At returns element (r, c). ErrIndexOutOfRange outside the matrix.
// Reading is allowed in every state.
func (m *Matrix[T]) At(r, c int) (T, error) {
	var zero T
	g, err := m.general(opMatAt)
	if err != nil {
		return zero, err
	}
	if err = validateCell(opMatAt, r, c, m.rows, m.cols); err != nil {
		return zero, err
	}

	return g.At(r, c), nil
}

// Set stores val at (r, c). ErrIndexOutOfRange outside the matrix.
func (m *Matrix[T]) Set(r, c int, val T) error {
	g, err := m.fresh(opMatSet)
	if err != nil {
		return err
	}
	if err = validateCell(opMatSet, r, c, m.rows, m.cols); err != nil {
		return err
	}
	g.Set(r, c, val)

	return nil
}

// RawAt is the unchecked accessor. It panics outside the matrix or after Release.
func (m *Matrix[T]) RawAt(r, c int) T {
	data, _ := m.buf.Slice()
	return data[r*m.tda+c]
}

// RawSet is the unchecked counterpart of Set; it ignores the state.
func (m *Matrix[T]) RawSet(r, c int, val T) {
	data, _ := m.buf.Slice()
	data[r*m.tda+c] = val
}

// SetAll stores val in every element.
func (m *Matrix[T]) SetAll(val T) (*Matrix[T], error) {
	g, err := m.fresh(opMatSetAll)
	if err != nil {
		return nil, err
	}
	if err = backend.FillMatrix(g, val); err != nil {
		return nil, err
	}

	return m, nil
}

// SetZero clears every element.
func (m *Matrix[T]) SetZero() (*Matrix[T], error) {
	var zero T
	return m.SetAll(zero)
}

// SetIdentity writes ones on the leading diagonal and zeros elsewhere.
// Rectangular matrices are allowed.
func (m *Matrix[T]) SetIdentity() (*Matrix[T], error) {
	g, err := m.fresh(opMatSetIdentity)
	if err != nil {
		return nil, err
	}
	if err = backend.SetIdentity(g); err != nil {
		return nil, err
	}

	return m, nil
}

// Row returns a copy of row i as a Vector.
func (m *Matrix[T]) Row(i int) (*Vector[T], error) {
	g, err := m.general(opMatRow)
	if err != nil {
		return nil, err
	}
	if err = validateIndex(opMatRow, i, m.rows); err != nil {
		return nil, err
	}

	return m.copyOut(opMatRow, g.Row(i))
}

// Col returns a copy of column j as a Vector.
func (m *Matrix[T]) Col(j int) (*Vector[T], error) {
	g, err := m.general(opMatCol)
	if err != nil {
		return nil, err
	}
	if err = validateIndex(opMatCol, j, m.cols); err != nil {
		return nil, err
	}

	return m.copyOut(opMatCol, g.Col(j))
}

func (m *Matrix[T]) copyOut(op string, src backend.Vec[T]) (*Vector[T], error) {
	out, err := newVector[T](op, src.N, options{arena: m.arena()})
	if err != nil {
		return nil, err
	}
	dst, _ := out.view(op)
	if err = backend.Copy(dst, src); err != nil {
		_ = out.Release()
		return nil, err
	}

	return out, nil
}

// SetRow overwrites row i with v (v.Len() must equal Cols()).
func (m *Matrix[T]) SetRow(i int, v *Vector[T]) (*Matrix[T], error) {
	g, err := m.fresh(opMatSetRow)
	if err != nil {
		return nil, err
	}
	if err = validateIndex(opMatSetRow, i, m.rows); err != nil {
		return nil, err
	}

	return m.copyIn(opMatSetRow, g.Row(i), v)
}

// SetCol overwrites column j with v (v.Len() must equal Rows()).
func (m *Matrix[T]) SetCol(j int, v *Vector[T]) (*Matrix[T], error) {
	g, err := m.fresh(opMatSetCol)
	if err != nil {
		return nil, err
	}
	if err = validateIndex(opMatSetCol, j, m.cols); err != nil {
		return nil, err
	}

	return m.copyIn(opMatSetCol, g.Col(j), v)
}

func (m *Matrix[T]) copyIn(op string, dst backend.Vec[T], v *Vector[T]) (*Matrix[T], error) {
	src, err := v.view(op)
	if err != nil {
		return nil, err
	}
	if err = validateSameLength(op, dst.N, src.N); err != nil {
		return nil, err
	}
	if err = backend.Copy(dst, src); err != nil {
		return nil, err
	}

	return m, nil
}

// ToSlice returns the elements in row-major order.
func (m *Matrix[T]) ToSlice() ([]T, error) {
	g, err := m.general(opMatToSlice)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, m.rows*m.cols)
	for r := 0; r < m.rows; r++ {
		out = append(out, g.Row(r).Data...)
	}

	return out, nil
}

// ToRows returns a copy as nested rows.
func (m *Matrix[T]) ToRows() ([][]T, error) {
	g, err := m.general(opMatToSlice)
	if err != nil {
		return nil, err
	}
	out := make([][]T, m.rows)
	for r := range out {
		out[r] = append([]T(nil), g.Row(r).Data...)
	}

	return out, nil
}

// ToCols returns a copy as nested columns.
func (m *Matrix[T]) ToCols() ([][]T, error) {
	g, err := m.general(opMatToSlice)
	if err != nil {
		return nil, err
	}
	out := make([][]T, m.cols)
	for c := range out {
		out[c] = make([]T, m.rows)
		for r := 0; r < m.rows; r++ {
			out[c][r] = g.At(r, c)
		}
	}

	return out, nil
}

// Clone returns an independent Fresh copy in the same arena. Cloning a
// Factored matrix copies the packed LU factors as plain data.
func (m *Matrix[T]) Clone() (*Matrix[T], error) {
	g, err := m.general(opMatClone)
	if err != nil {
		return nil, err
	}
	out, err := newMatrix[T](opMatClone, m.rows, m.cols, options{arena: m.arena()})
	if err != nil {
		return nil, err
	}
	dst, _ := out.general(opMatClone)
	if err = backend.CopyMatrix(dst, g); err != nil {
		_ = out.Release()
		return nil, err
	}

	return out, nil
}

// Equal reports whether other has the same shape and elements.
func (m *Matrix[T]) Equal(other *Matrix[T]) bool {
	a, err := m.general(opMatToSlice)
	if err != nil {
		return false
	}
	b, err := other.general(opMatToSlice)
	if err != nil || a.Rows != b.Rows || a.Cols != b.Cols {
		return false
	}
	for r := 0; r < a.Rows; r++ {
		for c := 0; c < a.Cols; c++ {
			if a.At(r, c) != b.At(r, c) {
				return false
			}
		}
	}

	return true
}

// String renders one "[a, b]" line per row.
func (m *Matrix[T]) String() string {
	g, err := m.general(opMatToSlice)
	if err != nil {
		return "[released]\n"
	}
	var sb strings.Builder
	for r := 0; r < g.Rows; r++ {
		sb.WriteString(_fmtRowOpen)
		for c := 0; c < g.Cols; c++ {
			if c > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprint(&sb, g.At(r, c))
		}
		sb.WriteString(_fmtRowClose)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Released reports whether the storage has been returned to the arena.
func (m *Matrix[T]) Released() bool { return m == nil || m.buf.Released() }

// Release returns the storage to its arena. Only the first call succeeds.
// A matrix taken over by DecomposeLU is released through LU.Release.
func (m *Matrix[T]) Release() error {
	if m == nil || m.buf == nil {
		return status.NewKind(opMatRelease, status.ErrInvalidState, "nil matrix")
	}

	return m.buf.Release()
}

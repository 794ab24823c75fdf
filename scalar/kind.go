// SPDX-License-Identifier: MIT

// Package scalar is the closed registry of element kinds supported by numcore
// containers.
//
// Purpose:
//   - Fix, for every kind, its storage width, signedness and arithmetic class.
//   - Map kinds to and from their backend family names ("double", "uchar", ...)
//     through static tables instead of runtime registration.
//   - Bridge Go type parameters to kinds (KindOf) for generic containers.
//
// Complexity quicksheet:
//   - Every lookup is O(1) except ParseKind, which scans a fixed 12-entry table.
package scalar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned by ParseKind for names outside the registry.
var ErrUnknownKind = errors.New("scalar: unknown kind")

// Kind tags an element type. The zero value is Invalid.
type Kind uint8

// Supported kinds. The order is part of the static tables below; append only.
const (
	Invalid Kind = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	Complex64
	Complex128

	kindCount
)

// kindInfo is one row of the registry.
type kindInfo struct {
	name    string // Go spelling
	family  string // backend family name
	size    int    // bytes per element
	signed  bool
	integer bool
	complex bool
}

var kinds = [kindCount]kindInfo{
	Invalid:    {name: "invalid", family: "invalid"},
	Int8:       {name: "int8", family: "char", size: 1, signed: true, integer: true},
	Uint8:      {name: "uint8", family: "uchar", size: 1, integer: true},
	Int16:      {name: "int16", family: "short", size: 2, signed: true, integer: true},
	Uint16:     {name: "uint16", family: "ushort", size: 2, integer: true},
	Int32:      {name: "int32", family: "int", size: 4, signed: true, integer: true},
	Uint32:     {name: "uint32", family: "uint", size: 4, integer: true},
	Int64:      {name: "int64", family: "long", size: 8, signed: true, integer: true},
	Uint64:     {name: "uint64", family: "ulong", size: 8, integer: true},
	Float32:    {name: "float32", family: "float", size: 4, signed: true},
	Float64:    {name: "float64", family: "double", size: 8, signed: true},
	Complex64:  {name: "complex64", family: "complex_float", size: 8, signed: true, complex: true},
	Complex128: {name: "complex128", family: "complex", size: 16, signed: true, complex: true},
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Int8; k < kindCount; k++ {
		out = append(out, k)
	}

	return out
}

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool { return k > Invalid && k < kindCount }

func (k Kind) info() kindInfo {
	if !k.Valid() {
		return kinds[Invalid]
	}

	return kinds[k]
}

// String returns the Go spelling of the kind ("float64", "uint8", ...).
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}

	return kinds[k].name
}

// Family returns the backend family name ("double", "uchar", "complex", ...).
func (k Kind) Family() string { return k.info().family }

// Size is the element width in bytes. Complex kinds count both halves.
func (k Kind) Size() int { return k.info().size }

// IsSigned reports whether negative values are representable.
func (k Kind) IsSigned() bool { return k.info().signed }

// IsInteger reports whether k is one of the eight integer kinds.
func (k Kind) IsInteger() bool { return k.info().integer }

// IsComplex reports whether k stores a (real, imag) pair.
func (k Kind) IsComplex() bool { return k.info().complex }

// IsFloat reports whether k is a floating kind, real or complex.
// BLAS kernels are defined for exactly these kinds.
func (k Kind) IsFloat() bool { return k.Valid() && !k.info().integer }

// IsReal reports whether k is ordered (integer or real float).
// Min/max style reductions are defined for exactly these kinds.
func (k Kind) IsReal() bool { return k.Valid() && !k.info().complex }

// ParseKind resolves either the Go spelling or the family name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k := Int8; k < kindCount; k++ {
		if kinds[k].name == n || kinds[k].family == n {
			return k, nil
		}
	}

	return Invalid, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

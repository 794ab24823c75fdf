// SPDX-License-Identifier: MIT

package scalar_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numcore/scalar"
)

func TestKind_Metadata(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind    scalar.Kind
		size    int
		family  string
		signed  bool
		integer bool
		complex bool
	}{
		{scalar.Int8, 1, "char", true, true, false},
		{scalar.Uint8, 1, "uchar", false, true, false},
		{scalar.Int16, 2, "short", true, true, false},
		{scalar.Uint16, 2, "ushort", false, true, false},
		{scalar.Int32, 4, "int", true, true, false},
		{scalar.Uint32, 4, "uint", false, true, false},
		{scalar.Int64, 8, "long", true, true, false},
		{scalar.Uint64, 8, "ulong", false, true, false},
		{scalar.Float32, 4, "float", true, false, false},
		{scalar.Float64, 8, "double", true, false, false},
		{scalar.Complex64, 8, "complex_float", true, false, true},
		{scalar.Complex128, 16, "complex", true, false, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.kind.String(), func(t *testing.T) {
			t.Parallel()
			require.True(t, tc.kind.Valid())
			require.Equal(t, tc.size, tc.kind.Size())
			require.Equal(t, tc.family, tc.kind.Family())
			require.Equal(t, tc.signed, tc.kind.IsSigned())
			require.Equal(t, tc.integer, tc.kind.IsInteger())
			require.Equal(t, tc.complex, tc.kind.IsComplex())
			require.Equal(t, !tc.integer, tc.kind.IsFloat())
			require.Equal(t, !tc.complex, tc.kind.IsReal())
		})
	}
}

func TestKind_Invalid(t *testing.T) {
	t.Parallel()

	require.False(t, scalar.Invalid.Valid())
	require.False(t, scalar.Invalid.IsFloat())
	require.False(t, scalar.Invalid.IsReal())
	require.Equal(t, 0, scalar.Invalid.Size())
	require.Equal(t, "Kind(200)", scalar.Kind(200).String())
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, k := range scalar.Kinds() {
		byName, err := scalar.ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, byName)

		byFamily, err := scalar.ParseKind(k.Family())
		require.NoError(t, err)
		require.Equal(t, k, byFamily)
	}

	k, err := scalar.ParseKind("  DOUBLE ")
	require.NoError(t, err)
	require.Equal(t, scalar.Float64, k)

	_, err = scalar.ParseKind("quaternion")
	require.ErrorIs(t, err, scalar.ErrUnknownKind)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, scalar.Int8, scalar.KindOf[int8]())
	require.Equal(t, scalar.Uint16, scalar.KindOf[uint16]())
	require.Equal(t, scalar.Int64, scalar.KindOf[int64]())
	require.Equal(t, scalar.Float32, scalar.KindOf[float32]())
	require.Equal(t, scalar.Float64, scalar.KindOf[float64]())
	require.Equal(t, scalar.Complex64, scalar.KindOf[complex64]())
	require.Equal(t, scalar.Complex128, scalar.KindOf[complex128]())

	type celsius float64
	require.Equal(t, scalar.Invalid, scalar.KindOf[celsius]())
}

func TestKinds_Order(t *testing.T) {
	t.Parallel()

	all := scalar.Kinds()
	require.Len(t, all, 12)
	require.Equal(t, scalar.Int8, all[0])
	require.Equal(t, scalar.Complex128, all[len(all)-1])
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatID(t *testing.T) {
	cases := []struct {
		kind EntityKind
		seq  int64
		want string
	}{
		{EntityCustomer, 1, "CU00001"},
		{EntityCustomer, 99999, "CU99999"},
		{EntityLoan, 42, "LN000042"},
		{EntityRepayment, 7, "RC0000007"},
		{EntityStaff, 12, "ST0012"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			got, err := FormatID(tc.kind, tc.seq)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("sequence beyond pad width widens", func(t *testing.T) {
		got, err := FormatID(EntityStaff, 123456)
		require.NoError(t, err)
		assert.Equal(t, "ST123456", got)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := FormatID(EntityKind("branch"), 1)
		assert.Error(t, err)
	})

	t.Run("non-positive sequence", func(t *testing.T) {
		for _, seq := range []int64{0, -5} {
			_, err := FormatID(EntityLoan, seq)
			assert.Error(t, err)
		}
	})
}

func TestParseSequence(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, kind := range []EntityKind{EntityCustomer, EntityLoan, EntityRepayment, EntityStaff} {
			id, err := FormatID(kind, 314)
			require.NoError(t, err)

			seq, err := ParseSequence(kind, id)
			require.NoError(t, err)
			assert.Equal(t, int64(314), seq)
		}
	})

	t.Run("wrong prefix", func(t *testing.T) {
		_, err := ParseSequence(EntityLoan, "CU00001")
		assert.Error(t, err)
	})

	t.Run("garbage suffix", func(t *testing.T) {
		_, err := ParseSequence(EntityLoan, "LNxxxxxx")
		assert.Error(t, err)
	})
}

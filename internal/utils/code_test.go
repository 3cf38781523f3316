package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewResetCode_AlwaysFourDigitsInRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := NewResetCode()
		require.NoError(t, err)
		require.Len(t, code, 4)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 1000)
		require.LessOrEqual(t, n, 9999)
	}
}

func TestNewResetCode_NotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := NewResetCode()
		require.NoError(t, err)
		seen[code] = true
	}
	require.Greater(t, len(seen), 1, "50 draws should not all be identical")
}

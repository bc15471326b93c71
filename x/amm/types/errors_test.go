package types

import (
	"errors"
	"testing"

	sdkerrors "cosmossdk.io/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode uint32
	}{
		{"ErrZeroAmount", ErrZeroAmount, 2},
		{"ErrInsufficientLiquidity", ErrInsufficientLiquidity, 3},
		{"ErrInsufficientShares", ErrInsufficientShares, 4},
		{"ErrSlippageExceeded", ErrSlippageExceeded, 5},
		{"ErrExpired", ErrExpired, 6},
		{"ErrOverflow", ErrOverflow, 7},
		{"ErrInvariantViolation", ErrInvariantViolation, 8},
		{"ErrPoolNotFound", ErrPoolNotFound, 9},
		{"ErrPoolAlreadyExists", ErrPoolAlreadyExists, 10},
		{"ErrInvalidTokenPair", ErrInvalidTokenPair, 11},
		{"ErrInvalidFee", ErrInvalidFee, 12},
		{"ErrInvalidAddress", ErrInvalidAddress, 13},
		{"ErrInvalidPoolState", ErrInvalidPoolState, 14},
		{"ErrMaxPoolsReached", ErrMaxPoolsReached, 15},
		{"ErrInvalidParams", ErrInvalidParams, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sdkErr *sdkerrors.Error
			require.True(t, errors.As(tt.err, &sdkErr))
			require.Equal(t, tt.wantCode, sdkErr.ABCICode())
			require.Equal(t, ModuleName, sdkErr.Codespace())
			require.NotEmpty(t, sdkErr.Error())
		})
	}
}

func TestWrappedErrorsMatchSentinel(t *testing.T) {
	err := ErrSlippageExceeded.Wrapf("output %d below minimum %d", 89, 90)
	require.ErrorIs(t, err, ErrSlippageExceeded)
	require.NotErrorIs(t, err, ErrExpired)
	require.Contains(t, err.Error(), "below minimum")
}

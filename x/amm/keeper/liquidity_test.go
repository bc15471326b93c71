package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

func TestAddLiquidity_Proportional(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	pool := keepertest.CreateTestPool(t, k, ctx, bank, alice, denomA, denomB, 100, 400)
	keepertest.FundAccount(t, bank, ctx, bob, sdk.NewInt64Coin(denomA, 10), sdk.NewInt64Coin(denomB, 100))

	quote, err := k.AddLiquidity(ctx, bob, pool.Id, math.NewInt(10), math.NewInt(100), math.NewInt(20), keepertest.NoDeadline)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10), quote.AmountA)
	require.Equal(t, math.NewInt(40), quote.AmountB)
	require.Equal(t, math.NewInt(20), quote.Shares)

	pool, err = k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(110), pool.ReserveA)
	require.Equal(t, math.NewInt(440), pool.ReserveB)
	require.Equal(t, math.NewInt(220), pool.TotalShares)

	held, err := k.GetShares(ctx, pool.Id, bob)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(20), held)

	// Only the required amount of asset B leaves the provider.
	require.Equal(t, int64(60), bank.GetBalance(ctx, bob, denomB).Amount.Int64())
	require.True(t, bank.GetBalance(ctx, bob, denomA).IsZero())
	require.Equal(t, types.EventTypeAddLiquidity, lastEventType(ctx))
}

func TestAddLiquidity_Guards(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	pool := keepertest.CreateTestPool(t, k, ctx, bank, alice, denomA, denomB, 100, 400)
	keepertest.FundAccount(t, bank, ctx, bob, sdk.NewInt64Coin(denomA, 1000), sdk.NewInt64Coin(denomB, 1000))

	tests := []struct {
		name       string
		poolID     uint64
		amountA    math.Int
		maxAmountB math.Int
		minShares  math.Int
		deadline   int64
		err        error
	}{
		{"max amount b too low", pool.Id, math.NewInt(10), math.NewInt(39), math.ZeroInt(), keepertest.NoDeadline, types.ErrSlippageExceeded},
		{"min shares too high", pool.Id, math.NewInt(10), math.NewInt(40), math.NewInt(21), keepertest.NoDeadline, types.ErrSlippageExceeded},
		{"zero amount", pool.Id, math.ZeroInt(), math.NewInt(40), math.ZeroInt(), keepertest.NoDeadline, types.ErrZeroAmount},
		{"unknown pool", 99, math.NewInt(10), math.NewInt(40), math.ZeroInt(), keepertest.NoDeadline, types.ErrPoolNotFound},
		{"expired", pool.Id, math.NewInt(10), math.NewInt(40), math.ZeroInt(), 0, types.ErrExpired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := k.AddLiquidity(ctx, bob, tc.poolID, tc.amountA, tc.maxAmountB, tc.minShares, tc.deadline)
			require.ErrorIs(t, err, tc.err)

			after, err := k.GetPool(ctx, pool.Id)
			require.NoError(t, err)
			require.Equal(t, pool, after)
			require.Equal(t, int64(1000), bank.GetBalance(ctx, bob, denomA).Amount.Int64())
		})
	}
}

func TestAddLiquidity_DustMintsNoShares(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	// 1000 of A backs only 10 shares, so 1 of A rounds to zero shares.
	pool := keepertest.CreateTestPool(t, k, ctx, bank, alice, denomA, denomB, 1000, 1)
	require.Equal(t, math.NewInt(31), pool.TotalShares)
	keepertest.FundAccount(t, bank, ctx, bob, sdk.NewInt64Coin(denomA, 10), sdk.NewInt64Coin(denomB, 10))

	_, err := k.AddLiquidity(ctx, bob, pool.Id, math.NewInt(1), math.NewInt(10), math.ZeroInt(), keepertest.NoDeadline)
	require.ErrorIs(t, err, types.ErrZeroAmount)
}

func TestRemoveLiquidity_Proportional(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	pool := keepertest.CreateTestPool(t, k, ctx, bank, alice, denomA, denomB, 100, 400)

	amountA, amountB, err := k.RemoveLiquidity(ctx, alice, pool.Id, math.NewInt(100), math.NewInt(50), math.NewInt(200), keepertest.NoDeadline)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50), amountA)
	require.Equal(t, math.NewInt(200), amountB)

	pool, err = k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50), pool.ReserveA)
	require.Equal(t, math.NewInt(200), pool.ReserveB)
	require.Equal(t, math.NewInt(100), pool.TotalShares)

	require.Equal(t, int64(50), bank.GetBalance(ctx, alice, denomA).Amount.Int64())
	require.Equal(t, int64(200), bank.GetBalance(ctx, alice, denomB).Amount.Int64())
	require.Equal(t, types.EventTypeRemoveLiquidity, lastEventType(ctx))
}

func TestRemoveLiquidity_MoreThanHeld(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	pool := keepertest.CreateTestPool(t, k, ctx, bank, alice, denomA, denomB, 100, 400)
	keepertest.FundAccount(t, bank, ctx, bob, sdk.NewInt64Coin(denomA, 10), sdk.NewInt64Coin(denomB, 40))
	_, err := k.AddLiquidity(ctx, bob, pool.Id, math.NewInt(10), math.NewInt(40), math.ZeroInt(), keepertest.NoDeadline)
	require.NoError(t, err)
	before, err := k.GetPool(ctx, pool.Id)
	require.NoError(t, err)

	// Bob holds 20 shares; the pool has 220 outstanding.
	_, _, err = k.RemoveLiquidity(ctx, bob, pool.Id, math.NewInt(21), math.ZeroInt(), math.ZeroInt(), keepertest.NoDeadline)
	require.ErrorIs(t, err, types.ErrInsufficientShares)

	after, err := k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.Equal(t, before, after)
	held, err := k.GetShares(ctx, pool.Id, bob)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(20), held)
	require.True(t, bank.GetBalance(ctx, bob, denomA).IsZero())
}

func TestRemoveLiquidity_Guards(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	pool := keepertest.CreateTestPool(t, k, ctx, bank, alice, denomA, denomB, 100, 400)

	tests := []struct {
		name     string
		shares   math.Int
		minA     math.Int
		minB     math.Int
		deadline int64
		err      error
	}{
		{"min amount a", math.NewInt(100), math.NewInt(51), math.ZeroInt(), keepertest.NoDeadline, types.ErrSlippageExceeded},
		{"min amount b", math.NewInt(100), math.ZeroInt(), math.NewInt(201), keepertest.NoDeadline, types.ErrSlippageExceeded},
		{"zero shares", math.ZeroInt(), math.ZeroInt(), math.ZeroInt(), keepertest.NoDeadline, types.ErrInsufficientShares},
		{"more than total", math.NewInt(201), math.ZeroInt(), math.ZeroInt(), keepertest.NoDeadline, types.ErrInsufficientShares},
		{"expired", math.NewInt(100), math.ZeroInt(), math.ZeroInt(), 0, types.ErrExpired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := k.RemoveLiquidity(ctx, alice, pool.Id, tc.shares, tc.minA, tc.minB, tc.deadline)
			require.ErrorIs(t, err, tc.err)

			after, err := k.GetPool(ctx, pool.Id)
			require.NoError(t, err)
			require.Equal(t, pool, after)
		})
	}
}

func TestRemoveLiquidity_DrainAndReinitialize(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	pool := keepertest.CreateTestPool(t, k, ctx, bank, alice, denomA, denomB, 100, 400)

	_, _, err := k.RemoveLiquidity(ctx, alice, pool.Id, math.NewInt(200), math.ZeroInt(), math.ZeroInt(), keepertest.NoDeadline)
	require.NoError(t, err)

	pool, err = k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.True(t, pool.IsDormant())
	held, err := k.GetShares(ctx, pool.Id, alice)
	require.NoError(t, err)
	require.True(t, held.IsZero())

	// A dormant pool cannot trade.
	keepertest.FundAccount(t, bank, ctx, bob, sdk.NewInt64Coin(denomA, 1000), sdk.NewInt64Coin(denomB, 1000))
	_, err = k.Swap(ctx, bob, bob, pool.Id, denomA, denomB, math.NewInt(10), math.ZeroInt(), keepertest.NoDeadline)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)

	// The next deposit sets a new price with the initial-deposit rule.
	quote, err := k.AddLiquidity(ctx, bob, pool.Id, math.NewInt(9), math.NewInt(16), math.ZeroInt(), keepertest.NoDeadline)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(12), quote.Shares)
	require.Equal(t, math.NewInt(16), quote.AmountB)

	pool, err = k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(9), pool.ReserveA)
	require.Equal(t, math.NewInt(16), pool.ReserveB)
	require.Equal(t, math.NewInt(12), pool.TotalShares)
}

func TestRemoveLiquidity_ZeroLegSkipsTransfer(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	pool := keepertest.CreateTestPool(t, k, ctx, bank, alice, denomA, denomB, 1, 10000)
	require.Equal(t, math.NewInt(100), pool.TotalShares)

	// Transfers of asset A are disabled, but one share redeems no A at all.
	bank.SetSendEnabled(ctx, denomA, false)
	amountA, amountB, err := k.RemoveLiquidity(ctx, alice, pool.Id, math.NewInt(1), math.ZeroInt(), math.ZeroInt(), keepertest.NoDeadline)
	require.NoError(t, err)
	require.True(t, amountA.IsZero())
	require.Equal(t, math.NewInt(100), amountB)
}

func TestAddLiquidity_TransferFailureRollsBack(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	pool := keepertest.CreateTestPool(t, k, ctx, bank, alice, denomA, denomB, 100, 400)
	// Bob can pay asset A but not the matching asset B.
	keepertest.FundAccount(t, bank, ctx, bob, sdk.NewInt64Coin(denomA, 10), sdk.NewInt64Coin(denomB, 39))

	_, err := k.AddLiquidity(ctx, bob, pool.Id, math.NewInt(10), math.NewInt(40), math.ZeroInt(), keepertest.NoDeadline)
	require.ErrorIs(t, err, sdkerrors.ErrInsufficientFunds)

	require.Equal(t, int64(10), bank.GetBalance(ctx, bob, denomA).Amount.Int64())
	require.Equal(t, int64(100), bank.GetBalance(ctx, keeper.PoolAddress(pool.Id), denomA).Amount.Int64())
	after, err := k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.Equal(t, pool, after)
}

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

const (
	denomA = "uatom"
	denomB = "upaw"
)

var (
	alice = keepertest.TestAddr("alice")
	bob   = keepertest.TestAddr("bob")
	carol = keepertest.TestAddr("carol")
)

func lastEventType(ctx sdk.Context) string {
	events := ctx.EventManager().Events()
	if len(events) == 0 {
		return ""
	}
	return events[len(events)-1].Type
}

func TestCreatePool_InitialDeposit(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	keepertest.FundAccount(t, bank, ctx, alice, sdk.NewInt64Coin(denomA, 100), sdk.NewInt64Coin(denomB, 400))

	pool, shares, err := k.CreatePool(ctx, alice, denomA, denomB, math.NewInt(100), math.NewInt(400), types.DefaultFee(), keepertest.NoDeadline)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(200), shares)
	require.Equal(t, uint64(1), pool.Id)
	require.Equal(t, math.NewInt(100), pool.ReserveA)
	require.Equal(t, math.NewInt(400), pool.ReserveB)
	require.Equal(t, math.NewInt(200), pool.TotalShares)
	require.Equal(t, types.DefaultFee(), pool.Fee)

	held, err := k.GetShares(ctx, pool.Id, alice)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(200), held)

	custody := keeper.PoolAddress(pool.Id)
	require.Equal(t, int64(100), bank.GetBalance(ctx, custody, denomA).Amount.Int64())
	require.Equal(t, int64(400), bank.GetBalance(ctx, custody, denomB).Amount.Int64())
	require.True(t, bank.GetBalance(ctx, alice, denomA).IsZero())
	require.True(t, bank.GetBalance(ctx, alice, denomB).IsZero())

	require.Equal(t, uint64(2), k.GetNextPoolID(ctx))
	require.Equal(t, types.EventTypePoolCreated, lastEventType(ctx))
}

func TestCreatePool_SortsAssets(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	keepertest.FundAccount(t, bank, ctx, alice, sdk.NewInt64Coin(denomA, 100), sdk.NewInt64Coin(denomB, 400))

	// Given in reverse order: 400upaw and 100uatom.
	pool, _, err := k.CreatePool(ctx, alice, denomB, denomA, math.NewInt(400), math.NewInt(100), types.DefaultFee(), keepertest.NoDeadline)
	require.NoError(t, err)
	require.Equal(t, denomA, pool.AssetA)
	require.Equal(t, denomB, pool.AssetB)
	require.Equal(t, math.NewInt(100), pool.ReserveA)
	require.Equal(t, math.NewInt(400), pool.ReserveB)

	byAssets, err := k.GetPoolByAssets(ctx, denomB, denomA)
	require.NoError(t, err)
	require.Equal(t, pool.Id, byAssets.Id)
}

func TestCreatePool_Rejections(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	keepertest.CreateTestPool(t, k, ctx, bank, alice, denomA, denomB, 1000, 1000)
	keepertest.FundAccount(t, bank, ctx, bob, sdk.NewInt64Coin(denomA, 1000), sdk.NewInt64Coin(denomB, 1000), sdk.NewInt64Coin("ueth", 1000))

	tests := []struct {
		name     string
		assetA   string
		assetB   string
		amountA  math.Int
		amountB  math.Int
		fee      types.Fee
		deadline int64
		err      error
	}{
		{"existing pair", denomA, denomB, math.NewInt(10), math.NewInt(10), types.DefaultFee(), keepertest.NoDeadline, types.ErrPoolAlreadyExists},
		{"existing pair reversed", denomB, denomA, math.NewInt(10), math.NewInt(10), types.DefaultFee(), keepertest.NoDeadline, types.ErrPoolAlreadyExists},
		{"identical assets", denomA, denomA, math.NewInt(10), math.NewInt(10), types.DefaultFee(), keepertest.NoDeadline, types.ErrInvalidTokenPair},
		{"invalid denom", "1bad", denomA, math.NewInt(10), math.NewInt(10), types.DefaultFee(), keepertest.NoDeadline, types.ErrInvalidTokenPair},
		{"fee equals denominator", "ueth", denomA, math.NewInt(10), math.NewInt(10), types.NewFee(1000, 1000), keepertest.NoDeadline, types.ErrInvalidFee},
		{"zero fee denominator", "ueth", denomA, math.NewInt(10), math.NewInt(10), types.NewFee(0, 0), keepertest.NoDeadline, types.ErrInvalidFee},
		{"zero amount", "ueth", denomA, math.ZeroInt(), math.NewInt(10), types.DefaultFee(), keepertest.NoDeadline, types.ErrZeroAmount},
		{"expired", "ueth", denomA, math.NewInt(10), math.NewInt(10), types.DefaultFee(), 0, types.ErrExpired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := k.CreatePool(ctx, bob, tc.assetA, tc.assetB, tc.amountA, tc.amountB, tc.fee, tc.deadline)
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, uint64(1), k.PoolCount(ctx))
		})
	}
}

func TestCreatePool_DeadlineAtCurrentHeight(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	ctx = ctx.WithBlockHeight(10)
	keepertest.FundAccount(t, bank, ctx, alice, sdk.NewInt64Coin(denomA, 10), sdk.NewInt64Coin(denomB, 10))

	_, _, err := k.CreatePool(ctx, alice, denomA, denomB, math.NewInt(10), math.NewInt(10), types.DefaultFee(), 9)
	require.ErrorIs(t, err, types.ErrExpired)

	_, _, err = k.CreatePool(ctx, alice, denomA, denomB, math.NewInt(10), math.NewInt(10), types.DefaultFee(), 10)
	require.NoError(t, err)
}

func TestCreatePool_InsufficientFundsLeavesNoState(t *testing.T) {
	k, ctx, bank := keepertest.AMMKeeper(t)
	// Enough of the first asset, not of the second.
	keepertest.FundAccount(t, bank, ctx, alice, sdk.NewInt64Coin(denomA, 100), sdk.NewInt64Coin(denomB, 10))

	_, _, err := k.CreatePool(ctx, alice, denomA, denomB, math.NewInt(100), math.NewInt(400), types.DefaultFee(), keepertest.NoDeadline)
	require.ErrorIs(t, err, sdkerrors.ErrInsufficientFunds)

	_, err = k.GetPool(ctx, 1)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = k.GetPoolByAssets(ctx, denomA, denomB)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	require.Equal(t, uint64(1), k.GetNextPoolID(ctx))
	require.Equal(t, int64(100), bank.GetBalance(ctx, alice, denomA).Amount.Int64())
	require.True(t, bank.GetBalance(ctx, keeper.PoolAddress(1), denomA).IsZero())
}

func TestPoolAddress_PerPool(t *testing.T) {
	require.NotEqual(t, keeper.PoolAddress(1), keeper.PoolAddress(2))
	require.Equal(t, keeper.PoolAddress(7), keeper.PoolAddress(7))
}

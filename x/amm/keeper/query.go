package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/pricing"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// SimulateSwap prices an exact-input swap against current reserves without
// moving funds.
func (k Keeper) SimulateSwap(ctx context.Context, poolID uint64, assetIn, assetOut string, amountIn math.Int) (types.SwapQuote, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.SwapQuote{}, err
	}
	reserveIn, reserveOut, _, err := pool.Reserves(assetIn, assetOut)
	if err != nil {
		return types.SwapQuote{}, err
	}
	return pricing.QuoteSwapExactInput(reserveIn, reserveOut, amountIn, pool.Fee)
}

// SimulateSwapExactOutput prices an exact-output swap against current reserves.
func (k Keeper) SimulateSwapExactOutput(ctx context.Context, poolID uint64, assetIn, assetOut string, amountOut math.Int) (types.SwapQuote, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.SwapQuote{}, err
	}
	reserveIn, reserveOut, _, err := pool.Reserves(assetIn, assetOut)
	if err != nil {
		return types.SwapQuote{}, err
	}
	return pricing.QuoteSwapExactOutput(reserveIn, reserveOut, amountOut, pool.Fee)
}

// SpotPrice returns units of assetOut per unit of assetIn, before fees.
func (k Keeper) SpotPrice(ctx context.Context, poolID uint64, assetIn, assetOut string) (math.LegacyDec, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	reserveIn, reserveOut, _, err := pool.Reserves(assetIn, assetOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return pricing.SpotPrice(reserveIn, reserveOut)
}

// PoolBalances returns what the bank reports for the pool's custody
// account. It is informational; reserves are tracked by the ledger.
func (k Keeper) PoolBalances(ctx context.Context, poolID uint64) (sdk.Coin, sdk.Coin, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdk.Coin{}, sdk.Coin{}, err
	}
	custody := PoolAddress(poolID)
	return k.bankKeeper.GetBalance(ctx, custody, pool.AssetA), k.bankKeeper.GetBalance(ctx, custody, pool.AssetB), nil
}

// PositionValue returns what burning all of owner's shares would pay out now.
func (k Keeper) PositionValue(ctx context.Context, poolID uint64, owner sdk.AccAddress) (math.Int, math.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	shares, err := k.GetShares(ctx, poolID, owner)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if shares.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), nil
	}
	return pricing.QuoteWithdrawal(pool.ReserveA, pool.ReserveB, pool.TotalShares, shares)
}

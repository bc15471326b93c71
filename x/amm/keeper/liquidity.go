package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/pricing"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// AddLiquidity deposits amountA of asset A and the proportional amount of
// asset B, capped at maxAmountB. A dormant pool is re-initialized from
// (amountA, maxAmountB) and the deposit sets its new price.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	poolID uint64,
	amountA, maxAmountB, minShares math.Int,
	deadline int64,
) (types.DepositQuote, error) {
	// Validate
	if err := checkDeadline(ctx, deadline); err != nil {
		return types.DepositQuote{}, err
	}
	if err := requireAddress("provider", provider); err != nil {
		return types.DepositQuote{}, err
	}
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.DepositQuote{}, err
	}

	// Quote
	var quote types.DepositQuote
	if pool.IsDormant() {
		shares, err := pricing.QuoteInitialDeposit(amountA, maxAmountB)
		if err != nil {
			return types.DepositQuote{}, err
		}
		quote = types.DepositQuote{AmountA: amountA, AmountB: maxAmountB, Shares: shares}
	} else {
		quote, err = pricing.QuoteSubsequentDeposit(pool.ReserveA, pool.ReserveB, pool.TotalShares, amountA)
		if err != nil {
			return types.DepositQuote{}, err
		}
	}

	// Guard
	if quote.Shares.IsZero() {
		return types.DepositQuote{}, types.ErrZeroAmount.Wrapf(
			"deposit of %s%s mints no shares in pool %d", amountA, pool.AssetA, poolID)
	}
	if quote.AmountB.GT(types.IntOrZero(maxAmountB)) {
		return types.DepositQuote{}, types.ErrSlippageExceeded.Wrapf(
			"deposit needs %s%s, max %s", quote.AmountB, pool.AssetB, maxAmountB)
	}
	if quote.Shares.LT(types.IntOrZero(minShares)) {
		return types.DepositQuote{}, types.ErrSlippageExceeded.Wrapf(
			"deposit mints %s shares, min %s", quote.Shares, minShares)
	}

	custody := PoolAddress(poolID)
	err = atomically(ctx, func(cacheCtx sdk.Context) error {
		// Transfer
		if err := k.transfer(cacheCtx, provider, custody, pool.AssetA, quote.AmountA); err != nil {
			return err
		}
		if err := k.transfer(cacheCtx, provider, custody, pool.AssetB, quote.AmountB); err != nil {
			return err
		}

		// Commit
		var err error
		pool, err = k.ApplyDeposit(cacheCtx, poolID, quote.AmountA, quote.AmountB, quote.Shares, provider)
		return err
	})
	if err != nil {
		return types.DepositQuote{}, err
	}

	id := poolLabel(poolID)
	k.metrics.LiquidityAdded.WithLabelValues(id, pool.AssetA).Add(toFloat(quote.AmountA))
	k.metrics.LiquidityAdded.WithLabelValues(id, pool.AssetB).Add(toFloat(quote.AmountB))
	k.metrics.observePool(pool)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAddLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolID, id),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, quote.AmountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, quote.AmountB.String()),
			sdk.NewAttribute(types.AttributeKeyShares, quote.Shares.String()),
		),
	)

	return quote, nil
}

// RemoveLiquidity burns shares for the proportional amounts of both reserves.
// Burning every outstanding share leaves the pool dormant.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	poolID uint64,
	shares, minAmountA, minAmountB math.Int,
	deadline int64,
) (math.Int, math.Int, error) {
	// Validate
	if err := checkDeadline(ctx, deadline); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := requireAddress("provider", provider); err != nil {
		return math.Int{}, math.Int{}, err
	}
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	held, err := k.GetShares(ctx, poolID, provider)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if isPositive(shares) && held.LT(shares) {
		return math.Int{}, math.Int{}, types.ErrInsufficientShares.Wrapf(
			"%s holds %s shares of pool %d, requested %s", provider, held, poolID, shares)
	}

	// Quote
	amountA, amountB, err := pricing.QuoteWithdrawal(pool.ReserveA, pool.ReserveB, pool.TotalShares, shares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	// Guard
	if amountA.LT(types.IntOrZero(minAmountA)) || amountB.LT(types.IntOrZero(minAmountB)) {
		return math.Int{}, math.Int{}, types.ErrSlippageExceeded.Wrapf(
			"withdrawal yields %s%s/%s%s, min %s/%s",
			amountA, pool.AssetA, amountB, pool.AssetB, types.IntOrZero(minAmountA), types.IntOrZero(minAmountB))
	}

	custody := PoolAddress(poolID)
	err = atomically(ctx, func(cacheCtx sdk.Context) error {
		// Transfer
		if err := k.transfer(cacheCtx, custody, provider, pool.AssetA, amountA); err != nil {
			return err
		}
		if err := k.transfer(cacheCtx, custody, provider, pool.AssetB, amountB); err != nil {
			return err
		}

		// Commit
		var err error
		pool, err = k.ApplyWithdrawal(cacheCtx, poolID, shares, amountA, amountB, provider)
		return err
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	id := poolLabel(poolID)
	k.metrics.LiquidityRemoved.WithLabelValues(id, pool.AssetA).Add(toFloat(amountA))
	k.metrics.LiquidityRemoved.WithLabelValues(id, pool.AssetB).Add(toFloat(amountB))
	k.metrics.observePool(pool)
	if pool.IsDormant() {
		k.Logger(ctx).Info("pool drained to dormant", "pool_id", poolID)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRemoveLiquidity,
			sdk.NewAttribute(types.AttributeKeyPoolID, id),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
		),
	)

	return amountA, amountB, nil
}

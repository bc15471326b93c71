package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/pricing"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// Swap sells exactly amountIn of assetIn and pays the output to recipient.
func (k Keeper) Swap(
	ctx context.Context,
	trader, recipient sdk.AccAddress,
	poolID uint64,
	assetIn, assetOut string,
	amountIn, minAmountOut math.Int,
	deadline int64,
) (quote types.SwapQuote, err error) {
	start := time.Now()
	defer func() {
		k.metrics.observeSwap(poolID, assetIn, assetOut, quote.AmountIn, start, err)
	}()

	// Validate
	pool, err := k.loadSwapPool(ctx, trader, recipient, poolID, deadline)
	if err != nil {
		return types.SwapQuote{}, err
	}
	reserveIn, reserveOut, _, err := pool.Reserves(assetIn, assetOut)
	if err != nil {
		return types.SwapQuote{}, err
	}

	// Quote
	quote, err = pricing.QuoteSwapExactInput(reserveIn, reserveOut, amountIn, pool.Fee)
	if err != nil {
		return types.SwapQuote{}, err
	}

	// Guard
	if quote.AmountOut.IsZero() {
		return types.SwapQuote{}, types.ErrZeroAmount.Wrapf(
			"selling %s%s yields nothing from pool %d", amountIn, assetIn, poolID)
	}
	if quote.AmountOut.LT(types.IntOrZero(minAmountOut)) {
		return types.SwapQuote{}, types.ErrSlippageExceeded.Wrapf(
			"output %s%s below minimum %s", quote.AmountOut, assetOut, minAmountOut)
	}

	if err := k.executeSwap(ctx, trader, recipient, pool, assetIn, assetOut, quote); err != nil {
		return types.SwapQuote{}, err
	}
	return quote, nil
}

// SwapExactOutput buys exactly amountOut of assetOut, spending at most maxAmountIn.
func (k Keeper) SwapExactOutput(
	ctx context.Context,
	trader, recipient sdk.AccAddress,
	poolID uint64,
	assetIn, assetOut string,
	amountOut, maxAmountIn math.Int,
	deadline int64,
) (quote types.SwapQuote, err error) {
	start := time.Now()
	defer func() {
		k.metrics.observeSwap(poolID, assetIn, assetOut, quote.AmountIn, start, err)
	}()

	// Validate
	pool, err := k.loadSwapPool(ctx, trader, recipient, poolID, deadline)
	if err != nil {
		return types.SwapQuote{}, err
	}
	reserveIn, reserveOut, _, err := pool.Reserves(assetIn, assetOut)
	if err != nil {
		return types.SwapQuote{}, err
	}

	// Quote
	quote, err = pricing.QuoteSwapExactOutput(reserveIn, reserveOut, amountOut, pool.Fee)
	if err != nil {
		return types.SwapQuote{}, err
	}

	// Guard
	if quote.AmountIn.GT(types.IntOrZero(maxAmountIn)) {
		return types.SwapQuote{}, types.ErrSlippageExceeded.Wrapf(
			"input %s%s above maximum %s", quote.AmountIn, assetIn, maxAmountIn)
	}

	if err := k.executeSwap(ctx, trader, recipient, pool, assetIn, assetOut, quote); err != nil {
		return types.SwapQuote{}, err
	}
	return quote, nil
}

func (k Keeper) loadSwapPool(ctx context.Context, trader, recipient sdk.AccAddress, poolID uint64, deadline int64) (types.Pool, error) {
	if err := checkDeadline(ctx, deadline); err != nil {
		return types.Pool{}, err
	}
	if err := requireAddress("trader", trader); err != nil {
		return types.Pool{}, err
	}
	if err := requireAddress("recipient", recipient); err != nil {
		return types.Pool{}, err
	}
	return k.GetPool(ctx, poolID)
}

// executeSwap runs the transfer and commit steps of a priced swap.
func (k Keeper) executeSwap(
	ctx context.Context,
	trader, recipient sdk.AccAddress,
	pool types.Pool,
	assetIn, assetOut string,
	quote types.SwapQuote,
) error {
	custody := PoolAddress(pool.Id)
	err := atomically(ctx, func(cacheCtx sdk.Context) error {
		// Transfer
		if err := k.transfer(cacheCtx, trader, custody, assetIn, quote.AmountIn); err != nil {
			return err
		}
		if err := k.transfer(cacheCtx, custody, recipient, assetOut, quote.AmountOut); err != nil {
			return err
		}

		// Commit
		var err error
		pool, err = k.ApplySwap(cacheCtx, pool.Id, assetIn, quote.AmountIn, quote.AmountOut)
		return err
	})
	if err != nil {
		return err
	}

	k.metrics.observePool(pool)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolLabel(pool.Id)),
			sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			sdk.NewAttribute(types.AttributeKeyAssetIn, assetIn),
			sdk.NewAttribute(types.AttributeKeyAssetOut, assetOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, quote.AmountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, quote.AmountOut.String()),
		),
	)
	return nil
}

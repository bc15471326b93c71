package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// ApplySwap moves amountIn into and amountOut out of a pool's reserves.
// The transition is rejected unless the pool still satisfies the
// all-zero-or-all-positive rule and its constant product did not shrink.
func (k Keeper) ApplySwap(ctx context.Context, poolID uint64, assetIn string, amountIn, amountOut math.Int) (types.Pool, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.Pool{}, err
	}
	if !isPositive(amountIn) {
		return types.Pool{}, types.ErrZeroAmount.Wrap("swap input must be positive")
	}
	if amountOut.IsNil() || amountOut.IsNegative() {
		return types.Pool{}, types.ErrZeroAmount.Wrap("swap output cannot be negative")
	}

	if !pool.HasAsset(assetIn) {
		return types.Pool{}, types.ErrInvalidTokenPair.Wrapf("pool %d does not hold %s", poolID, assetIn)
	}

	next := pool
	if assetIn == pool.AssetA {
		next.ReserveA, err = pool.ReserveA.SafeAdd(amountIn)
		if err == nil {
			next.ReserveB, err = pool.ReserveB.SafeSub(amountOut)
		}
	} else {
		next.ReserveB, err = pool.ReserveB.SafeAdd(amountIn)
		if err == nil {
			next.ReserveA, err = pool.ReserveA.SafeSub(amountOut)
		}
	}
	if err != nil {
		return types.Pool{}, types.ErrOverflow.Wrapf("pool %d reserves: %v", poolID, err)
	}

	if err := k.checkTransition(ctx, "swap", next); err != nil {
		return types.Pool{}, err
	}
	if next.ConstantProduct().Cmp(pool.ConstantProduct()) < 0 {
		return types.Pool{}, k.invariantBroken(ctx, "swap", types.ErrInvariantViolation.Wrapf(
			"pool %d: constant product decreased from %s to %s",
			poolID, pool.ConstantProduct(), next.ConstantProduct()))
	}

	if err := k.setPool(ctx, next); err != nil {
		return types.Pool{}, err
	}
	return next, nil
}

// ApplyDeposit adds both assets to the reserves and mints shares to the depositor.
func (k Keeper) ApplyDeposit(ctx context.Context, poolID uint64, amountA, amountB, sharesMinted math.Int, depositor sdk.AccAddress) (types.Pool, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.Pool{}, err
	}
	if !isPositive(amountA) || !isPositive(amountB) || !isPositive(sharesMinted) {
		return types.Pool{}, types.ErrZeroAmount.Wrapf(
			"deposit of %s/%s for %s shares", amountA, amountB, sharesMinted)
	}
	held, err := k.GetShares(ctx, poolID, depositor)
	if err != nil {
		return types.Pool{}, err
	}

	next := pool
	if next.ReserveA, err = pool.ReserveA.SafeAdd(amountA); err != nil {
		return types.Pool{}, types.ErrOverflow.Wrapf("pool %d reserve %s: %v", poolID, pool.AssetA, err)
	}
	if next.ReserveB, err = pool.ReserveB.SafeAdd(amountB); err != nil {
		return types.Pool{}, types.ErrOverflow.Wrapf("pool %d reserve %s: %v", poolID, pool.AssetB, err)
	}
	if next.TotalShares, err = pool.TotalShares.SafeAdd(sharesMinted); err != nil {
		return types.Pool{}, types.ErrOverflow.Wrapf("pool %d total shares: %v", poolID, err)
	}
	balance := held.Add(sharesMinted)

	if err := k.checkTransition(ctx, "deposit", next); err != nil {
		return types.Pool{}, err
	}
	return next, k.commit(ctx, next, depositor, balance)
}

// ApplyWithdrawal burns the withdrawer's shares and removes the paid-out
// amounts from the reserves.
func (k Keeper) ApplyWithdrawal(ctx context.Context, poolID uint64, sharesBurned, amountAOut, amountBOut math.Int, withdrawer sdk.AccAddress) (types.Pool, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.Pool{}, err
	}
	if !isPositive(sharesBurned) {
		return types.Pool{}, types.ErrInsufficientShares.Wrap("shares to burn must be positive")
	}
	held, err := k.GetShares(ctx, poolID, withdrawer)
	if err != nil {
		return types.Pool{}, err
	}
	if held.LT(sharesBurned) {
		return types.Pool{}, types.ErrInsufficientShares.Wrapf(
			"%s holds %s shares of pool %d, burning %s", withdrawer, held, poolID, sharesBurned)
	}
	if amountAOut.IsNil() || amountAOut.IsNegative() || amountBOut.IsNil() || amountBOut.IsNegative() {
		return types.Pool{}, types.ErrZeroAmount.Wrap("withdrawn amounts cannot be negative")
	}

	next := pool
	next.ReserveA = pool.ReserveA.Sub(amountAOut)
	next.ReserveB = pool.ReserveB.Sub(amountBOut)
	next.TotalShares = pool.TotalShares.Sub(sharesBurned)

	if err := k.checkTransition(ctx, "withdrawal", next); err != nil {
		return types.Pool{}, err
	}
	return next, k.commit(ctx, next, withdrawer, held.Sub(sharesBurned))
}

// ApplyShareTransfer debits shares from one holder and credits them to
// another. Both balances are encoded before either is written; the pool's
// total shares do not change.
func (k Keeper) ApplyShareTransfer(ctx context.Context, poolID uint64, from, to sdk.AccAddress, shares math.Int) (math.Int, math.Int, error) {
	if _, err := k.GetPool(ctx, poolID); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if !isPositive(shares) {
		return math.Int{}, math.Int{}, types.ErrInsufficientShares.Wrap("shares to transfer must be positive")
	}
	held, err := k.GetShares(ctx, poolID, from)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if held.LT(shares) {
		return math.Int{}, math.Int{}, types.ErrInsufficientShares.Wrapf(
			"%s holds %s shares of pool %d, transferring %s", from, held, poolID, shares)
	}
	if from.Equals(to) {
		return held, held, nil
	}
	received, err := k.GetShares(ctx, poolID, to)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	debit, credit := held.Sub(shares), received.Add(shares)
	fromBz, err := encodeShares(debit)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	toBz, err := encodeShares(credit)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	k.writeShares(ctx, poolID, from, fromBz)
	k.writeShares(ctx, poolID, to, toBz)
	return debit, credit, nil
}

// commit writes a pool and one share balance. Both values are encoded before
// anything touches the store.
func (k Keeper) commit(ctx context.Context, pool types.Pool, owner sdk.AccAddress, shares math.Int) error {
	bz, err := encodeShares(shares)
	if err != nil {
		return err
	}
	if err := k.setPool(ctx, pool); err != nil {
		return err
	}
	k.writeShares(ctx, pool.Id, owner, bz)
	return nil
}

// checkTransition validates a computed pool state before it is written.
func (k Keeper) checkTransition(ctx context.Context, transition string, next types.Pool) error {
	if err := next.Validate(); err != nil {
		return k.invariantBroken(ctx, transition, types.ErrInvariantViolation.Wrapf("%v", err))
	}
	return nil
}

func (k Keeper) invariantBroken(ctx context.Context, transition string, err error) error {
	k.Logger(ctx).Error("rejected pool transition", "transition", transition, "error", err)
	k.metrics.InvariantViolations.WithLabelValues(transition).Inc()
	return err
}

func isPositive(x math.Int) bool {
	return !x.IsNil() && x.IsPositive()
}

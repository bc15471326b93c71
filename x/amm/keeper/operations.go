package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// checkDeadline rejects operations submitted for a block height that has passed.
func checkDeadline(ctx context.Context, deadline int64) error {
	height := sdk.UnwrapSDKContext(ctx).BlockHeight()
	if height > deadline {
		return types.ErrExpired.Wrapf("block height %d is past deadline %d", height, deadline)
	}
	return nil
}

// atomically runs fn on a cache branch of ctx. Transfers and ledger writes
// made by fn reach the parent store only if fn returns nil.
func atomically(ctx context.Context, fn func(cacheCtx sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	writeFn()
	return nil
}

// transfer sends a single-denom amount. Zero amounts are skipped and bank
// errors are returned unchanged.
func (k Keeper) transfer(ctx context.Context, from, to sdk.AccAddress, denom string, amount math.Int) error {
	if amount.IsZero() {
		return nil
	}
	return k.bankKeeper.SendCoins(ctx, from, to, sdk.NewCoins(sdk.NewCoin(denom, amount)))
}

// requireAddress rejects empty account arguments.
func requireAddress(role string, addr sdk.AccAddress) error {
	if addr.Empty() {
		return types.ErrInvalidAddress.Wrapf("%s address cannot be empty", role)
	}
	return nil
}

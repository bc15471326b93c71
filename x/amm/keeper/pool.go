package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/pricing"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// CreatePool opens a pool for a new pair with the creator's first deposit.
// The pair is stored sorted, so amountA and amountB follow assetA and assetB
// as given. The first deposit fixes the initial price.
func (k Keeper) CreatePool(
	ctx context.Context,
	creator sdk.AccAddress,
	assetA, assetB string,
	amountA, amountB math.Int,
	fee types.Fee,
	deadline int64,
) (types.Pool, math.Int, error) {
	// Validate
	if err := checkDeadline(ctx, deadline); err != nil {
		return types.Pool{}, math.Int{}, err
	}
	if err := requireAddress("creator", creator); err != nil {
		return types.Pool{}, math.Int{}, err
	}
	if err := types.ValidateAssetPair(assetA, assetB); err != nil {
		return types.Pool{}, math.Int{}, err
	}
	if err := fee.Validate(); err != nil {
		return types.Pool{}, math.Int{}, err
	}
	if _, _, swapped := types.SortAssets(assetA, assetB); swapped {
		assetA, assetB = assetB, assetA
		amountA, amountB = amountB, amountA
	}
	if existing, err := k.GetPoolByAssets(ctx, assetA, assetB); err == nil {
		return types.Pool{}, math.Int{}, types.ErrPoolAlreadyExists.Wrapf(
			"pool %d already trades %s/%s", existing.Id, assetA, assetB)
	} else if !errors.Is(err, types.ErrPoolNotFound) {
		return types.Pool{}, math.Int{}, err
	}

	// Quote
	shares, err := pricing.QuoteInitialDeposit(amountA, amountB)
	if err != nil {
		return types.Pool{}, math.Int{}, err
	}

	poolID := k.GetNextPoolID(ctx)
	custody := PoolAddress(poolID)
	var pool types.Pool
	err = atomically(ctx, func(cacheCtx sdk.Context) error {
		if err := k.setPool(cacheCtx, types.NewPool(poolID, assetA, assetB, fee)); err != nil {
			return err
		}
		k.SetNextPoolID(cacheCtx, poolID+1)

		// Transfer
		if err := k.transfer(cacheCtx, creator, custody, assetA, amountA); err != nil {
			return err
		}
		if err := k.transfer(cacheCtx, creator, custody, assetB, amountB); err != nil {
			return err
		}

		// Commit
		var err error
		pool, err = k.ApplyDeposit(cacheCtx, poolID, amountA, amountB, shares, creator)
		return err
	})
	if err != nil {
		return types.Pool{}, math.Int{}, err
	}

	k.metrics.PoolsCreated.Inc()
	k.metrics.observePool(pool)
	k.Logger(ctx).Info("pool created",
		"pool_id", poolID,
		"assets", pool.AssetA+"/"+pool.AssetB,
		"fee", fee.String(),
		"shares", shares.String(),
	)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolLabel(poolID)),
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
			sdk.NewAttribute(types.AttributeKeyAssetA, pool.AssetA),
			sdk.NewAttribute(types.AttributeKeyAssetB, pool.AssetB),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
			sdk.NewAttribute(types.AttributeKeyCustody, custody.String()),
		),
	)

	return pool, shares, nil
}

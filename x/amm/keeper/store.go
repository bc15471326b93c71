package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// GetPool returns a pool by ID
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	bz := k.getStore(ctx).Get(PoolKey(poolID))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}

	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, fmt.Errorf("GetPool: unmarshal pool %d: %w", poolID, err)
	}
	return pool, nil
}

// GetPoolByAssets returns the pool trading a pair, in either order
func (k Keeper) GetPoolByAssets(ctx context.Context, assetA, assetB string) (types.Pool, error) {
	bz := k.getStore(ctx).Get(PoolByAssetsKey(assetA, assetB))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("no pool for %s/%s", assetA, assetB)
	}
	return k.GetPool(ctx, sdk.BigEndianToUint64(bz))
}

// setPool stores a pool and its pair index
func (k Keeper) setPool(ctx context.Context, pool types.Pool) error {
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("setPool: marshal pool %d: %w", pool.Id, err)
	}
	store := k.getStore(ctx)
	store.Set(PoolKey(pool.Id), bz)
	store.Set(PoolByAssetsKey(pool.AssetA, pool.AssetB), sdk.Uint64ToBigEndian(pool.Id))
	return nil
}

// IteratePools calls cb for every pool in ID order until it returns true
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns every pool in ID order
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	var pools []types.Pool
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

// GetNextPoolID returns the ID the next created pool will receive
func (k Keeper) GetNextPoolID(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(NextPoolIDKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// SetNextPoolID sets the next pool ID counter
func (k Keeper) SetNextPoolID(ctx context.Context, poolID uint64) {
	k.getStore(ctx).Set(NextPoolIDKey, sdk.Uint64ToBigEndian(poolID))
}

// PoolCount returns the number of pools ever created. Pools are never
// deleted, so this is derived from the ID counter.
func (k Keeper) PoolCount(ctx context.Context) uint64 {
	return k.GetNextPoolID(ctx) - 1
}

// GetShares returns an account's share balance in a pool
func (k Keeper) GetShares(ctx context.Context, poolID uint64, owner sdk.AccAddress) (math.Int, error) {
	bz := k.getStore(ctx).Get(SharesKey(poolID, owner))
	if bz == nil {
		return math.ZeroInt(), nil
	}

	var shares math.Int
	if err := shares.Unmarshal(bz); err != nil {
		return math.ZeroInt(), fmt.Errorf("GetShares: unmarshal: %w", err)
	}
	return shares, nil
}

// encodeShares returns the stored form of a share balance; nil means delete.
func encodeShares(shares math.Int) ([]byte, error) {
	if shares.IsZero() {
		return nil, nil
	}
	return shares.Marshal()
}

func (k Keeper) writeShares(ctx context.Context, poolID uint64, owner sdk.AccAddress, bz []byte) {
	store := k.getStore(ctx)
	if bz == nil {
		store.Delete(SharesKey(poolID, owner))
		return
	}
	store.Set(SharesKey(poolID, owner), bz)
}

// IterateShares calls cb for every share balance in a pool until it returns true
func (k Keeper) IterateShares(ctx context.Context, poolID uint64, cb func(owner sdk.AccAddress, shares math.Int) (stop bool)) error {
	prefix := PoolSharesPrefix(poolID)
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		owner := ownerFromSharesKey(iterator.Key()[len(prefix):])
		if owner == nil {
			return types.ErrInvalidPoolState.Wrapf("malformed share key in pool %d", poolID)
		}
		var shares math.Int
		if err := shares.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("IterateShares: unmarshal: %w", err)
		}
		if cb(owner, shares) {
			break
		}
	}
	return nil
}

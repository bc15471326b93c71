package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// InitGenesis initializes the amm module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}
	k.SetNextPoolID(ctx, genState.NextPoolId)

	for _, pool := range genState.Pools {
		if err := k.setPool(ctx, pool); err != nil {
			return fmt.Errorf("failed to set pool %d: %w", pool.Id, err)
		}
	}

	for _, pos := range genState.Positions {
		owner, err := sdk.AccAddressFromBech32(pos.Owner)
		if err != nil {
			return fmt.Errorf("position owner %s: %w", pos.Owner, err)
		}
		bz, err := encodeShares(pos.Shares)
		if err != nil {
			return fmt.Errorf("failed to encode shares of %s: %w", pos.Owner, err)
		}
		k.writeShares(ctx, pos.PoolId, owner, bz)
	}

	return nil
}

// ExportGenesis returns the amm module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}

	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pools: %w", err)
	}

	positions := []types.LiquidityPosition{}
	for _, pool := range pools {
		err := k.IterateShares(ctx, pool.Id, func(owner sdk.AccAddress, shares math.Int) bool {
			positions = append(positions, types.LiquidityPosition{
				PoolId: pool.Id,
				Owner:  owner.String(),
				Shares: shares,
			})
			return false
		})
		if err != nil {
			return nil, fmt.Errorf("failed to export positions of pool %d: %w", pool.Id, err)
		}
	}
	if pools == nil {
		pools = []types.Pool{}
	}

	return &types.GenesisState{
		Params:     params,
		Pools:      pools,
		Positions:  positions,
		NextPoolId: k.GetNextPoolID(ctx),
	}, nil
}

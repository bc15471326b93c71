package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// LiquidityPosition is one account's share balance in one pool.
type LiquidityPosition struct {
	PoolId uint64   `json:"pool_id"`
	Owner  string   `json:"owner"`
	Shares math.Int `json:"shares"`
}

// GenesisState is the persisted layout of the module.
type GenesisState struct {
	Params     Params              `json:"params"`
	Pools      []Pool              `json:"pools"`
	Positions  []LiquidityPosition `json:"positions"`
	NextPoolId uint64              `json:"next_pool_id"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		Pools:      []Pool{},
		Positions:  []LiquidityPosition{},
		NextPoolId: 1,
	}
}

// Validate performs basic genesis state validation, including that the
// positions of every pool sum to its total shares.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if gs.NextPoolId == 0 {
		return ErrInvalidPoolState.Wrap("next pool id must be at least 1")
	}

	pools := make(map[uint64]Pool, len(gs.Pools))
	pairs := make(map[string]uint64, len(gs.Pools))
	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("genesis pool %d: %w", pool.Id, err)
		}
		if _, dup := pools[pool.Id]; dup {
			return ErrInvalidPoolState.Wrapf("duplicate pool id %d", pool.Id)
		}
		if pool.Id >= gs.NextPoolId {
			return ErrInvalidPoolState.Wrapf("pool id %d not below next pool id %d", pool.Id, gs.NextPoolId)
		}
		pair := pool.AssetA + "/" + pool.AssetB
		if other, dup := pairs[pair]; dup {
			return ErrPoolAlreadyExists.Wrapf("pools %d and %d both trade %s", other, pool.Id, pair)
		}
		pools[pool.Id] = pool
		pairs[pair] = pool.Id
	}

	sums := make(map[uint64]math.Int, len(pools))
	seen := make(map[string]bool, len(gs.Positions))
	for _, pos := range gs.Positions {
		if _, ok := pools[pos.PoolId]; !ok {
			return ErrPoolNotFound.Wrapf("position of %s references pool %d", pos.Owner, pos.PoolId)
		}
		if _, err := sdk.AccAddressFromBech32(pos.Owner); err != nil {
			return ErrInvalidAddress.Wrapf("position owner %q: %v", pos.Owner, err)
		}
		if pos.Shares.IsNil() || !pos.Shares.IsPositive() {
			return ErrInsufficientShares.Wrapf("position of %s in pool %d must hold positive shares", pos.Owner, pos.PoolId)
		}
		key := fmt.Sprintf("%d/%s", pos.PoolId, pos.Owner)
		if seen[key] {
			return ErrInvalidPoolState.Wrapf("duplicate position %s", key)
		}
		seen[key] = true

		sum, ok := sums[pos.PoolId]
		if !ok {
			sum = math.ZeroInt()
		}
		sums[pos.PoolId] = sum.Add(pos.Shares)
	}

	for _, pool := range gs.Pools {
		sum, ok := sums[pool.Id]
		if !ok {
			sum = math.ZeroInt()
		}
		if !sum.Equal(pool.TotalShares) {
			return ErrInvariantViolation.Wrapf(
				"pool %d: positions sum to %s, total shares %s", pool.Id, sum, pool.TotalShares)
		}
	}
	return nil
}

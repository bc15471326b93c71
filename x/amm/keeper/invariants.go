package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// RegisterInvariants registers all amm invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-state", PoolStateInvariant(k))
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "custody-balance", CustodyBalanceInvariant(k))
}

// AllInvariants runs all invariants of the amm module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolStateInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = ShareSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return CustodyBalanceInvariant(k)(ctx)
	}
}

// PoolStateInvariant checks every stored pool is well formed and its
// reserves and shares are all zero or all positive.
func PoolStateInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-state", err.Error()), true
		}
		for _, pool := range pools {
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("pool %d: %v\n", pool.Id, err)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-state",
			fmt.Sprintf("found %d malformed pools\n%s", count, msg),
		), broken
	}
}

// ShareSupplyInvariant checks that share balances of each pool sum to its total shares.
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "share-supply", err.Error()), true
		}
		for _, pool := range pools {
			sum := math.ZeroInt()
			err := k.IterateShares(ctx, pool.Id, func(_ sdk.AccAddress, shares math.Int) bool {
				sum = sum.Add(shares)
				return false
			})
			if err != nil {
				count++
				msg += fmt.Sprintf("pool %d: %v\n", pool.Id, err)
				continue
			}
			if !sum.Equal(pool.TotalShares) {
				count++
				msg += fmt.Sprintf("pool %d: balances sum to %s, total shares %s\n",
					pool.Id, sum, pool.TotalShares)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "share-supply",
			fmt.Sprintf("found %d pools with mismatched share supply\n%s", count, msg),
		), broken
	}
}

// CustodyBalanceInvariant checks that each pool's custody account holds at
// least its recorded reserves. Extra funds sent there directly are allowed.
func CustodyBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "custody-balance", err.Error()), true
		}
		for _, pool := range pools {
			custody := PoolAddress(pool.Id)
			balanceA := k.bankKeeper.GetBalance(ctx, custody, pool.AssetA)
			balanceB := k.bankKeeper.GetBalance(ctx, custody, pool.AssetB)

			if balanceA.Amount.LT(pool.ReserveA) {
				count++
				msg += fmt.Sprintf("pool %d: custody balance for %s (%s) < reserve (%s)\n",
					pool.Id, pool.AssetA, balanceA.Amount, pool.ReserveA)
			}
			if balanceB.Amount.LT(pool.ReserveB) {
				count++
				msg += fmt.Sprintf("pool %d: custody balance for %s (%s) < reserve (%s)\n",
					pool.Id, pool.AssetB, balanceB.Amount, pool.ReserveB)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "custody-balance",
			fmt.Sprintf("found %d reserves not covered by custody\n%s", count, msg),
		), broken
	}
}

package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// SetSharesForTest writes a share balance without touching the pool record.
func SetSharesForTest(k Keeper, ctx sdk.Context, poolID uint64, owner sdk.AccAddress, shares math.Int) {
	bz, err := encodeShares(shares)
	if err != nil {
		panic(err)
	}
	k.writeShares(ctx, poolID, owner, bz)
}

// SetPoolForTest writes a pool record as given, skipping every check.
func SetPoolForTest(k Keeper, ctx sdk.Context, pool types.Pool) {
	if err := k.setPool(ctx, pool); err != nil {
		panic(err)
	}
}

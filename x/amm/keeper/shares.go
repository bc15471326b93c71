package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// TransferShares moves liquidity shares of a pool between accounts and
// returns both resulting balances. Reserves and total shares are unchanged,
// so the share supply still sums to the pool total.
func (k Keeper) TransferShares(ctx context.Context, poolID uint64, from, to sdk.AccAddress, shares math.Int) (math.Int, math.Int, error) {
	if err := requireAddress("sender", from); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := requireAddress("recipient", to); err != nil {
		return math.Int{}, math.Int{}, err
	}

	var senderShares, recipientShares math.Int
	err := atomically(ctx, func(cacheCtx sdk.Context) error {
		var err error
		senderShares, recipientShares, err = k.ApplyShareTransfer(cacheCtx, poolID, from, to, shares)
		return err
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransferShares,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolLabel(poolID)),
			sdk.NewAttribute(types.AttributeKeySender, from.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, to.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)

	return senderShares, recipientShares, nil
}

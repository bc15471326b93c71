package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/pkg/sandbox"
	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// NoDeadline is a deadline no test block reaches
const NoDeadline = int64(1 << 62)

// AMMKeeper creates a test keeper for the amm module backed by an
// in-memory multistore and a store-backed bank.
func AMMKeeper(t testing.TB) (keeper.Keeper, sdk.Context, *sandbox.Bank) {
	sb, err := sandbox.New(log.NewNopLogger(), "pawswap-test-1", *types.DefaultGenesis())
	require.NoError(t, err)

	ctx := sb.Context().WithBlockHeight(1)
	return sb.Keeper(), ctx, sb.Bank()
}

// TestAddr returns a deterministic 20-byte account address for name
func TestAddr(name string) sdk.AccAddress {
	bz := make([]byte, 20)
	copy(bz, name)
	return sdk.AccAddress(bz)
}

// FundAccount mints coins to addr
func FundAccount(t testing.TB, bank *sandbox.Bank, ctx sdk.Context, addr sdk.AccAddress, coins ...sdk.Coin) {
	require.NoError(t, bank.MintCoins(ctx, addr, sdk.NewCoins(coins...)))
}

// CreateTestPool funds creator and opens a pool with the default fee
func CreateTestPool(t testing.TB, k keeper.Keeper, ctx sdk.Context, bank *sandbox.Bank, creator sdk.AccAddress, assetA, assetB string, amountA, amountB int64) types.Pool {
	FundAccount(t, bank, ctx, creator, sdk.NewInt64Coin(assetA, amountA), sdk.NewInt64Coin(assetB, amountB))
	pool, _, err := k.CreatePool(ctx, creator, assetA, assetB, math.NewInt(amountA), math.NewInt(amountB), types.DefaultFee(), NoDeadline)
	require.NoError(t, err)
	return pool
}

package sandbox_test

import (
	"errors"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/pkg/sandbox"
	"github.com/paw-chain/pawswap/x/amm/types"
)

var (
	alice = sdk.AccAddress([]byte("alice_______________"))
	bob   = sdk.AccAddress([]byte("bob_________________"))
)

func newSandbox(t *testing.T) *sandbox.Sandbox {
	t.Helper()
	sb, err := sandbox.New(log.NewNopLogger(), "pawswap-sandbox-1", *types.DefaultGenesis())
	require.NoError(t, err)
	return sb
}

func balance(t *testing.T, sb *sandbox.Sandbox, addr sdk.AccAddress, denom string) int64 {
	t.Helper()
	var amount math.Int
	require.NoError(t, sb.Query(func(ctx sdk.Context) error {
		amount = sb.Bank().GetBalance(ctx, addr, denom).Amount
		return nil
	}))
	return amount.Int64()
}

func mint(sb *sandbox.Sandbox, addr sdk.AccAddress, coins string) (sdk.Events, error) {
	return sb.Deliver(func(ctx sdk.Context) error {
		amt, err := sdk.ParseCoinsNormalized(coins)
		if err != nil {
			return err
		}
		return sb.Bank().MintCoins(ctx, addr, amt)
	})
}

func TestNew_CommitsGenesis(t *testing.T) {
	sb := newSandbox(t)
	require.Zero(t, sb.Height())

	var params types.Params
	require.NoError(t, sb.Query(func(ctx sdk.Context) error {
		var err error
		params, err = sb.Keeper().GetParams(ctx)
		return err
	}))
	require.Equal(t, types.DefaultParams(), params)
}

func TestDeliver_CommitsBlock(t *testing.T) {
	sb := newSandbox(t)

	_, err := mint(sb, alice, "100uatom")
	require.NoError(t, err)
	require.Equal(t, int64(1), sb.Height())
	require.Equal(t, int64(100), balance(t, sb, alice, "uatom"))

	_, err = sb.Deliver(func(ctx sdk.Context) error {
		require.Equal(t, int64(2), ctx.BlockHeight())
		return sb.Bank().SendCoins(ctx, alice, bob, sdk.NewCoins(sdk.NewInt64Coin("uatom", 40)))
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), sb.Height())
	require.Equal(t, int64(60), balance(t, sb, alice, "uatom"))
	require.Equal(t, int64(40), balance(t, sb, bob, "uatom"))
}

func TestDeliver_FailedTxDiscardsWrites(t *testing.T) {
	sb := newSandbox(t)
	_, err := mint(sb, alice, "100uatom")
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = sb.Deliver(func(ctx sdk.Context) error {
		if err := sb.Bank().MintCoins(ctx, alice, sdk.NewCoins(sdk.NewInt64Coin("uatom", 900))); err != nil {
			return err
		}
		sb.Bank().SetSendEnabled(ctx, "uatom", false)
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, int64(2), sb.Height())
	require.Equal(t, int64(100), balance(t, sb, alice, "uatom"))

	// The send flag set by the failed tx was discarded with it.
	_, err = sb.Deliver(func(ctx sdk.Context) error {
		return sb.Bank().SendCoins(ctx, alice, bob, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1)))
	})
	require.NoError(t, err)
}

func TestDeliver_PanicLeavesStateAndHeight(t *testing.T) {
	sb := newSandbox(t)
	_, err := mint(sb, alice, "100uatom")
	require.NoError(t, err)

	require.Panics(t, func() {
		_, _ = sb.Deliver(func(ctx sdk.Context) error {
			if err := sb.Bank().MintCoins(ctx, alice, sdk.NewCoins(sdk.NewInt64Coin("uatom", 900))); err != nil {
				return err
			}
			panic("handler crashed")
		})
	})
	require.Equal(t, int64(1), sb.Height())
	require.Equal(t, int64(100), balance(t, sb, alice, "uatom"))

	// The sandbox keeps working after the panic.
	_, err = mint(sb, bob, "5upaw")
	require.NoError(t, err)
	require.Equal(t, int64(2), sb.Height())
	require.Equal(t, int64(100), balance(t, sb, alice, "uatom"))
	require.Equal(t, int64(5), balance(t, sb, bob, "upaw"))
}

func TestQuery_DoesNotWrite(t *testing.T) {
	sb := newSandbox(t)
	require.NoError(t, sb.Query(func(ctx sdk.Context) error {
		return sb.Bank().MintCoins(ctx, alice, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1)))
	}))
	require.Zero(t, balance(t, sb, alice, "uatom"))
}

func TestBank_SendCoins(t *testing.T) {
	sb := newSandbox(t)
	_, err := mint(sb, alice, "100uatom,50upaw")
	require.NoError(t, err)

	tests := []struct {
		name    string
		disable string
		amt     sdk.Coins
		err     error
	}{
		{"insufficient funds", "", sdk.NewCoins(sdk.NewInt64Coin("uatom", 101)), sdkerrors.ErrInsufficientFunds},
		{"one short coin rejects all", "", sdk.NewCoins(sdk.NewInt64Coin("uatom", 1), sdk.NewInt64Coin("upaw", 51)), sdkerrors.ErrInsufficientFunds},
		{"send disabled", "upaw", sdk.NewCoins(sdk.NewInt64Coin("upaw", 1)), banktypes.ErrSendDisabled},
		{"invalid coins", "", sdk.Coins{sdk.Coin{Denom: "uatom", Amount: math.NewInt(-1)}}, sdkerrors.ErrInvalidCoins},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sb.Deliver(func(ctx sdk.Context) error {
				if tc.disable != "" {
					sb.Bank().SetSendEnabled(ctx, tc.disable, false)
				}
				return sb.Bank().SendCoins(ctx, alice, bob, tc.amt)
			})
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, int64(100), balance(t, sb, alice, "uatom"))
			require.Equal(t, int64(50), balance(t, sb, alice, "upaw"))
			require.True(t, balance(t, sb, bob, "uatom") == 0 && balance(t, sb, bob, "upaw") == 0)
		})
	}
}

func TestBank_SendEnabledToggle(t *testing.T) {
	sb := newSandbox(t)
	_, err := sb.Deliver(func(ctx sdk.Context) error {
		sb.Bank().SetSendEnabled(ctx, "upaw", false)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, sb.Query(func(ctx sdk.Context) error {
		require.False(t, sb.Bank().IsSendEnabled(ctx, "upaw"))
		require.True(t, sb.Bank().IsSendEnabled(ctx, "uatom"))
		return nil
	}))

	_, err = sb.Deliver(func(ctx sdk.Context) error {
		sb.Bank().SetSendEnabled(ctx, "upaw", true)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, sb.Query(func(ctx sdk.Context) error {
		require.True(t, sb.Bank().IsSendEnabled(ctx, "upaw"))
		return nil
	}))
}

func TestBank_GetAllBalances(t *testing.T) {
	sb := newSandbox(t)
	_, err := mint(sb, alice, "7uatom,3upaw")
	require.NoError(t, err)
	_, err = mint(sb, bob, "1uatom")
	require.NoError(t, err)

	require.NoError(t, sb.Query(func(ctx sdk.Context) error {
		require.Equal(t, "7uatom,3upaw", sb.Bank().GetAllBalances(ctx, alice).String())
		return nil
	}))
}

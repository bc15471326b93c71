package sandbox

import (
	"context"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

// BankStoreKey names the store holding sandbox balances
const BankStoreKey = "sandboxbank"

var (
	balancesPrefix     = []byte{0x01}
	sendDisabledPrefix = []byte{0x02}
)

// Bank is a minimal store-backed ledger of account balances. Balances and
// send flags live in the multistore, so cache contexts branch and discard
// them together with module state.
type Bank struct {
	storeKey storetypes.StoreKey
}

// NewBank returns a Bank persisting balances under key
func NewBank(key storetypes.StoreKey) *Bank {
	return &Bank{storeKey: key}
}

func sendDisabledKey(denom string) []byte {
	return append(append([]byte{}, sendDisabledPrefix...), denom...)
}

func balanceKey(addr sdk.AccAddress, denom string) []byte {
	key := append([]byte{}, balancesPrefix...)
	key = append(key, address.MustLengthPrefix(addr)...)
	return append(key, denom...)
}

// GetBalance returns the balance of one denom held by addr
func (b *Bank) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	bz := sdk.UnwrapSDKContext(ctx).KVStore(b.storeKey).Get(balanceKey(addr, denom))
	if bz == nil {
		return sdk.NewCoin(denom, math.ZeroInt())
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(err)
	}
	return sdk.NewCoin(denom, amount)
}

// GetAllBalances returns every non-zero balance of addr
func (b *Bank) GetAllBalances(ctx context.Context, addr sdk.AccAddress) sdk.Coins {
	prefix := append(append([]byte{}, balancesPrefix...), address.MustLengthPrefix(addr)...)
	iterator := storetypes.KVStorePrefixIterator(sdk.UnwrapSDKContext(ctx).KVStore(b.storeKey), prefix)
	defer iterator.Close()

	coins := sdk.NewCoins()
	for ; iterator.Valid(); iterator.Next() {
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}
		coins = coins.Add(sdk.NewCoin(string(iterator.Key()[len(prefix):]), amount))
	}
	return coins
}

func (b *Bank) setBalance(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) error {
	store := sdk.UnwrapSDKContext(ctx).KVStore(b.storeKey)
	if coin.Amount.IsZero() {
		store.Delete(balanceKey(addr, coin.Denom))
		return nil
	}
	bz, err := coin.Amount.Marshal()
	if err != nil {
		return err
	}
	store.Set(balanceKey(addr, coin.Denom), bz)
	return nil
}

// SetSendEnabled toggles transfers of a denom, as x/bank's send-enabled flags do
func (b *Bank) SetSendEnabled(ctx context.Context, denom string, enabled bool) {
	store := sdk.UnwrapSDKContext(ctx).KVStore(b.storeKey)
	if enabled {
		store.Delete(sendDisabledKey(denom))
		return
	}
	store.Set(sendDisabledKey(denom), []byte{1})
}

// IsSendEnabled reports whether denom may be transferred
func (b *Bank) IsSendEnabled(ctx context.Context, denom string) bool {
	return !sdk.UnwrapSDKContext(ctx).KVStore(b.storeKey).Has(sendDisabledKey(denom))
}

// SendCoins moves amt from fromAddr to toAddr. Every coin is checked before
// any balance changes.
func (b *Bank) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return sdkerrors.ErrInvalidCoins.Wrap(amt.String())
	}
	for _, coin := range amt {
		if !b.IsSendEnabled(ctx, coin.Denom) {
			return banktypes.ErrSendDisabled.Wrapf("%s transfers are currently disabled", coin.Denom)
		}
		if balance := b.GetBalance(ctx, fromAddr, coin.Denom); balance.IsLT(coin) {
			return sdkerrors.ErrInsufficientFunds.Wrapf("spendable balance %s is smaller than %s", balance, coin)
		}
	}

	for _, coin := range amt {
		from := b.GetBalance(ctx, fromAddr, coin.Denom)
		if err := b.setBalance(ctx, fromAddr, from.Sub(coin)); err != nil {
			return err
		}
		to := b.GetBalance(ctx, toAddr, coin.Denom)
		if err := b.setBalance(ctx, toAddr, to.Add(coin)); err != nil {
			return err
		}
	}
	return nil
}

// MintCoins credits amt to addr out of thin air
func (b *Bank) MintCoins(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return sdkerrors.ErrInvalidCoins.Wrap(amt.String())
	}
	for _, coin := range amt {
		balance := b.GetBalance(ctx, addr, coin.Denom)
		if err := b.setBalance(ctx, addr, balance.Add(coin)); err != nil {
			return err
		}
	}
	return nil
}

package types

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgServer defines the message server interface
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
	SwapExactOutput(context.Context, *MsgSwapExactOutput) (*MsgSwapResponse, error)
	TransferShares(context.Context, *MsgTransferShares) (*MsgTransferSharesResponse, error)
}

// MsgCreatePool creates a pool and makes its first deposit. A nil Fee
// selects the module's default fee.
type MsgCreatePool struct {
	Creator  string   `json:"creator"`
	AssetA   string   `json:"asset_a"`
	AssetB   string   `json:"asset_b"`
	AmountA  math.Int `json:"amount_a"`
	AmountB  math.Int `json:"amount_b"`
	Fee      *Fee     `json:"fee,omitempty"`
	Deadline int64    `json:"deadline"`
}

// ValidateBasic performs stateless checks.
func (msg MsgCreatePool) ValidateBasic() error {
	if err := validateAddress("creator", msg.Creator); err != nil {
		return err
	}
	if err := ValidateAssetPair(msg.AssetA, msg.AssetB); err != nil {
		return err
	}
	if err := validatePositive("amount a", msg.AmountA); err != nil {
		return err
	}
	if err := validatePositive("amount b", msg.AmountB); err != nil {
		return err
	}
	if msg.Fee != nil {
		if err := msg.Fee.Validate(); err != nil {
			return err
		}
	}
	return validateDeadline(msg.Deadline)
}

// MsgAddLiquidity deposits AmountA of asset A and at most MaxAmountB of asset B.
type MsgAddLiquidity struct {
	Provider   string   `json:"provider"`
	PoolId     uint64   `json:"pool_id"`
	AmountA    math.Int `json:"amount_a"`
	MaxAmountB math.Int `json:"max_amount_b"`
	MinShares  math.Int `json:"min_shares"`
	Deadline   int64    `json:"deadline"`
}

// ValidateBasic performs stateless checks.
func (msg MsgAddLiquidity) ValidateBasic() error {
	if err := validateAddress("provider", msg.Provider); err != nil {
		return err
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrPoolNotFound, "pool id cannot be zero")
	}
	if err := validatePositive("amount a", msg.AmountA); err != nil {
		return err
	}
	if err := validatePositive("max amount b", msg.MaxAmountB); err != nil {
		return err
	}
	if err := validateNonNegative("min shares", msg.MinShares); err != nil {
		return err
	}
	return validateDeadline(msg.Deadline)
}

// MsgRemoveLiquidity burns Shares and pays out the proportional reserves.
type MsgRemoveLiquidity struct {
	Provider   string   `json:"provider"`
	PoolId     uint64   `json:"pool_id"`
	Shares     math.Int `json:"shares"`
	MinAmountA math.Int `json:"min_amount_a"`
	MinAmountB math.Int `json:"min_amount_b"`
	Deadline   int64    `json:"deadline"`
}

// ValidateBasic performs stateless checks.
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if err := validateAddress("provider", msg.Provider); err != nil {
		return err
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrPoolNotFound, "pool id cannot be zero")
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return sdkerrors.Wrap(ErrInsufficientShares, "shares to burn must be positive")
	}
	if err := validateNonNegative("min amount a", msg.MinAmountA); err != nil {
		return err
	}
	if err := validateNonNegative("min amount b", msg.MinAmountB); err != nil {
		return err
	}
	return validateDeadline(msg.Deadline)
}

// MsgSwap sells exactly AmountIn of AssetIn. An empty Recipient pays the trader.
type MsgSwap struct {
	Trader       string   `json:"trader"`
	Recipient    string   `json:"recipient,omitempty"`
	PoolId       uint64   `json:"pool_id"`
	AssetIn      string   `json:"asset_in"`
	AssetOut     string   `json:"asset_out"`
	AmountIn     math.Int `json:"amount_in"`
	MinAmountOut math.Int `json:"min_amount_out"`
	Deadline     int64    `json:"deadline"`
}

// ValidateBasic performs stateless checks.
func (msg MsgSwap) ValidateBasic() error {
	if err := validateSwapParties(msg.Trader, msg.Recipient, msg.PoolId, msg.AssetIn, msg.AssetOut); err != nil {
		return err
	}
	if err := validatePositive("amount in", msg.AmountIn); err != nil {
		return err
	}
	if err := validateNonNegative("min amount out", msg.MinAmountOut); err != nil {
		return err
	}
	return validateDeadline(msg.Deadline)
}

// MsgSwapExactOutput buys exactly AmountOut of AssetOut, spending at most MaxAmountIn.
type MsgSwapExactOutput struct {
	Trader      string   `json:"trader"`
	Recipient   string   `json:"recipient,omitempty"`
	PoolId      uint64   `json:"pool_id"`
	AssetIn     string   `json:"asset_in"`
	AssetOut    string   `json:"asset_out"`
	AmountOut   math.Int `json:"amount_out"`
	MaxAmountIn math.Int `json:"max_amount_in"`
	Deadline    int64    `json:"deadline"`
}

// ValidateBasic performs stateless checks.
func (msg MsgSwapExactOutput) ValidateBasic() error {
	if err := validateSwapParties(msg.Trader, msg.Recipient, msg.PoolId, msg.AssetIn, msg.AssetOut); err != nil {
		return err
	}
	if err := validatePositive("amount out", msg.AmountOut); err != nil {
		return err
	}
	if err := validatePositive("max amount in", msg.MaxAmountIn); err != nil {
		return err
	}
	return validateDeadline(msg.Deadline)
}

// MsgTransferShares moves Shares of a pool from Sender to Recipient.
type MsgTransferShares struct {
	Sender    string   `json:"sender"`
	Recipient string   `json:"recipient"`
	PoolId    uint64   `json:"pool_id"`
	Shares    math.Int `json:"shares"`
}

// ValidateBasic performs stateless checks.
func (msg MsgTransferShares) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if err := validateAddress("recipient", msg.Recipient); err != nil {
		return err
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrPoolNotFound, "pool id cannot be zero")
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return sdkerrors.Wrap(ErrInsufficientShares, "shares to transfer must be positive")
	}
	return nil
}

// MsgCreatePoolResponse defines the response for CreatePool
type MsgCreatePoolResponse struct {
	PoolId uint64   `json:"pool_id"`
	Shares math.Int `json:"shares"`
}

// MsgAddLiquidityResponse defines the response for AddLiquidity
type MsgAddLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
	Shares  math.Int `json:"shares"`
}

// MsgRemoveLiquidityResponse defines the response for RemoveLiquidity
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgSwapResponse defines the response for both swap directions
type MsgSwapResponse struct {
	AmountIn  math.Int `json:"amount_in"`
	AmountOut math.Int `json:"amount_out"`
}

// MsgTransferSharesResponse defines the response for TransferShares
type MsgTransferSharesResponse struct {
	SenderShares    math.Int `json:"sender_shares"`
	RecipientShares math.Int `json:"recipient_shares"`
}

func validateSwapParties(trader, recipient string, poolID uint64, assetIn, assetOut string) error {
	if err := validateAddress("trader", trader); err != nil {
		return err
	}
	if recipient != "" {
		if err := validateAddress("recipient", recipient); err != nil {
			return err
		}
	}
	if poolID == 0 {
		return sdkerrors.Wrap(ErrPoolNotFound, "pool id cannot be zero")
	}
	return ValidateAssetPair(assetIn, assetOut)
}

func validateAddress(field, addr string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid %s address: %s", field, err)
	}
	return nil
}

func validatePositive(field string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return sdkerrors.Wrapf(ErrZeroAmount, "%s must be positive", field)
	}
	return nil
}

// validateNonNegative accepts an unset bound, which callers read as zero.
func validateNonNegative(field string, amount math.Int) error {
	if !amount.IsNil() && amount.IsNegative() {
		return sdkerrors.Wrapf(ErrZeroAmount, "%s cannot be negative", field)
	}
	return nil
}

func validateDeadline(deadline int64) error {
	if deadline < 0 {
		return sdkerrors.Wrapf(ErrExpired, "deadline %d cannot be negative", deadline)
	}
	return nil
}

// IntOrZero maps an unset math.Int to zero.
func IntOrZero(i math.Int) math.Int {
	if i.IsNil() {
		return math.ZeroInt()
	}
	return i
}

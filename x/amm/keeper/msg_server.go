package keeper

import (
	"context"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	pawtelemetry "github.com/paw-chain/pawswap/app/telemetry"
	"github.com/paw-chain/pawswap/x/amm/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the amm MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePool handles the creation of a new liquidity pool. The module's
// default fee applies when the message carries none.
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (_ *types.MsgCreatePoolResponse, err error) {
	ctx, span := pawtelemetry.StartModuleSpan(goCtx, types.ModuleName, "create_pool",
		attribute.String("asset_a", msg.AssetA), attribute.String("asset_b", msg.AssetB))
	defer func() { finish("create_pool", span, err) }()

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("creator: %v", err)
	}

	params, err := ms.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	if params.MaxPools > 0 && ms.PoolCount(ctx) >= params.MaxPools {
		return nil, types.ErrMaxPoolsReached.Wrapf("limit of %d pools reached", params.MaxPools)
	}
	fee := params.DefaultFee
	if msg.Fee != nil {
		fee = *msg.Fee
	}

	pool, shares, err := ms.Keeper.CreatePool(ctx, creator, msg.AssetA, msg.AssetB, msg.AmountA, msg.AmountB, fee, msg.Deadline)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreatePoolResponse{
		PoolId: pool.Id,
		Shares: shares,
	}, nil
}

// AddLiquidity handles adding liquidity to an existing pool
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (_ *types.MsgAddLiquidityResponse, err error) {
	ctx, span := pawtelemetry.StartModuleSpan(goCtx, types.ModuleName, "add_liquidity",
		attribute.Int64("pool_id", int64(msg.PoolId)))
	defer func() { finish("add_liquidity", span, err) }()

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("provider: %v", err)
	}

	quote, err := ms.Keeper.AddLiquidity(ctx, provider, msg.PoolId, msg.AmountA, msg.MaxAmountB, msg.MinShares, msg.Deadline)
	if err != nil {
		return nil, err
	}

	return &types.MsgAddLiquidityResponse{
		AmountA: quote.AmountA,
		AmountB: quote.AmountB,
		Shares:  quote.Shares,
	}, nil
}

// RemoveLiquidity handles removing liquidity from a pool
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (_ *types.MsgRemoveLiquidityResponse, err error) {
	ctx, span := pawtelemetry.StartModuleSpan(goCtx, types.ModuleName, "remove_liquidity",
		attribute.Int64("pool_id", int64(msg.PoolId)))
	defer func() { finish("remove_liquidity", span, err) }()

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("provider: %v", err)
	}

	amountA, amountB, err := ms.Keeper.RemoveLiquidity(ctx, provider, msg.PoolId, msg.Shares, msg.MinAmountA, msg.MinAmountB, msg.Deadline)
	if err != nil {
		return nil, err
	}

	return &types.MsgRemoveLiquidityResponse{
		AmountA: amountA,
		AmountB: amountB,
	}, nil
}

// Swap handles an exact-input swap
func (ms msgServer) Swap(goCtx context.Context, msg *types.MsgSwap) (_ *types.MsgSwapResponse, err error) {
	ctx, span := pawtelemetry.StartModuleSpan(goCtx, types.ModuleName, "swap",
		attribute.Int64("pool_id", int64(msg.PoolId)),
		attribute.String("asset_in", msg.AssetIn),
		attribute.String("asset_out", msg.AssetOut))
	defer func() { finish("swap", span, err) }()

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	trader, recipient, err := swapParties(msg.Trader, msg.Recipient)
	if err != nil {
		return nil, err
	}

	quote, err := ms.Keeper.Swap(ctx, trader, recipient, msg.PoolId, msg.AssetIn, msg.AssetOut, msg.AmountIn, msg.MinAmountOut, msg.Deadline)
	if err != nil {
		return nil, err
	}

	return &types.MsgSwapResponse{
		AmountIn:  quote.AmountIn,
		AmountOut: quote.AmountOut,
	}, nil
}

// SwapExactOutput handles an exact-output swap
func (ms msgServer) SwapExactOutput(goCtx context.Context, msg *types.MsgSwapExactOutput) (_ *types.MsgSwapResponse, err error) {
	ctx, span := pawtelemetry.StartModuleSpan(goCtx, types.ModuleName, "swap_exact_output",
		attribute.Int64("pool_id", int64(msg.PoolId)),
		attribute.String("asset_in", msg.AssetIn),
		attribute.String("asset_out", msg.AssetOut))
	defer func() { finish("swap_exact_output", span, err) }()

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	trader, recipient, err := swapParties(msg.Trader, msg.Recipient)
	if err != nil {
		return nil, err
	}

	quote, err := ms.Keeper.SwapExactOutput(ctx, trader, recipient, msg.PoolId, msg.AssetIn, msg.AssetOut, msg.AmountOut, msg.MaxAmountIn, msg.Deadline)
	if err != nil {
		return nil, err
	}

	return &types.MsgSwapResponse{
		AmountIn:  quote.AmountIn,
		AmountOut: quote.AmountOut,
	}, nil
}

// TransferShares handles moving liquidity shares between accounts
func (ms msgServer) TransferShares(goCtx context.Context, msg *types.MsgTransferShares) (_ *types.MsgTransferSharesResponse, err error) {
	ctx, span := pawtelemetry.StartModuleSpan(goCtx, types.ModuleName, "transfer_shares",
		attribute.Int64("pool_id", int64(msg.PoolId)))
	defer func() { finish("transfer_shares", span, err) }()

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("sender: %v", err)
	}
	recipient, err := sdk.AccAddressFromBech32(msg.Recipient)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("recipient: %v", err)
	}

	senderShares, recipientShares, err := ms.Keeper.TransferShares(ctx, msg.PoolId, sender, recipient, msg.Shares)
	if err != nil {
		return nil, err
	}

	return &types.MsgTransferSharesResponse{
		SenderShares:    senderShares,
		RecipientShares: recipientShares,
	}, nil
}

// swapParties parses the trader and recipient; an empty recipient is the trader.
func swapParties(traderStr, recipientStr string) (sdk.AccAddress, sdk.AccAddress, error) {
	trader, err := sdk.AccAddressFromBech32(traderStr)
	if err != nil {
		return nil, nil, types.ErrInvalidAddress.Wrapf("trader: %v", err)
	}
	if recipientStr == "" {
		return trader, trader, nil
	}
	recipient, err := sdk.AccAddressFromBech32(recipientStr)
	if err != nil {
		return nil, nil, types.ErrInvalidAddress.Wrapf("recipient: %v", err)
	}
	return trader, recipient, nil
}

// finish ends the handler span and counts the message outcome.
func finish(operation string, span trace.Span, err error) {
	pawtelemetry.EndSpan(span, err)

	status := "success"
	if err != nil {
		status = "failed"
	}
	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "msg", operation},
		1,
		[]metrics.Label{
			telemetry.NewLabel("status", status),
		},
	)
}

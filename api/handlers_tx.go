package api

import (
	"fmt"
	"net/http"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/pawswap/x/amm/types"
)

func (s *Server) handleCreatePool(c *gin.Context) {
	var msg types.MsgCreatePool
	if !bindJSON(c, &msg) {
		return
	}
	s.deliver(c, func(ctx sdk.Context) (any, error) {
		return s.msgServer.CreatePool(ctx, &msg)
	})
}

func (s *Server) handleAddLiquidity(c *gin.Context) {
	var msg types.MsgAddLiquidity
	if !bindPoolMsg(c, &msg, &msg.PoolId) {
		return
	}
	s.deliver(c, func(ctx sdk.Context) (any, error) {
		return s.msgServer.AddLiquidity(ctx, &msg)
	})
}

func (s *Server) handleRemoveLiquidity(c *gin.Context) {
	var msg types.MsgRemoveLiquidity
	if !bindPoolMsg(c, &msg, &msg.PoolId) {
		return
	}
	s.deliver(c, func(ctx sdk.Context) (any, error) {
		return s.msgServer.RemoveLiquidity(ctx, &msg)
	})
}

func (s *Server) handleSwap(c *gin.Context) {
	var msg types.MsgSwap
	if !bindPoolMsg(c, &msg, &msg.PoolId) {
		return
	}
	s.deliver(c, func(ctx sdk.Context) (any, error) {
		return s.msgServer.Swap(ctx, &msg)
	})
}

func (s *Server) handleSwapExactOutput(c *gin.Context) {
	var msg types.MsgSwapExactOutput
	if !bindPoolMsg(c, &msg, &msg.PoolId) {
		return
	}
	s.deliver(c, func(ctx sdk.Context) (any, error) {
		return s.msgServer.SwapExactOutput(ctx, &msg)
	})
}

func (s *Server) handleTransferShares(c *gin.Context) {
	var msg types.MsgTransferShares
	if !bindPoolMsg(c, &msg, &msg.PoolId) {
		return
	}
	s.deliver(c, func(ctx sdk.Context) (any, error) {
		return s.msgServer.TransferShares(ctx, &msg)
	})
}

// handleFaucet mints paper-trading funds
func (s *Server) handleFaucet(c *gin.Context) {
	var req FaucetRequest
	if !bindJSON(c, &req) {
		return
	}
	addr, err := sdk.AccAddressFromBech32(req.Address)
	if err != nil {
		badRequest(c, "invalid address", err)
		return
	}
	coins, err := sdk.ParseCoinsNormalized(req.Coins)
	if err != nil || coins.Empty() {
		badRequest(c, fmt.Sprintf("invalid coins %q", req.Coins), err)
		return
	}
	if limit := s.config.FaucetMaxAmount; limit > 0 {
		for _, coin := range coins {
			if coin.Amount.GT(math.NewInt(limit)) {
				badRequest(c, fmt.Sprintf("faucet dispenses at most %d%s per request", limit, coin.Denom), nil)
				return
			}
		}
	}

	s.deliver(c, func(ctx sdk.Context) (any, error) {
		if err := s.sandbox.Bank().MintCoins(ctx, addr, coins); err != nil {
			return nil, err
		}
		return s.sandbox.Bank().GetAllBalances(ctx, addr), nil
	})
}

// deliver executes fn as its own block and reports the block height, the
// result and the emitted events.
func (s *Server) deliver(c *gin.Context, fn func(ctx sdk.Context) (any, error)) {
	var (
		result any
		height int64
	)
	events, err := s.sandbox.Deliver(func(ctx sdk.Context) error {
		height = ctx.BlockHeight()
		var err error
		result, err = fn(ctx)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	s.wsHub.Publish(height, events)
	c.JSON(http.StatusOK, TxResponse{Height: height, Result: result, Events: events})
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		badRequest(c, "invalid request body", err)
		return false
	}
	return true
}

// bindPoolMsg decodes a message and takes its pool id from the path
func bindPoolMsg(c *gin.Context, msg any, poolID *uint64) bool {
	id, ok := poolIDParam(c)
	if !ok {
		return false
	}
	if !bindJSON(c, msg) {
		return false
	}
	*poolID = id
	return true
}

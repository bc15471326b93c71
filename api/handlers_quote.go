package api

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/pawswap/x/amm/pricing"
	"github.com/paw-chain/pawswap/x/amm/types"
)

func (s *Server) handleQuoteSwap(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	amountIn, ok := amountQuery(c, "amount_in")
	if !ok {
		return
	}
	assetIn, assetOut := c.Query("asset_in"), c.Query("asset_out")
	s.query(c, func(ctx sdk.Context) (any, error) {
		quote, err := s.sandbox.Keeper().SimulateSwap(ctx, poolID, assetIn, assetOut, amountIn)
		if err != nil {
			return nil, err
		}
		return SwapQuoteResponse{PoolId: poolID, AssetIn: assetIn, AssetOut: assetOut, Quote: quote}, nil
	})
}

func (s *Server) handleQuoteSwapExactOutput(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	amountOut, ok := amountQuery(c, "amount_out")
	if !ok {
		return
	}
	assetIn, assetOut := c.Query("asset_in"), c.Query("asset_out")
	s.query(c, func(ctx sdk.Context) (any, error) {
		quote, err := s.sandbox.Keeper().SimulateSwapExactOutput(ctx, poolID, assetIn, assetOut, amountOut)
		if err != nil {
			return nil, err
		}
		return SwapQuoteResponse{PoolId: poolID, AssetIn: assetIn, AssetOut: assetOut, Quote: quote}, nil
	})
}

// handleQuoteDeposit prices a deposit of amount_a. A dormant pool takes both
// legs as given, so amount_b is required there.
func (s *Server) handleQuoteDeposit(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	amountA, ok := amountQuery(c, "amount_a")
	if !ok {
		return
	}
	amountB := math.Int{}
	if c.Query("amount_b") != "" {
		if amountB, ok = amountQuery(c, "amount_b"); !ok {
			return
		}
	}

	s.query(c, func(ctx sdk.Context) (any, error) {
		pool, err := s.sandbox.Keeper().GetPool(ctx, poolID)
		if err != nil {
			return nil, err
		}
		if pool.IsDormant() {
			amountB = types.IntOrZero(amountB)
			shares, err := pricing.QuoteInitialDeposit(amountA, amountB)
			if err != nil {
				return nil, err
			}
			return types.DepositQuote{AmountA: amountA, AmountB: amountB, Shares: shares}, nil
		}
		return pricing.QuoteSubsequentDeposit(pool.ReserveA, pool.ReserveB, pool.TotalShares, amountA)
	})
}

func (s *Server) handleQuoteWithdrawal(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	shares, ok := amountQuery(c, "shares")
	if !ok {
		return
	}
	s.query(c, func(ctx sdk.Context) (any, error) {
		pool, err := s.sandbox.Keeper().GetPool(ctx, poolID)
		if err != nil {
			return nil, err
		}
		amountA, amountB, err := pricing.QuoteWithdrawal(pool.ReserveA, pool.ReserveB, pool.TotalShares, shares)
		if err != nil {
			return nil, err
		}
		return WithdrawalQuoteResponse{PoolId: poolID, Shares: shares, AmountA: amountA, AmountB: amountB}, nil
	})
}

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// handleGetPools lists every pool in id order
func (s *Server) handleGetPools(c *gin.Context) {
	s.query(c, func(ctx sdk.Context) (any, error) {
		k := s.sandbox.Keeper()
		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return nil, err
		}
		resp := make([]PoolResponse, 0, len(pools))
		for _, pool := range pools {
			resp = append(resp, newPoolResponse(pool))
		}
		return resp, nil
	})
}

func (s *Server) handleGetPool(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	s.query(c, func(ctx sdk.Context) (any, error) {
		pool, err := s.sandbox.Keeper().GetPool(ctx, poolID)
		if err != nil {
			return nil, err
		}
		return newPoolResponse(pool), nil
	})
}

// handleGetPoolByAssets resolves a pair in either order
func (s *Server) handleGetPoolByAssets(c *gin.Context) {
	assetA, assetB := c.Param("asset_a"), c.Param("asset_b")
	s.query(c, func(ctx sdk.Context) (any, error) {
		pool, err := s.sandbox.Keeper().GetPoolByAssets(ctx, assetA, assetB)
		if err != nil {
			return nil, err
		}
		return newPoolResponse(pool), nil
	})
}

func (s *Server) handleGetPoolBalances(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	s.query(c, func(ctx sdk.Context) (any, error) {
		a, b, err := s.sandbox.Keeper().PoolBalances(ctx, poolID)
		if err != nil {
			return nil, err
		}
		return PoolBalancesResponse{PoolId: poolID, Balances: sdk.NewCoins(a, b)}, nil
	})
}

func (s *Server) handleGetPositions(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	s.query(c, func(ctx sdk.Context) (any, error) {
		k := s.sandbox.Keeper()
		if _, err := k.GetPool(ctx, poolID); err != nil {
			return nil, err
		}
		var owners []sdk.AccAddress
		if err := k.IterateShares(ctx, poolID, func(owner sdk.AccAddress, _ math.Int) bool {
			owners = append(owners, owner)
			return false
		}); err != nil {
			return nil, err
		}

		resp := make([]PositionResponse, 0, len(owners))
		for _, owner := range owners {
			pos, err := position(ctx, k, poolID, owner)
			if err != nil {
				return nil, err
			}
			resp = append(resp, pos)
		}
		return resp, nil
	})
}

func (s *Server) handleGetPosition(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	owner, err := sdk.AccAddressFromBech32(c.Param("owner"))
	if err != nil {
		badRequest(c, "invalid owner address", err)
		return
	}
	s.query(c, func(ctx sdk.Context) (any, error) {
		return position(ctx, s.sandbox.Keeper(), poolID, owner)
	})
}

func (s *Server) handleGetSpotPrice(c *gin.Context) {
	poolID, ok := poolIDParam(c)
	if !ok {
		return
	}
	assetIn, assetOut := c.Query("asset_in"), c.Query("asset_out")
	s.query(c, func(ctx sdk.Context) (any, error) {
		price, err := s.sandbox.Keeper().SpotPrice(ctx, poolID, assetIn, assetOut)
		if err != nil {
			return nil, err
		}
		return SpotPriceResponse{PoolId: poolID, AssetIn: assetIn, AssetOut: assetOut, Price: price}, nil
	})
}

func (s *Server) handleGetBalances(c *gin.Context) {
	addr, err := sdk.AccAddressFromBech32(c.Param("address"))
	if err != nil {
		badRequest(c, "invalid address", err)
		return
	}
	s.query(c, func(ctx sdk.Context) (any, error) {
		return s.sandbox.Bank().GetAllBalances(ctx, addr), nil
	})
}

func (s *Server) handleCheckInvariants(c *gin.Context) {
	s.query(c, func(ctx sdk.Context) (any, error) {
		msg, broken := keeper.AllInvariants(s.sandbox.Keeper())(ctx)
		return InvariantsResponse{Broken: broken, Message: msg}, nil
	})
}

func (s *Server) handleExportGenesis(c *gin.Context) {
	s.query(c, func(ctx sdk.Context) (any, error) {
		return s.sandbox.Keeper().ExportGenesis(ctx)
	})
}

func position(ctx sdk.Context, k keeper.Keeper, poolID uint64, owner sdk.AccAddress) (PositionResponse, error) {
	shares, err := k.GetShares(ctx, poolID, owner)
	if err != nil {
		return PositionResponse{}, err
	}
	amountA, amountB, err := k.PositionValue(ctx, poolID, owner)
	if err != nil {
		return PositionResponse{}, err
	}
	return PositionResponse{
		PoolId:  poolID,
		Owner:   owner.String(),
		Shares:  shares,
		AmountA: amountA,
		AmountB: amountB,
	}, nil
}

func newPoolResponse(pool types.Pool) PoolResponse {
	return PoolResponse{Pool: pool, Custody: keeper.PoolAddress(pool.Id).String()}
}

// query runs fn against the latest block and writes its result as JSON
func (s *Server) query(c *gin.Context, fn func(ctx sdk.Context) (any, error)) {
	var result any
	err := s.sandbox.Query(func(ctx sdk.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func poolIDParam(c *gin.Context) (uint64, bool) {
	raw := c.Param("pool_id")
	poolID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || poolID == 0 {
		badRequest(c, fmt.Sprintf("invalid pool id %q", raw), err)
		return 0, false
	}
	return poolID, true
}

func amountQuery(c *gin.Context, name string) (math.Int, bool) {
	raw := c.Query(name)
	amount, ok := math.NewIntFromString(raw)
	if !ok {
		badRequest(c, fmt.Sprintf("invalid %s %q", name, raw), nil)
		return math.Int{}, false
	}
	return amount, true
}

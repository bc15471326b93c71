package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/ws", s.handleWebSocket)

	api := s.router.Group("/api")
	{
		pools := api.Group("/pools")
		{
			pools.GET("", s.handleGetPools)
			pools.POST("", s.handleCreatePool)
			pools.GET("/:pool_id", s.handleGetPool)
			pools.GET("/:pool_id/balances", s.handleGetPoolBalances)
			pools.GET("/:pool_id/positions", s.handleGetPositions)
			pools.GET("/:pool_id/positions/:owner", s.handleGetPosition)
			pools.GET("/:pool_id/spot-price", s.handleGetSpotPrice)

			pools.POST("/:pool_id/add-liquidity", s.handleAddLiquidity)
			pools.POST("/:pool_id/remove-liquidity", s.handleRemoveLiquidity)
			pools.POST("/:pool_id/swap", s.handleSwap)
			pools.POST("/:pool_id/swap-exact-output", s.handleSwapExactOutput)
			pools.POST("/:pool_id/transfer-shares", s.handleTransferShares)
		}

		quote := api.Group("/pools/:pool_id/quote")
		{
			quote.GET("/swap", s.handleQuoteSwap)
			quote.GET("/swap-exact-output", s.handleQuoteSwapExactOutput)
			quote.GET("/deposit", s.handleQuoteDeposit)
			quote.GET("/withdrawal", s.handleQuoteWithdrawal)
		}

		api.GET("/pairs/:asset_a/:asset_b", s.handleGetPoolByAssets)
		api.GET("/accounts/:address/balances", s.handleGetBalances)
		api.GET("/invariants", s.handleCheckInvariants)
		api.GET("/genesis", s.handleExportGenesis)

		if s.config.FaucetEnabled {
			api.POST("/faucet", s.handleFaucet)
		}
	}
}

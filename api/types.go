package api

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// PoolResponse is a pool together with its custody account
type PoolResponse struct {
	Pool    types.Pool `json:"pool"`
	Custody string     `json:"custody"`
}

// PoolBalancesResponse reports what the custody account actually holds
type PoolBalancesResponse struct {
	PoolId   uint64   `json:"pool_id"`
	Balances sdk.Coins `json:"balances"`
}

// PositionResponse is one owner's shares and their current redemption value
type PositionResponse struct {
	PoolId  uint64   `json:"pool_id"`
	Owner   string   `json:"owner"`
	Shares  math.Int `json:"shares"`
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// SpotPriceResponse is the marginal price of asset_in in units of asset_out
type SpotPriceResponse struct {
	PoolId   uint64         `json:"pool_id"`
	AssetIn  string         `json:"asset_in"`
	AssetOut string         `json:"asset_out"`
	Price    math.LegacyDec `json:"price"`
}

// SwapQuoteResponse is a simulated swap
type SwapQuoteResponse struct {
	PoolId   uint64          `json:"pool_id"`
	AssetIn  string          `json:"asset_in"`
	AssetOut string          `json:"asset_out"`
	Quote    types.SwapQuote `json:"quote"`
}

// WithdrawalQuoteResponse is a simulated withdrawal
type WithdrawalQuoteResponse struct {
	PoolId  uint64   `json:"pool_id"`
	Shares  math.Int `json:"shares"`
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// FaucetRequest mints coins to an address, e.g. "1000uatom,500upaw"
type FaucetRequest struct {
	Address string `json:"address" binding:"required"`
	Coins   string `json:"coins" binding:"required"`
}

// TxResponse is returned by every state-changing endpoint
type TxResponse struct {
	Height int64      `json:"height"`
	Result any        `json:"result,omitempty"`
	Events sdk.Events `json:"events"`
}

// InvariantsResponse reports the outcome of the registered invariants
type InvariantsResponse struct {
	Broken  bool   `json:"broken"`
	Message string `json:"message"`
}

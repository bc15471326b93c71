// Package pricing holds the stateless constant-product formulas. Functions
// take a reserve snapshot and caller inputs, never touch state, and round
// every result in the pool's favour.
package pricing

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// QuoteSwapExactInput prices selling amountIn against (reserveIn, reserveOut).
//
//	effective_in = amount_in * (den - num)
//	amount_out   = floor(effective_in * reserve_out / (reserve_in * den + effective_in))
//
// The floor guarantees the post-trade product never drops below the
// pre-trade product, and amount_out < reserve_out.
func QuoteSwapExactInput(reserveIn, reserveOut, amountIn math.Int, fee types.Fee) (types.SwapQuote, error) {
	if err := fee.Validate(); err != nil {
		return types.SwapQuote{}, err
	}
	if !isPositive(reserveIn) || !isPositive(reserveOut) {
		return types.SwapQuote{}, types.ErrInsufficientLiquidity.Wrapf(
			"reserves (%s, %s) must be positive", reserveIn, reserveOut)
	}
	if !isPositive(amountIn) {
		return types.SwapQuote{}, types.ErrZeroAmount.Wrapf("swap input %s must be positive", amountIn)
	}

	effectiveIn, err := mul(amountIn, fee.RetainedInt())
	if err != nil {
		return types.SwapQuote{}, err
	}
	numerator, err := mul(effectiveIn, reserveOut)
	if err != nil {
		return types.SwapQuote{}, err
	}
	scaledReserveIn, err := mul(reserveIn, fee.DenominatorInt())
	if err != nil {
		return types.SwapQuote{}, err
	}
	denominator, err := add(scaledReserveIn, effectiveIn)
	if err != nil {
		return types.SwapQuote{}, err
	}
	amountOut := numerator.Quo(denominator)

	newReserveIn, err := add(reserveIn, amountIn)
	if err != nil {
		return types.SwapQuote{}, err
	}
	return types.SwapQuote{
		AmountIn:      amountIn,
		AmountOut:     amountOut,
		NewReserveIn:  newReserveIn,
		NewReserveOut: reserveOut.Sub(amountOut),
	}, nil
}

// QuoteSwapExactOutput prices buying exactly amountOut.
//
//	amount_in = floor(reserve_in * amount_out * den / ((reserve_out - amount_out) * (den - num))) + 1
//
// The +1 rounds the trader's payment up.
func QuoteSwapExactOutput(reserveIn, reserveOut, amountOut math.Int, fee types.Fee) (types.SwapQuote, error) {
	if err := fee.Validate(); err != nil {
		return types.SwapQuote{}, err
	}
	if !isPositive(reserveIn) || !isPositive(reserveOut) {
		return types.SwapQuote{}, types.ErrInsufficientLiquidity.Wrapf(
			"reserves (%s, %s) must be positive", reserveIn, reserveOut)
	}
	if !isPositive(amountOut) {
		return types.SwapQuote{}, types.ErrZeroAmount.Wrapf("swap output %s must be positive", amountOut)
	}
	if amountOut.GTE(reserveOut) {
		return types.SwapQuote{}, types.ErrInsufficientLiquidity.Wrapf(
			"requested output %s must be below reserve %s", amountOut, reserveOut)
	}

	scaled, err := mul(reserveIn, amountOut)
	if err != nil {
		return types.SwapQuote{}, err
	}
	numerator, err := mul(scaled, fee.DenominatorInt())
	if err != nil {
		return types.SwapQuote{}, err
	}
	remaining := reserveOut.Sub(amountOut)
	denominator, err := mul(remaining, fee.RetainedInt())
	if err != nil {
		return types.SwapQuote{}, err
	}
	amountIn, err := add(numerator.Quo(denominator), math.OneInt())
	if err != nil {
		return types.SwapQuote{}, err
	}

	newReserveIn, err := add(reserveIn, amountIn)
	if err != nil {
		return types.SwapQuote{}, err
	}
	return types.SwapQuote{
		AmountIn:      amountIn,
		AmountOut:     amountOut,
		NewReserveIn:  newReserveIn,
		NewReserveOut: remaining,
	}, nil
}

// QuoteInitialDeposit returns floor(sqrt(amountA * amountB)), the shares
// minted by the first deposit into a dormant pool. The deposit ratio becomes
// the pool's opening price.
func QuoteInitialDeposit(amountA, amountB math.Int) (math.Int, error) {
	if !isPositive(amountA) || !isPositive(amountB) {
		return math.Int{}, types.ErrZeroAmount.Wrapf(
			"initial deposit (%s, %s) must be positive on both sides", amountA, amountB)
	}
	product, err := mul(amountA, amountB)
	if err != nil {
		return math.Int{}, err
	}
	return sqrtFloor(product), nil
}

// QuoteSubsequentDeposit prices a deposit of amountADesired into an active
// pool at the current ratio. Asset B is rounded up and shares are rounded
// down, so the depositor never gains at the pool's expense.
func QuoteSubsequentDeposit(reserveA, reserveB, totalShares, amountADesired math.Int) (types.DepositQuote, error) {
	if !isPositive(reserveA) || !isPositive(reserveB) || !isPositive(totalShares) {
		return types.DepositQuote{}, types.ErrInsufficientLiquidity.Wrap("pool is dormant; use the initial deposit")
	}
	if !isPositive(amountADesired) {
		return types.DepositQuote{}, types.ErrZeroAmount.Wrapf("deposit %s must be positive", amountADesired)
	}

	numeratorB, err := mul(amountADesired, reserveB)
	if err != nil {
		return types.DepositQuote{}, err
	}
	amountB, err := quoCeil(numeratorB, reserveA)
	if err != nil {
		return types.DepositQuote{}, err
	}
	numeratorShares, err := mul(amountADesired, totalShares)
	if err != nil {
		return types.DepositQuote{}, err
	}

	return types.DepositQuote{
		AmountA: amountADesired,
		AmountB: amountB,
		Shares:  numeratorShares.Quo(reserveA),
	}, nil
}

// QuoteWithdrawal returns floor(shares * reserve / total) for both assets.
func QuoteWithdrawal(reserveA, reserveB, totalShares, sharesBurned math.Int) (math.Int, math.Int, error) {
	if !isPositive(sharesBurned) {
		return math.Int{}, math.Int{}, types.ErrInsufficientShares.Wrap("must burn a positive amount of shares")
	}
	if !isPositive(totalShares) || sharesBurned.GT(totalShares) {
		return math.Int{}, math.Int{}, types.ErrInsufficientShares.Wrapf(
			"cannot burn %s of %s total shares", sharesBurned, totalShares)
	}
	if reserveA.IsNil() || reserveA.IsNegative() || reserveB.IsNil() || reserveB.IsNegative() {
		return math.Int{}, math.Int{}, types.ErrInvalidPoolState.Wrapf(
			"reserves (%s, %s) must be non-negative", reserveA, reserveB)
	}

	numeratorA, err := mul(sharesBurned, reserveA)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	numeratorB, err := mul(sharesBurned, reserveB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return numeratorA.Quo(totalShares), numeratorB.Quo(totalShares), nil
}

// SpotPrice returns the marginal price of the input asset in units of the
// output asset, reserveOut / reserveIn, before fees.
func SpotPrice(reserveIn, reserveOut math.Int) (math.LegacyDec, error) {
	if !isPositive(reserveIn) || !isPositive(reserveOut) {
		return math.LegacyDec{}, types.ErrInsufficientLiquidity.Wrapf(
			"reserves (%s, %s) must be positive", reserveIn, reserveOut)
	}
	return math.LegacyNewDecFromInt(reserveOut).Quo(math.LegacyNewDecFromInt(reserveIn)), nil
}

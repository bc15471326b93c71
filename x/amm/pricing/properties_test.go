package pricing_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/paw-chain/pawswap/x/amm/pricing"
	"github.com/paw-chain/pawswap/x/amm/types"
)

const maxDraw = 1 << 62

func drawFee(t *rapid.T) types.Fee {
	return types.NewFee(rapid.Uint64Range(0, 999).Draw(t, "feeNumerator"), 1000)
}

func drawInt(t *rapid.T, label string) math.Int {
	return math.NewIntFromUint64(rapid.Uint64Range(1, maxDraw).Draw(t, label))
}

// Property: a swap never lowers the constant product and never drains the output reserve.
func TestPropertySwapPreservesProduct(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := drawInt(t, "reserveIn")
		reserveOut := drawInt(t, "reserveOut")
		amountIn := drawInt(t, "amountIn")
		fee := drawFee(t)

		quote, err := pricing.QuoteSwapExactInput(reserveIn, reserveOut, amountIn, fee)
		require.NoError(t, err)
		require.True(t, quote.AmountOut.LT(reserveOut), "output %s drains reserve %s", quote.AmountOut, reserveOut)
		require.False(t, quote.AmountOut.IsNegative())

		before := reserveIn.Mul(reserveOut)
		after := quote.NewReserveIn.Mul(quote.NewReserveOut)
		require.True(t, after.GTE(before), "product fell from %s to %s", before, after)
	})
}

// Property: quoting has no hidden state.
func TestPropertySwapQuoteDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := drawInt(t, "reserveIn")
		reserveOut := drawInt(t, "reserveOut")
		amountIn := drawInt(t, "amountIn")
		fee := drawFee(t)

		first, err := pricing.QuoteSwapExactInput(reserveIn, reserveOut, amountIn, fee)
		require.NoError(t, err)
		second, err := pricing.QuoteSwapExactInput(reserveIn, reserveOut, amountIn, fee)
		require.NoError(t, err)
		require.True(t, first.AmountOut.Equal(second.AmountOut))
		require.True(t, first.NewReserveIn.Equal(second.NewReserveIn))
		require.True(t, first.NewReserveOut.Equal(second.NewReserveOut))
	})
}

// Property: more input never yields less output, and a deeper input reserve
// never yields more output for the same input.
func TestPropertySwapMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := drawInt(t, "reserveIn")
		reserveOut := drawInt(t, "reserveOut")
		amountIn := drawInt(t, "amountIn")
		extra := drawInt(t, "extra")
		fee := drawFee(t)

		small, err := pricing.QuoteSwapExactInput(reserveIn, reserveOut, amountIn, fee)
		require.NoError(t, err)
		large, err := pricing.QuoteSwapExactInput(reserveIn, reserveOut, amountIn.Add(extra), fee)
		require.NoError(t, err)
		require.True(t, large.AmountOut.GTE(small.AmountOut))

		deeper, err := pricing.QuoteSwapExactInput(reserveIn.Add(extra), reserveOut, amountIn, fee)
		require.NoError(t, err)
		require.True(t, deeper.AmountOut.LTE(small.AmountOut))
	})
}

// Property: the price of the input asset falls strictly as its reserve grows.
func TestPropertySpotPriceFallsWithReserveIn(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := math.NewIntFromUint64(rapid.Uint64Range(1, 1_000_000).Draw(t, "reserveIn"))
		reserveOut := math.NewIntFromUint64(rapid.Uint64Range(1_000_000, 1_000_000_000_000).Draw(t, "reserveOut"))
		step := math.NewIntFromUint64(rapid.Uint64Range(1, 1_000_000).Draw(t, "step"))

		before, err := pricing.SpotPrice(reserveIn, reserveOut)
		require.NoError(t, err)
		after, err := pricing.SpotPrice(reserveIn.Add(step), reserveOut)
		require.NoError(t, err)
		require.True(t, after.LT(before), "price %s did not fall below %s", after, before)
	})
}

// Property: paying the exact-output price buys at least the requested amount.
func TestPropertyExactOutputCoversRequest(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserveIn := drawInt(t, "reserveIn")
		reserveOut := math.NewIntFromUint64(rapid.Uint64Range(2, maxDraw).Draw(t, "reserveOut"))
		amountOut := math.NewIntFromUint64(rapid.Uint64Range(1, reserveOut.Uint64()-1).Draw(t, "amountOut"))
		fee := drawFee(t)

		exact, err := pricing.QuoteSwapExactOutput(reserveIn, reserveOut, amountOut, fee)
		require.NoError(t, err)

		forward, err := pricing.QuoteSwapExactInput(reserveIn, reserveOut, exact.AmountIn, fee)
		require.NoError(t, err)
		require.True(t, forward.AmountOut.GTE(amountOut), "paying %s returns %s < %s", exact.AmountIn, forward.AmountOut, amountOut)

		before := reserveIn.Mul(reserveOut)
		after := exact.NewReserveIn.Mul(exact.NewReserveOut)
		require.True(t, after.GT(before))
	})
}

// Property: depositing and withdrawing the minted shares never returns more than was put in.
func TestPropertyDepositWithdrawRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initialA := math.NewIntFromUint64(rapid.Uint64Range(1, 1_000_000_000_000).Draw(t, "initialA"))
		initialB := math.NewIntFromUint64(rapid.Uint64Range(1, 1_000_000_000_000).Draw(t, "initialB"))

		totalShares, err := pricing.QuoteInitialDeposit(initialA, initialB)
		require.NoError(t, err)

		// A fresh pool returns exactly the initial deposit and empties.
		outA, outB, err := pricing.QuoteWithdrawal(initialA, initialB, totalShares, totalShares)
		require.NoError(t, err)
		require.True(t, outA.Equal(initialA))
		require.True(t, outB.Equal(initialB))

		depositA := math.NewIntFromUint64(rapid.Uint64Range(1, 1_000_000_000_000).Draw(t, "depositA"))
		quote, err := pricing.QuoteSubsequentDeposit(initialA, initialB, totalShares, depositA)
		require.NoError(t, err)
		if quote.Shares.IsZero() {
			return
		}

		reserveA := initialA.Add(quote.AmountA)
		reserveB := initialB.Add(quote.AmountB)
		total := totalShares.Add(quote.Shares)
		backA, backB, err := pricing.QuoteWithdrawal(reserveA, reserveB, total, quote.Shares)
		require.NoError(t, err)
		require.True(t, backA.LTE(quote.AmountA), "withdrew %s A after depositing %s", backA, quote.AmountA)
		require.True(t, backB.LTE(quote.AmountB), "withdrew %s B after depositing %s", backB, quote.AmountB)
	})
}

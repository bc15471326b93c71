package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/x/amm/pricing"
	"github.com/paw-chain/pawswap/x/amm/types"
)

const flagFee = "fee"

// QuoteCmd groups the offline pricing commands. They read reserves from the
// arguments and never touch state.
func QuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price swaps and liquidity operations against given reserves",
	}

	cmd.AddCommand(
		quoteSwapCmd(),
		quoteSwapExactOutputCmd(),
		quoteInitialDepositCmd(),
		quoteDepositCmd(),
		quoteWithdrawCmd(),
		quoteSpotPriceCmd(),
	)
	return cmd
}

func quoteSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "swap [reserve-in] [reserve-out] [amount-in]",
		Short:   "Output of selling exactly amount-in",
		Example: "pawswap quote swap 1000 1000 100 --fee 3/1000",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts(args, "reserve-in", "reserve-out", "amount-in")
			if err != nil {
				return err
			}
			fee, err := feeFlag(cmd)
			if err != nil {
				return err
			}
			quote, err := pricing.QuoteSwapExactInput(amounts[0], amounts[1], amounts[2], fee)
			if err != nil {
				return err
			}
			return printJSON(cmd, quote)
		},
	}
	addFeeFlag(cmd)
	return cmd
}

func quoteSwapExactOutputCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-exact-output [reserve-in] [reserve-out] [amount-out]",
		Short: "Input required to buy exactly amount-out",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts(args, "reserve-in", "reserve-out", "amount-out")
			if err != nil {
				return err
			}
			fee, err := feeFlag(cmd)
			if err != nil {
				return err
			}
			quote, err := pricing.QuoteSwapExactOutput(amounts[0], amounts[1], amounts[2], fee)
			if err != nil {
				return err
			}
			return printJSON(cmd, quote)
		},
	}
	addFeeFlag(cmd)
	return cmd
}

func quoteInitialDepositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initial-deposit [amount-a] [amount-b]",
		Short: "Shares minted by the first deposit into an empty pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts(args, "amount-a", "amount-b")
			if err != nil {
				return err
			}
			shares, err := pricing.QuoteInitialDeposit(amounts[0], amounts[1])
			if err != nil {
				return err
			}
			return printJSON(cmd, types.DepositQuote{AmountA: amounts[0], AmountB: amounts[1], Shares: shares})
		},
	}
}

func quoteDepositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit [reserve-a] [reserve-b] [total-shares] [amount-a]",
		Short: "Asset B required and shares minted for a deposit into an active pool",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts(args, "reserve-a", "reserve-b", "total-shares", "amount-a")
			if err != nil {
				return err
			}
			quote, err := pricing.QuoteSubsequentDeposit(amounts[0], amounts[1], amounts[2], amounts[3])
			if err != nil {
				return err
			}
			return printJSON(cmd, quote)
		},
	}
}

func quoteWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw [reserve-a] [reserve-b] [total-shares] [shares]",
		Short: "Assets paid out for burning shares",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts(args, "reserve-a", "reserve-b", "total-shares", "shares")
			if err != nil {
				return err
			}
			amountA, amountB, err := pricing.QuoteWithdrawal(amounts[0], amounts[1], amounts[2], amounts[3])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]math.Int{"amount_a": amountA, "amount_b": amountB})
		},
	}
}

func quoteSpotPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spot-price [reserve-in] [reserve-out]",
		Short: "Marginal price of the input asset in units of the output asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts, err := parseAmounts(args, "reserve-in", "reserve-out")
			if err != nil {
				return err
			}
			price, err := pricing.SpotPrice(amounts[0], amounts[1])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]math.LegacyDec{"price": price})
		},
	}
}

func addFeeFlag(cmd *cobra.Command) {
	cmd.Flags().String(flagFee, types.DefaultFee().String(), "swap fee as numerator/denominator")
}

func feeFlag(cmd *cobra.Command) (types.Fee, error) {
	raw, err := cmd.Flags().GetString(flagFee)
	if err != nil {
		return types.Fee{}, err
	}
	return parseFee(raw)
}

// parseFee reads a fee written as "numerator/denominator"
func parseFee(raw string) (types.Fee, error) {
	num, den, ok := strings.Cut(raw, "/")
	if !ok {
		return types.Fee{}, fmt.Errorf("fee %q must be numerator/denominator", raw)
	}
	numerator, err := cast.ToUint64E(strings.TrimSpace(num))
	if err != nil {
		return types.Fee{}, fmt.Errorf("fee numerator: %w", err)
	}
	denominator, err := cast.ToUint64E(strings.TrimSpace(den))
	if err != nil {
		return types.Fee{}, fmt.Errorf("fee denominator: %w", err)
	}
	fee := types.NewFee(numerator, denominator)
	return fee, fee.Validate()
}

func parseAmounts(args []string, names ...string) ([]math.Int, error) {
	amounts := make([]math.Int, len(args))
	for i, arg := range args {
		amount, ok := math.NewIntFromString(arg)
		if !ok {
			return nil, fmt.Errorf("invalid %s %q", names[i], arg)
		}
		amounts[i] = amount
	}
	return amounts, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}

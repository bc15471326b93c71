package types

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Pool is a two-asset constant-product pool. Assets are kept in
// lexicographic order so a pair maps to exactly one pool.
type Pool struct {
	Id          uint64   `json:"id"`
	AssetA      string   `json:"asset_a"`
	AssetB      string   `json:"asset_b"`
	ReserveA    math.Int `json:"reserve_a"`
	ReserveB    math.Int `json:"reserve_b"`
	TotalShares math.Int `json:"total_shares"`
	Fee         Fee      `json:"fee"`
}

// NewPool returns a dormant pool for the given pair.
func NewPool(id uint64, assetA, assetB string, fee Fee) Pool {
	assetA, assetB, _ = SortAssets(assetA, assetB)
	return Pool{
		Id:          id,
		AssetA:      assetA,
		AssetB:      assetB,
		ReserveA:    math.ZeroInt(),
		ReserveB:    math.ZeroInt(),
		TotalShares: math.ZeroInt(),
		Fee:         fee,
	}
}

// SortAssets orders a pair lexicographically and reports whether it swapped them.
func SortAssets(assetA, assetB string) (string, string, bool) {
	if assetA > assetB {
		return assetB, assetA, true
	}
	return assetA, assetB, false
}

// ValidateAssetPair checks both denoms and rejects identical assets.
func ValidateAssetPair(assetA, assetB string) error {
	if err := sdk.ValidateDenom(assetA); err != nil {
		return ErrInvalidTokenPair.Wrapf("asset %q: %v", assetA, err)
	}
	if err := sdk.ValidateDenom(assetB); err != nil {
		return ErrInvalidTokenPair.Wrapf("asset %q: %v", assetB, err)
	}
	if assetA == assetB {
		return ErrInvalidTokenPair.Wrap("cannot pair identical assets")
	}
	return nil
}

// IsDormant reports whether the pool holds no reserves and no shares.
func (p Pool) IsDormant() bool {
	return p.ReserveA.IsZero() && p.ReserveB.IsZero() && p.TotalShares.IsZero()
}

// HasAsset reports whether denom is one of the pool's assets.
func (p Pool) HasAsset(denom string) bool {
	return denom == p.AssetA || denom == p.AssetB
}

// Reserves returns (reserveIn, reserveOut) for a trade direction and
// whether asset A is the input side.
func (p Pool) Reserves(assetIn, assetOut string) (math.Int, math.Int, bool, error) {
	switch {
	case assetIn == p.AssetA && assetOut == p.AssetB:
		return p.ReserveA, p.ReserveB, true, nil
	case assetIn == p.AssetB && assetOut == p.AssetA:
		return p.ReserveB, p.ReserveA, false, nil
	default:
		return math.Int{}, math.Int{}, false, ErrInvalidTokenPair.Wrapf(
			"pool %d trades %s/%s, got %s -> %s", p.Id, p.AssetA, p.AssetB, assetIn, assetOut)
	}
}

// ConstantProduct returns reserve_a * reserve_b without a width bound.
func (p Pool) ConstantProduct() *big.Int {
	return new(big.Int).Mul(p.ReserveA.BigInt(), p.ReserveB.BigInt())
}

// Validate checks the stored shape of the pool, including that reserves and
// shares are either all zero or all positive.
func (p Pool) Validate() error {
	if p.Id == 0 {
		return ErrInvalidPoolState.Wrap("pool id cannot be zero")
	}
	if err := ValidateAssetPair(p.AssetA, p.AssetB); err != nil {
		return err
	}
	if p.AssetA > p.AssetB {
		return ErrInvalidPoolState.Wrapf("pool %d assets not sorted: %s > %s", p.Id, p.AssetA, p.AssetB)
	}
	if err := p.Fee.Validate(); err != nil {
		return err
	}
	fields := []struct {
		name  string
		value math.Int
	}{
		{"reserve_a", p.ReserveA},
		{"reserve_b", p.ReserveB},
		{"total_shares", p.TotalShares},
	}
	for _, f := range fields {
		if f.value.IsNil() || f.value.IsNegative() {
			return ErrInvalidPoolState.Wrapf("pool %d: %s must be non-negative", p.Id, f.name)
		}
	}

	positive := 0
	for _, v := range []math.Int{p.ReserveA, p.ReserveB, p.TotalShares} {
		if v.IsPositive() {
			positive++
		}
	}
	if positive != 0 && positive != 3 {
		return ErrInvariantViolation.Wrapf(
			"pool %d: reserves (%s, %s) and shares %s must be all zero or all positive",
			p.Id, p.ReserveA, p.ReserveB, p.TotalShares)
	}
	return nil
}

func (p Pool) String() string {
	return fmt.Sprintf("pool %d %s%s/%s%s shares=%s fee=%s",
		p.Id, p.ReserveA, p.AssetA, p.ReserveB, p.AssetB, p.TotalShares, p.Fee)
}

// SwapQuote is the result of pricing a swap against a reserve snapshot.
type SwapQuote struct {
	AmountIn      math.Int `json:"amount_in"`
	AmountOut     math.Int `json:"amount_out"`
	NewReserveIn  math.Int `json:"new_reserve_in"`
	NewReserveOut math.Int `json:"new_reserve_out"`
}

// DepositQuote is the result of pricing a liquidity deposit.
type DepositQuote struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
	Shares  math.Int `json:"shares"`
}

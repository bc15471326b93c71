package pricing

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// Checked arithmetic over math.Int. Every value is bounded by
// math.MaxBitLen (256 bits); a product or sum past that bound fails with
// ErrOverflow instead of panicking inside math.Int.

func mul(a, b math.Int) (math.Int, error) {
	res, err := a.SafeMul(b)
	if err != nil {
		return math.Int{}, types.ErrOverflow.Wrapf("%s * %s: %v", a, b, err)
	}
	return res, nil
}

func add(a, b math.Int) (math.Int, error) {
	res, err := a.SafeAdd(b)
	if err != nil {
		return math.Int{}, types.ErrOverflow.Wrapf("%s + %s: %v", a, b, err)
	}
	return res, nil
}

// quoCeil returns ceil(a / b) for a >= 0, b > 0.
func quoCeil(a, b math.Int) (math.Int, error) {
	q, r := new(big.Int).QuoRem(a.BigInt(), b.BigInt(), new(big.Int))
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	if q.BitLen() > math.MaxBitLen {
		return math.Int{}, types.ErrOverflow.Wrapf("ceil(%s / %s) exceeds %d bits", a, b, math.MaxBitLen)
	}
	return math.NewIntFromBigInt(q), nil
}

// sqrtFloor returns floor(sqrt(x)) for x >= 0.
func sqrtFloor(x math.Int) math.Int {
	return math.NewIntFromBigInt(new(big.Int).Sqrt(x.BigInt()))
}

func isPositive(x math.Int) bool {
	return !x.IsNil() && x.IsPositive()
}

package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

var (
	// PoolKeyPrefix is the prefix for pool store keys
	PoolKeyPrefix = []byte{0x01}

	// PoolByAssetsKeyPrefix is the prefix for indexing pools by asset pair
	PoolByAssetsKeyPrefix = []byte{0x02}

	// SharesKeyPrefix is the prefix for liquidity share balances
	SharesKeyPrefix = []byte{0x03}

	// NextPoolIDKey is the key for the next pool ID counter
	NextPoolIDKey = []byte{0x04}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x05}
)

// PoolKey returns the store key for a pool by ID
func PoolKey(poolID uint64) []byte {
	return concat(PoolKeyPrefix, sdk.Uint64ToBigEndian(poolID))
}

// PoolByAssetsKey returns the index key for a sorted asset pair. Denoms are
// length-prefixed because they may contain any separator.
func PoolByAssetsKey(assetA, assetB string) []byte {
	if assetA > assetB {
		assetA, assetB = assetB, assetA
	}
	return concat(PoolByAssetsKeyPrefix, address.MustLengthPrefix([]byte(assetA)), []byte(assetB))
}

// PoolSharesPrefix returns the prefix of every share balance in a pool
func PoolSharesPrefix(poolID uint64) []byte {
	return concat(SharesKeyPrefix, sdk.Uint64ToBigEndian(poolID))
}

// SharesKey returns the store key for one account's shares in a pool
func SharesKey(poolID uint64, owner sdk.AccAddress) []byte {
	return concat(PoolSharesPrefix(poolID), address.MustLengthPrefix(owner))
}

// ownerFromSharesKey extracts the owner from the part of a shares key that
// follows PoolSharesPrefix.
func ownerFromSharesKey(suffix []byte) sdk.AccAddress {
	if len(suffix) == 0 || int(suffix[0]) != len(suffix)-1 {
		return nil
	}
	return sdk.AccAddress(suffix[1:])
}

func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}
